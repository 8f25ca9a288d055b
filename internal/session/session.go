// Package session holds the mutable state of one interactive shell session.
//
// The state is owned exclusively by the REPL loop; commands are processed one
// at a time, so no locking is needed. Only the prompt template and the
// current toolchain may change after construction.
package session

import "strings"

// Prompt template placeholders substituted by RenderPrompt.
const (
	PlaceholderProject   = "{project}"
	PlaceholderVersion   = "{version}"
	PlaceholderToolchain = "{toolchain}"
)

// Params carries the values a new session is constructed from. They come
// from the configuration layer, the project manifest, and selector discovery.
type Params struct {
	Prompt           string
	SelectorPath     string
	Project          string
	Version          string
	DefaultToolchain string
	Toolchains       []string
	WorkDir          string
}

// State is the per-session shell state. The current toolchain starts at the
// default toolchain and is never empty.
type State struct {
	prompt           string
	selectorPath     string
	project          string
	version          string
	defaultToolchain string
	toolchains       []string
	current          string
	workDir          string
}

// New constructs session state from the given parameters. The toolchain list
// is copied so later mutation of the caller's slice cannot leak in.
func New(p Params) *State {
	toolchains := make([]string, len(p.Toolchains))
	copy(toolchains, p.Toolchains)

	return &State{
		prompt:           p.Prompt,
		selectorPath:     p.SelectorPath,
		project:          p.Project,
		version:          p.Version,
		defaultToolchain: p.DefaultToolchain,
		toolchains:       toolchains,
		current:          p.DefaultToolchain,
		workDir:          p.WorkDir,
	}
}

// Prompt returns the raw prompt template.
func (s *State) Prompt() string { return s.prompt }

// SetPrompt replaces the prompt template.
func (s *State) SetPrompt(prompt string) { s.prompt = prompt }

// SelectorPath returns the resolved path of the toolchain selector binary.
func (s *State) SelectorPath() string { return s.selectorPath }

// Project returns the project name read from the manifest.
func (s *State) Project() string { return s.project }

// Version returns the project version read from the manifest.
func (s *State) Version() string { return s.version }

// DefaultToolchain returns the configured default toolchain.
func (s *State) DefaultToolchain() string { return s.defaultToolchain }

// Toolchains returns a copy of the configured toolchain list, in order.
func (s *State) Toolchains() []string {
	out := make([]string, len(s.toolchains))
	copy(out, s.toolchains)
	return out
}

// Current returns the active toolchain override.
func (s *State) Current() string { return s.current }

// SetCurrent switches the active toolchain override. Callers never pass an
// empty name; the dispatcher validates user input before switching.
func (s *State) SetCurrent(toolchain string) { s.current = toolchain }

// WorkDir returns the working directory every invocation runs in.
func (s *State) WorkDir() string { return s.workDir }

// RenderPrompt substitutes the {project}, {version} and {toolchain}
// placeholders in the prompt template with the session's current values.
// Placeholders that do not appear are simply not substituted, and text that
// is not a known placeholder is left untouched.
func (s *State) RenderPrompt() string {
	return strings.NewReplacer(
		PlaceholderProject, s.project,
		PlaceholderVersion, s.version,
		PlaceholderToolchain, s.current,
	).Replace(s.prompt)
}
