// Package config loads shell configuration from a YAML file and the
// environment. Precedence, lowest first: built-in defaults, config file,
// environment variables, command-line flags.
package config

import (
	"errors"
	"os"
	"strings"
)

// Environment variable names
const (
	EnvPrompt           = "BUILD_SHELL_PROMPT"
	EnvDefaultToolchain = "BUILD_SHELL_DEFAULT_TOOLCHAIN"
	EnvToolchains       = "BUILD_SHELL_TOOLCHAINS"
	EnvSelector         = "BUILD_SHELL_SELECTOR"
	EnvTool             = "BUILD_SHELL_TOOL"
	EnvSelectorHome     = "BUILD_SHELL_HOME"
	EnvLogLevel         = "BUILD_SHELL_LOG_LEVEL"

	// EnvCargoHome is honored as a selector-home fallback so the stock
	// rustup/cargo setup works with no shell-specific configuration.
	EnvCargoHome = "CARGO_HOME"
)

// Defaults applied when neither the config file nor the environment provides
// a value.
const (
	DefaultPrompt    = ">> "
	DefaultToolchain = "stable"
	DefaultSelector  = "rustup"
	DefaultTool      = "cargo"
	DefaultManifest  = "Cargo.toml"
)

// DefaultToolchains is the fan-out list used when none is configured.
var DefaultToolchains = []string{"stable", "beta", "nightly"}

// Errors
var (
	ErrEmptyTool      = errors.New("build tool name must not be empty")
	ErrEmptySelector  = errors.New("toolchain selector name must not be empty")
	ErrEmptyToolchain = errors.New("toolchain list entries must not be empty")
)

// Config holds the merged shell configuration.
type Config struct {
	// Prompt is the prompt template; see session.RenderPrompt.
	Prompt string

	// DefaultToolchain is the toolchain commands start out running under.
	DefaultToolchain string

	// Toolchains is the ordered list the fan-out command iterates.
	Toolchains []string

	// Selector is the toolchain-selector binary name (e.g. rustup).
	Selector string

	// Tool is the build-tool binary name passed to the selector (e.g. cargo).
	Tool string

	// SelectorHome is the base path checked for <home>/bin/<selector>
	// before falling back to a PATH scan. Optional.
	SelectorHome string

	// Manifest is the file name of the project manifest.
	Manifest string

	// Flags
	Verbose   bool
	Render    bool
	LogLevel  string
	LogFormat string
}

// NewConfig creates an empty Config; call Validate to fill it in.
func NewConfig() *Config {
	return &Config{}
}

// Validate merges the config file, environment variables and defaults into
// the receiver. Values already set (by flags) win over everything else.
func (c *Config) Validate() error {
	// Config file first (lowest priority). Errors loading it are ignored;
	// the environment and defaults still produce a working shell.
	if fileConfig, err := LoadConfigFile(); err == nil {
		c.ApplyFileConfig(fileConfig)
	}

	if c.Prompt == "" {
		c.Prompt = os.Getenv(EnvPrompt)
	}
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}

	if c.DefaultToolchain == "" {
		c.DefaultToolchain = strings.TrimSpace(os.Getenv(EnvDefaultToolchain))
	}
	if c.DefaultToolchain == "" {
		c.DefaultToolchain = DefaultToolchain
	}

	if len(c.Toolchains) == 0 {
		c.Toolchains = splitList(os.Getenv(EnvToolchains))
	}
	if len(c.Toolchains) == 0 {
		c.Toolchains = append([]string(nil), DefaultToolchains...)
	}
	for _, tc := range c.Toolchains {
		if strings.TrimSpace(tc) == "" {
			return ErrEmptyToolchain
		}
	}

	if c.Selector == "" {
		c.Selector = strings.TrimSpace(os.Getenv(EnvSelector))
	}
	if c.Selector == "" {
		c.Selector = DefaultSelector
	}

	if c.Tool == "" {
		c.Tool = strings.TrimSpace(os.Getenv(EnvTool))
	}
	if c.Tool == "" {
		c.Tool = DefaultTool
	}

	if c.SelectorHome == "" {
		c.SelectorHome = os.Getenv(EnvSelectorHome)
	}
	if c.SelectorHome == "" {
		c.SelectorHome = os.Getenv(EnvCargoHome)
	}

	if c.Manifest == "" {
		c.Manifest = DefaultManifest
	}

	if c.LogLevel == "" {
		c.LogLevel = os.Getenv(EnvLogLevel)
	}

	if c.Tool == "" {
		return ErrEmptyTool
	}
	if c.Selector == "" {
		return ErrEmptySelector
	}

	return nil
}

// splitList splits a comma-separated list, trimming whitespace and dropping
// empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
