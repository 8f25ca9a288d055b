// Package display centralizes user-facing terminal output: errors and
// warnings on stderr, optional markdown rendering for help text, and a
// spinner for the watch-availability probe.
package display

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/glamour"
)

// renderer is the shared markdown renderer; nil until InitRenderer succeeds.
var renderer *glamour.TermRenderer

// InitRenderer initializes the markdown renderer used for help text.
func InitRenderer() error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	renderer = r
	return nil
}

// Markdown renders md with the configured renderer. When rendering is not
// initialized (or fails), the raw text is returned unchanged so help output
// always appears.
func Markdown(md string) string {
	if renderer == nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// ShowError prints an error message to stderr.
func ShowError(msg string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
}

// ShowWarning prints a non-fatal warning to stderr.
func ShowWarning(msg string) {
	fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
}

// Spinner wraps a terminal spinner with a message suffix.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a spinner with the given message.
func NewSpinner(message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	return &Spinner{s: s}
}

// Start begins the spinner animation.
func (sp *Spinner) Start() {
	sp.s.Start()
}

// Stop halts the spinner and clears its line.
func (sp *Spinner) Stop() {
	sp.s.Stop()
}

// UpdateMessage changes the spinner message while running.
func (sp *Spinner) UpdateMessage(message string) {
	sp.s.Suffix = " " + message
}
