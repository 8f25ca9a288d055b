package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"
	"github.com/google/uuid"

	"github.com/quocvuong92/build-shell/internal/dispatch"
	"github.com/quocvuong92/build-shell/internal/display"
	"github.com/quocvuong92/build-shell/internal/logging"
)

// InteractiveSession holds the state for one interactive shell session.
type InteractiveSession struct {
	app      *App
	exitFlag bool
	log      *logging.FieldLogger
}

// completer provides auto-completion suggestions for the shell's special
// command forms, and for toolchain names after a `++ ` prefix.
func (s *InteractiveSession) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	text := d.TextBeforeCursor()
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)

	// ++ <toolchain> - suggest configured toolchains
	if strings.HasPrefix(text, "++ ") {
		var suggestions []prompt.Suggest
		for _, tc := range s.app.state.Toolchains() {
			desc := ""
			if tc == s.app.state.Current() {
				desc = "(current)"
			}
			suggestions = append(suggestions, prompt.Suggest{Text: tc, Description: desc})
		}
		return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
	}

	// Special forms only make sense as the first word of the line
	if text != w {
		return []prompt.Suggest{}, startIndex, endIndex
	}

	suggestions := []prompt.Suggest{
		{Text: "help", Description: "Show usage"},
		{Text: "exit", Description: "Leave the shell"},
		{Text: "quit", Description: "Leave the shell (alias)"},
		{Text: "p", Description: "Set the prompt template"},
		{Text: "++", Description: "Switch toolchain, optionally for one command"},
		{Text: "+", Description: "Run across all configured toolchains"},
		{Text: "<", Description: "Preview commands from a file"},
		{Text: "~", Description: "Re-run a command on source changes"},
	}

	return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
}

// runInteractive starts the interactive shell loop. It reads one line at a
// time and hands it to the dispatcher; dispatcher errors are printed and the
// loop keeps reading. Ctrl+C cancels the current line (go-prompt's default),
// Ctrl+D on an empty line ends the session.
func (app *App) runInteractive() {
	fmt.Printf("Welcome to build-shell v%s\n", version)
	fmt.Printf("Project: %s %s\n", app.state.Project(), app.state.Version())
	fmt.Printf("Toolchain: %s (of %s)\n", app.state.Current(), strings.Join(app.state.Toolchains(), ", "))
	fmt.Println("Type help for commands, exit or Ctrl+D to quit")
	fmt.Println()

	session := &InteractiveSession{
		app: app,
		log: logging.DefaultLogger.WithFields(logging.Fields{
			"session": uuid.New().String(),
		}),
	}
	session.log.Debug("interactive session started", logging.Fields{
		"project":   app.state.Project(),
		"toolchain": app.state.Current(),
	})

	p := prompt.New(
		session.executor,
		prompt.WithCompleter(session.completer),
		prompt.WithPrefixCallback(func() string {
			return app.state.RenderPrompt()
		}),
		prompt.WithTitle("build-shell"),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithSuggestionBGColor(prompt.DarkBlue),
		prompt.WithSuggestionTextColor(prompt.White),
		prompt.WithSelectedSuggestionBGColor(prompt.Cyan),
		prompt.WithSelectedSuggestionTextColor(prompt.Black),
		prompt.WithDescriptionBGColor(prompt.DarkBlue),
		prompt.WithDescriptionTextColor(prompt.LightGray),
		prompt.WithSelectedDescriptionBGColor(prompt.Cyan),
		prompt.WithSelectedDescriptionTextColor(prompt.Black),
		prompt.WithMaxSuggestion(10),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return session.exitFlag
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					session.exitFlag = true
				}
				return false
			},
		}),
	)

	p.Run()
	session.log.Debug("interactive session ended")
}

// executor handles one input line in the REPL. Per-command errors are
// printed and never terminate the session.
func (s *InteractiveSession) executor(input string) {
	if s.exitFlag {
		return
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	err := s.app.dispatcher.Dispatch(context.Background(), s.app.state, input)
	if errors.Is(err, dispatch.ErrExit) {
		s.exitFlag = true
		return
	}
	if err != nil {
		display.ShowError(err.Error())
	}
}
