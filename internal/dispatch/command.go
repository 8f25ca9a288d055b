// Package dispatch classifies one line of shell input and executes it
// against the session state, producing toolchain invocations and state
// mutations. It is the only mutator of session state.
package dispatch

import "strings"

// Kind identifies the command form a line was classified into.
type Kind int

const (
	// KindExit terminates the shell ("exit" or "quit").
	KindExit Kind = iota
	// KindHelp prints the usage text ("help").
	KindHelp
	// KindSetPrompt replaces the prompt template ("p <text>").
	KindSetPrompt
	// KindWatchRun runs a command under the watch companion ("~<command>").
	KindWatchRun
	// KindRunFromFile previews commands from a batch file ("< <path>").
	KindRunFromFile
	// KindTempToolchainRun switches toolchain, optionally for one command
	// ("++ <toolchain> [<command>]").
	KindTempToolchainRun
	// KindFanOutRun runs a command across every configured toolchain
	// ("+ <command>").
	KindFanOutRun
	// KindPlainRun runs the line as-is under the current toolchain.
	KindPlainRun
)

// Command is a parsed input line. It is built per line and never stored.
type Command struct {
	Kind      Kind
	Prompt    string   // KindSetPrompt: the new prompt template
	Toolchain string   // KindTempToolchainRun: the named toolchain
	Path      string   // KindRunFromFile: the batch file path
	Args      []string // run variants: the build-tool arguments
}

// Classify parses a trimmed input line into a Command. Matching is by
// literal prefix, first match wins, in the documented priority order. The
// grammar means plain commands cannot start with `+`, `~` or `<`; that
// quirk is inherited deliberately and documented in the usage text.
func Classify(line string) Command {
	switch {
	case line == "exit" || line == "quit":
		return Command{Kind: KindExit}

	case line == "help":
		return Command{Kind: KindHelp}

	case strings.HasPrefix(line, "p "):
		// Surrounding quotes (single or double) are stripped so prompts
		// with trailing spaces can be given as p "{project} > "
		return Command{
			Kind:   KindSetPrompt,
			Prompt: strings.Trim(line[2:], `"'`),
		}

	case strings.HasPrefix(line, "~"):
		return Command{
			Kind: KindWatchRun,
			Args: strings.Split(strings.TrimSpace(line[1:]), " "),
		}

	case strings.HasPrefix(line, "<"):
		return Command{
			Kind: KindRunFromFile,
			Path: strings.TrimSpace(line[1:]),
		}

	case strings.HasPrefix(line, "++"):
		parts := strings.Split(strings.TrimSpace(line[2:]), " ")
		cmd := Command{
			Kind:      KindTempToolchainRun,
			Toolchain: strings.TrimSpace(parts[0]),
		}
		if len(parts) > 1 {
			cmd.Args = parts[1:]
		}
		return cmd

	case strings.HasPrefix(line, "+"):
		return Command{
			Kind: KindFanOutRun,
			Args: strings.Split(strings.TrimSpace(line[1:]), " "),
		}

	default:
		return Command{
			Kind: KindPlainRun,
			Args: strings.Split(line, " "),
		}
	}
}
