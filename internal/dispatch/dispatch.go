package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/quocvuong92/build-shell/internal/logging"
	"github.com/quocvuong92/build-shell/internal/session"
	"github.com/quocvuong92/build-shell/internal/toolchain"
)

// ErrExit is returned by Dispatch when the user asked to leave the shell.
// The REPL owns process termination; the dispatcher only signals it.
var ErrExit = errors.New("exit requested")

// ErrMissingToolchain is returned for a `++` command with no toolchain name.
// The active toolchain is never set to an empty string.
var ErrMissingToolchain = errors.New("usage: ++ <toolchain> [<command>]")

// Dispatcher executes classified commands. Output writers are injected so
// tests can capture the notices and previews the dispatcher prints.
type Dispatcher struct {
	runner     toolchain.Runner
	tool       string
	stdout     io.Writer
	stderr     io.Writer
	renderHelp func(string) string
	log        *logging.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithOutput redirects the dispatcher's stdout and stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(d *Dispatcher) {
		d.stdout = stdout
		d.stderr = stderr
	}
}

// WithHelpRenderer sets the function applied to the usage text before
// printing, e.g. a markdown renderer.
func WithHelpRenderer(render func(string) string) Option {
	return func(d *Dispatcher) {
		d.renderHelp = render
	}
}

// WithLogger sets the dispatcher's logger.
func WithLogger(log *logging.Logger) Option {
	return func(d *Dispatcher) {
		d.log = log
	}
}

// New creates a Dispatcher that executes commands through runner. tool is
// the build-tool binary name used in invocations and messages.
func New(runner toolchain.Runner, tool string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		runner:     runner,
		tool:       tool,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		renderHelp: func(s string) string { return s },
		log:        logging.DefaultLogger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch classifies line and executes it against st. Errors are reported,
// not fatal: the caller prints them and keeps reading input. The only
// special return value is ErrExit.
func (d *Dispatcher) Dispatch(ctx context.Context, st *session.State, line string) error {
	cmd := Classify(strings.TrimSpace(line))

	switch cmd.Kind {
	case KindExit:
		return ErrExit

	case KindHelp:
		fmt.Fprintln(d.stdout, d.renderHelp(Usage(d.tool)))
		return nil

	case KindSetPrompt:
		st.SetPrompt(cmd.Prompt)
		return nil

	case KindWatchRun:
		return d.runWatch(ctx, st, cmd.Args)

	case KindRunFromFile:
		return d.previewFromFile(st, cmd.Path)

	case KindTempToolchainRun:
		return d.runWithToolchain(ctx, st, cmd)

	case KindFanOutRun:
		return d.runFanOut(ctx, st, cmd.Args)

	default:
		return d.run(ctx, st, cmd.Args)
	}
}

// run executes args as a single invocation under the session's current
// toolchain, in the session's working directory.
func (d *Dispatcher) run(ctx context.Context, st *session.State, args []string) error {
	inv := toolchain.Invocation{
		Selector:  st.SelectorPath(),
		Toolchain: st.Current(),
		Tool:      d.tool,
		Args:      args,
		Dir:       st.WorkDir(),
	}
	return d.runner.Run(ctx, inv)
}

// runWatch probes for the watch companion tool and, if present, runs
// `watch <args...>`. An absent watch tool is a warning, not an error.
func (d *Dispatcher) runWatch(ctx context.Context, st *session.State, args []string) error {
	if !d.runner.WatchAvailable(ctx) {
		fmt.Fprintf(d.stderr, "Could not find %s-watch, you might need to install it?\n", d.tool)
		return nil
	}

	watchArgs := make([]string, 0, 1+len(args))
	watchArgs = append(watchArgs, "watch")
	watchArgs = append(watchArgs, args...)
	return d.run(ctx, st, watchArgs)
}

// previewFromFile reads a batch file and prints each parsed command without
// executing it. The argument vectors are fully constructed so a later
// execution mode only has to call run; for now the shell stays on the safe
// side of a dry run.
func (d *Dispatcher) previewFromFile(st *session.State, path string) error {
	commands, err := ParseBatchFile(path)
	if err != nil {
		return err
	}

	for _, argv := range commands {
		fmt.Fprintf(d.stdout, "would run %s %s (preview)\n", d.tool, strings.Join(argv, " "))
	}
	return nil
}

// runWithToolchain handles `++ <toolchain> [<command>]`. Without a trailing
// command the switch is permanent; with one, the named toolchain applies to
// that command only and the previous override is restored on every exit
// path, run failure included.
func (d *Dispatcher) runWithToolchain(ctx context.Context, st *session.State, cmd Command) error {
	if cmd.Toolchain == "" {
		return ErrMissingToolchain
	}

	if len(cmd.Args) == 0 {
		st.SetCurrent(cmd.Toolchain)
		d.log.Debug("toolchain switched", logging.Fields{"toolchain": cmd.Toolchain})
		return nil
	}

	saved := st.Current()
	st.SetCurrent(cmd.Toolchain)
	defer st.SetCurrent(saved)

	return d.run(ctx, st, cmd.Args)
}

// runFanOut handles `+ <command>`: the command runs once per configured
// toolchain, in list order, strictly sequentially. The first failure aborts
// the remaining toolchains; the prior override is restored either way.
func (d *Dispatcher) runFanOut(ctx context.Context, st *session.State, args []string) error {
	saved := st.Current()
	defer st.SetCurrent(saved)

	for _, tc := range st.Toolchains() {
		st.SetCurrent(tc)
		fmt.Fprintf(d.stdout, "Running command with toolchain `%s`\n", tc)
		if err := d.run(ctx, st, args); err != nil {
			return err
		}
	}
	return nil
}
