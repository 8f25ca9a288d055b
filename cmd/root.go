package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/build-shell/internal/config"
	"github.com/quocvuong92/build-shell/internal/dispatch"
	"github.com/quocvuong92/build-shell/internal/display"
	"github.com/quocvuong92/build-shell/internal/logging"
	"github.com/quocvuong92/build-shell/internal/manifest"
	"github.com/quocvuong92/build-shell/internal/session"
	"github.com/quocvuong92/build-shell/internal/toolchain"
)

// version is printed by the welcome banner and --version.
const version = "0.3.0"

// startupExitCode distinguishes a failed startup (configuration, manifest,
// selector discovery) from an ordinary command failure.
const startupExitCode = 255

// App holds the application state
type App struct {
	cfg        *config.Config
	state      *session.State
	dispatcher *dispatch.Dispatcher
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg: config.NewConfig(),
	}
}

// Execute runs the root command
func Execute() {
	app := NewApp()

	rootCmd := &cobra.Command{
		Use:   "build-shell [command]",
		Short: "An interactive shell for toolchain-aware build commands",
		Long: `build-shell is an interactive shell around your build tool. Every line you
type is handed to the toolchain selector as: selector run <toolchain> <tool> <args>.
Defaults are rustup and cargo; both are configurable.

With a command argument the shell dispatches it once and exits; without one
it starts an interactive session.

Examples:
  build-shell                        # interactive session
  build-shell "test --all"           # one-shot command
  build-shell "+ build --release"    # one-shot fan-out across toolchains
  build-shell init                   # create a default config file`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			app.run(cmd, args)
		},
	}

	rootCmd.Flags().BoolVarP(&app.cfg.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolVarP(&app.cfg.Render, "render", "r", false, "Render help text as markdown")
	rootCmd.Flags().StringVar(&app.cfg.LogFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(NewInitCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (app *App) run(cmd *cobra.Command, args []string) {
	if err := app.cfg.Validate(); err != nil {
		display.ShowError(err.Error())
		os.Exit(startupExitCode)
	}

	if app.cfg.Verbose {
		logging.SetLevel(logging.LevelDebug)
	} else {
		logging.SetLevel(logging.ParseLevel(app.cfg.LogLevel))
	}
	logging.SetFormat(logging.ParseFormat(app.cfg.LogFormat))

	if app.cfg.Render {
		if err := display.InitRenderer(); err != nil {
			logging.Warn("failed to initialize renderer", logging.Fields{"reason": err.Error()})
		}
	}

	if err := app.bootstrap(); err != nil {
		display.ShowError(err.Error())
		os.Exit(startupExitCode)
	}

	// One-shot mode: dispatch the argument as a single shell line
	if len(args) > 0 {
		err := app.dispatcher.Dispatch(context.Background(), app.state, args[0])
		if err != nil && !errors.Is(err, dispatch.ErrExit) {
			display.ShowError(err.Error())
			os.Exit(1)
		}
		return
	}

	app.runInteractive()
}

// bootstrap builds the session state and the dispatcher: merge config, read
// the project manifest, locate the selector binary. Any failure here is
// fatal for the shell.
func (app *App) bootstrap() error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	mf, err := manifest.Load(wd, app.cfg.Manifest)
	if err != nil {
		return err
	}
	logging.Debug("manifest loaded", logging.Fields{
		"project": mf.Name,
		"version": mf.Version,
		"path":    mf.Path,
	})

	selectorPath, err := toolchain.LocateFromEnv(app.cfg.SelectorHome, app.cfg.Selector)
	if err != nil {
		return err
	}

	app.state = session.New(session.Params{
		Prompt:           app.cfg.Prompt,
		SelectorPath:     selectorPath,
		Project:          mf.Name,
		Version:          mf.Version,
		DefaultToolchain: app.cfg.DefaultToolchain,
		Toolchains:       app.cfg.Toolchains,
		WorkDir:          wd,
	})

	opts := []dispatch.Option{}
	if app.cfg.Render {
		opts = append(opts, dispatch.WithHelpRenderer(display.Markdown))
	}
	runner := &probeRunner{Runner: toolchain.NewExecRunner(app.cfg.Tool)}
	app.dispatcher = dispatch.New(runner, app.cfg.Tool, opts...)

	return nil
}

// probeRunner decorates a Runner with a spinner during the watch probe,
// which runs an extra subprocess and can take a moment.
type probeRunner struct {
	toolchain.Runner
}

func (r *probeRunner) WatchAvailable(ctx context.Context) bool {
	sp := display.NewSpinner("Checking watch support...")
	sp.Start()
	defer sp.Stop()
	return r.Runner.WatchAvailable(ctx)
}
