// Package cli provides a command-line front end to the placement engine.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var Version = "dev"

// App represents the CLI application.
type App struct {
	root    *cobra.Command
	stdout  io.Writer
	stderr  io.Writer
	verbose bool
	logger  zerolog.Logger
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "placer",
		Short: "List every placement of known Hebrew letters in a 5-letter word",
		Long: `placer enumerates the ways known letters can sit in a 5-letter Hebrew
word: letters fixed in place, a pool of letters known to be in the word
but not where, and position bans learned from earlier guesses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if app.verbose {
				level = zerolog.DebugLevel
			}
			app.logger = zerolog.New(zerolog.ConsoleWriter{Out: app.stderr, NoColor: true}).
				Level(level).With().Timestamp().Logger()
		},
	}
	app.root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Log engine details to stderr")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newSolveCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "placer version %s\n", Version)
		},
	}
}
