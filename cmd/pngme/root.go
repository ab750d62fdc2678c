// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the pngme command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pngme",
		Short: "Hide messages inside PNG files",
		Long: TitleStyle.Render("pngme") + SubtitleStyle.Render(" - Hide messages inside PNG files") + `

pngme stores text in its own chunks of a PNG file. Image viewers skip
chunks they do not understand, so the picture looks unchanged.

` + SubtitleStyle.Render("Examples:") + `
  pngme encode dice.png ruSt "hello"    Hide a message in a ruSt chunk
  pngme decode dice.png ruSt            Print the message back
  pngme remove dice.png ruSt            Delete the chunk again
  pngme print dice.png                  List every chunk in the file`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.flags.cfgFile, "config", "", "config file (default is $HOME/.config/pngme/config.cue)")

	rootCmd.AddCommand(newEncodeCommand(app))
	rootCmd.AddCommand(newDecodeCommand(app))
	rootCmd.AddCommand(newRemoveCommand(app))
	rootCmd.AddCommand(newPrintCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(ExitFailure))
	}

	// Commands render their own failures and return an ExitError; fang only
	// needs to print errors that never reached a handler (bad flags, etc.).
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			var exitErr *ExitError
			if errors.As(err, &exitErr) {
				return
			}
			fang.DefaultErrorHandler(w, styles, err)
		}),
	); err != nil {
		os.Exit(int(processExitCode(err)))
	}
}
