// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/texenv/texenv/internal/config"
	"github.com/texenv/texenv/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// prefixFlag overrides the installation prefix for toolchain discovery
	prefixFlag string
)

// newRootCommand creates the texenv root command with its persistent flags
// and full subcommand tree.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "texenv",
		Short: "Locate and drive a relocatable LaTeX toolchain",
		Long: TitleStyle.Render("texenv") + SubtitleStyle.Render(" - Locate and drive a relocatable LaTeX toolchain") + `

texenv discovers the LaTeX executables and data tree installed under a
prefix, without environment setup or shell profile edits. It resolves
tools by name (case-insensitive), reports on the installation health,
and spawns the engines with a per-invocation style search path.

The prefix is taken from --prefix, then the TEXENV_PREFIX environment
variable, then derived from the location of the running executable.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Install a LaTeX bundle under a prefix (or set TEXENV_PREFIX)
  2. Check the installation with: texenv doctor
  3. Compile a document with: texenv compile main.tex

` + SubtitleStyle.Render("Examples:") + `
  texenv doctor             Report on the discovered installation
  texenv tools              List every discovered tool
  texenv which pdflatex     Print the path of one tool
  texenv run bibtex main    Invoke a tool directly
  texenv compile main.tex   Compile a document with the primary engine
  texenv config show        Show current configuration`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initRootConfig(cmd.Context(), app)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/texenv/config.cue)")
	rootCmd.PersistentFlags().StringVar(&prefixFlag, "prefix", "", "installation prefix for toolchain discovery")

	// Add subcommands
	rootCmd.AddCommand(newWhichCommand(app))
	rootCmd.AddCommand(newToolsCommand(app))
	rootCmd.AddCommand(newDoctorCommand(app))
	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newCompileCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newCompletionCommand())

	return rootCmd
}

// getVersionString returns a formatted version string for display. The
// ldflags version wins; binaries built by `go install` fall back to the
// module version from the embedded build info.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute builds the App and command tree and runs the CLI.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := newRootCommand(app)

	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

// initRootConfig merges the verbose flag with the configured default and
// installs the logging handler. Config load failures are surfaced as a
// warning here and do not abort: the command's own load reports them
// properly when they matter.
func initRootConfig(ctx context.Context, app *App) {
	cfg, _, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}

	setupLogging(verbose)
}

// setupLogging installs a charmbracelet handler as the slog default.
// Terminal output carries no timestamps; verbose mode lowers the level
// to Debug so library packages can trace discovery decisions.
func setupLogging(verboseMode bool) {
	level := log.WarnLevel
	if verboseMode {
		level = log.DebugLevel
	}

	handler := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Level:           level,
	})
	slog.SetDefault(slog.New(handler))
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
