// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/texenv/texenv/internal/issue"
	"github.com/texenv/texenv/pkg/texenv"
)

// runParams bundles the dependencies and flags for the run command.
type runParams struct {
	tc   *texenv.Toolchain
	name string   // tool name (first positional argument)
	args []string // remaining arguments, passed to the child verbatim
	dir  string   // --dir: child working directory
	pty  bool     // --pty: attach a pseudo-terminal on unix
}

// newRunCommand creates the `texenv run` command, a pass-through invocation
// of one toolchain executable.
func newRunCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <tool> [--] [args...]",
		Short: "Invoke a toolchain executable directly",
		Long: `Invoke a toolchain executable directly.

The tool resolves through the registry (case-insensitive) and runs
with the given arguments, inheriting the terminal. The child's exit
code becomes the texenv exit code.

Flag parsing stops at the tool name, so engine flags pass through
without escaping; a '--' separator also works.`,
		Example: `  # Run bibtex on the main document's aux file
  texenv run bibtex main

  # Engine flags after the tool name pass through verbatim
  texenv run pdflatex -interaction=batchmode main.tex

  # Keep the engine's interactive error prompt usable
  texenv run --pty pdflatex main.tex`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeToolNames(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			dirFlag, _ := cmd.Flags().GetString("dir")
			ptyFlag, _ := cmd.Flags().GetBool("pty")

			cfg, err := app.loadConfigLenient(cmd.Context(), cfgFile)
			if err != nil {
				return err
			}

			p := runParams{
				tc:   locateToolchain(cfg, prefixFlag),
				name: args[0],
				args: args[1:],
				dir:  dirFlag,
				pty:  ptyFlag,
			}

			if err := runRun(cmd.Context(), p); err != nil {
				return exitWithRendered(cmd.ErrOrStderr(), err)
			}
			return nil
		},
	}

	// Stop flag parsing at the first positional so engine flags reach the
	// child unparsed.
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().String("dir", "", "Working directory for the tool")
	cmd.Flags().Bool("pty", false, "Attach the tool to a pseudo-terminal (unix only)")

	return cmd
}

// runRun spawns the tool and converts its exit code into the CLI exit code.
func runRun(ctx context.Context, p runParams) error {
	var opts []texenv.RunOption
	if p.dir != "" {
		opts = append(opts, texenv.WithDir(p.dir))
	}
	if p.pty {
		opts = append(opts, texenv.WithPTY())
	}

	result, err := p.tc.Run(ctx, p.name, p.args, opts...)
	if err != nil {
		if errors.Is(err, texenv.ErrToolNotFound) {
			styled := ErrorStyle.Render("error: ") + err.Error() + "\n"
			return newServiceError(err, issue.ToolNotFoundId, styled)
		}
		return fmt.Errorf("failed to run %s: %w", p.name, err)
	}

	if !result.Success() {
		return &ExitError{Code: result.ExitCode}
	}
	return nil
}
