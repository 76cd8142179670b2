// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/texenv/texenv/internal/issue"
	"github.com/texenv/texenv/pkg/texenv"
)

// whichParams bundles the dependencies and flags for the which command,
// enabling the core logic in runWhich to be tested without a real Cobra
// command.
type whichParams struct {
	stdout  io.Writer
	tc      *texenv.Toolchain
	name    string // tool name from the positional argument
	primary bool   // --primary: resolve the configured primary engine
	bib     bool   // --bib: resolve the configured bibliography tool
}

// newWhichCommand creates the `texenv which` command, which prints the
// resolved absolute path of one toolchain executable.
func newWhichCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "which [tool]",
		Short: "Print the resolved path of a toolchain executable",
		Long: `Print the resolved path of a toolchain executable.

Lookups are case-insensitive and ignore the host's executable suffix,
so 'pdflatex', 'pdfLaTeX' and 'pdflatex.exe' all name the same tool.

With --primary, the configured primary engine resolves instead of a
named tool; when the engine is missing from the installation, the
system search path is consulted as a fallback. With --bib, the
configured bibliography tool resolves; no fallback applies.`,
		Example: `  # Resolve one tool by name (case-insensitive)
  texenv which pdflatex

  # Resolve the configured primary engine
  texenv which --primary

  # Resolve the configured bibliography tool
  texenv which --bib`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeToolNames(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			primaryFlag, _ := cmd.Flags().GetBool("primary")
			bibFlag, _ := cmd.Flags().GetBool("bib")

			selectors := 0
			for _, set := range []bool{len(args) > 0, primaryFlag, bibFlag} {
				if set {
					selectors++
				}
			}
			if selectors != 1 {
				return fmt.Errorf("specify exactly one of a tool name, --primary, or --bib")
			}

			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			cfg, err := app.loadConfigLenient(cmd.Context(), cfgFile)
			if err != nil {
				return err
			}

			p := whichParams{
				stdout:  cmd.OutOrStdout(),
				tc:      locateToolchain(cfg, prefixFlag),
				primary: primaryFlag,
				bib:     bibFlag,
			}
			if len(args) > 0 {
				p.name = args[0]
			}

			if err := runWhich(p); err != nil {
				return exitWithRendered(cmd.ErrOrStderr(), err)
			}
			return nil
		},
	}

	cmd.Flags().Bool("primary", false, "Resolve the configured primary engine")
	cmd.Flags().Bool("bib", false, "Resolve the configured bibliography tool")

	return cmd
}

// runWhich resolves the selected tool and prints its absolute path.
func runWhich(p whichParams) error {
	var (
		path string
		err  error
	)
	switch {
	case p.primary:
		path, err = p.tc.Primary()
	case p.bib:
		path, err = p.tc.BibTeX()
	default:
		path, err = p.tc.Get(p.name)
	}
	if err != nil {
		styled := ErrorStyle.Render("error: ") + err.Error() + "\n"
		return newServiceError(err, issue.ToolNotFoundId, styled)
	}

	fmt.Fprintln(p.stdout, path)
	return nil
}
