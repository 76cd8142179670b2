// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/texenv/texenv/internal/issue"
	"github.com/texenv/texenv/pkg/texenv"
)

// toolsParams bundles the dependencies and flags for the tools command.
type toolsParams struct {
	stdout io.Writer
	tc     *texenv.Toolchain
	quiet  bool // --quiet: names only, no paths or decoration
}

// newToolsCommand creates the `texenv tools` command, which lists every
// executable discovered in the toolchain.
func newToolsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List every discovered toolchain executable",
		Long: `List every discovered toolchain executable.

Tools are listed in name order with their absolute paths. Names are the
lowercase executable stems the registry resolves, so the output doubles
as the set of valid arguments for 'texenv which' and 'texenv run'.`,
		Example: `  # Full listing with paths
  texenv tools

  # Names only, one per line (script-friendly)
  texenv tools --quiet`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			quietFlag, _ := cmd.Flags().GetBool("quiet")

			cfg, err := app.loadConfigLenient(cmd.Context(), cfgFile)
			if err != nil {
				return err
			}

			p := toolsParams{
				stdout: cmd.OutOrStdout(),
				tc:     locateToolchain(cfg, prefixFlag),
				quiet:  quietFlag,
			}

			if err := runTools(p); err != nil {
				return exitWithRendered(cmd.ErrOrStderr(), err)
			}
			return nil
		},
	}

	cmd.Flags().BoolP("quiet", "q", false, "Print tool names only, one per line")

	return cmd
}

// runTools prints the tool registry. An empty registry is reported through
// the toolchain-not-found issue rather than as an empty listing.
func runTools(p toolsParams) error {
	if err := p.tc.Require(); err != nil {
		styled := ErrorStyle.Render("error: ") + err.Error() + "\n"
		return newServiceError(err, issue.ToolchainNotFoundId, styled)
	}

	tools := p.tc.Tools()

	if p.quiet {
		for _, tool := range tools {
			fmt.Fprintln(p.stdout, tool.Name)
		}
		return nil
	}

	fmt.Fprintln(p.stdout, TitleStyle.Render("Discovered Tools"))
	fmt.Fprintln(p.stdout)
	fmt.Fprintf(p.stdout, "%s: %s\n", ToolStyle.Render("Prefix"), p.tc.Prefix())
	fmt.Fprintf(p.stdout, "%s: %s\n", ToolStyle.Render("Bin dir"), p.tc.BinDir())
	fmt.Fprintln(p.stdout)

	width := 0
	for _, tool := range tools {
		if len(tool.Name) > width {
			width = len(tool.Name)
		}
	}
	for _, tool := range tools {
		fmt.Fprintf(p.stdout, "  %s  %s\n",
			ToolStyle.Render(fmt.Sprintf("%-*s", width, tool.Name)),
			SubtitleStyle.Render(tool.Path))
	}

	fmt.Fprintln(p.stdout)
	fmt.Fprintf(p.stdout, "%d tool(s)\n", len(tools))
	return nil
}
