// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/texenv/texenv/internal/config"
)

// newCompletionCommand creates the `texenv completion` command. Tool-name
// positionals elsewhere in the tree complete dynamically through
// completeToolNames, so the generated scripts suggest discovered engines,
// not just subcommand names.
func newCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for texenv.

The quickest setup is an eval in your shell startup file:

` + SubtitleStyle.Render("Bash") + ` (~/.bashrc):
  eval "$(texenv completion bash)"

` + SubtitleStyle.Render("Zsh") + ` (~/.zshrc):
  eval "$(texenv completion zsh)"

For a persistent install, write the script where your shell looks for
completions instead:

  texenv completion bash > /etc/bash_completion.d/texenv
  texenv completion zsh  > "${fpath[1]}/_texenv"
  texenv completion fish > ~/.config/fish/completions/texenv.fish

` + SubtitleStyle.Render("PowerShell") + `:
  texenv completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(out)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeToolNames completes a tool-name positional from the discovered
// registry, each candidate annotated with its resolved path. Config
// problems fall back to defaults quietly: a broken config file should
// degrade completion, not break it.
func completeToolNames(app *App) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveDefault
		}

		cfg, _, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
		if err != nil || cfg == nil {
			cfg = config.DefaultConfig()
		}

		var completions []string
		for _, tool := range locateToolchain(cfg, prefixFlag).Tools() {
			if strings.HasPrefix(tool.Name, toComplete) {
				completions = append(completions, tool.Name+"\t"+tool.Path)
			}
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}
