package cmd

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for harukit.

To load completions:

Bash:
  $ source <(harukit completion bash)
  # Linux, once:
  $ harukit completion bash > /etc/bash_completion.d/harukit

Zsh:
  # Enable completion once if your shell does not already:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  $ harukit completion zsh > "${fpath[1]}/_harukit"

Fish:
  $ harukit completion fish > ~/.config/fish/completions/harukit.fish

PowerShell:
  PS> harukit completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		default:
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
