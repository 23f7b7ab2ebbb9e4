package cli

import (
	"github.com/kilupskalvis/abook/internal/store"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for abook.
Completion covers subcommands and the values of --backend, --log-level
and --log-format.

Bash:
  $ source <(abook completion bash)

Zsh:
  $ source <(abook completion zsh)

Fish:
  $ abook completion fish | source
`,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		default:
			return rootCmd.GenFishCompletion(out, true)
		}
	},
}

// flagValues lists the accepted values of flags that take a fixed set
var flagValues = map[string][]string{
	"backend":    {string(store.BackendBolt), string(store.BackendSQLite)},
	"log-level":  {"debug", "info", "warn", "error"},
	"log-format": {"text", "json"},
}

// registerFlagCompletions wires value completion for the persistent flags.
// It must run after the flags are defined.
func registerFlagCompletions(cmd *cobra.Command) {
	for name, values := range flagValues {
		_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}
}
