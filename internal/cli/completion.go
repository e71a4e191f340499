package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diagvor/pkg/voronoi"
)

// completionGenerators maps each supported shell to its cobra generator.
var completionGenerators = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion bash|zsh|fish|powershell",
		Short: "Print a shell completion script",
		Long: `Print a completion script for diagvor to stdout.

  source <(diagvor completion bash)
  diagvor completion zsh > "${fpath[1]}/_diagvor"
  diagvor completion fish > ~/.config/fish/completions/diagvor.fish
  diagvor completion powershell | Out-String | Invoke-Expression

Metric names complete for --metric on render.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionGenerators[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// completeMetrics offers the metric names with their descriptions.
func completeMetrics(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	out := make([]string, len(voronoi.Metrics))
	for i, m := range voronoi.Metrics {
		out[i] = m.String() + "\t" + metricDescriptions[m]
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
