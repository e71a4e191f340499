package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diagvor/pkg/pipeline"
	"github.com/matzehuels/diagvor/pkg/voronoi"
)

// metricsCommand creates the metrics command.
func (c *CLI) metricsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "List the supported distance metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				names := make([]string, len(voronoi.Metrics))
				for i, m := range voronoi.Metrics {
					names[i] = m.String()
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(names)
			}

			for _, m := range voronoi.Metrics {
				name := m.String()
				if name == pipeline.DefaultMetric {
					name += " (default)"
				}
				fmt.Printf("%s  %s\n", StyleHighlight.Render(fmt.Sprintf("%-22s", name)), StyleDim.Render(metricDescriptions[m]))
			}
			printNewline()
			printDetail("The parallel engine supports euclidean only")
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print metric names as a JSON array")

	return cmd
}
