package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/diagvor/pkg/store"
)

// historyCommand creates the history command.
func (c *CLI) historyCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved benchmark results",
		Long: `List saved benchmark results, newest first.

Results are saved with 'bench --save'. The storage backend is chosen by the
[store] section of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHistory(cmd.Context(), limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultListLimit, "maximum number of results")

	return cmd
}

func (c *CLI) runHistory(ctx context.Context, limit int) error {
	st, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("list benchmarks: %w", err)
	}
	if len(records) == 0 {
		printInfo("No benchmarks saved yet")
		printNextStep("Save one", appName+" bench --save")
		return nil
	}

	fmt.Println(historyTable(records).Render())
	printDetail("%d results", len(records))
	return nil
}

func historyTable(records []store.Record) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, len(records))
	for i, r := range records {
		identical := statusSuccess.glyph
		if !r.Identical {
			identical = statusError.glyph
		}
		rows[i] = []string{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Host,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			fmt.Sprintf("%d", r.Sites),
			fmt.Sprintf("%d", r.Workers),
			formatMillis(r.SeqWall),
			formatMillis(r.ParWall),
			fmt.Sprintf("%.2fx", r.Speedup),
			identical,
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("When", "Host", "Raster", "Sites", "Workers", "Sequential", "Parallel", "Speedup", "Same").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 7:
				return cellStyle.Foreground(colorCyan)
			case col == 8 && !records[row].Identical:
				return cellStyle.Foreground(colorRed)
			case col == 8:
				return cellStyle.Foreground(colorGreen)
			default:
				return cellStyle.Foreground(colorWhite)
			}
		})
}
