package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/diagvor/pkg/pipeline"
)

// benchCommand creates the bench command.
func (c *CLI) benchCommand() *cobra.Command {
	var (
		random int
		save   bool
	)
	opts := pipeline.BenchOptions{
		Width:  pipeline.DefaultWidth,
		Height: pipeline.DefaultHeight,
		Runs:   pipeline.DefaultRuns,
	}

	cmd := &cobra.Command{
		Use:   "bench [sites-file]",
		Short: "Compare the sequential and parallel engines",
		Long: `Compare the sequential and parallel engines.

Both engines render the same colored sites under Euclidean distance, one run
of each in turn. The report shows the best and mean wall-clock and CPU time
per engine, the speedup of the parallel engine, and whether both produced
identical rasters.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) > 0 {
				input = args[0]
			}
			return c.runBench(cmd.Context(), input, random, opts, save)
		},
	}

	cmd.Flags().IntVar(&random, "random", 0, fmt.Sprintf("draw N random sites (default %d without a sites file)", pipeline.DefaultSiteCount))
	cmd.Flags().IntVar(&opts.Width, "width", opts.Width, "raster width in pixels")
	cmd.Flags().IntVar(&opts.Height, "height", opts.Height, "raster height in pixels")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel workers (default: number of CPUs)")
	cmd.Flags().IntVar(&opts.Runs, "runs", opts.Runs, "timed runs per engine")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for sites and colors (0 = random)")
	cmd.Flags().BoolVar(&save, "save", false, "save the result to the benchmark history")

	return cmd
}

// runBench runs the comparison and prints the report.
func (c *CLI) runBench(ctx context.Context, input string, random int, opts pipeline.BenchOptions, save bool) error {
	points, err := loadSites(input, random, opts.Width, opts.Height, opts.Seed)
	if err != nil {
		return err
	}
	opts.Sites = points
	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, "Benchmarking...")
	opts.OnRun = func(mode string, run, runs int) {
		spinner.SetMessage(fmt.Sprintf("Benchmarking %s run %d/%d...", mode, run, runs))
	}
	spinner.Start()

	prog := newProgress(opts.Logger)
	result, err := pipeline.Benchmark(ctx, opts)
	if err != nil {
		spinner.StopWithError("Benchmark failed")
		return err
	}
	spinner.Stop()
	prog.done("Benchmark finished", "sites", result.Sites, "runs", result.Runs)

	printBenchResult(result)

	if save {
		st, err := c.newStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		rec := result.Record()
		if err := st.Save(ctx, rec); err != nil {
			return fmt.Errorf("save benchmark: %w", err)
		}
		printSuccess("Saved benchmark %s", StyleDim.Render(rec.ID))
		printNextStep("Show history", appName+" history")
	}
	return nil
}

// printBenchResult prints the per-engine table and the summary lines.
func printBenchResult(r *pipeline.BenchResult) {
	printNewline()
	printKeyValue("Raster", fmt.Sprintf("%dx%d", r.Width, r.Height))
	printKeyValue("Sites", fmt.Sprintf("%d", r.Sites))
	printKeyValue("Workers", fmt.Sprintf("%d", r.Workers))
	printKeyValue("Runs", fmt.Sprintf("%d", r.Runs))
	printNewline()

	fmt.Println(benchTable(r).Render())
	printNewline()

	speedup := StyleNumber.Render(fmt.Sprintf("%.2fx", r.Speedup))
	printKeyValue("Speedup", speedup)
	if r.Identical {
		printSuccess("Sequential and parallel rasters are identical")
	} else {
		printWarning("Sequential and parallel rasters differ")
	}
}

func benchTable(r *pipeline.BenchResult) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	row := func(name string, s pipeline.RunStats) []string {
		return []string{name, formatMillis(s.BestWall), formatMillis(s.MeanWall), formatCPU(s.BestCPU), formatCPU(s.MeanCPU)}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Engine", "Best wall", "Mean wall", "Best CPU", "Mean CPU").
		Rows(
			row(pipeline.ModeSequential, r.Sequential),
			row(pipeline.ModeParallel, r.Parallel),
		).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return cellStyle.Foreground(colorCyan)
			}
			return cellStyle.Foreground(colorWhite)
		})
}

// formatCPU formats a CPU duration, which is zero where it cannot be measured.
func formatCPU(d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	return formatMillis(d)
}
