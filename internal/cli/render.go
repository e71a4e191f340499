package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diagvor/pkg/errors"
	"github.com/matzehuels/diagvor/pkg/pipeline"
	"github.com/matzehuels/diagvor/pkg/render"
)

// defaultOutputBase names output files when neither --output nor a sites file is given.
const defaultOutputBase = "voronoi"

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		random     int
		noCache    bool
	)
	opts := pipeline.Options{
		Width:  pipeline.DefaultWidth,
		Height: pipeline.DefaultHeight,
		Mode:   pipeline.DefaultMode,
	}

	cmd := &cobra.Command{
		Use:   "render [sites-file]",
		Short: "Render a Voronoi diagram to an image",
		Long: `Render a Voronoi diagram to an image.

Sites are read from a .json or .toml file, or drawn at random with --random.
Every pixel takes the color of its nearest site under the chosen metric.
Without --metric, an interactive terminal shows a metric picker.

Results are cached locally when --seed is set, since the colors are then
reproducible.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Config.Render.applyTo(cmd, &opts)

			flags := cmd.Flags()
			if (flags.Changed("width") && opts.Width <= 0) || (flags.Changed("height") && opts.Height <= 0) {
				printInfo("Nothing to render for a %dx%d raster", opts.Width, opts.Height)
				return nil
			}

			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}

			if opts.Metric == "" && opts.Mode != pipeline.ModeParallel && isInteractive() {
				m, ok, err := pickMetric()
				if err != nil {
					return err
				}
				if !ok {
					printDetail("No metric selected")
					return nil
				}
				opts.Metric = m.String()
			}

			var input string
			if len(args) > 0 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, random, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), bmp, tiff (comma-separated)")
	cmd.Flags().IntVar(&random, "random", 0, fmt.Sprintf("draw N random sites (default %d without a sites file)", pipeline.DefaultSiteCount))
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results and re-render")

	cmd.Flags().StringVarP(&opts.Metric, "metric", "m", "", "distance metric: euclidean, manhattan, chebyshev")
	cmd.Flags().StringVar(&opts.Mode, "mode", opts.Mode, "engine: sequential, parallel")
	cmd.Flags().IntVar(&opts.Width, "width", opts.Width, "raster width in pixels")
	cmd.Flags().IntVar(&opts.Height, "height", opts.Height, "raster height in pixels")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel workers (default: number of CPUs)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for sites and colors (0 = random)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "scale the encoded image by this factor")
	cmd.Flags().BoolVar(&opts.Markers, "markers", false, "draw a dot on every site")

	_ = cmd.RegisterFlagCompletionFunc("metric", completeMetrics)
	_ = cmd.RegisterFlagCompletionFunc("mode", cobra.FixedCompletions([]string{"sequential", "parallel"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{"png", "bmp", "tiff"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// runRender loads the sites, renders them, and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, random int, opts pipeline.Options, output string, noCache bool) error {
	points, err := loadSites(input, random, opts.Width, opts.Height, opts.Seed)
	if err != nil {
		return err
	}
	opts.Sites = points
	opts.Logger = loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d sites...", len(points)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if result.Skipped {
		printInfo("Nothing to render for a %dx%d raster", opts.Width, opts.Height)
		return nil
	}

	printSuccess("Rendered %d sites with %s distance", len(result.Sites), StyleHighlight.Render(result.Metric.String()))
	printTimings(result.Stats, result.CacheInfo.DiagramHit)

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
}

// printTimings prints the wall-clock and CPU time of a render.
func printTimings(stats pipeline.Stats, cached bool) {
	cpu := "n/a"
	if stats.CPU > 0 {
		cpu = formatMillis(stats.CPU)
	}
	parts := []string{
		"wall " + formatMillis(stats.Wall),
		"cpu " + cpu,
		fmt.Sprintf("%d workers", stats.Workers),
	}
	if stats.Workers == 1 {
		parts[2] = "1 worker"
	}
	printStats(parts, cached)
}

// formatMillis formats d in milliseconds with two decimals.
func formatMillis(d time.Duration) string {
	return fmt.Sprintf("%.2f ms", float64(d)/float64(time.Millisecond))
}

// =============================================================================
// Artifact Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each artifact to disk and prints its path.
func writeArtifacts(p artifactWriteParams) error {
	for _, f := range p.formats {
		format := render.NormalizeFormat(f)
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(p.input, p.output, format, len(p.formats) > 1)
		if err := errors.ValidateOutputPath(path); err != nil {
			return err
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// outputPath picks the file name for one format. A single-format render
// writes --output verbatim; otherwise the extension is replaced per format.
func outputPath(input, output, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" && input != "" {
		base = filepath.Base(input)
	}
	if base == "" {
		base = defaultOutputBase
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + format
}
