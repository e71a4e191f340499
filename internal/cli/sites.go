package cli

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diagvor/pkg/errors"
	"github.com/matzehuels/diagvor/pkg/pipeline"
	"github.com/matzehuels/diagvor/pkg/sites"
	"github.com/matzehuels/diagvor/pkg/voronoi"
)

// sitesCommand creates the sites management command.
func (c *CLI) sitesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sites",
		Short: "Create and edit site files",
	}

	cmd.AddCommand(c.sitesGenerateCommand())
	cmd.AddCommand(c.sitesToggleCommand())

	return cmd
}

// sitesGenerateCommand creates the "sites generate" subcommand.
func (c *CLI) sitesGenerateCommand() *cobra.Command {
	var (
		output        string
		width, height int
		seed          uint64
	)

	cmd := &cobra.Command{
		Use:   "generate N",
		Short: "Write N random sites to a file",
		Long: `Write N random sites to a .json or .toml file.

Sites are placed uniformly inside a width x height raster, keeping the
marker radius clear of every edge.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidSites, err, "site count must be an integer, got %q", args[0])
			}
			if err := errors.ValidateOutputPath(output); err != nil {
				return err
			}

			points, err := sites.Random(n, width, height, randFor(seed))
			if err != nil {
				return err
			}
			if err := sites.Write(output, points); err != nil {
				return err
			}

			printSuccess("Generated %d sites for a %dx%d raster", len(points), width, height)
			printFile(output)
			printNextStep("Render it", fmt.Sprintf("%s render %s", appName, output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "sites.json", "output file (.json or .toml)")
	cmd.Flags().IntVar(&width, "width", pipeline.DefaultWidth, "raster width in pixels")
	cmd.Flags().IntVar(&height, "height", pipeline.DefaultHeight, "raster height in pixels")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = random)")

	return cmd
}

// sitesToggleCommand creates the "sites toggle" subcommand.
func (c *CLI) sitesToggleCommand() *cobra.Command {
	var radius float64

	cmd := &cobra.Command{
		Use:   "toggle FILE X Y",
		Short: "Add a site, or remove the one under the given position",
		Long: `Add a site at (X, Y), or remove the first existing site within --radius
of it. The file is created when it does not exist.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			p, err := parsePoint(args[1], args[2])
			if err != nil {
				return err
			}

			points, err := sites.Read(path)
			if err != nil && !errors.Is(err, errors.ErrCodeFileNotFound) {
				return err
			}

			points, added := sites.Toggle(points, p, radius)
			if err := sites.Write(path, points); err != nil {
				return err
			}

			if added {
				printSuccess("Added site at (%g, %g)", p.X, p.Y)
			} else {
				printSuccess("Removed site near (%g, %g)", p.X, p.Y)
			}
			printDetail("%d sites in %s", len(points), path)
			return nil
		},
	}

	cmd.Flags().Float64Var(&radius, "radius", sites.MarkerRadius, "hit radius for removing a site")

	return cmd
}

// =============================================================================
// Helpers
// =============================================================================

// loadSites reads sites from input, or draws random ones when input is empty.
func loadSites(input string, random, width, height int, seed uint64) ([]voronoi.Point, error) {
	if input != "" {
		if random > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--random cannot be combined with a sites file")
		}
		return sites.Read(input)
	}
	if random == 0 {
		random = pipeline.DefaultSiteCount
	}
	if width <= 0 {
		width = pipeline.DefaultWidth
	}
	if height <= 0 {
		height = pipeline.DefaultHeight
	}
	return sites.Random(random, width, height, randFor(seed))
}

// randFor returns a seeded source, or nil for a fresh one when seed is zero.
func randFor(seed uint64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return voronoi.NewRand(seed)
}

func parsePoint(xs, ys string) (voronoi.Point, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return voronoi.Point{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid x coordinate %q", xs)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return voronoi.Point{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid y coordinate %q", ys)
	}
	return voronoi.Point{X: x, Y: y}, nil
}
