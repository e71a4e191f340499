package sites

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/diagvor/pkg/errors"
	"github.com/matzehuels/diagvor/pkg/voronoi"
)

// MarkerRadius is the radius of a drawn site marker in pixels. Random sites
// keep this margin from the raster edge, and Toggle uses it as the hit radius.
const MarkerRadius = 3.0

// Random returns n sites placed uniformly inside a width×height raster,
// keeping MarkerRadius away from every edge. On an axis shorter than two radii
// the coordinate is pinned to the center. A nil rng draws from a randomly
// seeded source.
func Random(n, width, height int, rng *rand.Rand) ([]voronoi.Point, error) {
	if err := errors.ValidateSiteCount(n); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	points := make([]voronoi.Point, n)
	for i := range points {
		points[i] = voronoi.Point{
			X: within(rng, float64(width)),
			Y: within(rng, float64(height)),
		}
	}
	return points, nil
}

func within(rng *rand.Rand, extent float64) float64 {
	span := extent - 2*MarkerRadius
	if span <= 0 {
		return extent / 2
	}
	return rng.Float64()*span + MarkerRadius
}

// Toggle removes the first point within radius of p (inclusive, Euclidean) or
// appends p when there is none. It reports whether p was added. The input
// slice is never modified.
func Toggle(points []voronoi.Point, p voronoi.Point, radius float64) ([]voronoi.Point, bool) {
	for i, q := range points {
		if math.Hypot(q.X-p.X, q.Y-p.Y) <= radius {
			return slices.Delete(slices.Clone(points), i, i+1), false
		}
	}
	return append(slices.Clip(points), p), true
}
