package voronoi

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnsupportedMetric is returned for metric values or names outside the
// supported set.
var ErrUnsupportedMetric = errors.New("unsupported metric")

// Point is a position in raster coordinates.
type Point struct {
	X float64 `json:"x" toml:"x" bson:"x"`
	Y float64 `json:"y" toml:"y" bson:"y"`
}

// Metric selects the distance function used for classification.
type Metric int

const (
	// Euclidean is the straight-line distance √(dx² + dy²).
	Euclidean Metric = iota
	// Manhattan is the taxicab distance |dx| + |dy|.
	Manhattan
	// Chebyshev is the maximum distance max(|dx|, |dy|).
	Chebyshev
)

// Metrics lists every supported metric in declaration order.
var Metrics = []Metric{Euclidean, Manhattan, Chebyshev}

var metricNames = map[Metric]string{
	Euclidean: "euclidean",
	Manhattan: "manhattan",
	Chebyshev: "chebyshev",
}

var metricAliases = map[string]Metric{
	"euclidean":   Euclidean,
	"euclid":      Euclidean,
	"manhattan":   Manhattan,
	"taxicab":     Manhattan,
	"chebyshev":   Chebyshev,
	"max":         Chebyshev,
	"maxdistance": Chebyshev,
}

// String returns the canonical lowercase name of the metric.
func (m Metric) String() string {
	if name, ok := metricNames[m]; ok {
		return name
	}
	return fmt.Sprintf("metric(%d)", int(m))
}

// Valid reports whether m is one of the supported metrics.
func (m Metric) Valid() bool {
	_, ok := metricNames[m]
	return ok
}

// ParseMetric resolves a metric name. Matching is case-insensitive and
// accepts a few aliases ("euclid", "taxicab", "max").
func ParseMetric(name string) (Metric, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	if m, ok := metricAliases[key]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMetric, name)
}

// Distance returns the distance between a and b under m.
func Distance(m Metric, a, b Point) (float64, error) {
	fn, err := m.distanceFunc()
	if err != nil {
		return 0, err
	}
	return fn(a, b), nil
}

type distanceFunc func(a, b Point) float64

func (m Metric) distanceFunc() (distanceFunc, error) {
	switch m {
	case Euclidean:
		return euclidean, nil
	case Manhattan:
		return manhattan, nil
	case Chebyshev:
		return chebyshev, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMetric, m)
	}
}

func euclidean(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func manhattan(a, b Point) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

func chebyshev(a, b Point) float64 {
	return max(math.Abs(a.X-b.X), math.Abs(a.Y-b.Y))
}
