package voronoi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	a := Point{X: 1, Y: 2}
	b := Point{X: 4, Y: 6}

	tests := []struct {
		metric Metric
		want   float64
	}{
		{Euclidean, 5},
		{Manhattan, 7},
		{Chebyshev, 4},
	}

	for _, tt := range tests {
		t.Run(tt.metric.String(), func(t *testing.T) {
			got, err := Distance(tt.metric, a, b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)

			back, err := Distance(tt.metric, b, a)
			require.NoError(t, err)
			assert.Equal(t, got, back, "distance must be symmetric")

			self, err := Distance(tt.metric, a, a)
			require.NoError(t, err)
			assert.Zero(t, self)
		})
	}
}

func TestDistanceNonNegative(t *testing.T) {
	points := []Point{{0, 0}, {-3, 7}, {2.5, -1.25}, {100, 100}}
	for _, m := range Metrics {
		for _, a := range points {
			for _, b := range points {
				d, err := Distance(m, a, b)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, d, 0.0)
				if a != b {
					assert.Positive(t, d, "%s(%v,%v)", m, a, b)
				}
			}
		}
	}
}

func TestDistanceUnsupported(t *testing.T) {
	for _, m := range []Metric{-1, 3, Metric(math.MaxInt32)} {
		_, err := Distance(m, Point{}, Point{X: 1})
		assert.ErrorIs(t, err, ErrUnsupportedMetric)
		assert.False(t, m.Valid())
	}
}

func TestParseMetric(t *testing.T) {
	tests := []struct {
		input   string
		want    Metric
		wantErr bool
	}{
		{"euclidean", Euclidean, false},
		{"Euclid", Euclidean, false},
		{"MANHATTAN", Manhattan, false},
		{"taxicab", Manhattan, false},
		{"chebyshev", Chebyshev, false},
		{"max", Chebyshev, false},
		{"max distance", Chebyshev, false},
		{"max-distance", Chebyshev, false},
		{"  chebyshev ", Chebyshev, false},
		{"", 0, true},
		{"minkowski", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMetric(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedMetric)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetricStringRoundTrip(t *testing.T) {
	for _, m := range Metrics {
		assert.True(t, m.Valid())
		parsed, err := ParseMetric(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	assert.Equal(t, "metric(7)", Metric(7).String())
}
