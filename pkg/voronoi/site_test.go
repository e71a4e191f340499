package voronoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorizePreservesOrder(t *testing.T) {
	points := []Point{{1, 2}, {3, 4}, {5, 6}}
	sites := Colorize(points, NewRand(1))

	require.Len(t, sites, len(points))
	assert.Equal(t, points, Points(sites))
}

func TestColorizeChannelRange(t *testing.T) {
	points := make([]Point, 2000)
	sites := Colorize(points, NewRand(7))

	var lo, hi uint8 = 255, 0
	for _, s := range sites {
		for _, ch := range []uint8{s.Color.R, s.Color.G, s.Color.B} {
			assert.GreaterOrEqual(t, ch, uint8(MinChannel))
			lo = min(lo, ch)
			hi = max(hi, ch)
		}
	}
	// 6000 draws over 192 values should reach both ends.
	assert.Equal(t, uint8(MinChannel), lo)
	assert.Equal(t, uint8(255), hi)
}

func TestColorizeDeterministicWithSeed(t *testing.T) {
	points := []Point{{0, 0}, {10, 10}, {20, 5}}
	a := Colorize(points, NewRand(99))
	b := Colorize(points, NewRand(99))
	assert.Equal(t, a, b)

	c := Colorize(points, NewRand(100))
	assert.NotEqual(t, a, c)
}

func TestColorizeNilSourceVaries(t *testing.T) {
	points := make([]Point, 16)
	a := Colorize(points, nil)
	b := Colorize(points, nil)
	// 16 sites × 3 channels colliding by chance is practically impossible.
	assert.NotEqual(t, a, b)
}

func TestColorizeEmpty(t *testing.T) {
	assert.Empty(t, Colorize(nil, NewRand(1)))
}
