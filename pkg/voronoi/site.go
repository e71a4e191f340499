package voronoi

import "math/rand/v2"

// MinChannel is the lowest value a site color channel can take. Keeping
// channels away from zero keeps cells distinguishable from dark markers.
const MinChannel = 64

// Color is an opaque 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// White is the fallback color for pixels when no site exists.
var White = Color{R: 255, G: 255, B: 255}

// Site is a Voronoi generator: a position and the color of its cell.
type Site struct {
	Point
	Color Color
}

// NewRand returns a deterministic random source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// RandomColor draws a color with each channel uniform in [MinChannel, 255].
func RandomColor(rng *rand.Rand) Color {
	const span = 256 - MinChannel
	return Color{
		R: uint8(MinChannel + rng.IntN(span)),
		G: uint8(MinChannel + rng.IntN(span)),
		B: uint8(MinChannel + rng.IntN(span)),
	}
}

// Colorize assigns a random color to every point, preserving order.
// A nil rng is replaced by a freshly seeded source, so repeated calls yield
// different colors.
func Colorize(points []Point, rng *rand.Rand) []Site {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	sites := make([]Site, len(points))
	for i, p := range points {
		sites[i] = Site{Point: p, Color: RandomColor(rng)}
	}
	return sites
}

// Points returns the positions of sites in order.
func Points(sites []Site) []Point {
	points := make([]Point, len(sites))
	for i, s := range sites {
		points[i] = s.Point
	}
	return points
}
