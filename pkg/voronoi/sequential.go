package voronoi

import "math"

// Generate classifies every pixel of a width × height raster to its nearest
// site under m and returns the filled buffer.
//
// An unsupported metric fails before anything is allocated. Non-positive
// dimensions are a no-op and return (nil, nil). With no sites every pixel is
// [White].
func Generate(sites []Site, m Metric, width, height int) (*Buffer, error) {
	dist, err := m.distanceFunc()
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, nil
	}
	buf := NewBuffer(width, height)
	fillRows(buf, sites, dist, 0, height)
	return buf, nil
}

// fillRows classifies rows [y0, y1) of buf. Each row is written through its
// own slice so concurrent callers on disjoint ranges never share memory.
func fillRows(buf *Buffer, sites []Site, dist distanceFunc, y0, y1 int) {
	for y := y0; y < y1; y++ {
		row := buf.Row(y)
		for x := 0; x < buf.Width; x++ {
			putPixel(row, x, nearest(sites, dist, Point{X: float64(x), Y: float64(y)}))
		}
	}
}

// nearest returns the color of the first site at minimal distance from p.
func nearest(sites []Site, dist distanceFunc, p Point) Color {
	best := math.MaxFloat64
	color := White
	for i := range sites {
		if d := dist(p, sites[i].Point); d < best {
			best = d
			color = sites[i].Color
		}
	}
	return color
}
