// Package render encodes rasterized diagrams into image files.
//
// [Encode] turns a [voronoi.Buffer] into PNG, BMP or TIFF bytes. [WithScale]
// resamples the raster before encoding, using nearest-neighbor when enlarging
// so cell edges stay crisp and Catmull-Rom when shrinking. [WithMarkers] draws
// a black dot at every site.
//
//	data, err := render.Encode(buf, render.FormatPNG,
//		render.WithScale(0.5),
//		render.WithMarkers(points, sites.MarkerRadius))
//
// The input buffer is never modified.
package render
