// Package voronoi rasterizes Voronoi diagrams by nearest-site classification.
//
// # Overview
//
// Every pixel of a width × height raster is assigned the color of the site
// closest to it under a selected [Metric]. No geometric construction is
// performed: each pixel scans the whole site list, so the cost is
// O(width × height × sites).
//
// Two engines produce the same output:
//
//   - [Generate]: single goroutine, any [Metric]
//   - [GenerateParallel]: rows split across worker goroutines, Euclidean only
//
// For the same sites and dimensions, GenerateParallel is byte-identical to
// Generate with [Euclidean], whatever the worker count.
//
// # Sites and Colors
//
// [Colorize] turns an ordered list of [Point] values into [Site] values with
// random colors whose channels lie in [MinChannel, 255]. The random source is
// an explicit parameter:
//
//	rng := voronoi.NewRand(42)
//	sites := voronoi.Colorize(points, rng)
//
// Passing nil draws fresh colors on every call.
//
// # Tie-Break
//
// A site replaces the current candidate only when it is strictly closer, so
// among equidistant sites the one earliest in the list wins.
//
// # Buffer Format
//
// [Buffer] is row-major, top-to-bottom, 4 bytes per pixel in R, G, B, A order
// with A fixed at 255. [Buffer.Image] exposes it as an [image.RGBA] without
// copying.
package voronoi
