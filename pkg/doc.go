// Package pkg provides the core libraries for Diagvor Voronoi rendering.
//
// # Overview
//
// Diagvor colors every pixel of a raster with the color of its nearest site.
// The pkg directory is organized into these areas:
//
//  1. [voronoi] - Domain logic (metrics, colorized sites, sequential and parallel rasterizers)
//  2. [sites] - Site lists (random placement, toggling, JSON and TOML files)
//  3. [render] - Image encoding (PNG, BMP, TIFF, scaling, site markers)
//  4. [pipeline] - Orchestration (colorize → generate → encode, benchmarks)
//  5. [cache], [store] - Infrastructure (render cache, benchmark history)
//
// # Architecture
//
// The typical data flow through Diagvor:
//
//	Site file / random sites
//	         ↓
//	    [sites] package (load or generate points)
//	         ↓
//	    [voronoi] package (colorize + rasterize)
//	         ↓
//	    [render] package (encode)
//	         ↓
//	    PNG/BMP/TIFF output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/diagvor/pkg/render"
//	    "github.com/matzehuels/diagvor/pkg/sites"
//	    "github.com/matzehuels/diagvor/pkg/voronoi"
//	)
//
//	// 1. Place sites
//	points, _ := sites.Random(50, 800, 600, voronoi.NewRand(42))
//
//	// 2. Rasterize
//	colored := voronoi.Colorize(points, voronoi.NewRand(42))
//	buf, _ := voronoi.Generate(colored, voronoi.Manhattan, 800, 600)
//
//	// 3. Encode
//	png, _ := render.Encode(buf, render.FormatPNG, render.WithMarkers(points, sites.MarkerRadius))
//
// # Main Packages
//
// [voronoi] - Nearest-site rasterization under Euclidean, Manhattan, and
// Chebyshev distance. [voronoi.GenerateParallel] splits rows across workers
// and produces the same bytes as the sequential engine.
//
// [pipeline] - The render pipeline shared by the CLI and the HTTP server,
// with caching through [pipeline.Runner] and engine comparison through
// [pipeline.Benchmark].
//
// [cache] - File and Redis caches for rasters and encoded images.
//
// [store] - File and MongoDB storage for benchmark results.
//
// [errors] - Error codes shared by the CLI and the HTTP API.
//
// [observability] - Hooks for pipeline, cache, and HTTP events.
//
// # Testing
//
//	go test ./pkg/...                       # All tests
//	go test -bench . ./pkg/voronoi          # Rasterizer benchmarks
//
// [voronoi]: https://pkg.go.dev/github.com/matzehuels/diagvor/pkg/voronoi
// [sites]: https://pkg.go.dev/github.com/matzehuels/diagvor/pkg/sites
// [render]: https://pkg.go.dev/github.com/matzehuels/diagvor/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/diagvor/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/diagvor/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/diagvor/pkg/store
// [errors]: https://pkg.go.dev/github.com/matzehuels/diagvor/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/diagvor/pkg/observability
package pkg
