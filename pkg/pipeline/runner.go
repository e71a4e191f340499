package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/diagvor/pkg/cache"
	"github.com/matzehuels/diagvor/pkg/errors"
	"github.com/matzehuels/diagvor/pkg/observability"
	"github.com/matzehuels/diagvor/pkg/render"
	"github.com/matzehuels/diagvor/pkg/voronoi"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete colorize → generate → encode pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Metric:    opts.ResolvedMetric(),
		Artifacts: make(map[string][]byte),
	}
	if opts.IsNoop() {
		r.Logger.Info("nothing to render", "width", opts.Width, "height", opts.Height)
		result.Skipped = true
		return result, nil
	}

	// Stage 1: Colorize
	result.Sites = voronoi.Colorize(opts.Sites, seededRand(opts.Seed))

	// Stage 2: Generate
	buf, stats, hit, err := r.GenerateWithCacheInfo(ctx, result.Sites, opts)
	if err != nil {
		return nil, err
	}
	result.Buffer = buf
	result.Stats = stats
	result.CacheInfo.DiagramHit = hit

	r.Logger.Info("generated diagram",
		"mode", opts.Mode,
		"metric", opts.Metric,
		"sites", len(result.Sites),
		"workers", stats.Workers,
		"duration", stats.Wall,
		"cached", hit)

	// Stage 3: Encode
	encodeStart := time.Now()
	artifacts, hit, err := r.EncodeWithCacheInfo(ctx, buf, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.EncodeTime = time.Since(encodeStart)
	result.CacheInfo.ArtifactHit = hit

	r.Logger.Debug("encoded outputs",
		"formats", opts.Formats,
		"duration", result.Stats.EncodeTime)

	return result, nil
}

// GenerateWithCacheInfo rasterizes colored sites, consulting the cache when
// opts is cacheable. It returns the generation statistics and whether the
// raster came from cache.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, colored []voronoi.Site, opts Options) (*voronoi.Buffer, Stats, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, Stats{}, false, err
	}

	key := r.diagramKey(opts)
	if key != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit && len(data) == opts.Width*opts.Height*voronoi.BytesPerPixel {
			observability.Cache().OnCacheHit(ctx, "diagram")
			buf := &voronoi.Buffer{Width: opts.Width, Height: opts.Height, Pix: data}
			return buf, Stats{Workers: opts.Workers}, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "diagram")
	}

	buf, stats, err := Generate(ctx, colored, opts)
	if err != nil {
		return nil, stats, false, err
	}

	if key != "" {
		if err := r.Cache.Set(ctx, key, buf.Pix, cache.TTLDiagram); err == nil {
			observability.Cache().OnCacheSet(ctx, "diagram", len(buf.Pix))
		} else {
			r.Logger.Debug("cache write failed", "stage", "diagram", "err", err)
		}
	}
	return buf, stats, false, nil
}

// EncodeWithCacheInfo encodes buf in every requested format, consulting the
// cache when opts is cacheable. It reports whether all artifacts came from cache.
func (r *Runner) EncodeWithCacheInfo(ctx context.Context, buf *voronoi.Buffer, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	diagramKey := r.diagramKey(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	if diagramKey != "" && !opts.Refresh {
		diagramHash := cache.Hash([]byte(diagramKey))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := Encode(ctx, buf, opts)
	if err != nil {
		return nil, false, err
	}

	if diagramKey != "" {
		diagramHash := cache.Hash([]byte(diagramKey))
		for format, data := range rendered {
			key := r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// diagramKey returns the cache key for the raster, or "" when opts is not cacheable.
func (r *Runner) diagramKey(opts Options) string {
	if !opts.Cacheable() {
		return ""
	}
	sitesHash := cache.HashJSON(opts.Sites)
	return r.Keyer.DiagramKey(sitesHash, opts.DiagramKeyOpts())
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// =============================================================================
// Uncached Stages
// =============================================================================

// Generate rasterizes colored sites with the engine selected by opts and
// measures wall-clock and process CPU time. opts must already be validated.
func Generate(ctx context.Context, colored []voronoi.Site, opts Options) (*voronoi.Buffer, Stats, error) {
	stats := Stats{Workers: opts.Workers}
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.Mode, opts.Metric, len(colored))

	cpuStart, cpuOK := processCPUTime()
	start := time.Now()

	var (
		buf *voronoi.Buffer
		err error
	)
	if opts.IsParallel() {
		buf, err = voronoi.GenerateParallel(colored, opts.Width, opts.Height,
			voronoi.WithWorkers(opts.Workers),
			voronoi.WithBandDone(func(worker int, r voronoi.RowRange, d time.Duration) {
				hooks.OnBandComplete(ctx, worker, r.Len(), d)
			}))
	} else {
		buf, err = voronoi.Generate(colored, opts.ResolvedMetric(), opts.Width, opts.Height)
	}

	stats.Wall = time.Since(start)
	if cpuEnd, ok := processCPUTime(); ok && cpuOK {
		stats.CPU = cpuEnd - cpuStart
	}
	hooks.OnGenerateComplete(ctx, opts.Mode, opts.Metric, stats.Wall, err)

	switch {
	case stderrors.Is(err, voronoi.ErrUnsupportedMetric):
		return nil, stats, errors.Wrap(errors.ErrCodeInvalidMetric, err, "generate")
	case err != nil:
		return nil, stats, errors.Wrap(errors.ErrCodeGeneration, err, "%s generation failed", opts.Mode)
	case buf == nil:
		return nil, stats, errors.New(errors.ErrCodeInvalidDimensions, "nothing to render at %dx%d", opts.Width, opts.Height)
	}
	return buf, stats, nil
}

// Encode produces every requested format from buf. opts must already be validated.
func Encode(ctx context.Context, buf *voronoi.Buffer, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnEncodeStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var err error
	for _, format := range opts.Formats {
		if err = ctx.Err(); err != nil {
			break
		}
		var data []byte
		if data, err = render.Encode(buf, format, opts.renderOptions()...); err != nil {
			err = fmt.Errorf("encode %s: %w", format, err)
			break
		}
		artifacts[format] = data
	}

	hooks.OnEncodeComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// seededRand returns a deterministic source for a non-zero seed and nil
// (fresh colors every run) otherwise.
func seededRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return voronoi.NewRand(seed)
}
