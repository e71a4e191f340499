// Package pipeline provides the diagram pipeline shared by the CLI and the
// HTTP server.
//
// This package implements the complete colorize → generate → encode pipeline
// so that every entry point validates, defaults, caches and times renders the
// same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Colorize: Assign each site a random color (pinned when Seed is set)
//  2. Generate: Classify every pixel with the sequential or parallel engine
//  3. Encode: Produce PNG, BMP or TIFF artifacts
//
// Generate and Encode results are cached when Seed is non-zero; without a
// seed colors differ on every run and nothing is reused.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Sites:   points,
//	    Mode:    pipeline.ModeParallel,
//	    Formats: []string{"png"},
//	    Seed:    42,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Compare the two engines:
//
//	bench, err := pipeline.Benchmark(ctx, pipeline.BenchOptions{Sites: points, Runs: 5})
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/diagvor/pkg/cache"
	"github.com/matzehuels/diagvor/pkg/errors"
	"github.com/matzehuels/diagvor/pkg/render"
	"github.com/matzehuels/diagvor/pkg/sites"
	"github.com/matzehuels/diagvor/pkg/voronoi"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default raster width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default raster height in pixels.
	DefaultHeight = 600

	// DefaultMetric is the default distance metric.
	DefaultMetric = "euclidean"

	// DefaultMode is the default engine.
	DefaultMode = ModeSequential

	// DefaultFormat is the default output format.
	DefaultFormat = render.FormatPNG

	// DefaultRuns is the default number of benchmark repetitions per engine.
	DefaultRuns = 5

	// DefaultSiteCount is the default number of random sites.
	DefaultSiteCount = 50
)

// Engine modes.
const (
	ModeSequential = "sequential"
	ModeParallel   = "parallel"
)

// ValidModes is the set of supported engine modes.
var ValidModes = map[string]bool{
	ModeSequential: true,
	ModeParallel:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one render.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Generate options
	Sites   []voronoi.Point `json:"sites"`
	Mode    string          `json:"mode,omitempty"`
	Metric  string          `json:"metric,omitempty"`
	Width   int             `json:"width,omitempty"`
	Height  int             `json:"height,omitempty"`
	Seed    uint64          `json:"seed,omitempty"`
	Workers int             `json:"workers,omitempty"`
	Refresh bool            `json:"refresh,omitempty"`

	// Encode options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Markers bool     `json:"markers,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	metric    voronoi.Metric
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Buffer is the rendered raster. Nil when Skipped.
	Buffer *voronoi.Buffer

	// Sites are the colored sites the raster was built from.
	Sites []voronoi.Site

	// Metric is the metric actually used.
	Metric voronoi.Metric

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo

	// Skipped is set when a non-positive dimension made the render a no-op.
	Skipped bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Wall       time.Duration // generation wall-clock time
	CPU        time.Duration // process CPU time consumed during generation
	EncodeTime time.Duration
	Workers    int
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DiagramHit  bool // Whether the raster came from cache
	ArtifactHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateMode checks that a mode is valid.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidMode, "invalid mode: %q (must be one of: sequential, parallel)", mode)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := render.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseMetric resolves a metric name, mapping failures to INVALID_METRIC.
func ParseMetric(name string) (voronoi.Metric, error) {
	m, err := voronoi.ParseMetric(name)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidMetric, err, "invalid metric: %q (must be one of: euclidean, manhattan, chebyshev)", name)
	}
	return m, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
//
// A zero Width or Height takes the default; negative values are kept and make
// the render a no-op. The parallel engine only supports Euclidean distance, so
// parallel mode with another metric logs a warning and switches to Euclidean.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.Mode = strings.ToLower(strings.TrimSpace(o.Mode))
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}

	if o.Metric == "" {
		o.Metric = DefaultMetric
	}
	m, err := ParseMetric(o.Metric)
	if err != nil {
		return err
	}
	if o.Mode == ModeParallel && m != voronoi.Euclidean {
		o.Logger.Warn("parallel mode only supports euclidean distance; switching metric", "requested", m)
		m = voronoi.Euclidean
	}
	o.metric = m
	o.Metric = m.String()

	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}

	if err := errors.ValidateWorkers(o.Workers); err != nil {
		return err
	}
	switch {
	case o.Mode == ModeSequential:
		o.Workers = 1
	case o.Workers == 0:
		o.Workers = voronoi.DefaultWorkers()
	}

	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateScale(o.Scale); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for encoding and normalizes format names.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	formats := make([]string, len(o.Formats))
	for i, f := range o.Formats {
		formats[i] = render.NormalizeFormat(f)
	}
	o.Formats = formats
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsParallel returns true if the parallel engine is selected.
func (o *Options) IsParallel() bool {
	return o.Mode == ModeParallel
}

// IsNoop returns true when a non-positive dimension leaves nothing to render.
func (o *Options) IsNoop() bool {
	return o.Width <= 0 || o.Height <= 0
}

// Cacheable reports whether results for these options may be reused.
func (o *Options) Cacheable() bool {
	return o.Seed != 0
}

// ResolvedMetric returns the metric chosen by ValidateAndSetDefaults.
func (o *Options) ResolvedMetric() voronoi.Metric {
	return o.metric
}

// DiagramKeyOpts returns cache key options for generation.
func (o *Options) DiagramKeyOpts() cache.DiagramKeyOpts {
	return cache.DiagramKeyOpts{
		Metric: o.Metric,
		Width:  o.Width,
		Height: o.Height,
		Seed:   o.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for one encoded format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		Scale:   o.Scale,
		Markers: o.Markers,
	}
}

// renderOptions translates encode options for the render package.
func (o *Options) renderOptions() []render.Option {
	opts := []render.Option{render.WithScale(o.Scale)}
	if o.Markers {
		opts = append(opts, render.WithMarkers(o.Sites, sites.MarkerRadius))
	}
	return opts
}
