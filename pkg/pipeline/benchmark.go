package pipeline

import (
	"context"
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/diagvor/pkg/errors"
	"github.com/matzehuels/diagvor/pkg/store"
	"github.com/matzehuels/diagvor/pkg/voronoi"
)

// BenchOptions configures a sequential-versus-parallel comparison.
type BenchOptions struct {
	Sites   []voronoi.Point `json:"sites"`
	Width   int             `json:"width,omitempty"`
	Height  int             `json:"height,omitempty"`
	Seed    uint64          `json:"seed,omitempty"`
	Workers int             `json:"workers,omitempty"`
	Runs    int             `json:"runs,omitempty"`

	// OnRun is called before each timed run. Optional.
	OnRun func(mode string, run, runs int) `json:"-"`

	Logger *log.Logger `json:"-"`
}

// RunStats summarizes the timed runs of one engine.
type RunStats struct {
	Wall     []time.Duration `json:"wall_ns"`
	CPU      []time.Duration `json:"cpu_ns"`
	BestWall time.Duration   `json:"best_wall_ns"`
	MeanWall time.Duration   `json:"mean_wall_ns"`
	BestCPU  time.Duration   `json:"best_cpu_ns"`
	MeanCPU  time.Duration   `json:"mean_cpu_ns"`
}

// BenchResult is the outcome of Benchmark.
type BenchResult struct {
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Sites      int      `json:"sites"`
	Workers    int      `json:"workers"`
	Runs       int      `json:"runs"`
	Sequential RunStats `json:"sequential"`
	Parallel   RunStats `json:"parallel"`

	// Speedup is sequential best wall time divided by parallel best wall time.
	Speedup float64 `json:"speedup"`

	// Identical reports whether both engines produced byte-identical rasters.
	Identical bool `json:"identical"`
}

// SetDefaults applies defaults and validates the options.
func (o *BenchOptions) SetDefaults() error {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidDimensions, "cannot benchmark a %dx%d raster", o.Width, o.Height)
	}
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateWorkers(o.Workers); err != nil {
		return err
	}
	if o.Workers == 0 {
		o.Workers = voronoi.DefaultWorkers()
	}
	if o.Runs < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "runs cannot be negative, got %d", o.Runs)
	}
	if o.Runs == 0 {
		o.Runs = DefaultRuns
	}
	return nil
}

// Benchmark times the sequential Euclidean engine against the parallel
// engine on the same colored sites, alternating between them for each run.
func Benchmark(ctx context.Context, opts BenchOptions) (*BenchResult, error) {
	if err := opts.SetDefaults(); err != nil {
		return nil, err
	}

	rng := seededRand(opts.Seed)
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	colored := voronoi.Colorize(opts.Sites, rng)

	seqOpts := Options{Mode: ModeSequential, Metric: DefaultMetric, Width: opts.Width, Height: opts.Height, Logger: opts.Logger}
	parOpts := Options{Mode: ModeParallel, Width: opts.Width, Height: opts.Height, Workers: opts.Workers, Logger: opts.Logger}
	for _, o := range []*Options{&seqOpts, &parOpts} {
		if err := o.ValidateAndSetDefaults(); err != nil {
			return nil, err
		}
	}

	result := &BenchResult{
		Width:   opts.Width,
		Height:  opts.Height,
		Sites:   len(colored),
		Workers: opts.Workers,
		Runs:    opts.Runs,
	}

	var seqBuf, parBuf *voronoi.Buffer
	for run := range opts.Runs {
		if opts.OnRun != nil {
			opts.OnRun(ModeSequential, run+1, opts.Runs)
		}
		buf, stats, err := Generate(ctx, colored, seqOpts)
		if err != nil {
			return nil, err
		}
		seqBuf = buf
		result.Sequential.add(stats)

		if opts.OnRun != nil {
			opts.OnRun(ModeParallel, run+1, opts.Runs)
		}
		buf, stats, err = Generate(ctx, colored, parOpts)
		if err != nil {
			return nil, err
		}
		parBuf = buf
		result.Parallel.add(stats)

		opts.Logger.Debug("bench run",
			"run", run+1,
			"sequential", result.Sequential.Wall[run],
			"parallel", result.Parallel.Wall[run])
	}

	result.Sequential.summarize()
	result.Parallel.summarize()
	if result.Parallel.BestWall > 0 {
		result.Speedup = float64(result.Sequential.BestWall) / float64(result.Parallel.BestWall)
	}
	result.Identical = seqBuf.Equal(parBuf)

	if !result.Identical {
		opts.Logger.Warn("sequential and parallel rasters differ")
	}
	return result, nil
}

func (s *RunStats) add(stats Stats) {
	s.Wall = append(s.Wall, stats.Wall)
	s.CPU = append(s.CPU, stats.CPU)
}

func (s *RunStats) summarize() {
	if len(s.Wall) == 0 {
		return
	}
	s.BestWall = slices.Min(s.Wall)
	s.MeanWall = mean(s.Wall)
	s.BestCPU = slices.Min(s.CPU)
	s.MeanCPU = mean(s.CPU)
}

func mean(ds []time.Duration) time.Duration {
	var total time.Duration
	for _, d := range ds {
		total += d
	}
	return total / time.Duration(len(ds))
}

// Record converts the result into a history record stamped with a new ID.
func (r *BenchResult) Record() *store.Record {
	rec := store.NewRecord()
	rec.Width = r.Width
	rec.Height = r.Height
	rec.Sites = r.Sites
	rec.Workers = r.Workers
	rec.Runs = r.Runs
	rec.SeqWall = r.Sequential.BestWall
	rec.SeqCPU = r.Sequential.BestCPU
	rec.ParWall = r.Parallel.BestWall
	rec.ParCPU = r.Parallel.BestCPU
	rec.Speedup = r.Speedup
	rec.Identical = r.Identical
	return rec
}
