package voronoi

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrWorkerFailed is returned when a parallel worker aborts.
var ErrWorkerFailed = errors.New("worker failed")

// RowRange is the half-open row interval [Start, End) owned by one worker.
type RowRange struct {
	Start int
	End   int
}

// Len returns the number of rows in the range.
func (r RowRange) Len() int { return r.End - r.Start }

// Partition splits [0, height) into one contiguous range per worker. Every
// range holds height/workers rows except the last, which also takes the
// remainder. Ranges may be empty when workers exceeds height.
func Partition(height, workers int) []RowRange {
	if height <= 0 {
		return nil
	}
	workers = max(workers, 1)
	chunk := height / workers
	ranges := make([]RowRange, workers)
	for i := range ranges {
		ranges[i] = RowRange{Start: i * chunk, End: (i + 1) * chunk}
	}
	ranges[workers-1].End = height
	return ranges
}

// ParallelOption configures [GenerateParallel].
type ParallelOption func(*parallelConfig)

type parallelConfig struct {
	workers  int
	work     func(worker int, r RowRange) // test hook, runs before a worker fills its rows
	bandDone func(worker int, r RowRange, d time.Duration)
}

// WithWorkers sets the number of workers. Values below 1 select
// [DefaultWorkers].
func WithWorkers(n int) ParallelOption {
	return func(c *parallelConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithBandDone registers fn to run on each worker's goroutine after it fills
// its rows, with the time the fill took. fn is not called for a worker that
// panics.
func WithBandDone(fn func(worker int, r RowRange, d time.Duration)) ParallelOption {
	return func(c *parallelConfig) { c.bandDone = fn }
}

// DefaultWorkers is the worker count used when none is given: one per
// logical CPU.
func DefaultWorkers() int { return runtime.NumCPU() }

// GenerateParallel classifies every pixel to its nearest site using
// Euclidean distance, splitting the rows across workers.
//
// The metric is fixed; there is no way to request another one. The result is
// identical to Generate(sites, Euclidean, width, height). The call blocks
// until all workers finish; if any worker fails the error is returned and no
// buffer is produced. Non-positive dimensions return (nil, nil).
func GenerateParallel(sites []Site, width, height int, opts ...ParallelOption) (*Buffer, error) {
	cfg := parallelConfig{workers: DefaultWorkers()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if width <= 0 || height <= 0 {
		return nil, nil
	}

	buf := NewBuffer(width, height)
	var g errgroup.Group
	for i, r := range Partition(height, cfg.workers) {
		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					err = fmt.Errorf("%w: worker %d rows [%d,%d): %v", ErrWorkerFailed, i, r.Start, r.End, p)
				}
			}()
			if cfg.work != nil {
				cfg.work(i, r)
			}
			start := time.Now()
			fillRows(buf, sites, euclidean, r.Start, r.End)
			if cfg.bandDone != nil {
				cfg.bandDone(i, r, time.Since(start))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return buf, nil
}
