// Package cli implements the diagvor command-line interface.
//
// This package provides commands for rendering Voronoi diagrams from site
// files or random sites, benchmarking the sequential engine against the
// parallel one, editing site files, serving the render API over HTTP, and
// managing the local cache. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Rasterize sites to PNG, BMP, or TIFF
//   - bench: Compare sequential and parallel timings
//   - sites: Generate random site files and toggle individual sites
//   - history: List saved benchmark results
//   - serve: Expose the pipeline over HTTP
//   - cache: Manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so the pipeline logs with the same settings.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level, with "15:04:05.00"
// timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long a step took. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with an "elapsed" field rounded to the
// millisecond, plus any extra key-value pairs.
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(msg, append([]any{"elapsed", elapsed}, keyvals...)...)
}

// withLogger attaches l to ctx so the pipeline logs with the CLI's settings.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return log.WithContext(ctx, l)
}

// loggerFromContext returns the logger attached by withLogger, or the
// package default.
func loggerFromContext(ctx context.Context) *log.Logger {
	return log.FromContext(ctx)
}
