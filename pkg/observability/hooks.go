// Package observability lets the binary watch the render pipeline, the cache
// and the HTTP server without those packages importing a metrics or tracing
// backend.
//
// Three hook interfaces cover the event sources. Each has a no-op
// implementation, which is what the package-level accessors return until main
// registers something else:
//
//	hooks := observability.NewLogHooks(logger)
//	observability.SetPipelineHooks(hooks)
//	observability.SetCacheHooks(hooks)
//	observability.SetHTTPHooks(hooks)
//
// Emitters fetch the current hooks at the call site:
//
//	observability.Pipeline().OnGenerateStart(ctx, "parallel", "euclidean", len(sites))
//
// Registration is expected once at startup; the accessors are safe to call
// from any goroutine, including parallel render workers.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Interfaces
// =============================================================================

// PipelineHooks observes rasterization and encoding.
type PipelineHooks interface {
	OnGenerateStart(ctx context.Context, mode, metric string, sites int)
	OnGenerateComplete(ctx context.Context, mode, metric string, duration time.Duration, err error)

	// OnBandComplete fires once per parallel worker after it has filled its
	// rows. It is called from the worker goroutine.
	OnBandComplete(ctx context.Context, worker, rows int, duration time.Duration)

	OnEncodeStart(ctx context.Context, formats []string)
	OnEncodeComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks observes raster ("diagram") and encoded image ("artifact")
// cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks observes requests to the render server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnGenerateStart(context.Context, string, string, int) {}
func (NoopPipelineHooks) OnGenerateComplete(context.Context, string, string, time.Duration, error) {
}
func (NoopPipelineHooks) OnBandComplete(context.Context, int, int, time.Duration)          {}
func (NoopPipelineHooks) OnEncodeStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnEncodeComplete(context.Context, []string, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Registry
// =============================================================================

type hookSet struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

func noopHooks() hookSet {
	return hookSet{NoopPipelineHooks{}, NoopCacheHooks{}, NoopHTTPHooks{}}
}

var (
	mu     sync.RWMutex
	active = noopHooks()
)

// register applies set under the write lock.
func register(set func(*hookSet)) {
	mu.Lock()
	defer mu.Unlock()
	set(&active)
}

func current() hookSet {
	mu.RLock()
	defer mu.RUnlock()
	return active
}

// SetPipelineHooks replaces the pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		register(func(s *hookSet) { s.pipeline = h })
	}
}

// SetCacheHooks replaces the cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		register(func(s *hookSet) { s.cache = h })
	}
}

// SetHTTPHooks replaces the HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		register(func(s *hookSet) { s.http = h })
	}
}

func Pipeline() PipelineHooks { return current().pipeline }
func Cache() CacheHooks       { return current().cache }
func HTTP() HTTPHooks         { return current().http }

// Reset restores the no-op hooks. Tests call it to undo registrations.
func Reset() {
	register(func(s *hookSet) { *s = noopHooks() })
}
