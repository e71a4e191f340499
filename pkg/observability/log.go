package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level structured
// log lines. HTTP responses are logged at info level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that log to logger. A nil logger uses log.Default().
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnGenerateStart(_ context.Context, mode, metric string, sites int) {
	h.logger.Debug("generate start", "mode", mode, "metric", metric, "sites", sites)
}

func (h *LogHooks) OnGenerateComplete(_ context.Context, mode, metric string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("generate failed", "mode", mode, "metric", metric, "duration", d, "err", err)
		return
	}
	h.logger.Debug("generate done", "mode", mode, "metric", metric, "duration", d)
}

func (h *LogHooks) OnBandComplete(_ context.Context, worker, rows int, d time.Duration) {
	h.logger.Debug("band done", "worker", worker, "rows", rows, "duration", d)
}

func (h *LogHooks) OnEncodeStart(_ context.Context, formats []string) {
	h.logger.Debug("encode start", "formats", formats)
}

func (h *LogHooks) OnEncodeComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("encode failed", "formats", formats, "duration", d, "err", err)
		return
	}
	h.logger.Debug("encode done", "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
