package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/diagvor/pkg/buildinfo"
	"github.com/matzehuels/diagvor/pkg/errors"
	"github.com/matzehuels/diagvor/pkg/pipeline"
	"github.com/matzehuels/diagvor/pkg/render"
	"github.com/matzehuels/diagvor/pkg/sites"
	"github.com/matzehuels/diagvor/pkg/voronoi"
)

// renderRequest is the body of POST /v1/render. Width and Height are
// pointers so that an explicit non-positive value can be told apart from an
// omitted one.
type renderRequest struct {
	Sites   []voronoi.Point `json:"sites"`
	Random  int             `json:"random,omitempty"`
	Metric  string          `json:"metric,omitempty"`
	Mode    string          `json:"mode,omitempty"`
	Width   *int            `json:"width,omitempty"`
	Height  *int            `json:"height,omitempty"`
	Seed    uint64          `json:"seed,omitempty"`
	Workers int             `json:"workers,omitempty"`
	Format  string          `json:"format,omitempty"`
	Scale   float64         `json:"scale,omitempty"`
	Markers bool            `json:"markers,omitempty"`
}

// benchRequest is the body of POST /v1/bench.
type benchRequest struct {
	Sites   []voronoi.Point `json:"sites"`
	Random  int             `json:"random,omitempty"`
	Width   int             `json:"width,omitempty"`
	Height  int             `json:"height,omitempty"`
	Seed    uint64          `json:"seed,omitempty"`
	Workers int             `json:"workers,omitempty"`
	Runs    int             `json:"runs,omitempty"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Current())
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	names := make([]string, len(voronoi.Metrics))
	for i, m := range voronoi.Metrics {
		names[i] = m.String()
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !s.decode(w, r, &req) {
		return
	}

	width, height := valueOr(req.Width, pipeline.DefaultWidth), valueOr(req.Height, pipeline.DefaultHeight)
	if width <= 0 || height <= 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	points, err := resolveSites(req.Sites, req.Random, width, height, req.Seed)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := req.Format
	if format == "" {
		format = pipeline.DefaultFormat
	}
	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Sites:   points,
		Mode:    req.Mode,
		Metric:  req.Metric,
		Width:   width,
		Height:  height,
		Seed:    req.Seed,
		Workers: req.Workers,
		Formats: []string{format},
		Scale:   req.Scale,
		Markers: req.Markers,
		Logger:  s.logger.With("request_id", middleware.GetReqID(r.Context())),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if result.Skipped {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	format = render.NormalizeFormat(format)
	h := w.Header()
	h.Set("Content-Type", render.ContentType(format))
	h.Set("X-Diagvor-Metric", result.Metric.String())
	h.Set("X-Diagvor-Workers", strconv.Itoa(result.Stats.Workers))
	h.Set("X-Diagvor-Wall-Ms", strconv.FormatInt(result.Stats.Wall.Milliseconds(), 10))
	h.Set("X-Diagvor-Cache", strconv.FormatBool(result.CacheInfo.DiagramHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleBench(w http.ResponseWriter, r *http.Request) {
	var req benchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Runs > s.cfg.MaxBenchRuns {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "too many runs (max %d)", s.cfg.MaxBenchRuns))
		return
	}

	width, height := req.Width, req.Height
	if width == 0 {
		width = pipeline.DefaultWidth
	}
	if height == 0 {
		height = pipeline.DefaultHeight
	}
	if len(req.Sites) == 0 && req.Random == 0 {
		req.Random = pipeline.DefaultSiteCount
	}
	points, err := resolveSites(req.Sites, req.Random, width, height, req.Seed)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := pipeline.Benchmark(r.Context(), pipeline.BenchOptions{
		Sites:   points,
		Width:   width,
		Height:  height,
		Seed:    req.Seed,
		Workers: req.Workers,
		Runs:    req.Runs,
		Logger:  s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// resolveSites returns explicit sites, or n random ones when none are given.
func resolveSites(points []voronoi.Point, n, width, height int, seed uint64) ([]voronoi.Point, error) {
	if len(points) > 0 || n == 0 {
		if err := errors.ValidateSiteList(len(points)); err != nil {
			return nil, err
		}
		return points, nil
	}
	var rng = voronoi.NewRand(seed)
	if seed == 0 {
		rng = nil
	}
	return sites.Random(n, width, height, rng)
}

func valueOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Code:    errors.ErrCodeInvalidInput,
				Message: "request body too large",
			})
			return false
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := errors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
