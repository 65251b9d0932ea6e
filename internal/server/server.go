// Package server renders the dashboard over local HTTP. Each request is a
// stateless function of the current dataset snapshot.
package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cryptometric/internal/analytics"
	"cryptometric/internal/model"
)

// datasetSource is the slice of the store the server needs.
type datasetSource interface {
	Get(name string) (*model.Dataset, error)
	List() []*model.Dataset
	Reload() error
}

// Server serves the dashboard page, the JSON API and Prometheus metrics.
type Server struct {
	store   datasetSource
	params  analytics.Params
	metrics *Metrics
	logger  *slog.Logger
	mux     *http.ServeMux
}

// New creates a Server. reg receives the server's collectors and backs the
// /metrics endpoint.
func New(store datasetSource, params analytics.Params, reg *prometheus.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		store:   store,
		params:  params,
		metrics: NewMetrics(reg),
		logger:  logger,
		mux:     http.NewServeMux(),
	}
	s.metrics.ObserveStore(store)

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.HandleFunc("GET /api/datasets", s.handleListDatasets)
	s.mux.HandleFunc("GET /api/datasets/{name}", s.handleGetDataset)
	s.mux.HandleFunc("GET /api/datasets/{name}/export", s.handleExport)
	s.mux.HandleFunc("GET /api/views/staking", s.handleStakingView)
	s.mux.HandleFunc("GET /api/views/price", s.handlePriceView)
	s.mux.HandleFunc("POST /api/reload", s.handleReload)
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return s
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.withAccessLog(s.mux))
}

// statusRecorder captures the response code for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.metrics.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
			"request_id", w.Header().Get("X-Request-Id"),
		)
	})
}
