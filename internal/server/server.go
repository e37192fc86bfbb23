// Package server exposes the climdex archive over HTTP: the indicator
// catalogue, stored climatologies, and computed indicator results, as
// JSON or MessagePack, plus Prometheus metrics.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chrissnell/climdex/internal/store"
	"github.com/chrissnell/climdex/pkg/config"
	"github.com/chrissnell/climdex/pkg/indices"
)

// Server serves the archive REST API.
type Server struct {
	httpServer *http.Server
	archive    *store.Store
	registry   map[string]indices.Indicator
	formatter  *formatter
	metrics    *Metrics
	logger     *zap.SugaredLogger
}

// New builds the server. The registry listing is taken once at
// construction; the archive is consulted per request.
func New(cfg config.HTTPConfig, archive *store.Store, metrics *Metrics, logger *zap.SugaredLogger) *Server {
	s := &Server{
		archive:   archive,
		registry:  indices.Registry(),
		formatter: newFormatter(),
		metrics:   metrics,
		logger:    logger,
	}

	router := mux.NewRouter()
	router.Use(s.metricsMiddleware, s.logMiddleware)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/indicators", s.handleIndicators).Methods(http.MethodGet)
	api.HandleFunc("/climatologies", s.handleClimatologies).Methods(http.MethodGet)
	api.HandleFunc("/climatologies/{name}", s.handleClimatology).Methods(http.MethodGet)
	api.HandleFunc("/runs", s.handleRuns).Methods(http.MethodGet)
	api.HandleFunc("/runs/{id}", s.handleRun).Methods(http.MethodGet)
	api.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ListenAddr, cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start listens and serves until Shutdown. Returns
// http.ErrServerClosed after a graceful shutdown.
func (s *Server) Start() error {
	s.logger.Infof("archive API listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down archive API...")
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the router, so tests can drive the server
// without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.logger.Debugw("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}

func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.metrics.RequestsTotal.WithLabelValues(route, r.Method, fmt.Sprintf("%d", rec.status)).Inc()
		s.metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
