// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes a search session over HTTP: searches stream
// progressive snapshots as Server-Sent Events, and the session's view,
// filters, summary, and exports are plain JSON endpoints.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pdiddy/vidvaan/internal/aggregate"
	"github.com/pdiddy/vidvaan/internal/observability"
	"github.com/pdiddy/vidvaan/internal/view"
	"github.com/pdiddy/vidvaan/pkg/types"
)

// Searcher runs an aggregated search. *aggregate.Aggregator implements it.
type Searcher interface {
	Search(ctx context.Context, topic string, onUpdate func(aggregate.Update)) (aggregate.Result, error)
}

// Summarizer condenses titles into a summary. *summary.Client implements it.
type Summarizer interface {
	Summarize(ctx context.Context, titles []string) (string, error)
}

// Options are the server's collaborators.
type Options struct {
	Searcher   Searcher
	Summarizer Summarizer
	Store      *view.Store
	Metrics    *observability.Metrics

	// Gatherer backs /metrics. Nil uses the default registry.
	Gatherer prometheus.Gatherer
	Logger   zerolog.Logger
}

// Server is the vidvaan HTTP API.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	searcher   Searcher
	summarizer Summarizer
	store      *view.Store
	metrics    *observability.Metrics
	gatherer   prometheus.Gatherer
	logger     zerolog.Logger

	mu           sync.Mutex
	cancelSearch context.CancelFunc
}

// New builds a Server listening on cfg.Address once started.
func New(cfg types.ServerConfig, opts Options) *Server {
	s := &Server{
		searcher:   opts.Searcher,
		summarizer: opts.Summarizer,
		store:      opts.Store,
		metrics:    opts.Metrics,
		gatherer:   opts.Gatherer,
		logger:     observability.WithComponent(opts.Logger, "http-server"),
	}
	if s.store == nil {
		s.store = view.NewStore(view.DefaultPageSize)
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}

	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.healthHandler)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/search", s.searchHandler)
		r.Get("/publications", s.publicationsHandler)
		r.Post("/filters", s.filtersHandler)
		r.Post("/summary", s.summaryHandler)
		r.Get("/export", s.exportHandler)
	})
	return r
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	s.logger.Info().Str("address", ln.Addr().String()).Msg("HTTP server starting")
	return s.httpServer.Serve(ln)
}

// Shutdown cancels any running search and drains open connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.supersede(nil)
	return s.httpServer.Shutdown(ctx)
}

// supersede cancels the running search, if any, and records cancel as the
// current one.
func (s *Server) supersede(cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelSearch != nil {
		s.cancelSearch()
	}
	s.cancelSearch = cancel
}

// beginSearch supersedes the running search and issues the new search's
// token in one step, so the holder of the latest token is always the
// search whose context is live.
func (s *Server) beginSearch(topic string, cancel context.CancelFunc) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelSearch != nil {
		s.cancelSearch()
	}
	s.cancelSearch = cancel
	return s.store.BeginSearch(topic)
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestLogger logs one line per request at debug, or info for errors.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			ev := logger.Debug()
			if ww.Status() >= http.StatusInternalServerError {
				ev = logger.Warn()
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
