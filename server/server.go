// Package server exposes a loaded ontology graph over HTTP.
//
// The server holds a single in-memory graph guarded by a read-write
// mutex. Queries take a read lock; reloads swap the graph under the
// write lock, so a reload never interrupts an in-flight query.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ontoforge/guidance/rdf"
	"github.com/ontoforge/guidance/rdf/turtle"
	"github.com/ontoforge/guidance/sparql"
)

// maxQueryBodySize limits POST bodies on the query endpoint.
const maxQueryBodySize = 1 << 20 // 1 MB

// Config configures a Server.
type Config struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string

	// SourcePath is the Turtle file backing the graph. Required.
	SourcePath string

	// Watch enables automatic reload when SourcePath changes on disk.
	Watch bool

	// DebounceDelay is how long to wait for further file events before
	// reloading. Zero means 500ms.
	DebounceDelay time.Duration

	Logger *slog.Logger
}

// Server serves SPARQL queries against an in-memory graph.
type Server struct {
	cfg    Config
	logger *slog.Logger

	mu       sync.RWMutex
	graph    *rdf.Graph
	loadedAt time.Time

	registry *prometheus.Registry
	metrics  serverMetrics
}

type serverMetrics struct {
	queriesTotal  *prometheus.CounterVec
	queryDuration prometheus.Histogram
	reloadsTotal  *prometheus.CounterVec
	tripleCount   prometheus.Gauge
}

// New creates a Server and performs the initial load of the source file.
func New(cfg Config) (*Server, error) {
	if cfg.SourcePath == "" {
		return nil, errors.New("server: source path is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.DebounceDelay == 0 {
		cfg.DebounceDelay = 500 * time.Millisecond
	}

	s := &Server{
		cfg:      cfg,
		logger:   cfg.Logger,
		registry: prometheus.NewRegistry(),
	}
	s.metrics = newServerMetrics(s.registry)

	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func newServerMetrics(reg *prometheus.Registry) serverMetrics {
	m := serverMetrics{
		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "guidance_queries_total",
			Help: "SPARQL queries served, by result status.",
		}, []string{"status"}),
		queryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "guidance_query_duration_seconds",
			Help:    "SPARQL query evaluation time.",
			Buckets: prometheus.DefBuckets,
		}),
		reloadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "guidance_reloads_total",
			Help: "Graph reloads from the source file, by outcome.",
		}, []string{"outcome"}),
		tripleCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "guidance_triples",
			Help: "Triples currently loaded.",
		}),
	}
	reg.MustRegister(m.queriesTotal, m.queryDuration, m.reloadsTotal, m.tripleCount)
	return m
}

// Reload parses the source file and swaps in the new graph. On parse
// failure the previous graph stays live.
func (s *Server) Reload() error {
	g, err := turtle.ParseFile(s.cfg.SourcePath)
	if err != nil {
		s.metrics.reloadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("server: reload %s: %w", s.cfg.SourcePath, err)
	}

	s.mu.Lock()
	s.graph = g
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.metrics.reloadsTotal.WithLabelValues("ok").Inc()
	s.metrics.tripleCount.Set(float64(g.Len()))
	s.logger.Info("graph loaded", "source", s.cfg.SourcePath, "triples", g.Len())
	return nil
}

// RegisterHandlers registers all endpoints on the given mux:
//
//	GET/POST /sparql
//	GET      /info
//	GET      /healthz
//	GET      /metrics
func (s *Server) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/sparql", s.handleSPARQL)
	mux.HandleFunc("/info", s.handleInfo)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}

// ListenAndServe runs the HTTP server until ctx is cancelled. When
// watching is enabled the file watcher runs alongside the listener.
func (s *Server) ListenAndServe(ctx context.Context) error {
	mux := http.NewServeMux()
	s.RegisterHandlers(mux)

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.cfg.Watch {
		go func() {
			if err := s.watch(ctx); err != nil {
				s.logger.Error("file watcher stopped", "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// handleSPARQL evaluates a query against the live graph and returns
// SPARQL 1.1 JSON results. The query arrives as a GET "query" parameter,
// a form-encoded "query" field, or a raw application/sparql-query body.
func (s *Server) handleSPARQL(w http.ResponseWriter, r *http.Request) {
	query, err := extractQuery(r)
	if err != nil {
		s.metrics.queriesTotal.WithLabelValues("bad_request").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	s.mu.RLock()
	g := s.graph
	s.mu.RUnlock()

	res, err := sparql.QueryGraph(g, query)
	s.metrics.queryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		var perr *sparql.ParseError
		if errors.As(err, &perr) {
			s.metrics.queriesTotal.WithLabelValues("bad_request").Inc()
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.metrics.queriesTotal.WithLabelValues("error").Inc()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	body, err := res.JSON()
	if err != nil {
		s.metrics.queriesTotal.WithLabelValues("error").Inc()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.metrics.queriesTotal.WithLabelValues("ok").Inc()
	w.Header().Set("Content-Type", "application/sparql-results+json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.logger.Debug("response write failed", "error", err)
	}
}

func extractQuery(r *http.Request) (string, error) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query().Get("query")
		if q == "" {
			return "", errors.New("missing query parameter")
		}
		return q, nil
	case http.MethodPost:
		r.Body = http.MaxBytesReader(nil, r.Body, maxQueryBodySize)
		if r.Header.Get("Content-Type") == "application/sparql-query" {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				return "", fmt.Errorf("read body: %w", err)
			}
			if len(body) == 0 {
				return "", errors.New("empty query body")
			}
			return string(body), nil
		}
		if err := r.ParseForm(); err != nil {
			return "", fmt.Errorf("parse form: %w", err)
		}
		q := r.PostForm.Get("query")
		if q == "" {
			return "", errors.New("missing query field")
		}
		return q, nil
	default:
		return "", errors.New("method not allowed")
	}
}

// InfoResponse describes the loaded graph.
type InfoResponse struct {
	Source   string            `json:"source"`
	Triples  int               `json:"triples"`
	Subjects int               `json:"subjects"`
	Prefixes map[string]string `json:"prefixes"`
	LoadedAt time.Time         `json:"loaded_at"`
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	info := InfoResponse{
		Source:   s.cfg.SourcePath,
		Triples:  s.graph.Len(),
		Subjects: len(s.graph.Subjects()),
		Prefixes: s.graph.Prefixes().Bindings(),
		LoadedAt: s.loadedAt,
	}
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	loaded := s.graph != nil
	s.mu.RUnlock()

	if !loaded {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Response is already partially written; nothing useful to do.
		_ = err
	}
}
