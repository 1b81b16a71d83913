// Package http serves the ETL's operational surface: liveness, readiness
// expressed as grid-processing progress, the configured species set, and
// Prometheus metrics.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/vector-suitability-etl/internal/domain"
)

const serviceName = "vector-suitability-etl"

// ReadinessChecker reports whether the pipeline has started turning raw
// grids into suitability products.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes /healthz, /readyz, /species, and /metrics.
type Server struct {
	httpServer *http.Server
	ready      ReadinessChecker
	species    []domain.SpeciesParams
	logger     *slog.Logger
}

// statusResponse is the body of the health and readiness endpoints.
type statusResponse struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Reason  string `json:"reason,omitempty"`
}

// NewServer wires the operational routes. The species slice is the set the
// transformer was configured with, exposed so operators can confirm which
// reaction norms a running instance applies.
func NewServer(addr string, ready ReadinessChecker, species []domain.SpeciesParams, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		ready:   ready,
		species: species,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /species", s.handleSpecies)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr, "species", len(s.species))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Service: serviceName, Status: "ok"})
}

// handleReady reports 503 until the pipeline has processed at least one
// grid, so orchestrators hold traffic off fresh instances that have not yet
// caught up with the source topic.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.ready.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, statusResponse{
			Service: serviceName,
			Status:  "waiting for grids",
			Reason:  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Service: serviceName, Status: "ready"})
}

func (s *Server) handleSpecies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"species": s.species})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort status response
}
