// Package api serves the controller's operational HTTP surface: liveness,
// service statistics and the Prometheus scrape endpoint.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider

	// Snapshot returns the controller status; ok is false until the
	// controller has been built.
	Snapshot() (status types.Status, ok bool)
}

// StatsProvider reports service statistics for /stats.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// Server wires the ops routes.
type Server struct {
	health  *HealthHandler
	stats   StatsProvider
	metrics http.Handler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		health:  NewHealthHandler(deps),
		stats:   deps,
		metrics: NewMetricsHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.Handle("/healthz", instrument("healthz", getOnly(s.health.HandleHealth)))
	mux.Handle("/stats", instrument("stats", getOnly(s.handleStats)))
	mux.Handle("/metrics", instrument("metrics", s.metrics))
}

// handleStats serves the service statistics, including the point listing.
func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.GetStats())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
