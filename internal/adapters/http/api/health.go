package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/domain/types"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/pkg/metrics"
)

// Health states reported by /healthz.
const (
	StatusOK       = "ok"
	StatusStopped  = "stopped"
	StatusStarting = "starting"
)

// SnapshotProvider yields the controller status.
type SnapshotProvider interface {
	Snapshot() (status types.Status, ok bool)
}

// HealthResponse is the /healthz body.
type HealthResponse struct {
	Status  string `json:"status"`
	Running bool   `json:"running"`
	Cycles  uint64 `json:"cycles"`
	RunID   string `json:"run_id,omitempty"`
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	source SnapshotProvider
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(source SnapshotProvider) *HealthHandler {
	return &HealthHandler{source: source}
}

// HandleHealth handles GET /healthz. It answers 200 while the scan loop
// runs and 503 otherwise.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	st, ok := h.source.Snapshot()
	switch {
	case !ok:
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: StatusStarting})
	case !st.Running:
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: StatusStopped, Cycles: st.Cycles, RunID: st.RunID})
	default:
		writeJSON(w, http.StatusOK, HealthResponse{Status: StatusOK, Running: true, Cycles: st.Cycles, RunID: st.RunID})
	}
}

// NewMetricsHandler serves the custom metrics registry.
func NewMetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
