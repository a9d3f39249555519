// Package health serves the liveness and readiness probes. Liveness reports
// only that the bridge process is alive; it never depends on the worker
// runtime being reachable.
package health

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/taddiemason/Gmail-MCP-Server/internal/protocol"
)

// Handler answers /health and /readyz.
type Handler struct {
	service string
	ready   atomic.Bool
}

// New returns a health handler for the named service.
func New(service string) *Handler {
	return &Handler{service: service}
}

// SetReady marks the handler as ready.
func (h *Handler) SetReady() {
	h.ready.Store(true)
}

// SetNotReady marks the handler as not ready.
func (h *Handler) SetNotReady() {
	h.ready.Store(false)
}

// Health handles liveness probes with the fixed healthy marker.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(protocol.HealthResponse{
		Status:  "ok",
		Service: h.service,
	})
}

// Readyz handles readiness probes, flipping during graceful shutdown.
func (h *Handler) Readyz(w http.ResponseWriter, _ *http.Request) {
	if h.ready.Load() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("not ready"))
}
