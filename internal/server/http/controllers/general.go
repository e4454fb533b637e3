package controllers

import (
	"net/http"

	"github.com/rzbill/flexbuf/internal/inspect"
	"github.com/rzbill/flexbuf/internal/runtime"
)

// GeneralController handles health, stats, and debug endpoints.
type GeneralController struct {
	rt *runtime.Runtime
}

// NewGeneralController creates a new general controller.
func NewGeneralController(rt *runtime.Runtime) *GeneralController {
	return &GeneralController{rt: rt}
}

// RegisterRoutes registers general routes with the given mux.
//
// This method sets up HTTP endpoints for:
// - Health checks (/v1/healthz)
// - Ring occupancy stats (/v1/stats)
// - The HTML buffer visualization (/v1/debug/snapshot)
func (c *GeneralController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/healthz", c.handleHealth)
	mux.HandleFunc("/v1/stats", c.handleStats)
	mux.HandleFunc("/v1/debug/snapshot", c.handleSnapshot)
}

// handleHealth returns the health status of the service.
//
// Returns 200 OK with {"status": "ok"} if healthy, 503 Service Unavailable otherwise.
func (c *GeneralController) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.rt.CheckHealth(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_serving")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleStats reports ring geometry and occupancy.
func (c *GeneralController) handleStats(w http.ResponseWriter, r *http.Request) {
	ring := c.rt.Ring()
	stats := statsJSON{
		Capacity:    ring.Cap(),
		MaxLines:    ring.MaxLines(),
		ActiveLines: ring.Len(),
	}
	if first, err := ring.First(); err == nil {
		id := first.ID()
		stats.FirstID = &id
	}
	if last, err := ring.Last(); err == nil {
		id := last.ID()
		stats.LastID = &id
	}
	writeJSON(w, stats)
}

// handleSnapshot renders the buffer state as a standalone HTML page.
func (c *GeneralController) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := inspect.Render(w, c.rt.Ring().Snapshot()); err != nil {
		writeError(w, http.StatusInternalServerError, "snapshot render failed")
	}
}
