package controllers

import (
	"net/http"

	"github.com/rzbill/flexbuf/internal/query"
	"github.com/rzbill/flexbuf/internal/runtime"
)

// ArchiveController serves lines that were evicted from memory and
// written to the on-disk archive.
type ArchiveController struct {
	rt *runtime.Runtime
}

// NewArchiveController creates a new archive controller.
func NewArchiveController(rt *runtime.Runtime) *ArchiveController {
	return &ArchiveController{rt: rt}
}

// RegisterRoutes registers archive routes with the given mux.
func (c *ArchiveController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/archive", c.handleList)
}

// handleList scans archived lines in id order, starting at the optional
// from id, honoring an optional limit and CEL filter. Returns 404 when
// archiving is disabled.
func (c *ArchiveController) handleList(w http.ResponseWriter, r *http.Request) {
	store := c.rt.Archive()
	if store == nil {
		writeError(w, http.StatusNotFound, "archive disabled")
		return
	}
	var from uint32
	if s := r.URL.Query().Get("from"); s != "" {
		n, err := parseID(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from id")
			return
		}
		from = n
	}
	limit := parseLimit(r.URL.Query().Get("limit"))
	filter, err := query.Compile(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter: "+err.Error())
		return
	}

	entries, err := store.Scan(from, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "archive scan failed")
		return
	}
	lines := []lineJSON{}
	for _, e := range entries {
		if !filter.MatchRaw(e.ID, e.Data) {
			continue
		}
		lines = append(lines, lineJSON{ID: e.ID, Data: string(e.Data), Length: len(e.Data)})
	}
	writeJSON(w, map[string]any{"lines": lines})
}
