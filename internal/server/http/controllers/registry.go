package controllers

import (
	"net/http"

	"github.com/rzbill/flexbuf/internal/runtime"
	logpkg "github.com/rzbill/flexbuf/pkg/log"
)

// ControllerRegistry manages all HTTP controllers.
//
// It provides a centralized way to register all controller routes
// and manages the lifecycle of individual controllers.
type ControllerRegistry struct {
	general *GeneralController
	lines   *LinesController
	archive *ArchiveController
}

// NewControllerRegistry creates a new controller registry.
func NewControllerRegistry(rt *runtime.Runtime, logger logpkg.Logger) *ControllerRegistry {
	return &ControllerRegistry{
		general: NewGeneralController(rt),
		lines:   NewLinesController(rt, logger),
		archive: NewArchiveController(rt),
	}
}

// RegisterAllRoutes registers all controller routes with the given mux.
//
// This sets up the health, stats and debug endpoints, the line
// write/read endpoints, and the archive endpoints.
func (r *ControllerRegistry) RegisterAllRoutes(mux *http.ServeMux) {
	r.general.RegisterRoutes(mux)
	r.lines.RegisterRoutes(mux)
	r.archive.RegisterRoutes(mux)
}
