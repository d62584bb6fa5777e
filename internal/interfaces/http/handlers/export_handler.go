package handlers

import (
	"github.com/gin-gonic/gin"

	appservice "github.com/quantgov/mrm/internal/application/service"
	"github.com/quantgov/mrm/internal/interfaces/http/middleware"
)

// ExportHandler serves the evidence export endpoint.
type ExportHandler struct {
	export *appservice.ExportAppService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(export *appservice.ExportAppService) *ExportHandler {
	return &ExportHandler{export: export}
}

// RunExport handles POST /api/v1/reports/export. It writes a fresh evidence
// bundle and returns the run id and artifact hashes.
func (h *ExportHandler) RunExport(c *gin.Context) {
	bundle, err := h.export.RunExport(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, gin.H{
		"run_id":    bundle.RunID,
		"dir":       bundle.Dir,
		"artifacts": bundle.Artifacts,
	})
}
