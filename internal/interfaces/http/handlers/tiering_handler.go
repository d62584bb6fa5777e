package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/quantgov/mrm/internal/application/dto"
	appservice "github.com/quantgov/mrm/internal/application/service"
)

// TieringHandler serves the risk-tiering endpoints.
type TieringHandler struct {
	tiering *appservice.TieringAppService
}

// NewTieringHandler creates a TieringHandler.
func NewTieringHandler(tiering *appservice.TieringAppService) *TieringHandler {
	return &TieringHandler{tiering: tiering}
}

// RunTiering handles POST /api/v1/models/:model_id/tiering. Every call
// appends a new record; earlier records are never modified.
func (h *TieringHandler) RunTiering(c *gin.Context) {
	record, err := h.tiering.PerformTiering(c.Request.Context(), c.Param("model_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, dto.NewTieringResult(record))
}

// GetLatestTiering handles GET /api/v1/models/:model_id/tiering/latest.
func (h *TieringHandler) GetLatestTiering(c *gin.Context) {
	record, err := h.tiering.GetLatestTiering(c.Request.Context(), c.Param("model_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, dto.NewTieringResult(record))
}

// GetTieringHistory handles GET /api/v1/models/:model_id/tiering, newest
// record first.
func (h *TieringHandler) GetTieringHistory(c *gin.Context) {
	records, err := h.tiering.GetTieringHistory(c.Request.Context(), c.Param("model_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, dto.NewTieringResults(records))
}
