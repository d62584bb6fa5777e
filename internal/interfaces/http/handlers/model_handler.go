package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/quantgov/mrm/internal/application/dto"
	appservice "github.com/quantgov/mrm/internal/application/service"
	"github.com/quantgov/mrm/pkg/errors"
)

// ModelHandler serves the model inventory endpoints.
type ModelHandler struct {
	inventory *appservice.InventoryAppService
}

// NewModelHandler creates a ModelHandler.
func NewModelHandler(inventory *appservice.InventoryAppService) *ModelHandler {
	return &ModelHandler{inventory: inventory}
}

// RegisterModel handles POST /api/v1/models. It stores the model and runs
// the initial tiering assessment in the same call.
func (h *ModelHandler) RegisterModel(c *gin.Context) {
	var req dto.RegisterModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.ErrValidation.WithMessage("malformed request body").WithError(err))
		return
	}

	model, record, err := h.inventory.RegisterModel(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, gin.H{
		"model":   model,
		"tiering": dto.NewTieringResult(record),
	})
}

// GetModel handles GET /api/v1/models/:model_id.
func (h *ModelHandler) GetModel(c *gin.Context) {
	model, err := h.inventory.GetModel(c.Request.Context(), c.Param("model_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, model)
}

// ListModels handles GET /api/v1/models. Models that have never been tiered
// appear with null score and tier.
func (h *ModelHandler) ListModels(c *gin.Context) {
	summaries, err := h.inventory.ListModels(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, summaries)
}
