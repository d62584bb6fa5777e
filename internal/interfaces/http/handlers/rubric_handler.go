package handlers

import (
	"github.com/gin-gonic/gin"

	appservice "github.com/quantgov/mrm/internal/application/service"
	"github.com/quantgov/mrm/internal/domain/models"
	"github.com/quantgov/mrm/internal/interfaces/http/middleware"
	"github.com/quantgov/mrm/pkg/errors"
)

// RubricHandler serves the rubric configuration endpoints.
type RubricHandler struct {
	rubric *appservice.RubricAppService
}

// NewRubricHandler creates a RubricHandler.
func NewRubricHandler(rubric *appservice.RubricAppService) *RubricHandler {
	return &RubricHandler{rubric: rubric}
}

// GetRubric handles GET /api/v1/rubric.
func (h *RubricHandler) GetRubric(c *gin.Context) {
	respondOK(c, h.rubric.ActiveRubric())
}

// ReplaceRubric handles PUT /api/v1/rubric. The submitted rubric replaces
// the active one wholesale after validation; on failure the previous rubric
// stays in force. Stored tiering records are never rescored.
func (h *RubricHandler) ReplaceRubric(c *gin.Context) {
	var candidate models.Rubric
	if err := c.ShouldBindJSON(&candidate); err != nil {
		respondError(c, errors.ErrValidation.WithMessage("malformed rubric body").WithError(err))
		return
	}

	if err := h.rubric.Replace(c.Request.Context(), &candidate, middleware.Actor(c)); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, h.rubric.ActiveRubric())
}
