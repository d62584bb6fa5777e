// Package handlers implements the HTTP endpoints of the MRM Governance
// Service: the model inventory, tiering runs, rubric configuration,
// evidence exports, and health checks.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quantgov/mrm/internal/application/dto"
	"github.com/quantgov/mrm/pkg/constants"
	"github.com/quantgov/mrm/pkg/errors"
)

func requestID(c *gin.Context) string {
	id, _ := c.Request.Context().Value(constants.ContextKeyRequestID).(string)
	return id
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.SuccessResponse(data, requestID(c)))
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.SuccessResponse(data, requestID(c)))
}

func respondError(c *gin.Context, err error) {
	c.JSON(errors.HTTPStatusOf(err), dto.ErrorResponse(err, requestID(c)))
}
