// Package middleware provides the Gin middleware of the HTTP surface:
// request correlation, observability, and rubric-editor authentication.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quantgov/mrm/pkg/constants"
)

// RequestIDHeader is the correlation header honored and echoed by the API.
const RequestIDHeader = "X-Request-ID"

// RequestID propagates the client's correlation id, or assigns one, and
// places it on the request context so log entries carry it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(c.Request.Context(), constants.ContextKeyRequestID, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}
