package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/quantgov/mrm/internal/application/dto"
	"github.com/quantgov/mrm/pkg/constants"
	"github.com/quantgov/mrm/pkg/errors"
	"github.com/quantgov/mrm/pkg/logger"
)

// extractBearer extracts the token from the Authorization header.
func extractBearer(authHeader string) string {
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// RequireRole protects a route with an HS256 bearer token carrying the
// given role claim. The token subject becomes the request actor, recorded
// on the audit trail by downstream handlers.
func RequireRole(secret, role string, log logger.Logger) gin.HandlerFunc {
	authLog := log.WithComponent("auth")
	return func(c *gin.Context) {
		tokenStr := extractBearer(c.Request.Header.Get("Authorization"))
		if tokenStr == "" {
			abortWith(c, errors.ErrUnauthorized.WithMessage("missing bearer token"))
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			authLog.Warn(c.Request.Context(), "token verification failed", logger.Error(err))
			abortWith(c, errors.ErrUnauthorized.WithMessage("invalid token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, errors.ErrUnauthorized.WithMessage("invalid token claims"))
			return
		}

		if tokenRole, _ := claims["role"].(string); tokenRole != role {
			authLog.Warn(c.Request.Context(), "token lacks required role",
				logger.String("required_role", role))
			abortWith(c, errors.ErrForbidden.WithMessage("role %q required", role))
			return
		}

		if subject, _ := claims["sub"].(string); subject != "" {
			ctx := context.WithValue(c.Request.Context(), constants.ContextKeyActor, subject)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// Actor returns the authenticated principal on the request, if any.
func Actor(c *gin.Context) string {
	actor, _ := c.Request.Context().Value(constants.ContextKeyActor).(string)
	return actor
}

func abortWith(c *gin.Context, err *errors.AppError) {
	requestID, _ := c.Request.Context().Value(constants.ContextKeyRequestID).(string)
	c.AbortWithStatusJSON(err.HTTPStatus, dto.ErrorResponse(err, requestID))
}
