package middleware

import (
	"net/http"
	"strings"

	"hospital-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CallerKey is the gin context key holding the authenticated caller principal.
const CallerKey = "callerID"

// AuthMiddleware validates the bearer token from the Authorization header and
// injects the caller principal. Who the principal is able to act as is decided
// later by the access service; this layer only establishes identity.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Extract token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		// Check Bearer prefix
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization format. Use: Bearer <token>")
			c.Abort()
			return
		}

		principal, err := utils.ValidateToken(parts[1])
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(CallerKey, principal)
		c.Next()
	}
}
