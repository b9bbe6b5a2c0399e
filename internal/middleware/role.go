package middleware

import (
	"net/http"

	"homeservice/internal/domain"
	"homeservice/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures the authenticated actor holds the given role.
// Comparison is on the typed Role, never on raw strings.
func RequireRole(required domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		if actor.Role != required {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
