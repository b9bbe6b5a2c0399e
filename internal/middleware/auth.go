package middleware

import (
	"net/http"
	"strings"

	"homeservice/internal/domain"
	jwtsvc "homeservice/internal/pkg/jwt"
	"homeservice/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// Auth validates the bearer token and resolves the current actor into
// the request context. The role claim is parsed into the typed Role set
// exactly once here; handlers and services never see raw role strings.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			abortUnauthorized(c, "Missing Authorization header")
			return
		}
		if !strings.HasPrefix(h, "Bearer ") {
			abortUnauthorized(c, "Invalid Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			abortUnauthorized(c, "Empty token")
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		role, ok := domain.ParseRole(claims.Role)
		if !ok {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(actorKey, domain.Actor{ID: claims.UserID, Role: role})
		c.Set("user_id", claims.UserID)
		c.Set("role", role.String())

		c.Next()
	}
}

// CurrentActor returns the actor resolved by Auth, if any.
func CurrentActor(c *gin.Context) (domain.Actor, bool) {
	v, exists := c.Get(actorKey)
	if !exists {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
	c.Abort()
}
