package rbac

import (
	"net/http"

	"finance-dashboard/internal/auth"
	"finance-dashboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

const msgForbidden = "Insufficient permissions"

// RequireRole restricts a route group to one role. It runs after the
// authentication gate; a request with no identity in context is treated
// as unauthenticated, not forbidden.
func RequireRole(role string) gin.HandlerFunc {
	return RequireAnyRole(role)
}

// RequireAnyRole allows any of the given roles.
func RequireAnyRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		id, err := auth.IdentityFrom(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authentication token"})
			return
		}
		if _, ok := allowed[id.Role]; !ok {
			logger.FromGin(c).Warn("role rejected", "role", id.Role, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msgForbidden})
			return
		}
		c.Next()
	}
}
