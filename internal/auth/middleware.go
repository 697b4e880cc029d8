package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"finance-dashboard/pkg/logger"
	"finance-dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

const (
	msgMissingToken = "Missing authentication token"
	msgInvalidToken = "Invalid or expired token"
)

// UserResolver resolves a verified token subject to a live identity.
// It must fail for unknown and for disabled accounts alike.
type UserResolver interface {
	ResolveSubject(ctx context.Context, email string) (Identity, error)
}

// Gate is the per-request authentication filter.
//
// Public paths pass through without token inspection. Everything else must
// carry "Authorization: Bearer <access token>"; the gate verifies the token,
// resolves the subject to a live user, and attaches the identity to the
// request context exactly once. Rejections write the JSON error body
// directly and short-circuit the chain.
func Gate(m *Manager, users UserResolver, public *PathMatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if public.IsPublic(path) {
			c.Next()
			return
		}

		raw := strings.TrimSpace(c.GetHeader(authorizationHeader))
		if raw == "" || !strings.HasPrefix(raw, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgMissingToken})
			return
		}
		tok := strings.TrimPrefix(raw, bearerPrefix)

		subject, err := m.Verify(tok, time.Now())
		if err != nil {
			logger.FromGin(c).Warn("token rejected", "path", path, "token", utils.MaskToken(tok))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgInvalidToken})
			return
		}

		id, err := users.ResolveSubject(c.Request.Context(), subject)
		if err != nil {
			// Deliberately the same body as a bad signature; the subject's
			// existence must not be observable from the outside.
			logger.FromGin(c).Warn("subject rejected", "path", path, "subject", utils.MaskEmail(subject))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgInvalidToken})
			return
		}

		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}
