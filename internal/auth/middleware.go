package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	headerAPIKey        = "X-API-Key"
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
)

// RequireAPIKey guards every endpoint except the health check. A request
// passes with either the shared secret in X-API-Key or, when a Manager is
// configured, a bearer token previously issued by the token exchange.
func RequireAPIKey(apiKey string, m *Manager) gin.HandlerFunc {
	secret := []byte(apiKey)

	return func(c *gin.Context) {
		if key := c.GetHeader(headerAPIKey); key != "" {
			if subtle.ConstantTimeCompare([]byte(key), secret) == 1 {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		if raw := strings.TrimSpace(c.GetHeader(authorizationHeader)); raw != "" && m != nil {
			if !strings.HasPrefix(raw, bearerPrefix) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
				return
			}
			if _, err := m.Verify(strings.TrimPrefix(raw, bearerPrefix), time.Now()); err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
	}
}
