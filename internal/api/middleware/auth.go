package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	apiKeyHeader = "X-API-Key"
	bearerPrefix = "Bearer "
)

// Auth guards the API with a shared access key. An empty key disables the
// guard, the default for local single-user deployments.
func Auth(accessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if accessKey == "" {
			c.Next()
			return
		}

		if clientKey(c) != accessKey {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// clientKey reads the caller's key from X-API-Key, falling back to a bearer
// token.
func clientKey(c *gin.Context) string {
	if key := c.GetHeader(apiKeyHeader); key != "" {
		return key
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, bearerPrefix) {
		return strings.TrimPrefix(auth, bearerPrefix)
	}
	return ""
}
