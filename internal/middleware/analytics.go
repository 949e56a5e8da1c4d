package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/keluargaku/keluargaku_app/internal/utils"
)

// pathsToSkip contains paths that should not be tracked.
var pathsToSkip = map[string]bool{
	"/health":        true,
	"/api/v1/events": true, // long-lived SSE connections, not discrete actions
}

// AnalyticsMiddleware creates a Gin middleware that tracks successful API
// calls with PostHog. No-op when the client is not configured.
func AnalyticsMiddleware(client *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !client.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		client.Enqueue(userID, eventName, map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		})
	}
}
