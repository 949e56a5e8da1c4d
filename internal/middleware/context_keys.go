package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the
// request context.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user ID set by the auth
// middleware. The second return value reports whether it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := v.(string); ok {
			return userID, true
		}
		return "", false
	}
	if v := c.Request.Context().Value(userIDKey); v != nil {
		if userID, ok := v.(string); ok {
			return userID, true
		}
	}
	return "", false
}

// WithUserID returns a context carrying the authenticated user ID. Exposed
// for tests that exercise handlers without the middleware chain.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
