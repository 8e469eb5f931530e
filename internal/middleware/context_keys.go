package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// memberIDKey is the key used to store the authenticated member's ID.
const memberIDKey = contextKey("memberID")

// WithMemberID returns a copy of ctx carrying the authenticated member id.
func WithMemberID(ctx context.Context, memberID string) context.Context {
	return context.WithValue(ctx, memberIDKey, memberID)
}

// GetMemberIDFromContext retrieves the authenticated member ID from the Gin context.
// It returns the member ID and a boolean indicating if it was found.
func GetMemberIDFromContext(c *gin.Context) (string, bool) {
	if memberIDVal, exists := c.Get(string(memberIDKey)); exists {
		memberID, ok := memberIDVal.(string)
		return memberID, ok && memberID != ""
	}

	// check in the request context as well
	if memberID, ok := c.Request.Context().Value(memberIDKey).(string); ok && memberID != "" {
		return memberID, true
	}
	return "", false
}
