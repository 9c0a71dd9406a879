package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gracepath/core/internal/pkg/jwt"
	"github.com/gracepath/core/internal/pkg/ratelimit"
	"github.com/gracepath/core/internal/pkg/response"
)

const ContextKeyUserID = "user_id"

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jwt.Parse(extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, claims.SubjectID())
		c.Next()
	}
}

// OptionalAuth sets the user ID if a valid token is present, but does not block the request.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if claims, err := jwt.Parse(token); err == nil {
				c.Set(ContextKeyUserID, claims.SubjectID())
			}
		}
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

// IsAuthenticated returns true if the request has a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

// Subject returns the rate limit subject of the request: the user when
// authenticated, the client address otherwise.
func Subject(c *gin.Context) ratelimit.Subject {
	if id := CurrentUserID(c); id != "" {
		return ratelimit.UserSubject(id)
	}
	return ratelimit.AnonymousSubject(c.ClientIP())
}

func extractToken(c *gin.Context) string {
	return NormalizeToken(c.GetHeader("Authorization"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
