package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/dropout-watch-api/internal/models"
)

const contextUserKey = "auth_user"

// Authenticator resolves an opaque bearer token to the account it belongs
// to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Auth guards a route group behind bearer-token authentication. The
// failure envelope distinguishes a missing token from a bad one, matching
// the session-check contract the frontend relies on.
func Auth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "No token provided",
			})
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid token",
			})
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// RequireAdmin rejects non-admin accounts. It must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || user.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Admin access required",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated account stored by Auth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// BearerToken extracts the token from the Authorization header. A bare
// token without the Bearer prefix is accepted too.
func BearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
