package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mikeandholly/wedding-api/rules"
	"github.com/mikeandholly/wedding-api/utils"
)

const identityKey = "identity"

// AuthMiddleware validates the Bearer token and stashes the caller's
// identity on the context. Requests without a valid token never reach a
// handler.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}

		claims, err := utils.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(identityKey, rules.Identity{Email: claims.Email, Admin: claims.Admin})
		c.Next()
	}
}

// GetIdentity returns the authenticated identity set by AuthMiddleware.
// The zero Identity is returned on unauthenticated contexts and fails
// every access rule.
func GetIdentity(c *gin.Context) rules.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(rules.Identity); ok {
			return id
		}
	}
	return rules.Identity{}
}
