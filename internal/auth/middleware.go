package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userIDKey = "auth.userID"

// Middleware rejects requests without a valid bearer token and stores the
// caller's id on the gin context.
func Middleware(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token provided"})
			return
		}

		id, err := issuer.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "Invalid token"})
			return
		}

		c.Set(userIDKey, id)
		c.Next()
	}
}

// UserID returns the id set by Middleware.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
