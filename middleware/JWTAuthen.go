package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tasktracker/model"
)

const (
	ClaimsKey = "claims"
	UserIDKey = "userId"
)

// TokenVerifier checks a bearer token and returns the claims it carries.
type TokenVerifier interface {
	Verify(token string) (*model.Claims, error)
}

// AccessTokenMiddleware rejects requests without a valid bearer token and
// stores the claims and user id on the context.
func AccessTokenMiddleware(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Request.Header.Get("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := tokens.Verify(strings.TrimSpace(tokenString))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// Claims returns what AccessTokenMiddleware stored on the context.
func Claims(c *gin.Context) *model.Claims {
	return c.MustGet(ClaimsKey).(*model.Claims)
}

func UserID(c *gin.Context) string {
	return c.MustGet(UserIDKey).(string)
}
