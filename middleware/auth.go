package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skillquiz/services"
)

// UserKey is the context key the resolved user record is stored under.
const UserKey = "user"

// AuthMiddleware verifies the bearer session token and resolves it to a
// stored user before any domain handler runs.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			c.Abort()
			return
		}

		user, err := authService.Authenticate(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}
