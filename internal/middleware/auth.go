package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"launchsite-backend/internal/redis"
	"launchsite-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired gates the admin routes. The bearer token must parse and
// the matching session must still exist in redis, so a logout
// invalidates tokens immediately.
func AuthRequired(redisClient *redis.Client, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if redisClient != nil {
			sessionKey := SessionKey(claims.AdminID)
			exists, err := redisClient.Exists(c.Request.Context(), sessionKey)
			if err != nil || exists == 0 {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
				c.Abort()
				return
			}
		}

		c.Set("admin_id", claims.AdminID)
		c.Set("admin_email", claims.Email)
		c.Next()
	}
}

func SessionKey(adminID uint) string {
	return fmt.Sprintf("admin_session:%d", adminID)
}
