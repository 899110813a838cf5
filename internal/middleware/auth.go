package middleware

import (
	"net/http"
	"strings"

	"QuickAI/internal/pkg"

	"github.com/gin-gonic/gin"
)

const ContextUserIDKey = "user_id"

// AuthMiddleware 解析 Bearer 身份令牌，注入 user_id（身份提供方的不透明ID）
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid authorization format"})
			return
		}

		claims, err := pkg.ParseAccess(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// UserIDFromCtx handler 里取当前用户
func UserIDFromCtx(c *gin.Context) string {
	if v, ok := c.Get(ContextUserIDKey); ok {
		if id, ok2 := v.(string); ok2 {
			return id
		}
	}
	return ""
}
