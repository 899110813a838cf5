package middleware

import (
	"context"
	"net/http"

	"QuickAI/internal/model"

	"github.com/gin-gonic/gin"
)

const ContextEntitlementKey = "entitlement"

// EntitlementResolver 准入闸门依赖
type EntitlementResolver interface {
	Resolve(ctx context.Context, userID string) (*model.Entitlement, error)
}

// EntitlementMiddleware 在 handler 之前解析 {plan, free_usage} 并挂到上下文。
// 任何元数据查询失败都按授权失败处理，请求不再继续。
func EntitlementMiddleware(resolver EntitlementResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserIDFromCtx(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
			return
		}

		ent, err := resolver.Resolve(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "entitlement lookup failed"})
			return
		}

		c.Set(ContextEntitlementKey, ent)
		c.Next()
	}
}

// EntitlementFromCtx handler 里取当前套餐
func EntitlementFromCtx(c *gin.Context) *model.Entitlement {
	if v, ok := c.Get(ContextEntitlementKey); ok {
		if ent, ok2 := v.(*model.Entitlement); ok2 {
			return ent
		}
	}
	return nil
}
