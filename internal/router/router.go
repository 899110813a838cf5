package router

import (
	"net/http"
	"time"

	"QuickAI/internal/handler"
	"QuickAI/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// InitRouter 组装全部路由。/api/ai 与 /api/user 走 认证 -> 准入闸门 两级中间件。
func InitRouter(
	ai *handler.AIHandler,
	creation *handler.CreationHandler,
	billing *handler.BillingHandler,
	resolver middleware.EntitlementResolver,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "quickai",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// 生成相关接口
	aiGroup := r.Group("/api/ai")
	aiGroup.Use(middleware.AuthMiddleware(), middleware.EntitlementMiddleware(resolver))
	{
		aiGroup.POST("/generate-article", ai.GenerateArticle)
		aiGroup.POST("/generate-blog-title", ai.GenerateBlogTitle)
		aiGroup.POST("/generate-image", ai.GenerateImage)
		aiGroup.POST("/remove-image-background", ai.RemoveImageBackground)
		aiGroup.POST("/remove-image-object", ai.RemoveImageObject)
		aiGroup.POST("/review-resume", ai.ReviewResume)
	}

	// 作品与社区流接口
	userGroup := r.Group("/api/user")
	userGroup.Use(middleware.AuthMiddleware(), middleware.EntitlementMiddleware(resolver))
	{
		userGroup.GET("/get-user-creations", creation.GetUserCreations)
		userGroup.GET("/get-published-creations", creation.GetPublishedCreations)
		userGroup.POST("/toggle-like-creations", creation.ToggleLike)
	}

	// 计费回调，共享密钥鉴权
	billingGroup := r.Group("/api/billing")
	{
		billingGroup.POST("/plan", billing.UpdatePlan)
	}

	return r
}
