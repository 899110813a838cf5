package handler

import (
	"errors"
	"net/http"

	"QuickAI/internal/middleware"
	"QuickAI/internal/service"

	"github.com/gin-gonic/gin"
)

type CreationHandler struct {
	svc *service.CreationService
}

type ToggleLikeReq struct {
	CreationID uint64 `json:"creationId"`
}

func NewCreationHandler(svc *service.CreationService) *CreationHandler {
	return &CreationHandler{svc: svc}
}

// GetUserCreations 当前用户的全部作品
func (h *CreationHandler) GetUserCreations(c *gin.Context) {
	userID := middleware.UserIDFromCtx(c)
	creations, err := h.svc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load creations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "creations": creations})
}

// GetPublishedCreations 社区流，只含 publish=true
func (h *CreationHandler) GetPublishedCreations(c *gin.Context) {
	creations, err := h.svc.ListPublished(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load creations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "creations": creations})
}

// ToggleLike 点赞翻转接口
func (h *CreationHandler) ToggleLike(c *gin.Context) {
	var req ToggleLikeReq
	if err := c.ShouldBindJSON(&req); err != nil || req.CreationID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "creationId is required"})
		return
	}

	userID := middleware.UserIDFromCtx(c)
	liked, err := h.svc.ToggleLike(c.Request.Context(), req.CreationID, userID)
	if err != nil {
		if errors.Is(err, service.ErrCreationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Creation not Found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}

	message := "Creation Unliked"
	if liked {
		message = "Creation Liked"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
