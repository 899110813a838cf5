package handler

import (
	"net/http"

	"QuickAI/internal/model"
	"QuickAI/internal/service"

	"github.com/gin-gonic/gin"
)

// BillingHandler 计费回调：套餐变更由外部计费方通过共享密钥推送
type BillingHandler struct {
	svc    *service.EntitlementService
	secret string
}

type UpdatePlanReq struct {
	UserID string `json:"userId"`
	Plan   string `json:"plan"`
	Email  string `json:"email"`
}

func NewBillingHandler(svc *service.EntitlementService, secret string) *BillingHandler {
	return &BillingHandler{svc: svc, secret: secret}
}

func (h *BillingHandler) UpdatePlan(c *gin.Context) {
	if h.secret == "" || c.GetHeader("X-Billing-Secret") != h.secret {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	var req UpdatePlanReq
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "userId and plan are required"})
		return
	}
	if req.Plan != model.PlanFree && req.Plan != model.PlanPremium {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "plan must be free or premium"})
		return
	}

	if err := h.svc.SetPlan(c.Request.Context(), req.UserID, req.Plan, req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update plan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "plan updated"})
}
