package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"QuickAI/internal/middleware"
	"QuickAI/internal/pkg"
	"QuickAI/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type AIHandler struct {
	svc       *service.GenerationService
	uploadDir string
	maxUpload int64
	log       zerolog.Logger
}

type GenerateArticleReq struct {
	Prompt string `json:"prompt"`
	Length int    `json:"length"`
}

type GenerateBlogTitleReq struct {
	Prompt string `json:"prompt"`
}

type GenerateImageReq struct {
	Prompt  string `json:"prompt"`
	Publish bool   `json:"publish"`
}

func NewAIHandler(svc *service.GenerationService, uploadDir string, maxUpload int64, log zerolog.Logger) *AIHandler {
	return &AIHandler{svc: svc, uploadDir: uploadDir, maxUpload: maxUpload, log: log}
}

// GenerateArticle 文章生成接口
func (h *AIHandler) GenerateArticle(c *gin.Context) {
	var req GenerateArticleReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" || req.Length <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Prompt and length are required."})
		return
	}

	ent := middleware.EntitlementFromCtx(c)
	content, err := h.svc.GenerateArticle(c.Request.Context(), ent, req.Prompt, req.Length)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "content": content})
}

// GenerateBlogTitle 博客标题生成接口
func (h *AIHandler) GenerateBlogTitle(c *gin.Context) {
	var req GenerateBlogTitleReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Prompt is required."})
		return
	}

	ent := middleware.EntitlementFromCtx(c)
	content, err := h.svc.GenerateBlogTitle(c.Request.Context(), ent, req.Prompt)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "content": content})
}

// GenerateImage 文生图接口
func (h *AIHandler) GenerateImage(c *gin.Context) {
	var req GenerateImageReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Prompt is required."})
		return
	}

	ent := middleware.EntitlementFromCtx(c)
	url, err := h.svc.GenerateImage(c.Request.Context(), ent, req.Prompt, req.Publish)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "content": url})
}

// RemoveImageBackground 背景移除接口，file 字段名 image
func (h *AIHandler) RemoveImageBackground(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No image file provided"})
		return
	}

	path, err := h.saveUpload(c, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "upload failed"})
		return
	}
	defer h.svc.CleanupUpload(path)

	ent := middleware.EntitlementFromCtx(c)
	url, err := h.svc.RemoveBackground(c.Request.Context(), ent, path)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "content": url})
}

// RemoveImageObject 物体擦除接口，file 字段名 image + 表单字段 object
func (h *AIHandler) RemoveImageObject(c *gin.Context) {
	object := c.PostForm("object")
	if object == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Object to remove is required."})
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image file is required."})
		return
	}

	path, err := h.saveUpload(c, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "upload failed"})
		return
	}
	defer h.svc.CleanupUpload(path)

	ent := middleware.EntitlementFromCtx(c)
	url, err := h.svc.RemoveObject(c.Request.Context(), ent, path, object)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "content": url})
}

// ReviewResume 简历点评接口，file 字段名 resume，限 5MB
func (h *AIHandler) ReviewResume(c *gin.Context) {
	file, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Resume file is required."})
		return
	}
	if file.Size > h.maxUpload {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Resume file size exceeds allowed size (5MB)."})
		return
	}

	path, err := h.saveUpload(c, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "upload failed"})
		return
	}
	defer h.svc.CleanupUpload(path)

	ent := middleware.EntitlementFromCtx(c)
	content, err := h.svc.ReviewResume(c.Request.Context(), ent, path)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "content": content})
}

// saveUpload 落到上传目录的随机文件名，调用方负责清理
func (h *AIHandler) saveUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	name, err := pkg.RandHex(16)
	if err != nil {
		return "", err
	}
	path := filepath.Join(h.uploadDir, name+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}

// fail 业务错误到状态码的统一映射
func (h *AIHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrQuotaExceeded), errors.Is(err, service.ErrPremiumRequired):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Limit reached. Please upgrade to premium."})
	case errors.Is(err, service.ErrUpstream):
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate content."})
	default:
		// 细节只进日志，不回给客户端
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
	}
}
