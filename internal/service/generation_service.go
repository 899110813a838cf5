package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"QuickAI/internal/ai"
	"QuickAI/internal/model"
	"QuickAI/internal/pkg"
	"QuickAI/internal/storage"

	"github.com/rs/zerolog"
)

var ErrUpstream = errors.New("upstream generation failed")

// CreationStore 生成产物台账写入口
type CreationStore interface {
	Create(ctx context.Context, c *model.Creation) error
}

// GenerationService 生成编排：额度校验 -> 外部模型 -> 台账 -> 计费
type GenerationService struct {
	chat     ai.ChatClient
	image    ai.ImageClient
	uploader storage.Uploader
	ledger   CreationStore
	ents     *EntitlementService
	log      zerolog.Logger
}

func NewGenerationService(chat ai.ChatClient, image ai.ImageClient, uploader storage.Uploader, ledger CreationStore, ents *EntitlementService, log zerolog.Logger) *GenerationService {
	return &GenerationService{
		chat:     chat,
		image:    image,
		uploader: uploader,
		ledger:   ledger,
		ents:     ents,
		log:      log,
	}
}

// GenerateArticle 文章生成，length 作为 max_tokens 透传
func (s *GenerationService) GenerateArticle(ctx context.Context, ent *model.Entitlement, prompt string, length int) (string, error) {
	if err := s.ents.CheckQuota(ent); err != nil {
		return "", err
	}
	content, err := s.chat.Complete(ctx, prompt, length)
	if err != nil || content == "" {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	creation := &model.Creation{
		UserID:  ent.UserID,
		Prompt:  prompt,
		Content: content,
		Type:    model.TypeArticle,
	}
	if err := s.ledger.Create(ctx, creation); err != nil {
		return "", err
	}
	s.ents.Charge(ctx, ent)
	return content, nil
}

// GenerateBlogTitle 博客标题生成，固定 100 token
func (s *GenerationService) GenerateBlogTitle(ctx context.Context, ent *model.Entitlement, prompt string) (string, error) {
	if err := s.ents.CheckQuota(ent); err != nil {
		return "", err
	}
	content, err := s.chat.Complete(ctx, prompt, 100)
	if err != nil || content == "" {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	creation := &model.Creation{
		UserID:  ent.UserID,
		Prompt:  prompt,
		Content: content,
		Type:    model.TypeBlogArticle,
	}
	if err := s.ledger.Create(ctx, creation); err != nil {
		return "", err
	}
	s.ents.Charge(ctx, ent)
	return content, nil
}

// GenerateImage 文生图（premium）：ClipDrop 出图，上传对象存储后记 URL
func (s *GenerationService) GenerateImage(ctx context.Context, ent *model.Entitlement, prompt string, publish bool) (string, error) {
	if err := s.ents.RequirePremium(ent); err != nil {
		return "", err
	}
	data, err := s.image.TextToImage(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	res, err := s.uploader.UploadBytes(ctx, data, "", "")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	creation := &model.Creation{
		UserID:  ent.UserID,
		Prompt:  prompt,
		Content: res.SecureURL,
		Type:    model.TypeImage,
		Publish: publish,
	}
	if err := s.ledger.Create(ctx, creation); err != nil {
		return "", err
	}
	return res.SecureURL, nil
}

// RemoveBackground 背景移除（premium）：整个"算法"就是存储侧的一次转换上传
func (s *GenerationService) RemoveBackground(ctx context.Context, ent *model.Entitlement, filePath string) (string, error) {
	if err := s.ents.RequirePremium(ent); err != nil {
		return "", err
	}
	res, err := s.uploader.UploadFile(ctx, filePath, "e_background_removal", "png")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	creation := &model.Creation{
		UserID:  ent.UserID,
		Prompt:  "Remove background from image",
		Content: res.SecureURL,
		Type:    model.TypeImage,
	}
	if err := s.ledger.Create(ctx, creation); err != nil {
		return "", err
	}
	return res.SecureURL, nil
}

// RemoveObject 物体擦除（premium）：原图上传后产出带 gen_remove 转换的下发 URL
func (s *GenerationService) RemoveObject(ctx context.Context, ent *model.Entitlement, filePath, object string) (string, error) {
	if err := s.ents.RequirePremium(ent); err != nil {
		return "", err
	}
	res, err := s.uploader.UploadFile(ctx, filePath, "", "")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	url, err := s.uploader.DeliveryURL(res.PublicID, "e_gen_remove:"+object)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	creation := &model.Creation{
		UserID:  ent.UserID,
		Prompt:  fmt.Sprintf("Removed %s from image", object),
		Content: url,
		Type:    model.TypeImage,
	}
	if err := s.ledger.Create(ctx, creation); err != nil {
		return "", err
	}
	return url, nil
}

// ReviewResume 简历点评（premium）：抽取 PDF 文本后交给模型
func (s *GenerationService) ReviewResume(ctx context.Context, ent *model.Entitlement, filePath string) (string, error) {
	if err := s.ents.RequirePremium(ent); err != nil {
		return "", err
	}
	text, err := pkg.ExtractPDFText(filePath)
	if err != nil {
		return "", fmt.Errorf("parse resume: %w", err)
	}
	prompt := fmt.Sprintf("Review the following resume and provide constructive feedback on its strength, weaknesses, and area of improvement. Resume Content:\n\n%s", text)
	content, err := s.chat.Complete(ctx, prompt, 1000)
	if err != nil || content == "" {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	creation := &model.Creation{
		UserID:  ent.UserID,
		Prompt:  "Review the uploaded resume",
		Content: content,
		Type:    model.TypeResumeReview,
	}
	if err := s.ledger.Create(ctx, creation); err != nil {
		return "", err
	}
	return content, nil
}

// CleanupUpload 请求结束后删除临时上传文件，成功失败路径都走
func (s *GenerationService) CleanupUpload(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Str("path", path).Msg("temp upload cleanup failed")
	}
}
