package service

import (
	"context"
	"errors"

	"QuickAI/internal/model"
	"QuickAI/internal/repository/mysql"
)

var ErrCreationNotFound = mysql.ErrCreationNotFound

// CreationService 台账读取与点赞切换
type CreationService struct {
	repo  *mysql.CreationRepository
	likes *mysql.CreationLikeRepository
}

func NewCreationService(repo *mysql.CreationRepository, likes *mysql.CreationLikeRepository) *CreationService {
	return &CreationService{repo: repo, likes: likes}
}

func (s *CreationService) ListByUser(ctx context.Context, userID string) ([]model.Creation, error) {
	if userID == "" {
		return nil, errors.New("invalid user id")
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *CreationService) ListPublished(ctx context.Context) ([]model.Creation, error) {
	return s.repo.ListPublished(ctx)
}

// ToggleLike 翻转点赞状态，返回翻转后是否已赞。连续调用两次回到原状态（非幂等，有意为之）。
func (s *CreationService) ToggleLike(ctx context.Context, creationID uint64, userID string) (bool, error) {
	if creationID == 0 || userID == "" {
		return false, errors.New("invalid id")
	}
	return s.likes.Toggle(ctx, creationID, userID)
}
