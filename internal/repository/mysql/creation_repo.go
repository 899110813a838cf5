package mysql

import (
	"context"
	"errors"

	"QuickAI/internal/model"

	"gorm.io/gorm"
)

var ErrCreationNotFound = errors.New("creation not found")

type CreationRepository struct {
	DB *gorm.DB
}

// Create 落台账并在同事务写 outbox 事件
func (r *CreationRepository) Create(ctx context.Context, c *model.Creation) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return insertOutbox(tx, model.EventCreationCreated, c.UserID, c.ID)
	})
}

func (r *CreationRepository) FindByID(ctx context.Context, id uint64) (*model.Creation, error) {
	var c model.Creation
	err := r.DB.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCreationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByUser 用户个人作品，时间倒序
func (r *CreationRepository) ListByUser(ctx context.Context, userID string) ([]model.Creation, error) {
	var list []model.Creation
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	if err := r.attachLikes(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListPublished 社区流：只返回 publish=true，时间倒序
func (r *CreationRepository) ListPublished(ctx context.Context) ([]model.Creation, error) {
	var list []model.Creation
	err := r.DB.WithContext(ctx).
		Where("publish = ?", true).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	if err := r.attachLikes(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachLikes 批量填充 likes 字段（按点赞时间排序的用户ID数组）
func (r *CreationRepository) attachLikes(ctx context.Context, list []model.Creation) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(list))
	for i := range list {
		list[i].Likes = []string{}
		ids = append(ids, list[i].ID)
	}
	var rows []model.CreationLike
	err := r.DB.WithContext(ctx).
		Where("creation_id IN ?", ids).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return err
	}
	byCreation := make(map[uint64][]string, len(list))
	for _, row := range rows {
		byCreation[row.CreationID] = append(byCreation[row.CreationID], row.UserID)
	}
	for i := range list {
		if likes, ok := byCreation[list[i].ID]; ok {
			list[i].Likes = likes
		}
	}
	return nil
}
