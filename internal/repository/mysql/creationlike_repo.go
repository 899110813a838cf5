package mysql

import (
	"context"
	"errors"

	"QuickAI/internal/model"

	"gorm.io/gorm"
)

type CreationLikeRepository struct {
	DB *gorm.DB
}

// Toggle 点赞翻转：有则删、无则插，整个翻转在一个事务里完成。
// 点赞按 (creation_id, user_id) 一行建模，唯一索引兜底去重，
// 不同用户的并发切换互不触碰对方的行，不存在整组覆盖丢更新的问题。
func (r *CreationLikeRepository) Toggle(ctx context.Context, creationID uint64, userID string) (bool, error) {
	var liked bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c model.Creation
		if err := tx.First(&c, "id = ?", creationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCreationNotFound
			}
			return err
		}

		var cl model.CreationLike
		err := tx.Where("creation_id = ? AND user_id = ?", creationID, userID).First(&cl).Error
		switch {
		case err == nil:
			// 已点赞 -> 取消
			if err := tx.Delete(&cl).Error; err != nil {
				return err
			}
			liked = false
			return insertOutbox(tx, model.EventCreationUnliked, userID, creationID)
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&model.CreationLike{CreationID: creationID, UserID: userID}).Error; err != nil {
				return err
			}
			liked = true
			return insertOutbox(tx, model.EventCreationLiked, userID, creationID)
		default:
			return err
		}
	})
	return liked, err
}

func (r *CreationLikeRepository) Count(ctx context.Context, creationID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.CreationLike{}).
		Where("creation_id = ?", creationID).
		Count(&n).Error
	return n, err
}

func (r *CreationLikeRepository) IsLiked(ctx context.Context, creationID uint64, userID string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.CreationLike{}).
		Where("creation_id = ? AND user_id = ?", creationID, userID).
		Count(&n).Error
	return n > 0, err
}
