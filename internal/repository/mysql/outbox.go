package mysql

import (
	"context"
	"encoding/json"
	"time"

	"QuickAI/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// insertOutbox 与业务写入同事务落事件，保证台账变更必有事件
func insertOutbox(tx *gorm.DB, eventType, userID string, creationID uint64) error {
	payload, err := json.Marshal(map[string]any{
		"event":       eventType,
		"user_id":     userID,
		"creation_id": creationID,
		"ts":          time.Now().Unix(),
	})
	if err != nil {
		return err
	}
	return tx.Create(&model.CreationOutbox{
		EventType:  eventType,
		UserID:     userID,
		CreationID: creationID,
		Payload:    string(payload),
	}).Error
}

// ListPending 按写入顺序取待投递事件
func (r *OutboxRepository) ListPending(ctx context.Context, limit int) ([]model.CreationOutbox, error) {
	var rows []model.CreationOutbox
	err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).
		Model(&model.CreationOutbox{}).
		Where("id = ?", id).
		Update("status", 1).Error
}

// MarkRetry 失败计数+1，超过 maxRetry 标记为 failed 不再投递
func (r *OutboxRepository) MarkRetry(ctx context.Context, id uint64, maxRetry int) error {
	return r.DB.WithContext(ctx).
		Model(&model.CreationOutbox{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"retry":  gorm.Expr("retry + 1"),
			"status": gorm.Expr("CASE WHEN retry + 1 >= ? THEN 2 ELSE 0 END", maxRetry),
		}).Error
}
