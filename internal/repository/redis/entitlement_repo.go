package redis

import (
	"context"
	"errors"
	"fmt"

	"QuickAI/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	EntitlementKeyPrefix = "entitlement:user"

	fieldPlan  = "plan"
	fieldUsage = "free_usage"
	fieldEmail = "email"
)

var (
	ErrStoreUnavailable = errors.New("entitlement store unavailable")
	ErrInvalidPlan      = errors.New("invalid plan")
)

// EntitlementRepository 用户元数据存储：每人一个 hash，套餐 + 免费计数 + 可选邮箱
type EntitlementRepository struct{}

func entitlementKey(userID string) string {
	return fmt.Sprintf("%s:%s", EntitlementKeyPrefix, userID)
}

// Get 读取套餐与额度。premium 用户直接短路，完全不碰计数字段；
// free 用户计数缺失时写回 0（读路径自愈）。
func (r *EntitlementRepository) Get(ctx context.Context, userID string) (*model.Entitlement, error) {
	key := entitlementKey(userID)

	plan, err := Client.HGet(ctx, key, fieldPlan).Result()
	if errors.Is(err, redis.Nil) {
		plan = model.PlanFree
	} else if err != nil {
		return nil, ErrStoreUnavailable
	}

	if plan == model.PlanPremium {
		return &model.Entitlement{UserID: userID, Plan: model.PlanPremium}, nil
	}

	if err := Client.HSetNX(ctx, key, fieldUsage, 0).Err(); err != nil {
		return nil, ErrStoreUnavailable
	}
	usage, err := Client.HGet(ctx, key, fieldUsage).Int64()
	if err != nil {
		return nil, ErrStoreUnavailable
	}
	if usage < 0 {
		usage = 0
	}

	email, err := Client.HGet(ctx, key, fieldEmail).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, ErrStoreUnavailable
	}

	return &model.Entitlement{
		UserID:    userID,
		Plan:      model.PlanFree,
		FreeUsage: usage,
		Email:     email,
	}, nil
}

// IncrUsage 原子 +1，返回增加后的值
func (r *EntitlementRepository) IncrUsage(ctx context.Context, userID string) (int64, error) {
	n, err := Client.HIncrBy(ctx, entitlementKey(userID), fieldUsage, 1).Result()
	if err != nil {
		return 0, ErrStoreUnavailable
	}
	return n, nil
}

// Upsert 计费回调写入套餐（和可选邮箱），不动计数
func (r *EntitlementRepository) Upsert(ctx context.Context, userID, plan, email string) error {
	if plan != model.PlanFree && plan != model.PlanPremium {
		return ErrInvalidPlan
	}
	values := []any{fieldPlan, plan}
	if email != "" {
		values = append(values, fieldEmail, email)
	}
	if err := Client.HSet(ctx, entitlementKey(userID), values...).Err(); err != nil {
		return ErrStoreUnavailable
	}
	return nil
}
