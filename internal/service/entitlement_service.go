package service

import (
	"context"
	"errors"

	"QuickAI/internal/model"
	"QuickAI/internal/pkg"

	"github.com/rs/zerolog"
)

var (
	ErrQuotaExceeded   = errors.New("free usage limit reached")
	ErrPremiumRequired = errors.New("premium plan required")
)

// EntitlementStore 外部用户元数据存储
type EntitlementStore interface {
	Get(ctx context.Context, userID string) (*model.Entitlement, error)
	IncrUsage(ctx context.Context, userID string) (int64, error)
	Upsert(ctx context.Context, userID, plan, email string) error
}

// MailSender 升级提醒发信
type MailSender interface {
	Enabled() bool
	Send(to, subject, htmlBody string) error
}

// EntitlementService 准入闸门：解析套餐/额度、额度校验、生成成功后的计费
type EntitlementService struct {
	store EntitlementStore
	limit int64
	mail  MailSender
	log   zerolog.Logger
}

func NewEntitlementService(store EntitlementStore, limit int64, mail MailSender, log zerolog.Logger) *EntitlementService {
	if limit <= 0 {
		limit = 10
	}
	return &EntitlementService{store: store, limit: limit, mail: mail, log: log}
}

// Resolve 请求进入 handler 前调用，任何查询失败都视为授权失败
func (s *EntitlementService) Resolve(ctx context.Context, userID string) (*model.Entitlement, error) {
	return s.store.Get(ctx, userID)
}

// CheckQuota 免费套餐达到上限则拒绝，必须在调用外部模型之前执行（成本控制）
func (s *EntitlementService) CheckQuota(ent *model.Entitlement) error {
	if ent.Premium() {
		return nil
	}
	if ent.FreeUsage >= s.limit {
		return ErrQuotaExceeded
	}
	return nil
}

// RequirePremium 仅 premium 可用的能力
func (s *EntitlementService) RequirePremium(ent *model.Entitlement) error {
	if !ent.Premium() {
		return ErrPremiumRequired
	}
	return nil
}

// Charge 生成成功后计 1 次。计数失败不影响本次请求（少计偏向用户）；
// 恰好用完额度且有邮箱时，异步发一封升级提醒。
func (s *EntitlementService) Charge(ctx context.Context, ent *model.Entitlement) {
	if ent.Premium() {
		return
	}
	n, err := s.store.IncrUsage(ctx, ent.UserID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", ent.UserID).Msg("usage increment failed")
		return
	}
	if n == s.limit && ent.Email != "" && s.mail != nil && s.mail.Enabled() {
		email := ent.Email
		go func() {
			if err := s.mail.Send(email, "Your QuickAI free limit is used up", pkg.UpgradeNoticeHTML(s.limit)); err != nil {
				s.log.Warn().Err(err).Msg("upgrade notice mail failed")
			}
		}()
	}
}

// SetPlan 计费 webhook 入口
func (s *EntitlementService) SetPlan(ctx context.Context, userID, plan, email string) error {
	return s.store.Upsert(ctx, userID, plan, email)
}
