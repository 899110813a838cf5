package model

const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// Entitlement 用户套餐与免费额度，存在外部元数据存储里，按请求取出随上下文传递。
// Plan 为 premium 时 FreeUsage 不参与任何判断。
type Entitlement struct {
	UserID    string `json:"user_id"`
	Plan      string `json:"plan"`
	FreeUsage int64  `json:"free_usage"`
	Email     string `json:"-"`
}

func (e *Entitlement) Premium() bool {
	return e != nil && e.Plan == PlanPremium
}
