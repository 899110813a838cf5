package model

import "time"

// Creation 的类型枚举，和前端展示口径保持一致
const (
	TypeArticle      = "article"
	TypeBlogArticle  = "blog-article"
	TypeImage        = "image"
	TypeResumeReview = "resume-review"
)

// Creation 一次生成产物：文本正文或资产 URL
type Creation struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:64;not null;index:idx_user_created,priority:1" json:"user_id"`
	Prompt    string    `gorm:"type:text;not null" json:"prompt"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Type      string    `gorm:"size:32;not null" json:"type"`
	Publish   bool      `gorm:"not null;default:false;index" json:"publish"`
	Likes     []string  `gorm:"-" json:"likes"`
	CreatedAt time.Time `gorm:"index:idx_user_created,priority:2,sort:desc" json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Creation) TableName() string { return "creations" }

// CreationLike 点赞集合按行建模，唯一索引保证同一用户不会重复计入
type CreationLike struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	CreationID uint64 `gorm:"not null;index;uniqueIndex:uk_creation_user"`
	UserID     string `gorm:"size:64;not null;index;uniqueIndex:uk_creation_user"`
	CreatedAt  time.Time
}

func (CreationLike) TableName() string { return "creation_likes" }

const (
	EventCreationCreated = "creation.created"
	EventCreationLiked   = "creation.liked"
	EventCreationUnliked = "creation.unliked"
)

// CreationOutbox 生成/点赞事件的投递表
type CreationOutbox struct {
	ID         uint64 `gorm:"primaryKey"`
	EventType  string `gorm:"size:32;not null"`
	UserID     string `gorm:"size:64;not null"`
	CreationID uint64 `gorm:"not null"`
	Payload    string `gorm:"type:json;not null"`
	Status     int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry      int    `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (CreationOutbox) TableName() string { return "creation_outbox" }
