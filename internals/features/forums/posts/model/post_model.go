package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	PostID uuid.UUID `gorm:"column:post_id;type:uuid;primaryKey" json:"post_id"`

	PostCommunityID uuid.UUID `gorm:"column:post_community_id;type:uuid;not null;index:idx_posts_community" json:"post_community_id"`
	PostUserID      uuid.UUID `gorm:"column:post_user_id;type:uuid;not null;index:idx_posts_user" json:"post_user_id"`

	PostTitle string `gorm:"column:post_title;type:varchar(200);not null" json:"post_title"`
	PostBody  string `gorm:"column:post_body;type:text;not null" json:"post_body"`

	// Plain counter; the voting subsystem itself lives outside this service.
	PostVoteCount int `gorm:"column:post_vote_count;not null;default:0" json:"post_vote_count"`

	PostCreatedAt time.Time      `gorm:"column:post_created_at;not null;autoCreateTime" json:"post_created_at"`
	PostUpdatedAt time.Time      `gorm:"column:post_updated_at;not null;autoUpdateTime" json:"post_updated_at"`
	PostDeletedAt gorm.DeletedAt `gorm:"column:post_deleted_at;index" json:"post_deleted_at,omitempty"`
}

func (PostModel) TableName() string { return "posts" }

func (m *PostModel) BeforeCreate(_ *gorm.DB) error {
	if m.PostID == uuid.Nil {
		m.PostID = uuid.New()
	}
	return nil
}
