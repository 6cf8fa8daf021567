package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentModel struct {
	CommentID uuid.UUID `gorm:"column:comment_id;type:uuid;primaryKey" json:"comment_id"`

	CommentPostID uuid.UUID `gorm:"column:comment_post_id;type:uuid;not null;index:idx_comments_post" json:"comment_post_id"`
	CommentUserID uuid.UUID `gorm:"column:comment_user_id;type:uuid;not null" json:"comment_user_id"`

	CommentBody string `gorm:"column:comment_body;type:text;not null" json:"comment_body"`

	CommentCreatedAt time.Time      `gorm:"column:comment_created_at;not null;autoCreateTime" json:"comment_created_at"`
	CommentUpdatedAt time.Time      `gorm:"column:comment_updated_at;not null;autoUpdateTime" json:"comment_updated_at"`
	CommentDeletedAt gorm.DeletedAt `gorm:"column:comment_deleted_at;index" json:"comment_deleted_at,omitempty"`
}

func (CommentModel) TableName() string { return "comments" }

func (m *CommentModel) BeforeCreate(_ *gorm.DB) error {
	if m.CommentID == uuid.Nil {
		m.CommentID = uuid.New()
	}
	return nil
}
