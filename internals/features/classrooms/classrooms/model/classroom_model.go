package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassroomModel struct {
	ClassroomID uuid.UUID `gorm:"column:classroom_id;type:uuid;primaryKey" json:"classroom_id"`

	ClassroomCommunityID uuid.UUID `gorm:"column:classroom_community_id;type:uuid;not null;index:idx_classrooms_community" json:"classroom_community_id"`

	ClassroomName        string  `gorm:"column:classroom_name;type:varchar(160);not null" json:"classroom_name"`
	ClassroomSlug        string  `gorm:"column:classroom_slug;type:varchar(180);not null;uniqueIndex:uq_classrooms_slug" json:"classroom_slug"`
	ClassroomDescription *string `gorm:"column:classroom_description;type:text" json:"classroom_description,omitempty"`

	ClassroomCreatedAt time.Time      `gorm:"column:classroom_created_at;not null;autoCreateTime" json:"classroom_created_at"`
	ClassroomUpdatedAt time.Time      `gorm:"column:classroom_updated_at;not null;autoUpdateTime" json:"classroom_updated_at"`
	ClassroomDeletedAt gorm.DeletedAt `gorm:"column:classroom_deleted_at;index" json:"classroom_deleted_at,omitempty"`
}

func (ClassroomModel) TableName() string { return "classrooms" }

func (m *ClassroomModel) BeforeCreate(_ *gorm.DB) error {
	if m.ClassroomID == uuid.Nil {
		m.ClassroomID = uuid.New()
	}
	return nil
}
