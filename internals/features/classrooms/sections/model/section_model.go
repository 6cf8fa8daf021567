package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SectionModel struct {
	SectionID uuid.UUID `gorm:"column:section_id;type:uuid;primaryKey" json:"section_id"`

	SectionClassroomID uuid.UUID `gorm:"column:section_classroom_id;type:uuid;not null;index:idx_sections_classroom" json:"section_classroom_id"`

	SectionName     string `gorm:"column:section_name;type:varchar(160);not null" json:"section_name"`
	SectionPosition int    `gorm:"column:section_position;not null;default:0" json:"section_position"`

	SectionCreatedAt time.Time      `gorm:"column:section_created_at;not null;autoCreateTime" json:"section_created_at"`
	SectionUpdatedAt time.Time      `gorm:"column:section_updated_at;not null;autoUpdateTime" json:"section_updated_at"`
	SectionDeletedAt gorm.DeletedAt `gorm:"column:section_deleted_at;index" json:"section_deleted_at,omitempty"`
}

func (SectionModel) TableName() string { return "sections" }

func (m *SectionModel) BeforeCreate(_ *gorm.DB) error {
	if m.SectionID == uuid.Nil {
		m.SectionID = uuid.New()
	}
	return nil
}
