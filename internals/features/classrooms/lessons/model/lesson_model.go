package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LessonMaterial is one entry of the lesson_materials jsonb column.
type LessonMaterial struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Kind  string `json:"kind,omitempty"` // "file", "link", "video", ...
}

type LessonModel struct {
	LessonID uuid.UUID `gorm:"column:lesson_id;type:uuid;primaryKey" json:"lesson_id"`

	LessonSectionID   uuid.UUID `gorm:"column:lesson_section_id;type:uuid;not null;index:idx_lessons_section" json:"lesson_section_id"`
	LessonClassroomID uuid.UUID `gorm:"column:lesson_classroom_id;type:uuid;not null;index:idx_lessons_classroom" json:"lesson_classroom_id"`

	LessonTitle     string         `gorm:"column:lesson_title;type:varchar(180);not null" json:"lesson_title"`
	LessonBody      *string        `gorm:"column:lesson_body;type:text" json:"lesson_body,omitempty"`
	LessonMaterials datatypes.JSON `gorm:"column:lesson_materials;type:jsonb" json:"lesson_materials,omitempty"`

	LessonCreatedAt time.Time      `gorm:"column:lesson_created_at;not null;autoCreateTime" json:"lesson_created_at"`
	LessonUpdatedAt time.Time      `gorm:"column:lesson_updated_at;not null;autoUpdateTime" json:"lesson_updated_at"`
	LessonDeletedAt gorm.DeletedAt `gorm:"column:lesson_deleted_at;index" json:"lesson_deleted_at,omitempty"`
}

func (LessonModel) TableName() string { return "lessons" }

func (m *LessonModel) BeforeCreate(_ *gorm.DB) error {
	if m.LessonID == uuid.Nil {
		m.LessonID = uuid.New()
	}
	return nil
}

func (m *LessonModel) SetMaterials(list []LessonMaterial) error {
	for _, mat := range list {
		if strings.TrimSpace(mat.URL) == "" {
			return errors.New("material url must not be empty")
		}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	m.LessonMaterials = datatypes.JSON(b)
	return nil
}

func (m *LessonModel) Materials() []LessonMaterial {
	if len(m.LessonMaterials) == 0 {
		return nil
	}
	var out []LessonMaterial
	if err := json.Unmarshal(m.LessonMaterials, &out); err != nil {
		return nil
	}
	return out
}
