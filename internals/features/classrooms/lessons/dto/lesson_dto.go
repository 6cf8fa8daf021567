// file: internals/features/classrooms/lessons/dto/lesson_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	model "learnhub_backend/internals/features/classrooms/lessons/model"
)

type CreateLessonRequest struct {
	LessonSectionID uuid.UUID `json:"lesson_section_id" validate:"required"`

	LessonTitle     string                 `json:"lesson_title" validate:"required,max=180"`
	LessonBody      *string                `json:"lesson_body"`
	LessonMaterials []model.LessonMaterial `json:"lesson_materials" validate:"omitempty,dive"`
}

// ToModel builds the lesson; the classroom id is derived from the section by
// the controller.
func (r *CreateLessonRequest) ToModel(classroomID uuid.UUID) (*model.LessonModel, error) {
	m := &model.LessonModel{
		LessonSectionID:   r.LessonSectionID,
		LessonClassroomID: classroomID,
		LessonTitle:       strings.TrimSpace(r.LessonTitle),
		LessonBody:        trimPtr(r.LessonBody),
	}
	if len(r.LessonMaterials) > 0 {
		if err := m.SetMaterials(r.LessonMaterials); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	return m, nil
}

type PatchLessonRequest struct {
	LessonTitle     *string                 `json:"lesson_title" validate:"omitempty,max=180"`
	LessonBody      *string                 `json:"lesson_body"`
	LessonMaterials *[]model.LessonMaterial `json:"lesson_materials"`
}

// Apply merges the patch onto the loaded model.
func (p *PatchLessonRequest) Apply(m *model.LessonModel) error {
	if p.LessonTitle != nil {
		title := strings.TrimSpace(*p.LessonTitle)
		if title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "lesson_title must not be empty")
		}
		m.LessonTitle = title
	}
	if p.LessonBody != nil {
		m.LessonBody = trimPtr(p.LessonBody)
	}
	if p.LessonMaterials != nil {
		if err := m.SetMaterials(*p.LessonMaterials); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	return nil
}

type LessonResponse struct {
	LessonID          uuid.UUID `json:"lesson_id"`
	LessonSectionID   uuid.UUID `json:"lesson_section_id"`
	LessonClassroomID uuid.UUID `json:"lesson_classroom_id"`

	LessonTitle     string                 `json:"lesson_title"`
	LessonBody      *string                `json:"lesson_body,omitempty"`
	LessonMaterials []model.LessonMaterial `json:"lesson_materials,omitempty"`

	LessonCreatedAt time.Time `json:"lesson_created_at"`
	LessonUpdatedAt time.Time `json:"lesson_updated_at"`
}

func FromModel(m *model.LessonModel) LessonResponse {
	return LessonResponse{
		LessonID:          m.LessonID,
		LessonSectionID:   m.LessonSectionID,
		LessonClassroomID: m.LessonClassroomID,
		LessonTitle:       m.LessonTitle,
		LessonBody:        m.LessonBody,
		LessonMaterials:   m.Materials(),
		LessonCreatedAt:   m.LessonCreatedAt,
		LessonUpdatedAt:   m.LessonUpdatedAt,
	}
}

func FromModels(ms []model.LessonModel) []LessonResponse {
	out := make([]LessonResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
