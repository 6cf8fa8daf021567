// file: internals/features/classrooms/sections/dto/section_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "learnhub_backend/internals/features/classrooms/sections/model"
)

type CreateSectionRequest struct {
	SectionClassroomID uuid.UUID `json:"section_classroom_id" validate:"required"`

	SectionName     string `json:"section_name" validate:"required,max=160"`
	SectionPosition *int   `json:"section_position" validate:"omitempty,gte=0"`
}

func (r *CreateSectionRequest) ToModel() *model.SectionModel {
	pos := 0
	if r.SectionPosition != nil {
		pos = *r.SectionPosition
	}
	return &model.SectionModel{
		SectionClassroomID: r.SectionClassroomID,
		SectionName:        strings.TrimSpace(r.SectionName),
		SectionPosition:    pos,
	}
}

type PatchSectionRequest struct {
	SectionName     *string `json:"section_name" validate:"omitempty,max=160"`
	SectionPosition *int    `json:"section_position" validate:"omitempty,gte=0"`
}

func (p *PatchSectionRequest) ToUpdates() map[string]any {
	u := make(map[string]any, 2)
	if p.SectionName != nil {
		if name := strings.TrimSpace(*p.SectionName); name != "" {
			u["section_name"] = name
		}
	}
	if p.SectionPosition != nil {
		u["section_position"] = *p.SectionPosition
	}
	return u
}

type SectionResponse struct {
	SectionID          uuid.UUID `json:"section_id"`
	SectionClassroomID uuid.UUID `json:"section_classroom_id"`
	SectionName        string    `json:"section_name"`
	SectionPosition    int       `json:"section_position"`
	SectionCreatedAt   time.Time `json:"section_created_at"`
	SectionUpdatedAt   time.Time `json:"section_updated_at"`
}

func FromModel(m *model.SectionModel) SectionResponse {
	return SectionResponse{
		SectionID:          m.SectionID,
		SectionClassroomID: m.SectionClassroomID,
		SectionName:        m.SectionName,
		SectionPosition:    m.SectionPosition,
		SectionCreatedAt:   m.SectionCreatedAt,
		SectionUpdatedAt:   m.SectionUpdatedAt,
	}
}

func FromModels(ms []model.SectionModel) []SectionResponse {
	out := make([]SectionResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
