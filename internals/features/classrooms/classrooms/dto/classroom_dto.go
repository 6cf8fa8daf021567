// file: internals/features/classrooms/classrooms/dto/classroom_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "learnhub_backend/internals/features/classrooms/classrooms/model"
)

/* ==============================
   CREATE (POST /classrooms)
============================== */

type CreateClassroomRequest struct {
	ClassroomCommunityID uuid.UUID `json:"classroom_community_id" validate:"required"`

	ClassroomName        string  `json:"classroom_name" validate:"required,max=160"`
	ClassroomDescription *string `json:"classroom_description" validate:"omitempty"`
}

func (r *CreateClassroomRequest) ToModel() *model.ClassroomModel {
	return &model.ClassroomModel{
		ClassroomCommunityID: r.ClassroomCommunityID,
		ClassroomName:        strings.TrimSpace(r.ClassroomName),
		ClassroomDescription: trimPtr(r.ClassroomDescription),
	}
}

/* ==============================
   PATCH (PATCH /classrooms/:id)
============================== */

type PatchClassroomRequest struct {
	ClassroomName        *string `json:"classroom_name" validate:"omitempty,max=160"`
	ClassroomDescription *string `json:"classroom_description"`
}

func (p *PatchClassroomRequest) ToUpdates() map[string]any {
	u := make(map[string]any, 2)
	if p.ClassroomName != nil {
		if name := strings.TrimSpace(*p.ClassroomName); name != "" {
			u["classroom_name"] = name
		}
	}
	if p.ClassroomDescription != nil {
		u["classroom_description"] = trimPtr(p.ClassroomDescription)
	}
	return u
}

/* ==============================
   RESPONSE
============================== */

type ClassroomResponse struct {
	ClassroomID          uuid.UUID `json:"classroom_id"`
	ClassroomCommunityID uuid.UUID `json:"classroom_community_id"`
	ClassroomName        string    `json:"classroom_name"`
	ClassroomSlug        string    `json:"classroom_slug"`
	ClassroomDescription *string   `json:"classroom_description,omitempty"`
	ClassroomCreatedAt   time.Time `json:"classroom_created_at"`
	ClassroomUpdatedAt   time.Time `json:"classroom_updated_at"`
}

func FromModel(m *model.ClassroomModel) ClassroomResponse {
	return ClassroomResponse{
		ClassroomID:          m.ClassroomID,
		ClassroomCommunityID: m.ClassroomCommunityID,
		ClassroomName:        m.ClassroomName,
		ClassroomSlug:        m.ClassroomSlug,
		ClassroomDescription: m.ClassroomDescription,
		ClassroomCreatedAt:   m.ClassroomCreatedAt,
		ClassroomUpdatedAt:   m.ClassroomUpdatedAt,
	}
}

func FromModels(ms []model.ClassroomModel) []ClassroomResponse {
	out := make([]ClassroomResponse, 0, len(ms))
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
