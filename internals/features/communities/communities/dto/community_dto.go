// file: internals/features/communities/communities/dto/community_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "learnhub_backend/internals/features/communities/communities/model"
)

/* ==============================
   CREATE (POST /communities)
============================== */

type CreateCommunityRequest struct {
	CommunityName        string  `json:"community_name" validate:"required,max=120"`
	CommunityDescription *string `json:"community_description" validate:"omitempty"`
}

func (r *CreateCommunityRequest) ToModel(createdBy uuid.UUID) *model.CommunityModel {
	return &model.CommunityModel{
		CommunityName:        strings.TrimSpace(r.CommunityName),
		CommunityDescription: trimPtr(r.CommunityDescription),
		CommunityCreatedBy:   createdBy,
	}
}

/* ==============================
   PATCH (PATCH /communities/:id)
============================== */

type PatchCommunityRequest struct {
	CommunityName        *string `json:"community_name" validate:"omitempty,max=120"`
	CommunityDescription *string `json:"community_description"`
}

func (p *PatchCommunityRequest) ToUpdates() map[string]any {
	u := make(map[string]any, 2)
	if p.CommunityName != nil {
		if name := strings.TrimSpace(*p.CommunityName); name != "" {
			u["community_name"] = name
		}
	}
	if p.CommunityDescription != nil {
		u["community_description"] = trimPtr(p.CommunityDescription)
	}
	return u
}

/* ==============================
   RESPONSE
============================== */

type CommunityResponse struct {
	CommunityID          uuid.UUID `json:"community_id"`
	CommunityName        string    `json:"community_name"`
	CommunitySlug        string    `json:"community_slug"`
	CommunityDescription *string   `json:"community_description,omitempty"`
	CommunityCreatedBy   uuid.UUID `json:"community_created_by"`
	CommunityCreatedAt   time.Time `json:"community_created_at"`
	CommunityUpdatedAt   time.Time `json:"community_updated_at"`
}

func FromModel(m *model.CommunityModel) CommunityResponse {
	return CommunityResponse{
		CommunityID:          m.CommunityID,
		CommunityName:        m.CommunityName,
		CommunitySlug:        m.CommunitySlug,
		CommunityDescription: m.CommunityDescription,
		CommunityCreatedBy:   m.CommunityCreatedBy,
		CommunityCreatedAt:   m.CommunityCreatedAt,
		CommunityUpdatedAt:   m.CommunityUpdatedAt,
	}
}

func FromModels(ms []model.CommunityModel) []CommunityResponse {
	out := make([]CommunityResponse, 0, len(ms))
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
