// file: internals/features/communities/members/dto/community_member_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "learnhub_backend/internals/features/communities/members/model"
)

/* ==============================
   REQUESTS
============================== */

type ChangeRoleRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role" validate:"required,oneof=owner moderator member"`
}

/* ==============================
   RESPONSE
============================== */

type CommunityMemberResponse struct {
	CommunityMemberID          uuid.UUID `json:"community_member_id"`
	CommunityMemberCommunityID uuid.UUID `json:"community_member_community_id"`
	CommunityMemberUserID      uuid.UUID `json:"community_member_user_id"`
	CommunityMemberRole        string    `json:"community_member_role"`
	CommunityMemberCreatedAt   time.Time `json:"community_member_created_at"`
}

func FromModel(m *model.CommunityMemberModel) CommunityMemberResponse {
	return CommunityMemberResponse{
		CommunityMemberID:          m.CommunityMemberID,
		CommunityMemberCommunityID: m.CommunityMemberCommunityID,
		CommunityMemberUserID:      m.CommunityMemberUserID,
		CommunityMemberRole:        m.CommunityMemberRole.String(),
		CommunityMemberCreatedAt:   m.CommunityMemberCreatedAt,
	}
}

func FromModels(ms []model.CommunityMemberModel) []CommunityMemberResponse {
	out := make([]CommunityMemberResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
