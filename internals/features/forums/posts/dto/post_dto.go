// file: internals/features/forums/posts/dto/post_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "learnhub_backend/internals/features/forums/posts/model"
)

type CreatePostRequest struct {
	PostCommunityID uuid.UUID `json:"post_community_id" validate:"required"`

	PostTitle string `json:"post_title" validate:"required,max=200"`
	PostBody  string `json:"post_body" validate:"required"`
}

func (r *CreatePostRequest) ToModel(userID uuid.UUID) *model.PostModel {
	return &model.PostModel{
		PostCommunityID: r.PostCommunityID,
		PostUserID:      userID,
		PostTitle:       strings.TrimSpace(r.PostTitle),
		PostBody:        strings.TrimSpace(r.PostBody),
	}
}

type PatchPostRequest struct {
	PostTitle *string `json:"post_title" validate:"omitempty,max=200"`
	PostBody  *string `json:"post_body"`
}

func (p *PatchPostRequest) ToUpdates() map[string]any {
	u := make(map[string]any, 2)
	if p.PostTitle != nil {
		if title := strings.TrimSpace(*p.PostTitle); title != "" {
			u["post_title"] = title
		}
	}
	if p.PostBody != nil {
		if body := strings.TrimSpace(*p.PostBody); body != "" {
			u["post_body"] = body
		}
	}
	return u
}

type PostResponse struct {
	PostID          uuid.UUID `json:"post_id"`
	PostCommunityID uuid.UUID `json:"post_community_id"`
	PostUserID      uuid.UUID `json:"post_user_id"`

	PostTitle     string `json:"post_title"`
	PostBody      string `json:"post_body"`
	PostVoteCount int    `json:"post_vote_count"`

	PostCreatedAt time.Time `json:"post_created_at"`
	PostUpdatedAt time.Time `json:"post_updated_at"`
}

func FromModel(m *model.PostModel) PostResponse {
	return PostResponse{
		PostID:          m.PostID,
		PostCommunityID: m.PostCommunityID,
		PostUserID:      m.PostUserID,
		PostTitle:       m.PostTitle,
		PostBody:        m.PostBody,
		PostVoteCount:   m.PostVoteCount,
		PostCreatedAt:   m.PostCreatedAt,
		PostUpdatedAt:   m.PostUpdatedAt,
	}
}

func FromModels(ms []model.PostModel) []PostResponse {
	out := make([]PostResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
