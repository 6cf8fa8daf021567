// file: internals/features/forums/comments/dto/comment_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "learnhub_backend/internals/features/forums/comments/model"
)

type CreateCommentRequest struct {
	CommentBody string `json:"comment_body" validate:"required"`
}

func (r *CreateCommentRequest) ToModel(postID, userID uuid.UUID) *model.CommentModel {
	return &model.CommentModel{
		CommentPostID: postID,
		CommentUserID: userID,
		CommentBody:   strings.TrimSpace(r.CommentBody),
	}
}

type CommentResponse struct {
	CommentID     uuid.UUID `json:"comment_id"`
	CommentPostID uuid.UUID `json:"comment_post_id"`
	CommentUserID uuid.UUID `json:"comment_user_id"`
	CommentBody   string    `json:"comment_body"`

	CommentCreatedAt time.Time `json:"comment_created_at"`
	CommentUpdatedAt time.Time `json:"comment_updated_at"`
}

func FromModel(m *model.CommentModel) CommentResponse {
	return CommentResponse{
		CommentID:        m.CommentID,
		CommentPostID:    m.CommentPostID,
		CommentUserID:    m.CommentUserID,
		CommentBody:      m.CommentBody,
		CommentCreatedAt: m.CommentCreatedAt,
		CommentUpdatedAt: m.CommentUpdatedAt,
	}
}

func FromModels(ms []model.CommentModel) []CommentResponse {
	out := make([]CommentResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
