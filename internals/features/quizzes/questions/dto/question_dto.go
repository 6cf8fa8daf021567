// file: internals/features/quizzes/questions/dto/question_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	model "learnhub_backend/internals/features/quizzes/questions/model"
)

/* ==============================
   CREATE (POST /questions)
============================== */

type CreateQuestionRequest struct {
	QuestionClassroomID uuid.UUID `json:"question_classroom_id" validate:"required"`

	QuestionHeader  string   `json:"question_header" validate:"required"`
	QuestionOptions []string `json:"question_options" validate:"required,min=2,dive,required"`
	QuestionAnswers []string `json:"question_answers" validate:"required,min=1,dive,required"`
}

// ToModel builds and shape-checks the question. Shape failures come back as
// 400s so the controller can pass them straight through.
func (r *CreateQuestionRequest) ToModel() (*model.QuestionModel, error) {
	m := &model.QuestionModel{
		QuestionClassroomID: r.QuestionClassroomID,
		QuestionHeader:      strings.TrimSpace(r.QuestionHeader),
	}
	if err := m.SetOptions(r.QuestionOptions); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := m.SetAnswers(r.QuestionAnswers); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := m.ValidateShape(); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return m, nil
}

/* ==============================
   PATCH (PATCH /questions/:id)
   - options/answers replace wholesale when present
============================== */

type PatchQuestionRequest struct {
	QuestionHeader  *string   `json:"question_header"`
	QuestionOptions *[]string `json:"question_options"`
	QuestionAnswers *[]string `json:"question_answers"`
}

// Apply merges the patch onto the loaded model and re-checks the shape.
func (p *PatchQuestionRequest) Apply(m *model.QuestionModel) error {
	if p.QuestionHeader != nil {
		header := strings.TrimSpace(*p.QuestionHeader)
		if header == "" {
			return fiber.NewError(fiber.StatusBadRequest, "question_header must not be empty")
		}
		m.QuestionHeader = header
	}
	if p.QuestionOptions != nil {
		if err := m.SetOptions(*p.QuestionOptions); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	if p.QuestionAnswers != nil {
		if err := m.SetAnswers(*p.QuestionAnswers); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	if err := m.ValidateShape(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

/* ==============================
   RESPONSE DTOs
============================== */

// QuestionResponse is the author-facing view, answers included.
type QuestionResponse struct {
	QuestionID          uuid.UUID `json:"question_id"`
	QuestionClassroomID uuid.UUID `json:"question_classroom_id"`

	QuestionHeader  string   `json:"question_header"`
	QuestionOptions []string `json:"question_options"`
	QuestionAnswers []string `json:"question_answers"`

	QuestionCreatedAt time.Time `json:"question_created_at"`
	QuestionUpdatedAt time.Time `json:"question_updated_at"`
}

// TakerQuestionResponse is what a quiz taker sees: no answer key.
type TakerQuestionResponse struct {
	QuestionID      uuid.UUID `json:"question_id"`
	QuestionHeader  string    `json:"question_header"`
	QuestionOptions []string  `json:"question_options"`
	Points          int       `json:"points"`
}

func FromModel(m *model.QuestionModel) QuestionResponse {
	return QuestionResponse{
		QuestionID:          m.QuestionID,
		QuestionClassroomID: m.QuestionClassroomID,
		QuestionHeader:      m.QuestionHeader,
		QuestionOptions:     m.Options(),
		QuestionAnswers:     m.Answers(),
		QuestionCreatedAt:   m.QuestionCreatedAt,
		QuestionUpdatedAt:   m.QuestionUpdatedAt,
	}
}

func FromModels(ms []model.QuestionModel) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}

// TakerView strips the answer key and attaches the link's point value.
func TakerView(m *model.QuestionModel, points int) TakerQuestionResponse {
	return TakerQuestionResponse{
		QuestionID:      m.QuestionID,
		QuestionHeader:  m.QuestionHeader,
		QuestionOptions: m.Options(),
		Points:          points,
	}
}
