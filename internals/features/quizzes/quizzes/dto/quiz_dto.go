// file: internals/features/quizzes/quizzes/dto/quiz_dto.go
package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	model "learnhub_backend/internals/features/quizzes/quizzes/model"
)

/*
==============================

	Helper: Tri-state updater
	- Absent  : field is not updated
	- null    : set column to NULL
	- value   : set column to value

==============================
*/
type UpdateField[T any] struct {
	set   bool
	null  bool
	value T
}

func (f *UpdateField[T]) UnmarshalJSON(b []byte) error {
	f.set = true
	if string(b) == "null" {
		f.null = true
		var zero T
		f.value = zero
		return nil
	}
	return json.Unmarshal(b, &f.value)
}

func (f UpdateField[T]) ShouldUpdate() bool { return f.set }
func (f UpdateField[T]) IsNull() bool       { return f.set && f.null }
func (f UpdateField[T]) Val() T             { return f.value }

/* ==============================
   CREATE (POST /quizzes)
============================== */

type QuizQuestionInput struct {
	QuestionID uuid.UUID `json:"question_id" validate:"required"`
	Points     int       `json:"points" validate:"required,gt=0"`
}

type CreateQuizRequest struct {
	QuizClassroomID uuid.UUID `json:"quiz_classroom_id" validate:"required"`

	QuizName            string    `json:"quiz_name" validate:"required,max=180"`
	QuizDurationMinutes int       `json:"quiz_duration_minutes" validate:"required,gt=0"`
	QuizStartDate       time.Time `json:"quiz_start_date" validate:"required"`
	QuizEndDate         time.Time `json:"quiz_end_date" validate:"required"`
	QuizIsActive        *bool     `json:"quiz_is_active" validate:"omitempty"`

	QuizQuestions []QuizQuestionInput `json:"quiz_questions" validate:"omitempty,dive"`
}

// ToModel builds the quiz row (timestamps by GORM). Question links are built
// separately via Links().
func (r *CreateQuizRequest) ToModel() *model.QuizModel {
	isActive := true
	if r.QuizIsActive != nil {
		isActive = *r.QuizIsActive
	}
	return &model.QuizModel{
		QuizClassroomID:     r.QuizClassroomID,
		QuizName:            strings.TrimSpace(r.QuizName),
		QuizDurationMinutes: r.QuizDurationMinutes,
		QuizStartDate:       r.QuizStartDate.UTC(),
		QuizEndDate:         r.QuizEndDate.UTC(),
		QuizIsActive:        isActive,
	}
}

// Links builds the question-link rows for the create payload.
func (r *CreateQuizRequest) Links() []model.QuizQuestionModel {
	return buildLinks(r.QuizQuestions)
}

// QuestionIDs extracts the referenced question ids in payload order.
func (r *CreateQuizRequest) QuestionIDs() []uuid.UUID {
	return questionIDs(r.QuizQuestions)
}

/* ==============================
   PATCH (PATCH /quizzes/:id)
   - uses UpdateField so fields can be skipped/valued
   - quiz_questions (when present) replaces the full link set
============================== */

type PatchQuizRequest struct {
	QuizName            UpdateField[string]    `json:"quiz_name"`
	QuizDurationMinutes UpdateField[int]       `json:"quiz_duration_minutes"`
	QuizStartDate       UpdateField[time.Time] `json:"quiz_start_date"`
	QuizEndDate         UpdateField[time.Time] `json:"quiz_end_date"`
	QuizIsActive        UpdateField[bool]      `json:"quiz_is_active"`

	QuizQuestions *[]QuizQuestionInput `json:"quiz_questions"`
}

// ToUpdates builds the map for gorm Updates(...). All columns are NOT NULL,
// so explicit nulls are ignored.
func (p *PatchQuizRequest) ToUpdates() map[string]any {
	u := make(map[string]any, 5)

	if p.QuizName.ShouldUpdate() && !p.QuizName.IsNull() {
		name := strings.TrimSpace(p.QuizName.Val())
		if name != "" {
			u["quiz_name"] = name
		}
	}
	if p.QuizDurationMinutes.ShouldUpdate() && !p.QuizDurationMinutes.IsNull() {
		u["quiz_duration_minutes"] = p.QuizDurationMinutes.Val()
	}
	if p.QuizStartDate.ShouldUpdate() && !p.QuizStartDate.IsNull() {
		u["quiz_start_date"] = p.QuizStartDate.Val().UTC()
	}
	if p.QuizEndDate.ShouldUpdate() && !p.QuizEndDate.IsNull() {
		u["quiz_end_date"] = p.QuizEndDate.Val().UTC()
	}
	if p.QuizIsActive.ShouldUpdate() && !p.QuizIsActive.IsNull() {
		u["quiz_is_active"] = p.QuizIsActive.Val()
	}
	return u
}

// Links builds the replacement link rows, or nil when quiz_questions was
// absent from the payload.
func (p *PatchQuizRequest) Links() *[]model.QuizQuestionModel {
	if p.QuizQuestions == nil {
		return nil
	}
	links := buildLinks(*p.QuizQuestions)
	return &links
}

func (p *PatchQuizRequest) QuestionIDs() []uuid.UUID {
	if p.QuizQuestions == nil {
		return nil
	}
	return questionIDs(*p.QuizQuestions)
}

/* ==============================
   RESPONSE DTOs
============================== */

type QuizQuestionLinkResponse struct {
	QuizQuestionID         uuid.UUID `json:"quiz_question_id"`
	QuizQuestionQuestionID uuid.UUID `json:"quiz_question_question_id"`
	QuizQuestionPoints     int       `json:"quiz_question_points"`
}

type QuizResponse struct {
	QuizID          uuid.UUID `json:"quiz_id"`
	QuizClassroomID uuid.UUID `json:"quiz_classroom_id"`

	QuizName            string    `json:"quiz_name"`
	QuizDurationMinutes int       `json:"quiz_duration_minutes"`
	QuizStartDate       time.Time `json:"quiz_start_date"`
	QuizEndDate         time.Time `json:"quiz_end_date"`
	QuizIsActive        bool      `json:"quiz_is_active"`

	QuizCreatedAt time.Time `json:"quiz_created_at"`
	QuizUpdatedAt time.Time `json:"quiz_updated_at"`

	Questions []QuizQuestionLinkResponse `json:"questions,omitempty"`

	// Detail view extras. final_score is the maximum attainable score (the
	// sum of link points); user_score is what the caller actually earned on
	// a completed attempt.
	QuestionCount *int  `json:"question_count,omitempty"`
	FinalScore    *int  `json:"final_score,omitempty"`
	IsAttempted   *bool `json:"is_attempted,omitempty"`
	UserScore     *int  `json:"user_score,omitempty"`
}

/* ==============================
   MAPPERS
============================== */

func FromModel(m *model.QuizModel) QuizResponse {
	return QuizResponse{
		QuizID:              m.QuizID,
		QuizClassroomID:     m.QuizClassroomID,
		QuizName:            m.QuizName,
		QuizDurationMinutes: m.QuizDurationMinutes,
		QuizStartDate:       m.QuizStartDate,
		QuizEndDate:         m.QuizEndDate,
		QuizIsActive:        m.QuizIsActive,
		QuizCreatedAt:       m.QuizCreatedAt,
		QuizUpdatedAt:       m.QuizUpdatedAt,
	}
}

func FromModelWithQuestions(m *model.QuizModel) QuizResponse {
	resp := FromModel(m)
	if len(m.Questions) > 0 {
		arr := make([]QuizQuestionLinkResponse, 0, len(m.Questions))
		for i := range m.Questions {
			l := &m.Questions[i]
			arr = append(arr, QuizQuestionLinkResponse{
				QuizQuestionID:         l.QuizQuestionID,
				QuizQuestionQuestionID: l.QuizQuestionQuestionID,
				QuizQuestionPoints:     l.QuizQuestionPoints,
			})
		}
		resp.Questions = arr
	}
	return resp
}

func FromModels(ms []model.QuizModel) []QuizResponse {
	out := make([]QuizResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}

/* ==============================
   internals
============================== */

func buildLinks(inputs []QuizQuestionInput) []model.QuizQuestionModel {
	links := make([]model.QuizQuestionModel, 0, len(inputs))
	for _, in := range inputs {
		links = append(links, model.QuizQuestionModel{
			QuizQuestionQuestionID: in.QuestionID,
			QuizQuestionPoints:     in.Points,
		})
	}
	return links
}

func questionIDs(inputs []QuizQuestionInput) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.QuestionID)
	}
	return ids
}
