// file: internals/features/quizzes/attempts/dto/quiz_attempt_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "learnhub_backend/internals/features/quizzes/attempts/model"
)

/* ==============================
   REQUESTS
============================== */

// EndAttemptRequest carries a client-computed score. The server still caps it
// at the quiz maximum.
type EndAttemptRequest struct {
	Score int `json:"score" validate:"gte=0"`
}

type SubmittedAnswer struct {
	QuestionID uuid.UUID `json:"question_id" validate:"required"`
	Answer     []string  `json:"answer" validate:"required,min=1"`
}

// SubmitQuizRequest carries raw answers for server-side grading.
type SubmitQuizRequest struct {
	Answers []SubmittedAnswer `json:"answers" validate:"required,dive"`
}

// ToMap re-keys the answers by question id. A question submitted twice keeps
// the last entry.
func (r *SubmitQuizRequest) ToMap() map[uuid.UUID][]string {
	out := make(map[uuid.UUID][]string, len(r.Answers))
	for _, a := range r.Answers {
		out[a.QuestionID] = a.Answer
	}
	return out
}

/* ==============================
   RESPONSE
============================== */

type QuizAttemptResponse struct {
	QuizAttemptID     uuid.UUID `json:"quiz_attempt_id"`
	QuizAttemptQuizID uuid.UUID `json:"quiz_attempt_quiz_id"`
	QuizAttemptUserID uuid.UUID `json:"quiz_attempt_user_id"`

	QuizAttemptStatus    string    `json:"quiz_attempt_status"`
	QuizAttemptStartDate time.Time `json:"quiz_attempt_start_date"`
	QuizAttemptEndDate   time.Time `json:"quiz_attempt_end_date"`
	QuizAttemptScore     int       `json:"quiz_attempt_score"`

	QuizAttemptCreatedAt time.Time `json:"quiz_attempt_created_at"`
	QuizAttemptUpdatedAt time.Time `json:"quiz_attempt_updated_at"`
}

func FromModel(m *model.QuizAttemptModel) QuizAttemptResponse {
	return QuizAttemptResponse{
		QuizAttemptID:        m.QuizAttemptID,
		QuizAttemptQuizID:    m.QuizAttemptQuizID,
		QuizAttemptUserID:    m.QuizAttemptUserID,
		QuizAttemptStatus:    m.QuizAttemptStatus.String(),
		QuizAttemptStartDate: m.QuizAttemptStartDate,
		QuizAttemptEndDate:   m.QuizAttemptEndDate,
		QuizAttemptScore:     m.QuizAttemptScore,
		QuizAttemptCreatedAt: m.QuizAttemptCreatedAt,
		QuizAttemptUpdatedAt: m.QuizAttemptUpdatedAt,
	}
}
