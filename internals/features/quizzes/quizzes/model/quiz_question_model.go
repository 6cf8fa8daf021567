// file: internals/features/quizzes/quizzes/model/quiz_question_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuizQuestionModel is the weighted link between a quiz and a question. The
// (quiz, question) pair is unique: no question may be linked to the same quiz
// twice.
type QuizQuestionModel struct {
	QuizQuestionID uuid.UUID `gorm:"column:quiz_question_id;type:uuid;primaryKey" json:"quiz_question_id"`

	QuizQuestionQuizID     uuid.UUID `gorm:"column:quiz_question_quiz_id;type:uuid;not null;uniqueIndex:uq_quiz_questions_pair,priority:1" json:"quiz_question_quiz_id"`
	QuizQuestionQuestionID uuid.UUID `gorm:"column:quiz_question_question_id;type:uuid;not null;uniqueIndex:uq_quiz_questions_pair,priority:2;index:idx_quiz_questions_question" json:"quiz_question_question_id"`

	QuizQuestionPoints int `gorm:"column:quiz_question_points;not null" json:"quiz_question_points"`

	QuizQuestionCreatedAt time.Time `gorm:"column:quiz_question_created_at;not null;autoCreateTime" json:"quiz_question_created_at"`
}

func (QuizQuestionModel) TableName() string { return "quiz_questions" }

func (m *QuizQuestionModel) BeforeCreate(_ *gorm.DB) error {
	if m.QuizQuestionID == uuid.Nil {
		m.QuizQuestionID = uuid.New()
	}
	return nil
}
