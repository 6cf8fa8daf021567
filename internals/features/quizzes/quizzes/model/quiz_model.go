// file: internals/features/quizzes/quizzes/model/quiz_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuizModel owns the scheduling window [start_date, end_date) of one timed
// quiz in a classroom. Attempts may only be started inside the window; a
// single attempt lasts quiz_duration_minutes.
type QuizModel struct {
	QuizID uuid.UUID `gorm:"column:quiz_id;type:uuid;primaryKey" json:"quiz_id"`

	QuizClassroomID uuid.UUID `gorm:"column:quiz_classroom_id;type:uuid;not null;index:idx_quizzes_classroom" json:"quiz_classroom_id"`

	QuizName            string    `gorm:"column:quiz_name;type:varchar(180);not null" json:"quiz_name"`
	QuizDurationMinutes int       `gorm:"column:quiz_duration_minutes;not null" json:"quiz_duration_minutes"`
	QuizStartDate       time.Time `gorm:"column:quiz_start_date;not null;index:idx_quizzes_start" json:"quiz_start_date"`
	QuizEndDate         time.Time `gorm:"column:quiz_end_date;not null" json:"quiz_end_date"`
	QuizIsActive        bool      `gorm:"column:quiz_is_active;not null;default:true" json:"quiz_is_active"`

	Questions []QuizQuestionModel `gorm:"foreignKey:QuizQuestionQuizID;references:QuizID" json:"questions,omitempty"`

	QuizCreatedAt time.Time `gorm:"column:quiz_created_at;not null;autoCreateTime" json:"quiz_created_at"`
	QuizUpdatedAt time.Time `gorm:"column:quiz_updated_at;not null;autoUpdateTime" json:"quiz_updated_at"`
}

func (QuizModel) TableName() string { return "quizzes" }

func (m *QuizModel) BeforeCreate(_ *gorm.DB) error {
	if m.QuizID == uuid.Nil {
		m.QuizID = uuid.New()
	}
	return nil
}

// Duration of one attempt.
func (m *QuizModel) Duration() time.Duration {
	return time.Duration(m.QuizDurationMinutes) * time.Minute
}

// WindowOpen reports whether attempts may be started at t.
func (m *QuizModel) WindowOpen(t time.Time) bool {
	return !t.Before(m.QuizStartDate) && !t.After(m.QuizEndDate)
}
