// file: internals/features/quizzes/attempts/model/quiz_attempt_model.go
package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =============================================================================
   ENUM-like: attempt status ('in_progress','completed','timed_out')
============================================================================= */

type QuizAttemptStatus string

const (
	AttemptInProgress QuizAttemptStatus = "in_progress"
	AttemptCompleted  QuizAttemptStatus = "completed"
	AttemptTimedOut   QuizAttemptStatus = "timed_out"
)

func (s QuizAttemptStatus) String() string { return string(s) }

func (s QuizAttemptStatus) Valid() bool {
	switch s {
	case AttemptInProgress, AttemptCompleted, AttemptTimedOut:
		return true
	default:
		return false
	}
}

// Terminal statuses are never left again.
func (s QuizAttemptStatus) Terminal() bool {
	return s == AttemptCompleted || s == AttemptTimedOut
}

// sql.Scanner + driver.Valuer
func (s *QuizAttemptStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = QuizAttemptStatus(v)
	case []byte:
		*s = QuizAttemptStatus(string(v))
	default:
		return fmt.Errorf("unsupported type for QuizAttemptStatus: %T", value)
	}
	if !s.Valid() {
		return fmt.Errorf("invalid QuizAttemptStatus: %q", *s)
	}
	return nil
}

func (s QuizAttemptStatus) Value() (driver.Value, error) {
	if s == "" {
		return nil, nil
	}
	if !s.Valid() {
		return nil, fmt.Errorf("invalid QuizAttemptStatus: %q", s)
	}
	return string(s), nil
}

/* =============================================================================
   MODEL: quiz_attempts
   One row per (quiz, user). The unique index closes the race between two
   concurrent starts: a pre-check alone would not.
============================================================================= */

type QuizAttemptModel struct {
	QuizAttemptID uuid.UUID `gorm:"column:quiz_attempt_id;type:uuid;primaryKey" json:"quiz_attempt_id"`

	QuizAttemptQuizID uuid.UUID `gorm:"column:quiz_attempt_quiz_id;type:uuid;not null;uniqueIndex:uq_quiz_attempts_pair,priority:1" json:"quiz_attempt_quiz_id"`
	QuizAttemptUserID uuid.UUID `gorm:"column:quiz_attempt_user_id;type:uuid;not null;uniqueIndex:uq_quiz_attempts_pair,priority:2;index:idx_quiz_attempts_user" json:"quiz_attempt_user_id"`

	QuizAttemptStatus QuizAttemptStatus `gorm:"column:quiz_attempt_status;type:varchar(16);not null;default:'in_progress'" json:"quiz_attempt_status"`

	// quiz_attempt_end_date is the personal deadline: start + quiz duration,
	// computed at start time.
	QuizAttemptStartDate time.Time `gorm:"column:quiz_attempt_start_date;not null" json:"quiz_attempt_start_date"`
	QuizAttemptEndDate   time.Time `gorm:"column:quiz_attempt_end_date;not null" json:"quiz_attempt_end_date"`

	QuizAttemptScore int `gorm:"column:quiz_attempt_score;not null;default:0" json:"quiz_attempt_score"`

	QuizAttemptCreatedAt time.Time `gorm:"column:quiz_attempt_created_at;not null;autoCreateTime" json:"quiz_attempt_created_at"`
	QuizAttemptUpdatedAt time.Time `gorm:"column:quiz_attempt_updated_at;not null;autoUpdateTime" json:"quiz_attempt_updated_at"`
}

func (QuizAttemptModel) TableName() string { return "quiz_attempts" }

func (m *QuizAttemptModel) BeforeCreate(_ *gorm.DB) error {
	if m.QuizAttemptID == uuid.Nil {
		m.QuizAttemptID = uuid.New()
	}
	return nil
}

/* ===================================================================
   Transitions
=================================================================== */

func (m *QuizAttemptModel) MarkCompleted(score int) {
	m.QuizAttemptStatus = AttemptCompleted
	m.QuizAttemptScore = score
}

func (m *QuizAttemptModel) MarkTimedOut() {
	m.QuizAttemptStatus = AttemptTimedOut
}
