// file: internals/features/quizzes/questions/model/question_model.go
package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuestionModel is authored per classroom, independently of quizzes; many
// quizzes may link the same question.
type QuestionModel struct {
	QuestionID uuid.UUID `gorm:"column:question_id;type:uuid;primaryKey" json:"question_id"`

	QuestionClassroomID uuid.UUID `gorm:"column:question_classroom_id;type:uuid;not null;index:idx_questions_classroom" json:"question_classroom_id"`

	QuestionHeader string `gorm:"column:question_header;type:text;not null" json:"question_header"`

	// question_options: JSON string list shown to the taker.
	QuestionOptions datatypes.JSON `gorm:"column:question_options;type:jsonb;not null" json:"question_options"`
	// question_answers: JSON string list — the canonical answer set.
	// A single-select question is a one-element set.
	QuestionAnswers datatypes.JSON `gorm:"column:question_answers;type:jsonb;not null" json:"question_answers,omitempty"`

	QuestionCreatedAt time.Time      `gorm:"column:question_created_at;not null;autoCreateTime" json:"question_created_at"`
	QuestionUpdatedAt time.Time      `gorm:"column:question_updated_at;not null;autoUpdateTime" json:"question_updated_at"`
	QuestionDeletedAt gorm.DeletedAt `gorm:"column:question_deleted_at;index" json:"question_deleted_at,omitempty"`
}

func (QuestionModel) TableName() string { return "questions" }

func (m *QuestionModel) BeforeCreate(_ *gorm.DB) error {
	if m.QuestionID == uuid.Nil {
		m.QuestionID = uuid.New()
	}
	return nil
}

/* ------------------------
   Helpers
------------------------ */

func (m *QuestionModel) SetOptions(opts []string) error {
	if len(opts) < 2 {
		return errors.New("at least 2 options required")
	}
	for _, o := range opts {
		if strings.TrimSpace(o) == "" {
			return errors.New("option text must not be empty")
		}
	}
	b, _ := json.Marshal(opts)
	m.QuestionOptions = datatypes.JSON(b)
	return nil
}

func (m *QuestionModel) Options() []string {
	return decodeStringList(m.QuestionOptions)
}

func (m *QuestionModel) SetAnswers(answers []string) error {
	if len(answers) == 0 {
		return errors.New("at least 1 answer required")
	}
	b, _ := json.Marshal(answers)
	m.QuestionAnswers = datatypes.JSON(b)
	return nil
}

func (m *QuestionModel) Answers() []string {
	return decodeStringList(m.QuestionAnswers)
}

// ValidateShape mirrors the DB CHECK constraints so bad payloads fail in the
// app layer: >=2 options, >=1 answer, every answer must be one of the options.
func (m *QuestionModel) ValidateShape() error {
	opts := m.Options()
	if len(opts) < 2 {
		return errors.New("at least 2 options required")
	}
	answers := m.Answers()
	if len(answers) == 0 {
		return errors.New("at least 1 answer required")
	}
	optSet := make(map[string]struct{}, len(opts))
	for _, o := range opts {
		optSet[strings.ToLower(strings.TrimSpace(o))] = struct{}{}
	}
	for _, a := range answers {
		if _, ok := optSet[strings.ToLower(strings.TrimSpace(a))]; !ok {
			return errors.New("answer " + a + " is not among the options")
		}
	}
	return nil
}

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
