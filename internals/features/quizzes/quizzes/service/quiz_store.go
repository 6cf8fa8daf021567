// file: internals/features/quizzes/quizzes/service/quiz_store.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "learnhub_backend/internals/features/quizzes/quizzes/model"
)

/* =========================================================
   QuizStore — quiz + quiz-question persistence.

   The two multi-row writes (create-with-questions, question
   replacement) run inside one transaction each: a quiz row
   without its links, or links half-replaced, is never an
   observable state.
========================================================= */

type QuizStore struct {
	DB *gorm.DB
}

func NewQuizStore(db *gorm.DB) *QuizStore {
	return &QuizStore{DB: db}
}

// CreateQuizWithQuestions creates the quiz row and all question links
// atomically. A failure on any link aborts the quiz creation too.
func (s *QuizStore) CreateQuizWithQuestions(
	ctx context.Context,
	quiz *model.QuizModel,
	links []model.QuizQuestionModel,
) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		for i := range links {
			links[i].QuizQuestionQuizID = quiz.QuizID
		}
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
		quiz.Questions = links
		return nil
	})
}

// UpdateQuiz applies scalar updates and, when newLinks is non-nil, replaces
// the full question-link set (delete all, insert new) in the same
// transaction. Replacement is wholesale by design: links absent from the new
// list are gone, point values are not merged.
func (s *QuizStore) UpdateQuiz(
	ctx context.Context,
	quizID uuid.UUID,
	updates map[string]any,
	newLinks *[]model.QuizQuestionModel,
) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&model.QuizModel{}).
				Where("quiz_id = ?", quizID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		if newLinks != nil {
			if err := tx.
				Where("quiz_question_quiz_id = ?", quizID).
				Delete(&model.QuizQuestionModel{}).Error; err != nil {
				return err
			}
			links := *newLinks
			for i := range links {
				links[i].QuizQuestionQuizID = quizID
				links[i].QuizQuestionID = uuid.Nil // fresh rows, fresh ids
			}
			if len(links) > 0 {
				if err := tx.Create(&links).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// DeleteQuiz removes the quiz and its question links.
func (s *QuizStore) DeleteQuiz(ctx context.Context, quizID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("quiz_question_quiz_id = ?", quizID).
			Delete(&model.QuizQuestionModel{}).Error; err != nil {
			return err
		}
		return tx.
			Where("quiz_id = ?", quizID).
			Delete(&model.QuizModel{}).Error
	})
}

// GetQuizzesByClassroom lists quizzes ascending by start date. Question links
// are not eagerly loaded; callers that need counts fetch them separately.
func (s *QuizStore) GetQuizzesByClassroom(ctx context.Context, classroomID uuid.UUID) ([]model.QuizModel, error) {
	var quizzes []model.QuizModel
	err := s.DB.WithContext(ctx).
		Where("quiz_classroom_id = ?", classroomID).
		Order("quiz_start_date ASC").
		Find(&quizzes).Error
	return quizzes, err
}

// GetQuizzesByCommunity lists quizzes across all classrooms of a community,
// ascending by start date.
func (s *QuizStore) GetQuizzesByCommunity(ctx context.Context, communityID uuid.UUID) ([]model.QuizModel, error) {
	var quizzes []model.QuizModel
	err := s.DB.WithContext(ctx).
		Joins("JOIN classrooms ON classrooms.classroom_id = quizzes.quiz_classroom_id").
		Where("classrooms.classroom_community_id = ? AND classrooms.classroom_deleted_at IS NULL", communityID).
		Order("quiz_start_date ASC").
		Find(&quizzes).Error
	return quizzes, err
}

// HasOverlappingQuiz implements the inclusive-bounds interval intersection:
// existing.start <= newEnd AND existing.end >= newStart, same classroom.
func (s *QuizStore) HasOverlappingQuiz(
	ctx context.Context,
	classroomID uuid.UUID,
	startDate, endDate time.Time,
	excludeQuizID *uuid.UUID,
) (bool, error) {
	q := s.DB.WithContext(ctx).
		Model(&model.QuizModel{}).
		Where("quiz_classroom_id = ? AND quiz_start_date <= ? AND quiz_end_date >= ?", classroomID, endDate, startDate)
	if excludeQuizID != nil {
		q = q.Where("quiz_id <> ?", *excludeQuizID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountQuestions returns the number of question links for one quiz.
func (s *QuizStore) CountQuestions(ctx context.Context, quizID uuid.UUID) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&model.QuizQuestionModel{}).
		Where("quiz_question_quiz_id = ?", quizID).
		Count(&n).Error
	return n, err
}
