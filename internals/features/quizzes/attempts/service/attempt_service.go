// file: internals/features/quizzes/attempts/service/attempt_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "learnhub_backend/internals/features/quizzes/attempts/model"
	quizModel "learnhub_backend/internals/features/quizzes/quizzes/model"
)

/* =========================================================
   AttemptService — the attempt lifecycle.

   One attempt per (quiz, user), ever. Start creates the row
   in_progress with a personal deadline of start + duration;
   end/submit transition it to a terminal status exactly once.
   A late finalize is refused and the attempt is marked
   timed_out instead.
========================================================= */

type AttemptService struct {
	DB *gorm.DB
}

func NewAttemptService(db *gorm.DB) *AttemptService {
	return &AttemptService{DB: db}
}

// StartAttempt opens an attempt for the caller on the given quiz.
//
// Refusals: 404 unknown quiz, 403 inactive quiz or closed window, 409 an
// in_progress attempt already exists, 403 a finished attempt exists (no
// retakes). The unique (quiz,user) index backstops the duplicate check, so
// two concurrent starts cannot both create a row.
func (s *AttemptService) StartAttempt(ctx context.Context, userID, quizID uuid.UUID) (*model.QuizAttemptModel, error) {
	quiz, err := s.findQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if !quiz.QuizIsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Quiz is not active")
	}
	if !quiz.WindowOpen(now) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Quiz is not open at this time")
	}

	if existing, err := s.GetAttempt(ctx, userID, quizID); err != nil {
		return nil, err
	} else if existing != nil {
		if existing.QuizAttemptStatus == model.AttemptInProgress {
			return nil, fiber.NewError(fiber.StatusConflict, "You already have an attempt in progress for this quiz")
		}
		return nil, fiber.NewError(fiber.StatusForbidden, "You have already attempted this quiz")
	}

	attempt := &model.QuizAttemptModel{
		QuizAttemptQuizID:    quizID,
		QuizAttemptUserID:    userID,
		QuizAttemptStatus:    model.AttemptInProgress,
		QuizAttemptStartDate: now,
		QuizAttemptEndDate:   now.Add(quiz.Duration()),
	}
	if err := s.DB.WithContext(ctx).Create(attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusConflict, "You already have an attempt for this quiz")
		}
		return nil, err
	}
	return attempt, nil
}

// EndAttempt finalizes the caller's attempt with a client-reported score.
// The score may not exceed the quiz's maximum.
func (s *AttemptService) EndAttempt(ctx context.Context, userID, quizID uuid.UUID, score int) (*model.QuizAttemptModel, error) {
	quiz, err := s.findQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	attempt, err := s.activeAttempt(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	if score < 0 || score > ComputeMaxScore(quiz.Questions) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Score exceeds the maximum for this quiz")
	}
	return s.finalize(ctx, attempt, score)
}

// SubmitQuiz grades the submitted answers server-side and finalizes the
// attempt with the earned score.
func (s *AttemptService) SubmitQuiz(ctx context.Context, userID, quizID uuid.UUID, submitted map[uuid.UUID][]string) (*model.QuizAttemptModel, error) {
	quiz, err := s.findQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	attempt, err := s.activeAttempt(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	key, err := BuildAnswerKey(ctx, s.DB, quiz.Questions)
	if err != nil {
		return nil, err
	}
	return s.finalize(ctx, attempt, ComputeEarnedScore(submitted, key))
}

// GetAttempt returns the caller's attempt on a quiz, or nil when none exists.
func (s *AttemptService) GetAttempt(ctx context.Context, userID, quizID uuid.UUID) (*model.QuizAttemptModel, error) {
	var attempt model.QuizAttemptModel
	err := s.DB.WithContext(ctx).
		First(&attempt, "quiz_attempt_quiz_id = ? AND quiz_attempt_user_id = ?", quizID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// HasFinishedAttempt reports whether the user holds a terminal attempt on
// the quiz. Timed-out attempts count as attempted; the score pointer is set
// only for completed attempts.
func (s *AttemptService) HasFinishedAttempt(ctx context.Context, userID, quizID uuid.UUID) (bool, *int, error) {
	attempt, err := s.GetAttempt(ctx, userID, quizID)
	if err != nil {
		return false, nil, err
	}
	if attempt == nil || !attempt.QuizAttemptStatus.Terminal() {
		return false, nil, nil
	}
	if attempt.QuizAttemptStatus == model.AttemptCompleted {
		score := attempt.QuizAttemptScore
		return true, &score, nil
	}
	return true, nil, nil
}

/* ===================================================================
   internals
=================================================================== */

// activeAttempt loads the attempt and enforces the finalize preconditions:
// it must exist (404), must not be terminal (409), and must be inside its
// personal deadline. A late attempt is marked timed_out and the caller gets
// 403.
func (s *AttemptService) activeAttempt(ctx context.Context, userID, quizID uuid.UUID) (*model.QuizAttemptModel, error) {
	attempt, err := s.GetAttempt(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "No attempt in progress for this quiz")
	}
	if attempt.QuizAttemptStatus.Terminal() {
		return nil, fiber.NewError(fiber.StatusConflict, "This attempt has already been finished")
	}

	if time.Now().UTC().After(attempt.QuizAttemptEndDate) {
		attempt.MarkTimedOut()
		if err := s.DB.WithContext(ctx).
			Model(&model.QuizAttemptModel{}).
			Where("quiz_attempt_id = ? AND quiz_attempt_status = ?", attempt.QuizAttemptID, model.AttemptInProgress).
			Update("quiz_attempt_status", model.AttemptTimedOut).Error; err != nil {
			return nil, err
		}
		return nil, fiber.NewError(fiber.StatusForbidden, "Time is up for this attempt")
	}
	return attempt, nil
}

// finalize moves the attempt to completed, guarded on the current status so
// exactly one finalize wins when two race.
func (s *AttemptService) finalize(ctx context.Context, attempt *model.QuizAttemptModel, score int) (*model.QuizAttemptModel, error) {
	res := s.DB.WithContext(ctx).
		Model(&model.QuizAttemptModel{}).
		Where("quiz_attempt_id = ? AND quiz_attempt_status = ?", attempt.QuizAttemptID, model.AttemptInProgress).
		Updates(map[string]any{
			"quiz_attempt_status": model.AttemptCompleted,
			"quiz_attempt_score":  score,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "This attempt has already been finished")
	}
	attempt.MarkCompleted(score)
	return attempt, nil
}

func (s *AttemptService) findQuiz(ctx context.Context, quizID uuid.UUID) (*quizModel.QuizModel, error) {
	var quiz quizModel.QuizModel
	if err := s.DB.WithContext(ctx).
		Preload("Questions").
		First(&quiz, "quiz_id = ?", quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Quiz not found")
		}
		return nil, err
	}
	return &quiz, nil
}
