// file: internals/features/quizzes/quizzes/service/quiz_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	communityModel "learnhub_backend/internals/features/communities/communities/model"
	attemptService "learnhub_backend/internals/features/quizzes/attempts/service"
	dto "learnhub_backend/internals/features/quizzes/quizzes/dto"
	model "learnhub_backend/internals/features/quizzes/quizzes/model"
)

/* =========================================================
   QuizService — orchestrates authoring operations.

   Validation order on writes: classroom + role, payload
   shape (duplicate refs), question ownership, schedule
   sanity, schedule overlap. The first failure wins; storage
   is only touched after everything passed.
========================================================= */

type QuizService struct {
	DB         *gorm.DB
	Store      *QuizStore
	Validation *QuizValidationService
	Attempts   *attemptService.AttemptService
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{
		DB:         db,
		Store:      NewQuizStore(db),
		Validation: NewQuizValidationService(db),
		Attempts:   attemptService.NewAttemptService(db),
	}
}

// CreateQuiz validates and persists a new quiz with its question links.
func (s *QuizService) CreateQuiz(ctx context.Context, userID uuid.UUID, req *dto.CreateQuizRequest) (*model.QuizModel, error) {
	if _, err := s.Validation.ValidateClassroomAndPermissions(ctx, userID, req.QuizClassroomID); err != nil {
		return nil, err
	}
	if err := rejectDuplicateQuestionIDs(req.QuestionIDs()); err != nil {
		return nil, err
	}
	if err := s.Validation.ValidateQuestionIDs(ctx, req.QuestionIDs(), req.QuizClassroomID); err != nil {
		return nil, err
	}

	quiz := req.ToModel()
	if err := validateSchedule(quiz.QuizStartDate, quiz.QuizEndDate, quiz.QuizDurationMinutes, true); err != nil {
		return nil, err
	}
	if err := s.Validation.ValidateTimeOverlap(ctx, quiz.QuizClassroomID, quiz.QuizStartDate, quiz.QuizEndDate, nil); err != nil {
		return nil, err
	}

	if err := s.Store.CreateQuizWithQuestions(ctx, quiz, req.Links()); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Duplicate question on quiz")
		}
		return nil, err
	}
	return quiz, nil
}

// UpdateQuiz patches quiz fields and optionally replaces the question set.
// Schedule invariants are re-checked against the effective (merged) window,
// and the quiz itself is excluded from the overlap comparison.
func (s *QuizService) UpdateQuiz(ctx context.Context, userID, quizID uuid.UUID, req *dto.PatchQuizRequest) (*model.QuizModel, error) {
	quiz, err := s.Validation.ValidateQuizExists(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Validation.ValidateClassroomAndPermissions(ctx, userID, quiz.QuizClassroomID); err != nil {
		return nil, err
	}

	if req.QuizQuestions != nil {
		if err := rejectDuplicateQuestionIDs(req.QuestionIDs()); err != nil {
			return nil, err
		}
		if err := s.Validation.ValidateQuestionIDs(ctx, req.QuestionIDs(), quiz.QuizClassroomID); err != nil {
			return nil, err
		}
	}

	// Merge patched values onto the stored ones before re-validating.
	start, end, duration := quiz.QuizStartDate, quiz.QuizEndDate, quiz.QuizDurationMinutes
	startChanged := false
	if req.QuizStartDate.ShouldUpdate() && !req.QuizStartDate.IsNull() {
		start = req.QuizStartDate.Val().UTC()
		startChanged = true
	}
	if req.QuizEndDate.ShouldUpdate() && !req.QuizEndDate.IsNull() {
		end = req.QuizEndDate.Val().UTC()
	}
	if req.QuizDurationMinutes.ShouldUpdate() && !req.QuizDurationMinutes.IsNull() {
		duration = req.QuizDurationMinutes.Val()
	}
	if err := validateSchedule(start, end, duration, startChanged); err != nil {
		return nil, err
	}
	if err := s.Validation.ValidateTimeOverlap(ctx, quiz.QuizClassroomID, start, end, &quizID); err != nil {
		return nil, err
	}

	if err := s.Store.UpdateQuiz(ctx, quizID, req.ToUpdates(), req.Links()); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Duplicate question on quiz")
		}
		return nil, err
	}
	return s.Validation.ValidateQuizExists(ctx, quizID)
}

// DeleteQuiz removes the quiz after the usual role check.
func (s *QuizService) DeleteQuiz(ctx context.Context, userID, quizID uuid.UUID) error {
	quiz, err := s.Validation.ValidateQuizExists(ctx, quizID)
	if err != nil {
		return err
	}
	if _, err := s.Validation.ValidateClassroomAndPermissions(ctx, userID, quiz.QuizClassroomID); err != nil {
		return err
	}
	return s.Store.DeleteQuiz(ctx, quizID)
}

// GetQuizByID returns the detail view: quiz + question links, question count,
// maximum score, and — for the calling user — whether a finished attempt
// exists and its score.
func (s *QuizService) GetQuizByID(ctx context.Context, userID, quizID uuid.UUID) (*dto.QuizResponse, error) {
	quiz, err := s.Validation.ValidateQuizExists(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Validation.ValidateViewPermissions(ctx, userID, quiz.QuizClassroomID); err != nil {
		return nil, err
	}

	resp := dto.FromModelWithQuestions(quiz)
	count := len(quiz.Questions)
	finalScore := attemptService.ComputeMaxScore(quiz.Questions)
	resp.QuestionCount = &count
	resp.FinalScore = &finalScore

	attempted, userScore, err := s.Attempts.HasFinishedAttempt(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}
	resp.IsAttempted = &attempted
	resp.UserScore = userScore
	return &resp, nil
}

// GetQuizzesByClassroom lists a classroom's quizzes, earliest first.
func (s *QuizService) GetQuizzesByClassroom(ctx context.Context, userID, classroomID uuid.UUID) ([]model.QuizModel, error) {
	if _, err := s.Validation.ValidateViewPermissions(ctx, userID, classroomID); err != nil {
		return nil, err
	}
	return s.Store.GetQuizzesByClassroom(ctx, classroomID)
}

// GetQuizzesByCommunity lists quizzes across a community's classrooms.
func (s *QuizService) GetQuizzesByCommunity(ctx context.Context, communityID uuid.UUID) ([]model.QuizModel, error) {
	var community communityModel.CommunityModel
	if err := s.DB.WithContext(ctx).
		First(&community, "community_id = ?", communityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Community not found")
		}
		return nil, err
	}
	return s.Store.GetQuizzesByCommunity(ctx, communityID)
}

/* ===================================================================
   internals
=================================================================== */

// validateSchedule checks the window shape: end after start, the attempt
// duration fits inside the window, and (on create or when the start moves)
// the start lies in the future.
func validateSchedule(start, end time.Time, durationMinutes int, requireFutureStart bool) error {
	if durationMinutes <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Quiz duration must be positive")
	}
	if !end.After(start) {
		return fiber.NewError(fiber.StatusBadRequest, "Quiz end date must be after the start date")
	}
	if start.Add(time.Duration(durationMinutes) * time.Minute).After(end) {
		return fiber.NewError(fiber.StatusBadRequest, "Quiz duration does not fit inside the scheduled window")
	}
	if requireFutureStart && !start.After(time.Now().UTC()) {
		return fiber.NewError(fiber.StatusBadRequest, "Quiz start date must be in the future")
	}
	return nil
}

func rejectDuplicateQuestionIDs(ids []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return fiber.NewError(fiber.StatusBadRequest, "Duplicate question IDs in payload")
		}
		seen[id] = struct{}{}
	}
	return nil
}
