// file: internals/features/quizzes/quizzes/service/quiz_validation_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classroomModel "learnhub_backend/internals/features/classrooms/classrooms/model"
	memberService "learnhub_backend/internals/features/communities/members/service"
	questionModel "learnhub_backend/internals/features/quizzes/questions/model"
	model "learnhub_backend/internals/features/quizzes/quizzes/model"
)

/* =========================================================
   QuizValidationService

   Every failure is a distinct *fiber.Error so the HTTP layer
   maps it straight onto the error taxonomy:
     404 missing classroom/quiz
     403 insufficient role
     400 invalid question references
     409 overlapping schedule
========================================================= */

type QuizValidationService struct {
	DB *gorm.DB
}

func NewQuizValidationService(db *gorm.DB) *QuizValidationService {
	return &QuizValidationService{DB: db}
}

// ValidateClassroomAndPermissions checks that the classroom exists and that
// the caller holds an authoring role (owner/moderator) in the classroom's
// community. Returns the classroom for reuse so callers don't re-fetch it.
func (s *QuizValidationService) ValidateClassroomAndPermissions(
	ctx context.Context,
	userID, classroomID uuid.UUID,
) (*classroomModel.ClassroomModel, error) {
	classroom, err := s.findClassroom(ctx, classroomID)
	if err != nil {
		return nil, err
	}

	role, err := memberService.GetRole(ctx, s.DB, userID, classroom.ClassroomCommunityID)
	if err != nil {
		return nil, err
	}
	if !role.CanManage() {
		return nil, fiber.NewError(fiber.StatusForbidden, "Only community owners and moderators may manage quizzes")
	}
	return classroom, nil
}

// ValidateViewPermissions only requires the classroom to exist. Reads are
// deliberately permissive while writes stay strict; the asymmetry matches the
// platform's open-classroom reading model.
func (s *QuizValidationService) ValidateViewPermissions(
	ctx context.Context,
	userID, classroomID uuid.UUID,
) (*classroomModel.ClassroomModel, error) {
	_ = userID
	return s.findClassroom(ctx, classroomID)
}

// ValidateQuestionIDs checks that every referenced question exists and is
// owned by the given classroom. Offending IDs are collected and reported in
// one error, never one at a time. An empty input is valid.
func (s *QuizValidationService) ValidateQuestionIDs(
	ctx context.Context,
	questionIDs []uuid.UUID,
	classroomID uuid.UUID,
) error {
	if len(questionIDs) == 0 {
		return nil
	}

	var rows []questionModel.QuestionModel
	if err := s.DB.WithContext(ctx).
		Select("question_id", "question_classroom_id").
		Where("question_id IN ?", questionIDs).
		Find(&rows).Error; err != nil {
		return err
	}

	owned := make(map[uuid.UUID]struct{}, len(rows))
	for _, q := range rows {
		if q.QuestionClassroomID == classroomID {
			owned[q.QuestionID] = struct{}{}
		}
	}

	var invalid []string
	for _, id := range questionIDs {
		if _, ok := owned[id]; !ok {
			invalid = append(invalid, id.String())
		}
	}
	if len(invalid) > 0 {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Invalid question IDs: %s", strings.Join(invalid, ", ")))
	}
	return nil
}

// ValidateTimeOverlap rejects a schedule that intersects a sibling quiz in
// the same classroom. Two quizzes overlap iff
// existing.start <= newEnd AND existing.end >= newStart (inclusive bounds).
// On update the quiz being updated is excluded from the comparison set.
//
// This is a read-then-write check; two concurrent creates in the same
// classroom can both pass it. Left best-effort on purpose.
func (s *QuizValidationService) ValidateTimeOverlap(
	ctx context.Context,
	classroomID uuid.UUID,
	startDate, endDate time.Time,
	excludeQuizID *uuid.UUID,
) error {
	found, err := NewQuizStore(s.DB).HasOverlappingQuiz(ctx, classroomID, startDate, endDate, excludeQuizID)
	if err != nil {
		return err
	}
	if found {
		return fiber.NewError(fiber.StatusConflict, "Quiz time conflicts with another quiz in this classroom")
	}
	return nil
}

// ValidateQuizExists loads the quiz with its question links.
func (s *QuizValidationService) ValidateQuizExists(ctx context.Context, quizID uuid.UUID) (*model.QuizModel, error) {
	var quiz model.QuizModel
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

func (s *QuizValidationService) findClassroom(ctx context.Context, classroomID uuid.UUID) (*classroomModel.ClassroomModel, error) {
	var classroom classroomModel.ClassroomModel
	if err := s.DB.WithContext(ctx).
		First(&classroom, "classroom_id = ?", classroomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Classroom not found")
		}
		return nil, err
	}
	return &classroom, nil
}
