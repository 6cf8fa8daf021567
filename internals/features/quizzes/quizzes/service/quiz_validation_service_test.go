package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	classroomModel "learnhub_backend/internals/features/classrooms/classrooms/model"
	communityModel "learnhub_backend/internals/features/communities/communities/model"
	memberModel "learnhub_backend/internals/features/communities/members/model"
	attemptModel "learnhub_backend/internals/features/quizzes/attempts/model"
	questionModel "learnhub_backend/internals/features/quizzes/questions/model"
	model "learnhub_backend/internals/features/quizzes/quizzes/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&communityModel.CommunityModel{},
		&memberModel.CommunityMemberModel{},
		&classroomModel.ClassroomModel{},
		&questionModel.QuestionModel{},
		&model.QuizModel{},
		&model.QuizQuestionModel{},
		&attemptModel.QuizAttemptModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedAuthor creates a community, a classroom inside it, and a user holding
// the given role.
func seedAuthor(t *testing.T, db *gorm.DB, role memberModel.Role) (userID, classroomID uuid.UUID) {
	t.Helper()
	userID = uuid.New()

	community := &communityModel.CommunityModel{
		CommunityName:      "Go Study Group",
		CommunitySlug:      "go-study-group-" + uuid.NewString()[:8],
		CommunityCreatedBy: userID,
	}
	if err := db.Create(community).Error; err != nil {
		t.Fatalf("create community: %v", err)
	}
	if role != memberModel.RoleNone {
		member := &memberModel.CommunityMemberModel{
			CommunityMemberCommunityID: community.CommunityID,
			CommunityMemberUserID:      userID,
			CommunityMemberRole:        role,
		}
		if err := db.Create(member).Error; err != nil {
			t.Fatalf("create member: %v", err)
		}
	}

	classroom := &classroomModel.ClassroomModel{
		ClassroomCommunityID: community.CommunityID,
		ClassroomName:        "Algorithms 101",
		ClassroomSlug:        "algorithms-101-" + uuid.NewString()[:8],
	}
	if err := db.Create(classroom).Error; err != nil {
		t.Fatalf("create classroom: %v", err)
	}
	return userID, classroom.ClassroomID
}

func seedQuestion(t *testing.T, db *gorm.DB, classroomID uuid.UUID) *questionModel.QuestionModel {
	t.Helper()
	q := &questionModel.QuestionModel{
		QuestionClassroomID: classroomID,
		QuestionHeader:      "2 + 2 = ?",
	}
	if err := q.SetOptions([]string{"3", "4"}); err != nil {
		t.Fatalf("options: %v", err)
	}
	if err := q.SetAnswers([]string{"4"}); err != nil {
		t.Fatalf("answers: %v", err)
	}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}
	return q
}

func wantFiberStatus(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatalf("want fiber error with status %d, got nil", code)
	}
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		t.Fatalf("want *fiber.Error, got %T: %v", err, err)
	}
	if fe.Code != code {
		t.Fatalf("status = %d, want %d (%v)", fe.Code, code, fe)
	}
}

func TestValidateClassroomAndPermissions(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuizValidationService(db)
	ctx := context.Background()

	ownerID, classroomID := seedAuthor(t, db, memberModel.RoleOwner)
	if _, err := svc.ValidateClassroomAndPermissions(ctx, ownerID, classroomID); err != nil {
		t.Fatalf("owner should manage: %v", err)
	}

	memberID, memberClassroom := seedAuthor(t, db, memberModel.RoleMember)
	_, err := svc.ValidateClassroomAndPermissions(ctx, memberID, memberClassroom)
	wantFiberStatus(t, err, fiber.StatusForbidden)

	_, err = svc.ValidateClassroomAndPermissions(ctx, ownerID, uuid.New())
	wantFiberStatus(t, err, fiber.StatusNotFound)
}

func TestValidateQuestionIDsCollectsAllOffenders(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuizValidationService(db)
	ctx := context.Background()

	_, classroomID := seedAuthor(t, db, memberModel.RoleOwner)
	_, otherClassroom := seedAuthor(t, db, memberModel.RoleOwner)

	owned := seedQuestion(t, db, classroomID)
	foreign := seedQuestion(t, db, otherClassroom)
	missing := uuid.New()

	err := svc.ValidateQuestionIDs(ctx, []uuid.UUID{owned.QuestionID, foreign.QuestionID, missing}, classroomID)
	wantFiberStatus(t, err, fiber.StatusBadRequest)

	var fe *fiber.Error
	errors.As(err, &fe)
	if !strings.Contains(fe.Message, foreign.QuestionID.String()) || !strings.Contains(fe.Message, missing.String()) {
		t.Fatalf("message should list every offender, got %q", fe.Message)
	}
	if strings.Contains(fe.Message, owned.QuestionID.String()) {
		t.Fatalf("message should not list the valid id, got %q", fe.Message)
	}

	if err := svc.ValidateQuestionIDs(ctx, nil, classroomID); err != nil {
		t.Fatalf("empty input should pass: %v", err)
	}
}

func TestValidateTimeOverlap(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuizValidationService(db)
	ctx := context.Background()

	_, classroomID := seedAuthor(t, db, memberModel.RoleOwner)

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	existing := &model.QuizModel{
		QuizClassroomID:     classroomID,
		QuizName:            "Week 1",
		QuizDurationMinutes: 30,
		QuizStartDate:       base,
		QuizEndDate:         base.Add(time.Hour),
		QuizIsActive:        true,
	}
	if err := db.Create(existing).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	// Plain intersection.
	err := svc.ValidateTimeOverlap(ctx, classroomID, base.Add(30*time.Minute), base.Add(90*time.Minute), nil)
	wantFiberStatus(t, err, fiber.StatusConflict)

	// Bounds are inclusive: touching at 11:00 still conflicts.
	err = svc.ValidateTimeOverlap(ctx, classroomID, base.Add(time.Hour), base.Add(2*time.Hour), nil)
	wantFiberStatus(t, err, fiber.StatusConflict)

	// Strictly after.
	if err := svc.ValidateTimeOverlap(ctx, classroomID, base.Add(61*time.Minute), base.Add(2*time.Hour), nil); err != nil {
		t.Fatalf("disjoint window should pass: %v", err)
	}

	// Strictly before.
	if err := svc.ValidateTimeOverlap(ctx, classroomID, base.Add(-time.Hour), base.Add(-time.Minute), nil); err != nil {
		t.Fatalf("disjoint window should pass: %v", err)
	}

	// The quiz being updated is excluded from the comparison.
	if err := svc.ValidateTimeOverlap(ctx, classroomID, base, base.Add(time.Hour), &existing.QuizID); err != nil {
		t.Fatalf("self overlap should be excluded: %v", err)
	}

	// Other classrooms don't count.
	_, otherClassroom := seedAuthor(t, db, memberModel.RoleOwner)
	if err := svc.ValidateTimeOverlap(ctx, otherClassroom, base, base.Add(time.Hour), nil); err != nil {
		t.Fatalf("other classroom should pass: %v", err)
	}
}
