package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "learnhub_backend/internals/features/quizzes/attempts/model"
	questionModel "learnhub_backend/internals/features/quizzes/questions/model"
	quizModel "learnhub_backend/internals/features/quizzes/quizzes/model"
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
		&quizModel.QuizModel{},
		&quizModel.QuizQuestionModel{},
		&questionModel.QuestionModel{},
		&model.QuizAttemptModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func makeQuiz(t *testing.T, db *gorm.DB, durationMinutes int, start, end time.Time) *quizModel.QuizModel {
	t.Helper()
	quiz := &quizModel.QuizModel{
		QuizClassroomID:     uuid.New(),
		QuizName:            "Midterm",
		QuizDurationMinutes: durationMinutes,
		QuizStartDate:       start,
		QuizEndDate:         end,
		QuizIsActive:        true,
	}
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return quiz
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

func TestStartAttemptSetsPersonalDeadline(t *testing.T) {
	db := openTestDB(t)
	svc := NewAttemptService(db)
	ctx := context.Background()

	now := time.Now().UTC()
	quiz := makeQuiz(t, db, 30, now.Add(-time.Hour), now.Add(time.Hour))
	userID := uuid.New()

	attempt, err := svc.StartAttempt(ctx, userID, quiz.QuizID)
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	if attempt.QuizAttemptStatus != model.AttemptInProgress {
		t.Fatalf("status = %s, want in_progress", attempt.QuizAttemptStatus)
	}
	if got := attempt.QuizAttemptEndDate.Sub(attempt.QuizAttemptStartDate); got != 30*time.Minute {
		t.Fatalf("personal deadline = start + %v, want start + 30m", got)
	}
	// A 10:45 start on a 10:00-12:00 quiz ends at 11:15, not 12:00.
	if attempt.QuizAttemptEndDate.After(quiz.QuizEndDate) {
		t.Fatalf("personal deadline %v exceeds quiz end %v", attempt.QuizAttemptEndDate, quiz.QuizEndDate)
	}
}

func TestStartAttemptUnknownQuiz(t *testing.T) {
	db := openTestDB(t)
	svc := NewAttemptService(db)

	_, err := svc.StartAttempt(context.Background(), uuid.New(), uuid.New())
	wantFiberStatus(t, err, fiber.StatusNotFound)
}

func TestStartAttemptOutsideWindow(t *testing.T) {
	db := openTestDB(t)
	svc := NewAttemptService(db)
	ctx := context.Background()

	now := time.Now().UTC()
	future := makeQuiz(t, db, 30, now.Add(time.Hour), now.Add(2*time.Hour))
	_, err := svc.StartAttempt(ctx, uuid.New(), future.QuizID)
	wantFiberStatus(t, err, fiber.StatusForbidden)

	past := makeQuiz(t, db, 30, now.Add(-2*time.Hour), now.Add(-time.Hour))
	_, err = svc.StartAttempt(ctx, uuid.New(), past.QuizID)
	wantFiberStatus(t, err, fiber.StatusForbidden)
}

func TestStartAttemptInactiveQuiz(t *testing.T) {
	db := openTestDB(t)
	svc := NewAttemptService(db)

	now := time.Now().UTC()
	quiz := makeQuiz(t, db, 30, now.Add(-time.Hour), now.Add(time.Hour))
	if err := db.Model(quiz).Update("quiz_is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	_, err := svc.StartAttempt(context.Background(), uuid.New(), quiz.QuizID)
	wantFiberStatus(t, err, fiber.StatusForbidden)
}

func TestStartAttemptTwice(t *testing.T) {
	db := openTestDB(t)
	svc := NewAttemptService(db)
	ctx := context.Background()

	now := time.Now().UTC()
	quiz := makeQuiz(t, db, 30, now.Add(-time.Hour), now.Add(time.Hour))
	userID := uuid.New()

	if _, err := svc.StartAttempt(ctx, userID, quiz.QuizID); err != nil {
		t.Fatalf("first start: %v", err)
	}
	_, err := svc.StartAttempt(ctx, userID, quiz.QuizID)
	wantFiberStatus(t, err, fiber.StatusConflict)
}

func TestStartAttemptAfterFinish(t *testing.T) {
	db := openTestDB(t)
	svc := NewAttemptService(db)
	ctx := context.Background()

	now := time.Now().UTC()
	quiz := makeQuiz(t, db, 30, now.Add(-time.Hour), now.Add(time.Hour))
	userID := uuid.New()

	if _, err := svc.StartAttempt(ctx, userID, quiz.QuizID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.EndAttempt(ctx, userID, quiz.QuizID, 0); err != nil {
		t.Fatalf("end: %v", err)
	}

	// No retakes.
	_, err := svc.StartAttempt(ctx, userID, quiz.QuizID)
	wantFiberStatus(t, err, fiber.StatusForbidden)
}

func TestEndAttemptScoreCeiling(t *testing.T) {
	db := openTestDB(t)
	svc := NewAttemptService(db)
	ctx := context.Background()

	now := time.Now().UTC()
	quiz := makeQuiz(t, db, 30, now.Add(-time.Hour), now.Add(time.Hour))
	links := []quizModel.QuizQuestionModel{
		{QuizQuestionQuizID: quiz.QuizID, QuizQuestionQuestionID: uuid.New(), QuizQuestionPoints: 5},
		{QuizQuestionQuizID: quiz.QuizID, QuizQuestionQuestionID: uuid.New(), QuizQuestionPoints: 10},
	}
	if err := db.Create(&links).Error; err != nil {
		t.Fatalf("create links: %v", err)
	}

	userID := uuid.New()
	if _, err := svc.StartAttempt(ctx, userID, quiz.QuizID); err != nil {
		t.Fatalf("start: %v", err)
	}

	_, err := svc.EndAttempt(ctx, userID, quiz.QuizID, 16)
	wantFiberStatus(t, err, fiber.StatusBadRequest)

	attempt, err := svc.EndAttempt(ctx, userID, quiz.QuizID, 15)
	if err != nil {
		t.Fatalf("end at max: %v", err)
	}
	if attempt.QuizAttemptScore != 15 || attempt.QuizAttemptStatus != model.AttemptCompleted {
		t.Fatalf("attempt = %s/%d, want completed/15", attempt.QuizAttemptStatus, attempt.QuizAttemptScore)
	}
}

func TestEndAttemptWithoutStart(t *testing.T) {
	db := openTestDB(t)
	svc := NewAttemptService(db)

	now := time.Now().UTC()
	quiz := makeQuiz(t, db, 30, now.Add(-time.Hour), now.Add(time.Hour))

	_, err := svc.EndAttempt(context.Background(), uuid.New(), quiz.QuizID, 0)
	wantFiberStatus(t, err, fiber.StatusNotFound)
}

func TestEndAttemptTwice(t *testing.T) {
	db := openTestDB(t)
	svc := NewAttemptService(db)
	ctx := context.Background()

	now := time.Now().UTC()
	quiz := makeQuiz(t, db, 30, now.Add(-time.Hour), now.Add(time.Hour))
	userID := uuid.New()

	if _, err := svc.StartAttempt(ctx, userID, quiz.QuizID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.EndAttempt(ctx, userID, quiz.QuizID, 0); err != nil {
		t.Fatalf("first end: %v", err)
	}
	_, err := svc.EndAttempt(ctx, userID, quiz.QuizID, 0)
	wantFiberStatus(t, err, fiber.StatusConflict)
}

func TestEndAttemptPastDeadline(t *testing.T) {
	db := openTestDB(t)
	svc := NewAttemptService(db)
	ctx := context.Background()

	now := time.Now().UTC()
	quiz := makeQuiz(t, db, 30, now.Add(-2*time.Hour), now.Add(2*time.Hour))
	userID := uuid.New()

	// An attempt whose personal deadline already passed.
	expired := &model.QuizAttemptModel{
		QuizAttemptQuizID:    quiz.QuizID,
		QuizAttemptUserID:    userID,
		QuizAttemptStatus:    model.AttemptInProgress,
		QuizAttemptStartDate: now.Add(-time.Hour),
		QuizAttemptEndDate:   now.Add(-30 * time.Minute),
	}
	if err := db.Create(expired).Error; err != nil {
		t.Fatalf("seed attempt: %v", err)
	}

	_, err := svc.EndAttempt(ctx, userID, quiz.QuizID, 0)
	wantFiberStatus(t, err, fiber.StatusForbidden)

	var got model.QuizAttemptModel
	if err := db.First(&got, "quiz_attempt_id = ?", expired.QuizAttemptID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.QuizAttemptStatus != model.AttemptTimedOut {
		t.Fatalf("status = %s, want timed_out", got.QuizAttemptStatus)
	}
}

func TestHasFinishedAttemptCountsTerminalStatuses(t *testing.T) {
	db := openTestDB(t)
	svc := NewAttemptService(db)
	ctx := context.Background()

	now := time.Now().UTC()
	quiz := makeQuiz(t, db, 30, now.Add(-time.Hour), now.Add(time.Hour))

	// No attempt at all.
	attempted, score, err := svc.HasFinishedAttempt(ctx, uuid.New(), quiz.QuizID)
	if err != nil {
		t.Fatalf("HasFinishedAttempt: %v", err)
	}
	if attempted || score != nil {
		t.Fatalf("no attempt = (%v, %v), want (false, nil)", attempted, score)
	}

	// In progress is not finished.
	running := uuid.New()
	if _, err := svc.StartAttempt(ctx, running, quiz.QuizID); err != nil {
		t.Fatalf("start: %v", err)
	}
	attempted, score, err = svc.HasFinishedAttempt(ctx, running, quiz.QuizID)
	if err != nil {
		t.Fatalf("HasFinishedAttempt: %v", err)
	}
	if attempted || score != nil {
		t.Fatalf("in progress = (%v, %v), want (false, nil)", attempted, score)
	}

	// Completed carries its score.
	if _, err := svc.EndAttempt(ctx, running, quiz.QuizID, 0); err != nil {
		t.Fatalf("end: %v", err)
	}
	attempted, score, err = svc.HasFinishedAttempt(ctx, running, quiz.QuizID)
	if err != nil {
		t.Fatalf("HasFinishedAttempt: %v", err)
	}
	if !attempted || score == nil || *score != 0 {
		t.Fatalf("completed = (%v, %v), want (true, 0)", attempted, score)
	}

	// Timed out still counts as attempted, without a score.
	lateUser := uuid.New()
	timedOut := &model.QuizAttemptModel{
		QuizAttemptQuizID:    quiz.QuizID,
		QuizAttemptUserID:    lateUser,
		QuizAttemptStatus:    model.AttemptTimedOut,
		QuizAttemptStartDate: now.Add(-time.Hour),
		QuizAttemptEndDate:   now.Add(-30 * time.Minute),
	}
	if err := db.Create(timedOut).Error; err != nil {
		t.Fatalf("seed attempt: %v", err)
	}
	attempted, score, err = svc.HasFinishedAttempt(ctx, lateUser, quiz.QuizID)
	if err != nil {
		t.Fatalf("HasFinishedAttempt: %v", err)
	}
	if !attempted {
		t.Fatalf("a timed-out attempt should count as finished")
	}
	if score != nil {
		t.Fatalf("score = %v, want nil for a timed-out attempt", score)
	}
}

func TestSubmitQuizGradesServerSide(t *testing.T) {
	db := openTestDB(t)
	svc := NewAttemptService(db)
	ctx := context.Background()

	now := time.Now().UTC()
	quiz := makeQuiz(t, db, 30, now.Add(-time.Hour), now.Add(time.Hour))

	q1 := &questionModel.QuestionModel{QuestionClassroomID: quiz.QuizClassroomID, QuestionHeader: "Capital of France?"}
	if err := q1.SetOptions([]string{"Paris", "Lyon"}); err != nil {
		t.Fatalf("options: %v", err)
	}
	if err := q1.SetAnswers([]string{"Paris"}); err != nil {
		t.Fatalf("answers: %v", err)
	}
	q2 := &questionModel.QuestionModel{QuestionClassroomID: quiz.QuizClassroomID, QuestionHeader: "Primary colors?"}
	if err := q2.SetOptions([]string{"red", "blue", "green", "yellow"}); err != nil {
		t.Fatalf("options: %v", err)
	}
	if err := q2.SetAnswers([]string{"red", "blue", "yellow"}); err != nil {
		t.Fatalf("answers: %v", err)
	}
	if err := db.Create(q1).Error; err != nil {
		t.Fatalf("create q1: %v", err)
	}
	if err := db.Create(q2).Error; err != nil {
		t.Fatalf("create q2: %v", err)
	}

	links := []quizModel.QuizQuestionModel{
		{QuizQuestionQuizID: quiz.QuizID, QuizQuestionQuestionID: q1.QuestionID, QuizQuestionPoints: 5},
		{QuizQuestionQuizID: quiz.QuizID, QuizQuestionQuestionID: q2.QuestionID, QuizQuestionPoints: 10},
	}
	if err := db.Create(&links).Error; err != nil {
		t.Fatalf("create links: %v", err)
	}

	userID := uuid.New()
	if _, err := svc.StartAttempt(ctx, userID, quiz.QuizID); err != nil {
		t.Fatalf("start: %v", err)
	}

	// q1 right, q2 incomplete: 5 points.
	attempt, err := svc.SubmitQuiz(ctx, userID, quiz.QuizID, map[uuid.UUID][]string{
		q1.QuestionID: {"paris"},
		q2.QuestionID: {"red", "blue"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if attempt.QuizAttemptScore != 5 {
		t.Fatalf("score = %d, want 5", attempt.QuizAttemptScore)
	}
	if attempt.QuizAttemptStatus != model.AttemptCompleted {
		t.Fatalf("status = %s, want completed", attempt.QuizAttemptStatus)
	}
}
