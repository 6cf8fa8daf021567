package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	memberModel "learnhub_backend/internals/features/communities/members/model"
	attemptModel "learnhub_backend/internals/features/quizzes/attempts/model"
	dto "learnhub_backend/internals/features/quizzes/quizzes/dto"
	model "learnhub_backend/internals/features/quizzes/quizzes/model"
)

func createRequest(classroomID uuid.UUID, questions []dto.QuizQuestionInput) *dto.CreateQuizRequest {
	start := time.Now().UTC().Add(time.Hour)
	return &dto.CreateQuizRequest{
		QuizClassroomID:     classroomID,
		QuizName:            "Weekly Quiz",
		QuizDurationMinutes: 30,
		QuizStartDate:       start,
		QuizEndDate:         start.Add(2 * time.Hour),
		QuizQuestions:       questions,
	}
}

func TestCreateQuizPersistsQuizAndLinks(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuizService(db)
	ctx := context.Background()

	userID, classroomID := seedAuthor(t, db, memberModel.RoleOwner)
	q1 := seedQuestion(t, db, classroomID)
	q2 := seedQuestion(t, db, classroomID)

	quiz, err := svc.CreateQuiz(ctx, userID, createRequest(classroomID, []dto.QuizQuestionInput{
		{QuestionID: q1.QuestionID, Points: 5},
		{QuestionID: q2.QuestionID, Points: 10},
	}))
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	var links []model.QuizQuestionModel
	if err := db.Where("quiz_question_quiz_id = ?", quiz.QuizID).Find(&links).Error; err != nil {
		t.Fatalf("load links: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("links = %d, want 2", len(links))
	}
	if quiz.QuizIsActive != true {
		t.Fatalf("quiz should default to active")
	}
}

func TestCreateQuizValidationFailures(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuizService(db)
	ctx := context.Background()

	userID, classroomID := seedAuthor(t, db, memberModel.RoleOwner)
	q1 := seedQuestion(t, db, classroomID)

	// Same question twice in one payload.
	_, err := svc.CreateQuiz(ctx, userID, createRequest(classroomID, []dto.QuizQuestionInput{
		{QuestionID: q1.QuestionID, Points: 5},
		{QuestionID: q1.QuestionID, Points: 10},
	}))
	wantFiberStatus(t, err, fiber.StatusBadRequest)

	// Question from another classroom.
	_, otherClassroom := seedAuthor(t, db, memberModel.RoleOwner)
	foreign := seedQuestion(t, db, otherClassroom)
	_, err = svc.CreateQuiz(ctx, userID, createRequest(classroomID, []dto.QuizQuestionInput{
		{QuestionID: foreign.QuestionID, Points: 5},
	}))
	wantFiberStatus(t, err, fiber.StatusBadRequest)

	// Start in the past.
	req := createRequest(classroomID, nil)
	req.QuizStartDate = time.Now().UTC().Add(-time.Hour)
	req.QuizEndDate = time.Now().UTC().Add(time.Hour)
	_, err = svc.CreateQuiz(ctx, userID, req)
	wantFiberStatus(t, err, fiber.StatusBadRequest)

	// Duration longer than the window.
	req = createRequest(classroomID, nil)
	req.QuizDurationMinutes = 300
	_, err = svc.CreateQuiz(ctx, userID, req)
	wantFiberStatus(t, err, fiber.StatusBadRequest)

	// Member without an authoring role.
	memberID, memberClassroom := seedAuthor(t, db, memberModel.RoleMember)
	_, err = svc.CreateQuiz(ctx, memberID, createRequest(memberClassroom, nil))
	wantFiberStatus(t, err, fiber.StatusForbidden)
}

func TestCreateQuizOverlapConflict(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuizService(db)
	ctx := context.Background()

	userID, classroomID := seedAuthor(t, db, memberModel.RoleOwner)

	first := createRequest(classroomID, nil)
	if _, err := svc.CreateQuiz(ctx, userID, first); err != nil {
		t.Fatalf("first quiz: %v", err)
	}

	second := createRequest(classroomID, nil)
	second.QuizStartDate = first.QuizStartDate.Add(30 * time.Minute)
	second.QuizEndDate = first.QuizEndDate.Add(30 * time.Minute)
	_, err := svc.CreateQuiz(ctx, userID, second)
	wantFiberStatus(t, err, fiber.StatusConflict)
}

func TestUpdateQuizReplacesQuestionSet(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuizService(db)
	ctx := context.Background()

	userID, classroomID := seedAuthor(t, db, memberModel.RoleOwner)
	q1 := seedQuestion(t, db, classroomID)
	q2 := seedQuestion(t, db, classroomID)
	q3 := seedQuestion(t, db, classroomID)

	quiz, err := svc.CreateQuiz(ctx, userID, createRequest(classroomID, []dto.QuizQuestionInput{
		{QuestionID: q1.QuestionID, Points: 5},
		{QuestionID: q2.QuestionID, Points: 10},
	}))
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	newSet := []dto.QuizQuestionInput{{QuestionID: q3.QuestionID, Points: 7}}
	updated, err := svc.UpdateQuiz(ctx, userID, quiz.QuizID, &dto.PatchQuizRequest{QuizQuestions: &newSet})
	if err != nil {
		t.Fatalf("UpdateQuiz: %v", err)
	}

	if len(updated.Questions) != 1 {
		t.Fatalf("questions after replace = %d, want 1", len(updated.Questions))
	}
	if updated.Questions[0].QuizQuestionQuestionID != q3.QuestionID {
		t.Fatalf("kept question = %s, want %s", updated.Questions[0].QuizQuestionQuestionID, q3.QuestionID)
	}
	if updated.Questions[0].QuizQuestionPoints != 7 {
		t.Fatalf("points = %d, want 7", updated.Questions[0].QuizQuestionPoints)
	}
}

func TestDeleteQuizRemovesLinks(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuizService(db)
	ctx := context.Background()

	userID, classroomID := seedAuthor(t, db, memberModel.RoleOwner)
	q1 := seedQuestion(t, db, classroomID)

	quiz, err := svc.CreateQuiz(ctx, userID, createRequest(classroomID, []dto.QuizQuestionInput{
		{QuestionID: q1.QuestionID, Points: 5},
	}))
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	if err := svc.DeleteQuiz(ctx, userID, quiz.QuizID); err != nil {
		t.Fatalf("DeleteQuiz: %v", err)
	}

	var links int64
	if err := db.Model(&model.QuizQuestionModel{}).
		Where("quiz_question_quiz_id = ?", quiz.QuizID).
		Count(&links).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if links != 0 {
		t.Fatalf("links after delete = %d, want 0", links)
	}

	_, err = svc.GetQuizByID(ctx, userID, quiz.QuizID)
	wantFiberStatus(t, err, fiber.StatusNotFound)
}

func TestGetQuizByIDAttachesAttemptSummary(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuizService(db)
	ctx := context.Background()

	userID, classroomID := seedAuthor(t, db, memberModel.RoleOwner)
	q1 := seedQuestion(t, db, classroomID)
	q2 := seedQuestion(t, db, classroomID)

	quiz, err := svc.CreateQuiz(ctx, userID, createRequest(classroomID, []dto.QuizQuestionInput{
		{QuestionID: q1.QuestionID, Points: 5},
		{QuestionID: q2.QuestionID, Points: 10},
	}))
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	resp, err := svc.GetQuizByID(ctx, userID, quiz.QuizID)
	if err != nil {
		t.Fatalf("GetQuizByID: %v", err)
	}
	if resp.QuestionCount == nil || *resp.QuestionCount != 2 {
		t.Fatalf("question count = %v, want 2", resp.QuestionCount)
	}
	if resp.FinalScore == nil || *resp.FinalScore != 15 {
		t.Fatalf("final score = %v, want 15", resp.FinalScore)
	}
	if resp.IsAttempted == nil || *resp.IsAttempted {
		t.Fatalf("is_attempted should be false before any attempt")
	}
	if resp.UserScore != nil {
		t.Fatalf("user score should be absent before any attempt")
	}

	// A completed attempt surfaces on the detail view with its score.
	now := time.Now().UTC()
	attempt := &attemptModel.QuizAttemptModel{
		QuizAttemptQuizID:    quiz.QuizID,
		QuizAttemptUserID:    userID,
		QuizAttemptStatus:    attemptModel.AttemptCompleted,
		QuizAttemptStartDate: now.Add(-time.Hour),
		QuizAttemptEndDate:   now.Add(-30 * time.Minute),
		QuizAttemptScore:     12,
	}
	if err := db.Create(attempt).Error; err != nil {
		t.Fatalf("seed attempt: %v", err)
	}

	resp, err = svc.GetQuizByID(ctx, userID, quiz.QuizID)
	if err != nil {
		t.Fatalf("GetQuizByID: %v", err)
	}
	if resp.IsAttempted == nil || !*resp.IsAttempted {
		t.Fatalf("is_attempted should be true")
	}
	if resp.FinalScore == nil || *resp.FinalScore != 15 {
		t.Fatalf("final score = %v, want 15", resp.FinalScore)
	}
	if resp.UserScore == nil || *resp.UserScore != 12 {
		t.Fatalf("user score = %v, want 12", resp.UserScore)
	}

	// A timed-out attempt counts as attempted but carries no score.
	otherUser := uuid.New()
	timedOut := &attemptModel.QuizAttemptModel{
		QuizAttemptQuizID:    quiz.QuizID,
		QuizAttemptUserID:    otherUser,
		QuizAttemptStatus:    attemptModel.AttemptTimedOut,
		QuizAttemptStartDate: now.Add(-time.Hour),
		QuizAttemptEndDate:   now.Add(-30 * time.Minute),
	}
	if err := db.Create(timedOut).Error; err != nil {
		t.Fatalf("seed timed-out attempt: %v", err)
	}

	resp, err = svc.GetQuizByID(ctx, otherUser, quiz.QuizID)
	if err != nil {
		t.Fatalf("GetQuizByID: %v", err)
	}
	if resp.IsAttempted == nil || !*resp.IsAttempted {
		t.Fatalf("a timed-out attempt should count as attempted")
	}
	if resp.UserScore != nil {
		t.Fatalf("user score = %v, want nil for a timed-out attempt", resp.UserScore)
	}
}

func TestValidateScheduleRejectsNonFutureStart(t *testing.T) {
	now := time.Now().UTC()

	err := validateSchedule(now, now.Add(2*time.Hour), 30, true)
	wantFiberStatus(t, err, fiber.StatusBadRequest)

	if err := validateSchedule(now.Add(time.Minute), now.Add(2*time.Hour), 30, true); err != nil {
		t.Fatalf("future start should pass: %v", err)
	}

	// Existing quizzes keep their start unless it is being moved.
	if err := validateSchedule(now.Add(-time.Hour), now.Add(2*time.Hour), 30, false); err != nil {
		t.Fatalf("unchanged past start should pass: %v", err)
	}
}

func TestGetQuizzesByClassroomOrder(t *testing.T) {
	db := openTestDB(t)
	svc := NewQuizService(db)
	ctx := context.Background()

	userID, classroomID := seedAuthor(t, db, memberModel.RoleOwner)

	late := createRequest(classroomID, nil)
	late.QuizName = "Late"
	late.QuizStartDate = time.Now().UTC().Add(48 * time.Hour)
	late.QuizEndDate = late.QuizStartDate.Add(2 * time.Hour)
	if _, err := svc.CreateQuiz(ctx, userID, late); err != nil {
		t.Fatalf("late quiz: %v", err)
	}

	early := createRequest(classroomID, nil)
	early.QuizName = "Early"
	if _, err := svc.CreateQuiz(ctx, userID, early); err != nil {
		t.Fatalf("early quiz: %v", err)
	}

	quizzes, err := svc.GetQuizzesByClassroom(ctx, userID, classroomID)
	if err != nil {
		t.Fatalf("GetQuizzesByClassroom: %v", err)
	}
	if len(quizzes) != 2 {
		t.Fatalf("quizzes = %d, want 2", len(quizzes))
	}
	if quizzes[0].QuizName != "Early" || quizzes[1].QuizName != "Late" {
		t.Fatalf("order = [%s, %s], want [Early, Late]", quizzes[0].QuizName, quizzes[1].QuizName)
	}
}
