// file: internals/features/quizzes/quizzes/controller/quiz_user_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attemptService "learnhub_backend/internals/features/quizzes/attempts/service"
	questionDTO "learnhub_backend/internals/features/quizzes/questions/dto"
	questionModel "learnhub_backend/internals/features/quizzes/questions/model"
	service "learnhub_backend/internals/features/quizzes/quizzes/service"
	helper "learnhub_backend/internals/helpers"
)

// QuizUserController serves the taker-facing views. The answer key never
// leaves the server on these paths.
type QuizUserController struct {
	DB         *gorm.DB
	Validation *service.QuizValidationService
	Attempts   *attemptService.AttemptService
}

func NewQuizUserController(db *gorm.DB) *QuizUserController {
	return &QuizUserController{
		DB:         db,
		Validation: service.NewQuizValidationService(db),
		Attempts:   attemptService.NewAttemptService(db),
	}
}

/* =======================
   GET /quizzes/:quizId/quiz-questions
======================= */

func (ctl *QuizUserController) GetQuizQuestions(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	quizID, err := helper.ParseUUIDParam(c, "quizId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	quiz, err := ctl.Validation.ValidateQuizExists(c.Context(), quizID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := ctl.Validation.ValidateViewPermissions(c.Context(), userID, quiz.QuizClassroomID); err != nil {
		return helper.FromFiberError(c, err)
	}

	attempted, _, err := ctl.Attempts.HasFinishedAttempt(c.Context(), userID, quizID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// Map link -> points, then load the questions in one query.
	points := make(map[uuid.UUID]int, len(quiz.Questions))
	ids := make([]uuid.UUID, 0, len(quiz.Questions))
	for _, l := range quiz.Questions {
		points[l.QuizQuestionQuestionID] = l.QuizQuestionPoints
		ids = append(ids, l.QuizQuestionQuestionID)
	}

	questions := make([]questionDTO.TakerQuestionResponse, 0, len(ids))
	if len(ids) > 0 {
		var rows []questionModel.QuestionModel
		if err := ctl.DB.WithContext(c.Context()).
			Where("question_id IN ?", ids).
			Find(&rows).Error; err != nil {
			return helper.FromFiberError(c, err)
		}
		byID := make(map[uuid.UUID]*questionModel.QuestionModel, len(rows))
		for i := range rows {
			byID[rows[i].QuestionID] = &rows[i]
		}
		// Keep the link order stable.
		for _, id := range ids {
			if q, ok := byID[id]; ok {
				questions = append(questions, questionDTO.TakerView(q, points[id]))
			}
		}
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"attempted": attempted,
		"questions": questions,
	})
}
