// file: internals/features/quizzes/attempts/controller/quiz_attempt_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "learnhub_backend/internals/features/quizzes/attempts/dto"
	service "learnhub_backend/internals/features/quizzes/attempts/service"
	helper "learnhub_backend/internals/helpers"
)

type QuizAttemptController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Service   *service.AttemptService
}

func NewQuizAttemptController(db *gorm.DB) *QuizAttemptController {
	return &QuizAttemptController{
		DB:        db,
		Validator: validator.New(),
		Service:   service.NewAttemptService(db),
	}
}

/* =======================
   POST /quizzes/:quizId/start
======================= */

func (ctl *QuizAttemptController) StartAttempt(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	quizID, err := helper.ParseUUIDParam(c, "quizId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	attempt, err := ctl.Service.StartAttempt(c.Context(), userID, quizID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Attempt started", dto.FromModel(attempt))
}

/* =======================
   POST /quizzes/:quizId/submit
   - finalize with a client-reported score
======================= */

func (ctl *QuizAttemptController) EndAttempt(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	quizID, err := helper.ParseUUIDParam(c, "quizId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.EndAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	attempt, err := ctl.Service.EndAttempt(c.Context(), userID, quizID, req.Score)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Attempt finished", dto.FromModel(attempt))
}

/* =======================
   POST /quizzes/:quizId/submit-quiz
   - server-side grading
======================= */

func (ctl *QuizAttemptController) SubmitQuiz(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	quizID, err := helper.ParseUUIDParam(c, "quizId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	attempt, err := ctl.Service.SubmitQuiz(c.Context(), userID, quizID, req.ToMap())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Attempt graded", dto.FromModel(attempt))
}

/* =======================
   GET /quizzes/:quizId/attempt
   - the caller's own attempt, if any
======================= */

func (ctl *QuizAttemptController) GetMyAttempt(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	quizID, err := helper.ParseUUIDParam(c, "quizId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	attempt, err := ctl.Service.GetAttempt(c.Context(), userID, quizID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if attempt == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "No attempt for this quiz")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(attempt))
}
