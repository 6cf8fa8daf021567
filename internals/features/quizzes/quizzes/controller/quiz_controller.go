// file: internals/features/quizzes/quizzes/controller/quiz_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "learnhub_backend/internals/features/quizzes/quizzes/dto"
	service "learnhub_backend/internals/features/quizzes/quizzes/service"
	helper "learnhub_backend/internals/helpers"
)

type QuizController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Service   *service.QuizService
}

func NewQuizController(db *gorm.DB) *QuizController {
	return &QuizController{
		DB:        db,
		Validator: validator.New(),
		Service:   service.NewQuizService(db),
	}
}

/* =======================
   POST /quizzes
======================= */

func (ctl *QuizController) CreateQuiz(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	quiz, err := ctl.Service.CreateQuiz(c.Context(), userID, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Quiz created", dto.FromModelWithQuestions(quiz))
}

/* =======================
   PATCH /quizzes/:quizId
======================= */

func (ctl *QuizController) PatchQuiz(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	quizID, err := helper.ParseUUIDParam(c, "quizId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.PatchQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	quiz, err := ctl.Service.UpdateQuiz(c.Context(), userID, quizID, &req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Quiz updated", dto.FromModelWithQuestions(quiz))
}

/* =======================
   DELETE /quizzes/:quizId
======================= */

func (ctl *QuizController) DeleteQuiz(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	quizID, err := helper.ParseUUIDParam(c, "quizId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctl.Service.DeleteQuiz(c.Context(), userID, quizID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Quiz deleted", fiber.Map{"quiz_id": quizID})
}

/* =======================
   GET /quizzes/:quizId
======================= */

func (ctl *QuizController) GetQuizByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	quizID, err := helper.ParseUUIDParam(c, "quizId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	resp, err := ctl.Service.GetQuizByID(c.Context(), userID, quizID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", resp)
}

/* =======================
   GET /classrooms/:classroomId/quizzes
======================= */

func (ctl *QuizController) GetQuizzesByClassroom(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	classroomID, err := helper.ParseUUIDParam(c, "classroomId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	quizzes, err := ctl.Service.GetQuizzesByClassroom(c.Context(), userID, classroomID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(quizzes), nil)
}

/* =======================
   GET /communities/:communityId/quizzes
======================= */

func (ctl *QuizController) GetQuizzesByCommunity(c *fiber.Ctx) error {
	communityID, err := helper.ParseUUIDParam(c, "communityId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	quizzes, err := ctl.Service.GetQuizzesByCommunity(c.Context(), communityID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(quizzes), nil)
}
