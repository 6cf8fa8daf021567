// file: internals/features/quizzes/questions/controller/question_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "learnhub_backend/internals/features/quizzes/questions/dto"
	model "learnhub_backend/internals/features/quizzes/questions/model"
	quizService "learnhub_backend/internals/features/quizzes/quizzes/service"
	helper "learnhub_backend/internals/helpers"
)

// QuestionController manages the classroom question bank. All writes require
// an authoring role in the classroom's community.
type QuestionController struct {
	DB         *gorm.DB
	Validator  *validator.Validate
	Validation *quizService.QuizValidationService
}

func NewQuestionController(db *gorm.DB) *QuestionController {
	return &QuestionController{
		DB:         db,
		Validator:  validator.New(),
		Validation: quizService.NewQuizValidationService(db),
	}
}

/* =======================
   POST /questions
======================= */

func (ctl *QuestionController) CreateQuestion(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	if _, err := ctl.Validation.ValidateClassroomAndPermissions(c.Context(), userID, req.QuestionClassroomID); err != nil {
		return helper.FromFiberError(c, err)
	}

	q, err := req.ToModel()
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.DB.WithContext(c.Context()).Create(q).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Question created", dto.FromModel(q))
}

/* =======================
   PATCH /questions/:questionId
======================= */

func (ctl *QuestionController) PatchQuestion(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	questionID, err := helper.ParseUUIDParam(c, "questionId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.PatchQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	q, err := ctl.findQuestion(c, questionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := ctl.Validation.ValidateClassroomAndPermissions(c.Context(), userID, q.QuestionClassroomID); err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := req.Apply(q); err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.DB.WithContext(c.Context()).Save(q).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Question updated", dto.FromModel(q))
}

/* =======================
   DELETE /questions/:questionId
======================= */

func (ctl *QuestionController) DeleteQuestion(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	questionID, err := helper.ParseUUIDParam(c, "questionId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	q, err := ctl.findQuestion(c, questionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := ctl.Validation.ValidateClassroomAndPermissions(c.Context(), userID, q.QuestionClassroomID); err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctl.DB.WithContext(c.Context()).
		Where("question_id = ?", questionID).
		Delete(&model.QuestionModel{}).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Question deleted", fiber.Map{"question_id": questionID})
}

/* =======================
   GET /classrooms/:classroomId/questions
======================= */

func (ctl *QuestionController) GetQuestionsByClassroom(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	classroomID, err := helper.ParseUUIDParam(c, "classroomId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// The bank includes answer keys, so listing is an authoring operation.
	if _, err := ctl.Validation.ValidateClassroomAndPermissions(c.Context(), userID, classroomID); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 200)

	var total int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.QuestionModel{}).
		Where("question_classroom_id = ?", classroomID).
		Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.QuestionModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("question_classroom_id = ?", classroomID).
		Order("question_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* =======================
   GET /questions/:questionId
======================= */

func (ctl *QuestionController) GetQuestionByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	questionID, err := helper.ParseUUIDParam(c, "questionId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	q, err := ctl.findQuestion(c, questionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := ctl.Validation.ValidateClassroomAndPermissions(c.Context(), userID, q.QuestionClassroomID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(q))
}

func (ctl *QuestionController) findQuestion(c *fiber.Ctx, questionID uuid.UUID) (*model.QuestionModel, error) {
	var q model.QuestionModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&q, "question_id = ?", questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Question not found")
		}
		return nil, err
	}
	return &q, nil
}
