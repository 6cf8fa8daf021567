// file: internals/features/classrooms/lessons/controller/lesson_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classroomModel "learnhub_backend/internals/features/classrooms/classrooms/model"
	dto "learnhub_backend/internals/features/classrooms/lessons/dto"
	model "learnhub_backend/internals/features/classrooms/lessons/model"
	sectionModel "learnhub_backend/internals/features/classrooms/sections/model"
	memberService "learnhub_backend/internals/features/communities/members/service"
	helper "learnhub_backend/internals/helpers"
)

type LessonController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewLessonController(db *gorm.DB) *LessonController {
	return &LessonController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =======================
   POST /lessons
======================= */

func (ctl *LessonController) CreateLesson(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	// Resolve the classroom via the section so the two can never disagree.
	var section sectionModel.SectionModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&section, "section_id = ?", req.LessonSectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Section not found")
		}
		return helper.FromFiberError(c, err)
	}
	if err := ctl.requireManageClassroom(c, userID, section.SectionClassroomID); err != nil {
		return helper.FromFiberError(c, err)
	}

	lesson, err := req.ToModel(section.SectionClassroomID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.DB.WithContext(c.Context()).Create(lesson).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Lesson created", dto.FromModel(lesson))
}

/* =======================
   GET /sections/:sectionId/lessons
======================= */

func (ctl *LessonController) GetLessonsBySection(c *fiber.Ctx) error {
	sectionID, err := helper.ParseUUIDParam(c, "sectionId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.LessonModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("lesson_section_id = ?", sectionID).
		Order("lesson_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}

/* =======================
   GET /lessons/:lessonId
======================= */

func (ctl *LessonController) GetLessonByID(c *fiber.Ctx) error {
	lessonID, err := helper.ParseUUIDParam(c, "lessonId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	lesson, err := ctl.findLesson(c, lessonID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(lesson))
}

/* =======================
   PATCH /lessons/:lessonId
======================= */

func (ctl *LessonController) PatchLesson(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	lessonID, err := helper.ParseUUIDParam(c, "lessonId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.PatchLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	lesson, err := ctl.findLesson(c, lessonID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.requireManageClassroom(c, userID, lesson.LessonClassroomID); err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := req.Apply(lesson); err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.DB.WithContext(c.Context()).Save(lesson).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Lesson updated", dto.FromModel(lesson))
}

/* =======================
   DELETE /lessons/:lessonId
======================= */

func (ctl *LessonController) DeleteLesson(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	lessonID, err := helper.ParseUUIDParam(c, "lessonId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	lesson, err := ctl.findLesson(c, lessonID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.requireManageClassroom(c, userID, lesson.LessonClassroomID); err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctl.DB.WithContext(c.Context()).
		Where("lesson_id = ?", lessonID).
		Delete(&model.LessonModel{}).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Lesson deleted", fiber.Map{"lesson_id": lessonID})
}

/* ===================================================================
   internals
=================================================================== */

func (ctl *LessonController) requireManageClassroom(c *fiber.Ctx, userID, classroomID uuid.UUID) error {
	var classroom classroomModel.ClassroomModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&classroom, "classroom_id = ?", classroomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Classroom not found")
		}
		return err
	}
	role, err := memberService.GetRole(c.Context(), ctl.DB, userID, classroom.ClassroomCommunityID)
	if err != nil {
		return err
	}
	if !role.CanManage() {
		return fiber.NewError(fiber.StatusForbidden, "Only community owners and moderators may manage lessons")
	}
	return nil
}

func (ctl *LessonController) findLesson(c *fiber.Ctx, lessonID uuid.UUID) (*model.LessonModel, error) {
	var lesson model.LessonModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&lesson, "lesson_id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Lesson not found")
		}
		return nil, err
	}
	return &lesson, nil
}
