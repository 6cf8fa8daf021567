// file: internals/features/classrooms/sections/controller/section_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classroomModel "learnhub_backend/internals/features/classrooms/classrooms/model"
	dto "learnhub_backend/internals/features/classrooms/sections/dto"
	model "learnhub_backend/internals/features/classrooms/sections/model"
	memberService "learnhub_backend/internals/features/communities/members/service"
	helper "learnhub_backend/internals/helpers"
)

type SectionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewSectionController(db *gorm.DB) *SectionController {
	return &SectionController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =======================
   POST /sections
======================= */

func (ctl *SectionController) CreateSection(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	if err := ctl.requireManageClassroom(c, userID, req.SectionClassroomID); err != nil {
		return helper.FromFiberError(c, err)
	}

	section := req.ToModel()
	if err := ctl.DB.WithContext(c.Context()).Create(section).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Section created", dto.FromModel(section))
}

/* =======================
   GET /classrooms/:classroomId/sections
======================= */

func (ctl *SectionController) GetSectionsByClassroom(c *fiber.Ctx) error {
	classroomID, err := helper.ParseUUIDParam(c, "classroomId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.SectionModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("section_classroom_id = ?", classroomID).
		Order("section_position ASC, section_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), nil)
}

/* =======================
   PATCH /sections/:sectionId
======================= */

func (ctl *SectionController) PatchSection(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	sectionID, err := helper.ParseUUIDParam(c, "sectionId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.PatchSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	section, err := ctl.findSection(c, sectionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.requireManageClassroom(c, userID, section.SectionClassroomID); err != nil {
		return helper.FromFiberError(c, err)
	}

	updates := req.ToUpdates()
	if len(updates) > 0 {
		if err := ctl.DB.WithContext(c.Context()).
			Model(&model.SectionModel{}).
			Where("section_id = ?", sectionID).
			Updates(updates).Error; err != nil {
			return helper.FromFiberError(c, err)
		}
	}

	section, err = ctl.findSection(c, sectionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Section updated", dto.FromModel(section))
}

/* =======================
   DELETE /sections/:sectionId
======================= */

func (ctl *SectionController) DeleteSection(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	sectionID, err := helper.ParseUUIDParam(c, "sectionId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	section, err := ctl.findSection(c, sectionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.requireManageClassroom(c, userID, section.SectionClassroomID); err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctl.DB.WithContext(c.Context()).
		Where("section_id = ?", sectionID).
		Delete(&model.SectionModel{}).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Section deleted", fiber.Map{"section_id": sectionID})
}

/* ===================================================================
   internals
=================================================================== */

func (ctl *SectionController) requireManageClassroom(c *fiber.Ctx, userID, classroomID uuid.UUID) error {
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
		return fiber.NewError(fiber.StatusForbidden, "Only community owners and moderators may manage sections")
	}
	return nil
}

func (ctl *SectionController) findSection(c *fiber.Ctx, sectionID uuid.UUID) (*model.SectionModel, error) {
	var section model.SectionModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&section, "section_id = ?", sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Section not found")
		}
		return nil, err
	}
	return &section, nil
}
