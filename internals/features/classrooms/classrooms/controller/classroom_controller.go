// file: internals/features/classrooms/classrooms/controller/classroom_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "learnhub_backend/internals/features/classrooms/classrooms/dto"
	model "learnhub_backend/internals/features/classrooms/classrooms/model"
	memberService "learnhub_backend/internals/features/communities/members/service"
	helper "learnhub_backend/internals/helpers"
)

type ClassroomController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewClassroomController(db *gorm.DB) *ClassroomController {
	return &ClassroomController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =======================
   POST /classrooms
======================= */

func (ctl *ClassroomController) CreateClassroom(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateClassroomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	if err := ctl.requireManage(c, userID, req.ClassroomCommunityID); err != nil {
		return helper.FromFiberError(c, err)
	}

	classroom := req.ToModel()
	slug, err := helper.EnsureUniqueSlugCI(c.Context(), ctl.DB, "classrooms", "classroom_slug", classroom.ClassroomName, nil, 180)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	classroom.ClassroomSlug = slug

	if err := ctl.DB.WithContext(c.Context()).Create(classroom).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Classroom slug already in use")
		}
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Classroom created", dto.FromModel(classroom))
}

/* =======================
   GET /communities/:communityId/classrooms
======================= */

func (ctl *ClassroomController) GetClassroomsByCommunity(c *fiber.Ctx) error {
	communityID, err := helper.ParseUUIDParam(c, "communityId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.ClassroomModel{}).
		Where("classroom_community_id = ?", communityID).
		Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.ClassroomModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("classroom_community_id = ?", communityID).
		Order("classroom_created_at ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* =======================
   GET /classrooms/:classroomId
======================= */

func (ctl *ClassroomController) GetClassroomByID(c *fiber.Ctx) error {
	classroomID, err := helper.ParseUUIDParam(c, "classroomId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	classroom, err := ctl.findClassroom(c, classroomID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(classroom))
}

/* =======================
   PATCH /classrooms/:classroomId
======================= */

func (ctl *ClassroomController) PatchClassroom(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	classroomID, err := helper.ParseUUIDParam(c, "classroomId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.PatchClassroomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	classroom, err := ctl.findClassroom(c, classroomID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.requireManage(c, userID, classroom.ClassroomCommunityID); err != nil {
		return helper.FromFiberError(c, err)
	}

	updates := req.ToUpdates()
	if len(updates) > 0 {
		if err := ctl.DB.WithContext(c.Context()).
			Model(&model.ClassroomModel{}).
			Where("classroom_id = ?", classroomID).
			Updates(updates).Error; err != nil {
			return helper.FromFiberError(c, err)
		}
	}

	classroom, err = ctl.findClassroom(c, classroomID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Classroom updated", dto.FromModel(classroom))
}

/* =======================
   DELETE /classrooms/:classroomId
======================= */

func (ctl *ClassroomController) DeleteClassroom(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	classroomID, err := helper.ParseUUIDParam(c, "classroomId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	classroom, err := ctl.findClassroom(c, classroomID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.requireManage(c, userID, classroom.ClassroomCommunityID); err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctl.DB.WithContext(c.Context()).
		Where("classroom_id = ?", classroomID).
		Delete(&model.ClassroomModel{}).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Classroom deleted", fiber.Map{"classroom_id": classroomID})
}

/* ===================================================================
   internals
=================================================================== */

func (ctl *ClassroomController) requireManage(c *fiber.Ctx, userID, communityID uuid.UUID) error {
	role, err := memberService.GetRole(c.Context(), ctl.DB, userID, communityID)
	if err != nil {
		return err
	}
	if !role.CanManage() {
		return fiber.NewError(fiber.StatusForbidden, "Only community owners and moderators may manage classrooms")
	}
	return nil
}

func (ctl *ClassroomController) findClassroom(c *fiber.Ctx, classroomID uuid.UUID) (*model.ClassroomModel, error) {
	var classroom model.ClassroomModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&classroom, "classroom_id = ?", classroomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Classroom not found")
		}
		return nil, err
	}
	return &classroom, nil
}
