// file: internals/features/communities/members/controller/community_member_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	communityModel "learnhub_backend/internals/features/communities/communities/model"
	dto "learnhub_backend/internals/features/communities/members/dto"
	model "learnhub_backend/internals/features/communities/members/model"
	memberService "learnhub_backend/internals/features/communities/members/service"
	helper "learnhub_backend/internals/helpers"
)

type CommunityMemberController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCommunityMemberController(db *gorm.DB) *CommunityMemberController {
	return &CommunityMemberController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =======================
   POST /communities/:communityId/join
======================= */

func (ctl *CommunityMemberController) JoinCommunity(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	communityID, err := helper.ParseUUIDParam(c, "communityId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.ensureCommunity(c, communityID); err != nil {
		return helper.FromFiberError(c, err)
	}

	member := &model.CommunityMemberModel{
		CommunityMemberCommunityID: communityID,
		CommunityMemberUserID:      userID,
		CommunityMemberRole:        model.RoleMember,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "You are already a member of this community")
		}
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Joined community", dto.FromModel(member))
}

/* =======================
   POST /communities/:communityId/leave
   - the owner cannot leave; ownership transfer is a role change
======================= */

func (ctl *CommunityMemberController) LeaveCommunity(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	communityID, err := helper.ParseUUIDParam(c, "communityId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	role, err := memberService.GetRole(c.Context(), ctl.DB, userID, communityID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if role == model.RoleNone {
		return helper.JsonError(c, fiber.StatusNotFound, "You are not a member of this community")
	}
	if role == model.RoleOwner {
		return helper.JsonError(c, fiber.StatusConflict, "The owner must transfer ownership before leaving")
	}

	if err := ctl.DB.WithContext(c.Context()).
		Where("community_member_community_id = ? AND community_member_user_id = ?", communityID, userID).
		Delete(&model.CommunityMemberModel{}).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Left community", fiber.Map{"community_id": communityID})
}

/* =======================
   GET /communities/:communityId/members
======================= */

func (ctl *CommunityMemberController) GetMembers(c *fiber.Ctx) error {
	communityID, err := helper.ParseUUIDParam(c, "communityId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.ensureCommunity(c, communityID); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 50, 200)

	var total int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.CommunityMemberModel{}).
		Where("community_member_community_id = ?", communityID).
		Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.CommunityMemberModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("community_member_community_id = ?", communityID).
		Order("community_member_created_at ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* =======================
   PATCH /communities/:communityId/members/role
   - owner only; demoting yourself from owner requires another owner to exist
======================= */

func (ctl *CommunityMemberController) ChangeRole(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	communityID, err := helper.ParseUUIDParam(c, "communityId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	callerRole, err := memberService.GetRole(c.Context(), ctl.DB, userID, communityID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if callerRole != model.RoleOwner {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the community owner may change roles")
	}

	newRole := model.Role(req.Role)
	if !newRole.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid role")
	}

	if userID == req.UserID && newRole != model.RoleOwner {
		var owners int64
		if err := ctl.DB.WithContext(c.Context()).
			Model(&model.CommunityMemberModel{}).
			Where("community_member_community_id = ? AND community_member_role = ?", communityID, model.RoleOwner).
			Count(&owners).Error; err != nil {
			return helper.FromFiberError(c, err)
		}
		if owners <= 1 {
			return helper.JsonError(c, fiber.StatusConflict, "The community must keep at least one owner")
		}
	}

	res := ctl.DB.WithContext(c.Context()).
		Model(&model.CommunityMemberModel{}).
		Where("community_member_community_id = ? AND community_member_user_id = ?", communityID, req.UserID).
		Update("community_member_role", newRole)
	if res.Error != nil {
		return helper.FromFiberError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Member not found in this community")
	}

	return helper.JsonUpdated(c, "Role updated", fiber.Map{
		"community_id": communityID,
		"user_id":      req.UserID,
		"role":         newRole.String(),
	})
}

func (ctl *CommunityMemberController) ensureCommunity(c *fiber.Ctx, communityID uuid.UUID) error {
	var community communityModel.CommunityModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&community, "community_id = ?", communityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Community not found")
		}
		return err
	}
	return nil
}
