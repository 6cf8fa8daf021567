// file: internals/features/communities/communities/controller/community_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "learnhub_backend/internals/features/communities/communities/dto"
	model "learnhub_backend/internals/features/communities/communities/model"
	memberModel "learnhub_backend/internals/features/communities/members/model"
	memberService "learnhub_backend/internals/features/communities/members/service"
	helper "learnhub_backend/internals/helpers"
)

type CommunityController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCommunityController(db *gorm.DB) *CommunityController {
	return &CommunityController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =======================
   POST /communities
   - creator becomes owner in the same transaction
======================= */

func (ctl *CommunityController) CreateCommunity(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateCommunityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	community := req.ToModel(userID)
	slug, err := helper.EnsureUniqueSlugCI(c.Context(), ctl.DB, "communities", "community_slug", community.CommunityName, nil, 140)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	community.CommunitySlug = slug

	if err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(community).Error; err != nil {
			return err
		}
		owner := &memberModel.CommunityMemberModel{
			CommunityMemberCommunityID: community.CommunityID,
			CommunityMemberUserID:      userID,
			CommunityMemberRole:        memberModel.RoleOwner,
		}
		return tx.Create(owner).Error
	}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Community slug already in use")
		}
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Community created", dto.FromModel(community))
}

/* =======================
   GET /communities
   - ?q= name search, paginated
======================= */

func (ctl *CommunityController) GetCommunities(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).Model(&model.CommunityModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("LOWER(community_name) LIKE LOWER(?)", "%"+s+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.CommunityModel
	if err := q.
		Order("community_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* =======================
   GET /communities/slug/:slug
======================= */

func (ctl *CommunityController) GetCommunityBySlug(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	if slug == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid slug")
	}

	var community model.CommunityModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&community, "LOWER(community_slug) = LOWER(?)", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Community not found")
		}
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(&community))
}

/* =======================
   GET /communities/:communityId
======================= */

func (ctl *CommunityController) GetCommunityByID(c *fiber.Ctx) error {
	communityID, err := helper.ParseUUIDParam(c, "communityId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var community model.CommunityModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&community, "community_id = ?", communityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Community not found")
		}
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(&community))
}

/* =======================
   PATCH /communities/:communityId
======================= */

func (ctl *CommunityController) PatchCommunity(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	communityID, err := helper.ParseUUIDParam(c, "communityId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.PatchCommunityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	role, err := memberService.GetRole(c.Context(), ctl.DB, userID, communityID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !role.CanManage() {
		return helper.JsonError(c, fiber.StatusForbidden, "Only community owners and moderators may edit the community")
	}

	updates := req.ToUpdates()
	if len(updates) > 0 {
		if err := ctl.DB.WithContext(c.Context()).
			Model(&model.CommunityModel{}).
			Where("community_id = ?", communityID).
			Updates(updates).Error; err != nil {
			return helper.FromFiberError(c, err)
		}
	}

	var community model.CommunityModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&community, "community_id = ?", communityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Community not found")
		}
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Community updated", dto.FromModel(&community))
}

/* =======================
   DELETE /communities/:communityId
   - owner only; soft delete
======================= */

func (ctl *CommunityController) DeleteCommunity(c *fiber.Ctx) error {
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
	if role != memberModel.RoleOwner {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the community owner may delete the community")
	}

	if err := ctl.DB.WithContext(c.Context()).
		Where("community_id = ?", communityID).
		Delete(&model.CommunityModel{}).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Community deleted", fiber.Map{"community_id": communityID})
}
