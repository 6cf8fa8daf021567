// file: internals/features/forums/posts/controller/post_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	memberModel "learnhub_backend/internals/features/communities/members/model"
	memberService "learnhub_backend/internals/features/communities/members/service"
	dto "learnhub_backend/internals/features/forums/posts/dto"
	model "learnhub_backend/internals/features/forums/posts/model"
	helper "learnhub_backend/internals/helpers"
)

type PostController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewPostController(db *gorm.DB) *PostController {
	return &PostController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =======================
   POST /posts
   - members only
======================= */

func (ctl *PostController) CreatePost(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	role, err := memberService.GetRole(c.Context(), ctl.DB, userID, req.PostCommunityID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if role == memberModel.RoleNone {
		return helper.JsonError(c, fiber.StatusForbidden, "Join the community before posting")
	}

	post := req.ToModel(userID)
	if err := ctl.DB.WithContext(c.Context()).Create(post).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Post created", dto.FromModel(post))
}

/* =======================
   GET /communities/:communityId/posts
======================= */

func (ctl *PostController) GetPostsByCommunity(c *fiber.Ctx) error {
	communityID, err := helper.ParseUUIDParam(c, "communityId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.PostModel{}).
		Where("post_community_id = ?", communityID).
		Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.PostModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("post_community_id = ?", communityID).
		Order("post_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* =======================
   GET /posts/:postId
======================= */

func (ctl *PostController) GetPostByID(c *fiber.Ctx) error {
	postID, err := helper.ParseUUIDParam(c, "postId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	post, err := ctl.findPost(c, postID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(post))
}

/* =======================
   PATCH /posts/:postId
   - author or community manager
======================= */

func (ctl *PostController) PatchPost(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	postID, err := helper.ParseUUIDParam(c, "postId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.PatchPostRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	post, err := ctl.findPost(c, postID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.requireAuthorOrManager(c, userID, post); err != nil {
		return helper.FromFiberError(c, err)
	}

	updates := req.ToUpdates()
	if len(updates) > 0 {
		if err := ctl.DB.WithContext(c.Context()).
			Model(&model.PostModel{}).
			Where("post_id = ?", postID).
			Updates(updates).Error; err != nil {
			return helper.FromFiberError(c, err)
		}
	}

	post, err = ctl.findPost(c, postID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Post updated", dto.FromModel(post))
}

/* =======================
   DELETE /posts/:postId
======================= */

func (ctl *PostController) DeletePost(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	postID, err := helper.ParseUUIDParam(c, "postId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	post, err := ctl.findPost(c, postID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.requireAuthorOrManager(c, userID, post); err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ctl.DB.WithContext(c.Context()).
		Where("post_id = ?", postID).
		Delete(&model.PostModel{}).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Post deleted", fiber.Map{"post_id": postID})
}

/* ===================================================================
   internals
=================================================================== */

func (ctl *PostController) requireAuthorOrManager(c *fiber.Ctx, userID uuid.UUID, post *model.PostModel) error {
	if post.PostUserID == userID {
		return nil
	}
	role, err := memberService.GetRole(c.Context(), ctl.DB, userID, post.PostCommunityID)
	if err != nil {
		return err
	}
	if !role.CanManage() {
		return fiber.NewError(fiber.StatusForbidden, "Only the author or a community manager may modify this post")
	}
	return nil
}

func (ctl *PostController) findPost(c *fiber.Ctx, postID uuid.UUID) (*model.PostModel, error) {
	var post model.PostModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&post, "post_id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Post not found")
		}
		return nil, err
	}
	return &post, nil
}
