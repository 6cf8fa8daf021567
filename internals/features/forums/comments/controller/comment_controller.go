// file: internals/features/forums/comments/controller/comment_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	memberModel "learnhub_backend/internals/features/communities/members/model"
	memberService "learnhub_backend/internals/features/communities/members/service"
	dto "learnhub_backend/internals/features/forums/comments/dto"
	model "learnhub_backend/internals/features/forums/comments/model"
	postModel "learnhub_backend/internals/features/forums/posts/model"
	helper "learnhub_backend/internals/helpers"
)

type CommentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =======================
   POST /posts/:postId/comments
   - members of the post's community only
======================= */

func (ctl *CommentController) CreateComment(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	postID, err := helper.ParseUUIDParam(c, "postId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateCommentRequest
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
	role, err := memberService.GetRole(c.Context(), ctl.DB, userID, post.PostCommunityID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if role == memberModel.RoleNone {
		return helper.JsonError(c, fiber.StatusForbidden, "Join the community before commenting")
	}

	comment := req.ToModel(postID, userID)
	if err := ctl.DB.WithContext(c.Context()).Create(comment).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Comment created", dto.FromModel(comment))
}

/* =======================
   GET /posts/:postId/comments
======================= */

func (ctl *CommentController) GetCommentsByPost(c *fiber.Ctx) error {
	postID, err := helper.ParseUUIDParam(c, "postId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if _, err := ctl.findPost(c, postID); err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 50, 200)

	var total int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.CommentModel{}).
		Where("comment_post_id = ?", postID).
		Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []model.CommentModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("comment_post_id = ?", postID).
		Order("comment_created_at ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* =======================
   DELETE /comments/:commentId
   - author or community manager
======================= */

func (ctl *CommentController) DeleteComment(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	commentID, err := helper.ParseUUIDParam(c, "commentId")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var comment model.CommentModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&comment, "comment_id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Comment not found")
		}
		return helper.FromFiberError(c, err)
	}

	if comment.CommentUserID != userID {
		post, err := ctl.findPost(c, comment.CommentPostID)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		role, err := memberService.GetRole(c.Context(), ctl.DB, userID, post.PostCommunityID)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		if !role.CanManage() {
			return helper.JsonError(c, fiber.StatusForbidden, "Only the author or a community manager may delete this comment")
		}
	}

	if err := ctl.DB.WithContext(c.Context()).
		Where("comment_id = ?", commentID).
		Delete(&model.CommentModel{}).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Comment deleted", fiber.Map{"comment_id": commentID})
}

func (ctl *CommentController) findPost(c *fiber.Ctx, postID uuid.UUID) (*postModel.PostModel, error) {
	var post postModel.PostModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&post, "post_id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Post not found")
		}
		return nil, err
	}
	return &post, nil
}
