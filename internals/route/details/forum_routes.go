// file: internals/route/details/forum_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	commentController "learnhub_backend/internals/features/forums/comments/controller"
	postController "learnhub_backend/internals/features/forums/posts/controller"
)

func ForumRoutes(private fiber.Router, public fiber.Router, db *gorm.DB) {
	posts := postController.NewPostController(db)
	comments := commentController.NewCommentController(db)

	// Authenticated
	private.Post("/posts", posts.CreatePost)
	private.Patch("/posts/:postId", posts.PatchPost)
	private.Delete("/posts/:postId", posts.DeletePost)

	private.Post("/posts/:postId/comments", comments.CreateComment)
	private.Delete("/comments/:commentId", comments.DeleteComment)

	// Public reads
	public.Get("/communities/:communityId/posts", posts.GetPostsByCommunity)
	public.Get("/posts/:postId", posts.GetPostByID)
	public.Get("/posts/:postId/comments", comments.GetCommentsByPost)
}
