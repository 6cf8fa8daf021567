// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "learnhub_backend/internals/middlewares/auth"
	routeDetails "learnhub_backend/internals/route/details"
)

// SetupRoutes mounts every feature under two groups:
//
//	/api/u — authenticated (JWT required)
//	/api/p — public reads
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	log.Println("[INFO] Setting up PRIVATE group (/api/u)...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware())

	log.Println("[INFO] Setting up PUBLIC group (/api/p)...")
	public := app.Group("/api/p")

	log.Println("[INFO] Setting up CommunityRoutes...")
	routeDetails.CommunityRoutes(private, public, db)

	log.Println("[INFO] Setting up ClassroomRoutes...")
	routeDetails.ClassroomRoutes(private, public, db)

	log.Println("[INFO] Setting up QuizRoutes...")
	routeDetails.QuizRoutes(private, public, db)

	log.Println("[INFO] Setting up ForumRoutes...")
	routeDetails.ForumRoutes(private, public, db)
}
