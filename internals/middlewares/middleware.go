package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"learnhub_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware chain: CORS, request logging,
// panic recovery and the global rate limiter.
func SetupMiddlewares(app *fiber.App) {
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(RecoveryMiddleware())
	app.Use(GlobalRateLimiter())
}
