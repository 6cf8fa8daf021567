package helper

import "github.com/gofiber/fiber/v2"

// FromFiberError turns a service/validator error (usually *fiber.Error)
// into the standard JSON error envelope. Anything else becomes a 500.
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}
