package middlewares

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"schoolhub_backend/internals/configs"
)

// RecoveryMiddleware menangkap panic, melapor ke reporter, lalu lanjut ke ErrorHandler (500).
func RecoveryMiddleware(rep *configs.Reporter) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			rep.Error(fmt.Errorf("panic: %v", e), map[string]interface{}{
				"method": c.Method(),
				"path":   c.Path(),
				"reqid":  c.Locals("reqid"),
			})
		},
	})
}
