package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// LoggerMiddleware: access log per request, /health dilewati.
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		Next:       func(c *fiber.Ctx) bool { return c.Path() == "/health" },
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Format:     "[${time}] ${locals:reqid} ${ip} ${reqHeader:X-Customer-Slug} - ${method} ${path} - ${status} - ${latency}\n",
	})
}
