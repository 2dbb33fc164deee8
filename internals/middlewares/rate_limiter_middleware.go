package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func tooMany(message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"success":    false,
			"message":    message,
			"error_code": "RATE_LIMITED",
		})
	}
}

// Global limiter: per IP + customer
func GlobalRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|" + c.Get("X-Customer-Slug")
		},
		LimitReached: tooMany("❌ Terlalu banyak permintaan. Silakan coba lagi nanti."),
	})
}

// Upload limiter: lebih ketat untuk endpoint storage
func UploadRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "upload|" + c.IP() + "|" + c.Get("X-Customer-Slug")
		},
		LimitReached: tooMany("❌ Terlalu banyak upload. Tunggu sebentar ya."),
	})
}
