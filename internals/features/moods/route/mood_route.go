package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/moods/controller"
	guard "schoolhub_backend/internals/middlewares/features"
)

// Base: /api/t/moods
func MoodRoutes(api fiber.Router, db *gorm.DB, perms guard.PermissionLoader) {
	ctl := controller.NewMoodController(db)
	read := guard.RequirePermission(perms, "moods:read")

	g := api.Group("/moods")
	g.Post("/me", ctl.RecordMine)
	g.Get("/me", ctl.ListMine)
	g.Delete("/me/:id", ctl.DeleteMine)

	g.Get("/", read, ctl.List)
	g.Get("/summary", read, ctl.Summary)
}
