package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/staff/staffs/controller"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/helpers/signals"
	guard "schoolhub_backend/internals/middlewares/features"
)

// Base: /api/t/staffs
func StaffRoutes(api fiber.Router, db *gorm.DB, bus *signals.Bus, perms guard.PermissionLoader) {
	ctl := controller.NewStaffController(db, bus)
	read := guard.RequirePermission(perms, "staff:read", "staff:write")
	write := guard.RequirePermission(perms, "staff:write")

	g := api.Group("/staffs")
	g.Get("/me", guard.RequireUserType(helperAuth.UserTypeStaff), ctl.Me)
	g.Get("/", read, ctl.List)
	g.Get("/:id", read, ctl.GetByID)
	g.Post("/", write, ctl.Create)
	g.Patch("/:id", write, ctl.Update)
	g.Delete("/:id", write, ctl.Delete)
}
