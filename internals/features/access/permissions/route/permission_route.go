package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/access/permissions/controller"
	guard "schoolhub_backend/internals/middlewares/features"
)

// Base: /api/t/permissions (setelah AuthJWT + UseTenant)
func PermissionRoutes(api fiber.Router, db *gorm.DB, perms guard.PermissionLoader) {
	ctl := controller.NewPermissionController(db)

	g := api.Group("/permissions")
	g.Get("/", guard.RequirePermission(perms, "permissions:read", "roles:read"), ctl.List)
	g.Get("/:id", guard.RequirePermission(perms, "permissions:read", "roles:read"), ctl.GetByID)
	g.Post("/", guard.RequirePermission(perms, "permissions:write"), ctl.Create)
	g.Patch("/:id", guard.RequirePermission(perms, "permissions:write"), ctl.Update)
	g.Delete("/:id", guard.RequirePermission(perms, "permissions:write"), ctl.Delete)
}
