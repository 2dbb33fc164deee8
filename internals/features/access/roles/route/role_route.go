package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/access/roles/controller"
	"schoolhub_backend/internals/helpers/signals"
	guard "schoolhub_backend/internals/middlewares/features"
)

// Base: /api/t/roles
func RoleRoutes(api fiber.Router, db *gorm.DB, bus *signals.Bus, perms guard.PermissionLoader) {
	ctl := controller.NewRoleController(db, bus)
	read := guard.RequirePermission(perms, "roles:read")
	write := guard.RequirePermission(perms, "roles:write")

	g := api.Group("/roles")
	g.Get("/", read, ctl.List)
	g.Get("/:id", read, ctl.GetByID)
	g.Post("/", write, ctl.Create)
	g.Patch("/:id", write, ctl.Update)
	g.Delete("/:id", write, ctl.Delete)

	g.Patch("/:id/permissions", write, ctl.ReplacePermissions)
	g.Post("/:id/permissions", write, ctl.GrantPermissions)
	g.Delete("/:id/permissions/:key", write, ctl.RevokePermission)
}
