package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/notifications/controller"
	"schoolhub_backend/internals/features/notifications/service"
	guard "schoolhub_backend/internals/middlewares/features"
)

// Base: /api/t/notifications
func NotificationRoutes(api fiber.Router, db *gorm.DB, svc *service.Service, perms guard.PermissionLoader) {
	ctl := controller.NewNotificationController(db, svc)
	write := guard.RequirePermission(perms, "notifications:write")

	g := api.Group("/notifications")
	g.Post("/", write, ctl.Send)

	g.Get("/me", ctl.ListMine)
	g.Get("/me/unread-count", ctl.UnreadCount)
	g.Patch("/me/read-all", ctl.MarkAllRead)

	g.Patch("/:id/read", ctl.MarkRead)
	g.Patch("/:id/delete-for-me", ctl.DeleteForMe)
	g.Patch("/:id/restore", ctl.Restore)
	g.Delete("/:id", write, ctl.DeleteForEveryone)
}
