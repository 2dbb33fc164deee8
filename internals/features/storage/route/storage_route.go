package route

import (
	"github.com/gofiber/fiber/v2"

	"schoolhub_backend/internals/features/storage/controller"
	"schoolhub_backend/internals/features/storage/service"
	"schoolhub_backend/internals/middlewares"
	guard "schoolhub_backend/internals/middlewares/features"
)

// Base: /api/t/storage
func StorageRoutes(api fiber.Router, svc *service.Service, perms guard.PermissionLoader) {
	ctl := controller.NewStorageController(svc)
	read := guard.RequirePermission(perms, "storage:read")
	write := guard.RequirePermission(perms, "storage:write")

	g := api.Group("/storage")
	g.Get("/", read, ctl.List)
	g.Post("/folders", write, ctl.CreateFolder)
	g.Delete("/folders", write, ctl.DeleteFolder)

	g.Post("/files", middlewares.UploadRateLimiter(), write, ctl.Upload)
	g.Get("/files/:id", read, ctl.Get)
	g.Patch("/files/:id/move", write, ctl.Move)
	g.Delete("/files/:id", write, ctl.Trash)
	g.Patch("/files/:id/restore", write, ctl.Restore)
}
