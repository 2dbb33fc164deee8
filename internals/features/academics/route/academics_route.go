package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/academics/controller"
	"schoolhub_backend/internals/helpers/signals"
	guard "schoolhub_backend/internals/middlewares/features"
)

// Base: /api/t (branches, classes, academic-periods)
func AcademicsRoutes(api fiber.Router, db *gorm.DB, bus *signals.Bus, perms guard.PermissionLoader) {
	ctl := controller.NewAcademicsController(db, bus)
	read := guard.RequirePermission(perms, "academics:read", "academics:write")
	write := guard.RequirePermission(perms, "academics:write")

	br := api.Group("/branches")
	br.Get("/", read, ctl.ListBranches)
	br.Get("/:id", read, ctl.GetBranch)
	br.Post("/", write, ctl.CreateBranch)
	br.Patch("/:id", write, ctl.UpdateBranch)
	br.Delete("/:id", write, ctl.DeleteBranch)

	cl := api.Group("/classes")
	cl.Get("/", read, ctl.ListClasses)
	cl.Get("/:id", read, ctl.GetClass)
	cl.Post("/", write, ctl.CreateClass)
	cl.Patch("/:id", write, ctl.UpdateClass)
	cl.Delete("/:id", write, ctl.DeleteClass)

	ap := api.Group("/academic-periods")
	ap.Get("/", read, ctl.ListPeriods)
	ap.Get("/:id", read, ctl.GetPeriod)
	ap.Post("/", write, ctl.CreatePeriod)
	ap.Patch("/:id", write, ctl.UpdatePeriod)
	ap.Patch("/:id/activate", write, ctl.ActivatePeriod)
	ap.Patch("/:id/deactivate", write, ctl.DeactivatePeriod)
	ap.Delete("/:id", write, ctl.DeletePeriod)
}
