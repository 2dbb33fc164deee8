package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/staff/academic_assignments/controller"
	"schoolhub_backend/internals/features/staff/academic_assignments/service"
	guard "schoolhub_backend/internals/middlewares/features"
)

// Base: /api/t/staff-academic-assignments
func StaffAcademicAssignmentRoutes(api fiber.Router, db *gorm.DB, sync *service.SyncService, perms guard.PermissionLoader) {
	ctl := controller.NewStaffAcademicAssignmentController(db, sync)
	read := guard.RequirePermission(perms, "staff_assignments:read", "staff:read")

	g := api.Group("/staff-academic-assignments")
	g.Get("/", read, ctl.List)
	g.Post("/resync", guard.RequirePermission(perms, "staff_assignments:sync"), ctl.Resync)
	g.Get("/:id", read, ctl.GetByID)
}
