package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/assignments/controller"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/helpers/signals"
	guard "schoolhub_backend/internals/middlewares/features"
)

// Base: /api/t/staff-assignments & /api/t/student-assignments
func AssignmentRoutes(api fiber.Router, db *gorm.DB, bus *signals.Bus, perms guard.PermissionLoader) {
	ctl := controller.NewAssignmentController(db, bus)
	read := guard.RequirePermission(perms, "assignments:read", "assignments:write")
	write := guard.RequirePermission(perms, "assignments:write")
	// izin dimuat tanpa menolak: aksi lifecycle memeriksa pembuat ATAU izin tulis.
	loaded := guard.LoadPermissions(perms)

	staff := api.Group("/staff-assignments")
	staff.Get("/me", guard.RequireUserType(helperAuth.UserTypeStaff), ctl.ListStaffMine)
	staff.Get("/", read, ctl.ListStaff)
	staff.Get("/:id", read, ctl.GetStaff)
	staff.Post("/", write, ctl.CreateStaff)
	staff.Patch("/:id", loaded, ctl.UpdateStaff)
	mountLifecycle(staff, loaded, ctl.StaffLifecycle())

	student := api.Group("/student-assignments")
	student.Get("/me", guard.RequireUserType(helperAuth.UserTypeStudent), ctl.ListStudentMine)
	student.Get("/", read, ctl.ListStudent)
	student.Get("/:id", read, ctl.GetStudent)
	student.Post("/", write, ctl.CreateStudent)
	student.Patch("/:id", loaded, ctl.UpdateStudent)
	mountLifecycle(student, loaded, ctl.StudentLifecycle())
}

func mountLifecycle(g fiber.Router, loaded fiber.Handler, h controller.LifecycleHandlers) {
	g.Patch("/:id/publish", loaded, h.Publish)
	g.Patch("/:id/draft", loaded, h.Draft)
	g.Patch("/:id/delete-for-me", loaded, h.DeleteForMe)
	g.Patch("/:id/restore-for-me", loaded, h.RestoreForMe)
	g.Delete("/:id", loaded, h.DeleteForEveryone)
	g.Patch("/:id/restore", loaded, h.Restore)
}
