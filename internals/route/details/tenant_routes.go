package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicRoute "schoolhub_backend/internals/features/academics/route"
	permissionRoute "schoolhub_backend/internals/features/access/permissions/route"
	roleRoute "schoolhub_backend/internals/features/access/roles/route"
	assignmentRoute "schoolhub_backend/internals/features/assignments/route"
	moodRoute "schoolhub_backend/internals/features/moods/route"
	notificationRoute "schoolhub_backend/internals/features/notifications/route"
	notificationService "schoolhub_backend/internals/features/notifications/service"
	staffAssignmentRoute "schoolhub_backend/internals/features/staff/academic_assignments/route"
	syncService "schoolhub_backend/internals/features/staff/academic_assignments/service"
	staffRoute "schoolhub_backend/internals/features/staff/staffs/route"
	storageRoute "schoolhub_backend/internals/features/storage/route"
	storageService "schoolhub_backend/internals/features/storage/service"
	"schoolhub_backend/internals/helpers/signals"
	guard "schoolhub_backend/internals/middlewares/features"
)

type TenantDeps struct {
	DB            *gorm.DB
	Bus           *signals.Bus
	Perms         guard.PermissionLoader
	Notifications *notificationService.Service
	Storage       *storageService.Service
	Sync          *syncService.SyncService
}

// TenantRoutes: semua fitur per-tenant di bawah /api/t.
func TenantRoutes(api fiber.Router, d TenantDeps) {
	permissionRoute.PermissionRoutes(api, d.DB, d.Perms)
	roleRoute.RoleRoutes(api, d.DB, d.Bus, d.Perms)
	academicRoute.AcademicsRoutes(api, d.DB, d.Bus, d.Perms)
	staffRoute.StaffRoutes(api, d.DB, d.Bus, d.Perms)
	staffAssignmentRoute.StaffAcademicAssignmentRoutes(api, d.DB, d.Sync, d.Perms)
	assignmentRoute.AssignmentRoutes(api, d.DB, d.Bus, d.Perms)
	notificationRoute.NotificationRoutes(api, d.DB, d.Notifications, d.Perms)
	moodRoute.MoodRoutes(api, d.DB, d.Perms)
	if d.Storage != nil {
		storageRoute.StorageRoutes(api, d.Storage, d.Perms)
	}
}
