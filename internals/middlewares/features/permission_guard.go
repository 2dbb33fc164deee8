// file: internals/middlewares/features/permission_guard.go
package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	roleModel "schoolhub_backend/internals/features/access/roles/model"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/helpers/tenant"
)

// PermissionLoader mengembalikan daftar permission milik role di tenant aktif.
type PermissionLoader interface {
	RolePermissions(ctx context.Context, roleID uuid.UUID) ([]string, error)
}

var ErrRoleNotFound = errors.New("role not found")

type GormPermissionLoader struct{ DB *gorm.DB }

func NewGormPermissionLoader(db *gorm.DB) *GormPermissionLoader {
	return &GormPermissionLoader{DB: db}
}

func (l *GormPermissionLoader) RolePermissions(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	q, err := tenant.Scoped(ctx, l.DB, roleModel.RoleModel{})
	if err != nil {
		return nil, err
	}
	var role roleModel.RoleModel
	if err := q.Select("role_id", "role_permissions").
		Where("role_id = ? AND role_deleted_at IS NULL", roleID).
		Take(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return []string(role.RolePermissions), nil
}

// loadPermissions: sekali per request, hasil disimpan di Locals.
func loadPermissions(c *fiber.Ctx, loader PermissionLoader) ([]string, error) {
	if perms, ok := c.Locals(helperAuth.LocPermissions).([]string); ok {
		return perms, nil
	}
	roleID, err := helperAuth.GetRoleIDFromToken(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusForbidden, "Role tidak ditemukan di token")
	}
	perms, err := loader.RolePermissions(c.UserContext(), roleID)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return nil, fiber.NewError(fiber.StatusForbidden, "Role tidak ditemukan")
		}
		if errors.Is(err, tenant.ErrNoTenant) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Tenant tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memuat permission")
	}
	c.Locals(helperAuth.LocPermissions, perms)
	return perms, nil
}

// RequirePermission: lolos jika role memiliki SALAH SATU key. Owner selalu lolos.
func RequirePermission(loader PermissionLoader, keys ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helperAuth.IsOwner(c) {
			return c.Next()
		}
		if helperAuth.GetUserType(c) != helperAuth.UserTypeStaff {
			return fiber.NewError(fiber.StatusForbidden, "Akses hanya untuk staf")
		}
		perms, err := loadPermissions(c, loader)
		if err != nil {
			return err
		}
		for _, k := range keys {
			if helperAuth.PermissionsAllow(perms, k) {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Tidak punya izin: "+strings.Join(keys, " | "))
	}
}

// LoadPermissions: isi Locals permission tanpa menolak request, supaya handler
// bisa memakai helperAuth.HasPermission untuk cek kepemilikan ATAU izin.
func LoadPermissions(loader PermissionLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helperAuth.GetUserType(c) == helperAuth.UserTypeStaff {
			if _, err := loadPermissions(c, loader); err != nil {
				c.Locals(helperAuth.LocPermissions, []string{})
			}
		}
		return c.Next()
	}
}

// OnlyOwner untuk endpoint platform (/api/o).
func OnlyOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !helperAuth.IsOwner(c) {
			return fiber.NewError(fiber.StatusForbidden, "Akses hanya untuk owner")
		}
		return c.Next()
	}
}

// RequireUserType: contoh RequireUserType("student") untuk endpoint milik siswa.
func RequireUserType(types ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ut := helperAuth.GetUserType(c)
		for _, t := range types {
			if ut == t {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Tipe user tidak diizinkan")
	}
}
