// file: internals/helpers/auth/claims.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/* ============================================
   Locals Keys (diisi middleware AuthJWT)
   ============================================ */

const (
	LocUserID       = "user_id"       // string UUID
	LocRoleID       = "role_id"       // string UUID
	LocUserType     = "user_type"     // staff | student | owner
	LocUserEmail    = "user_email"    // string
	LocCustomerSlug = "customer_slug" // slug tenant dari token
	LocPermissions  = "permissions"   // []string, diisi RequirePermission (cache per request)
)

const (
	UserTypeStaff   = "staff"
	UserTypeStudent = "student"
	UserTypeOwner   = "owner"
)

func localString(c *fiber.Ctx, key string) string {
	if v, ok := c.Locals(key).(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func localUUID(c *fiber.Ctx, key, label string) (uuid.UUID, error) {
	raw := localString(c, key)
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, label+" tidak ditemukan di token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Format "+label+" tidak valid di token")
	}
	return id, nil
}

func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localUUID(c, LocUserID, "user_id")
}

func GetRoleIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localUUID(c, LocRoleID, "role_id")
}

func GetUserType(c *fiber.Ctx) string { return strings.ToLower(localString(c, LocUserType)) }

func GetUserEmail(c *fiber.Ctx) string { return localString(c, LocUserEmail) }

func GetCustomerSlugFromToken(c *fiber.Ctx) string {
	return strings.ToLower(localString(c, LocCustomerSlug))
}

func IsOwner(c *fiber.Ctx) bool { return GetUserType(c) == UserTypeOwner }

// HasPermission: cek dari locals permissions (lihat middleware RequirePermission).
func HasPermission(c *fiber.Ctx, key string) bool {
	perms, _ := c.Locals(LocPermissions).([]string)
	return PermissionsAllow(perms, key)
}

// PermissionsAllow: "*" = semua, "resource:*" = semua aksi resource.
func PermissionsAllow(perms []string, key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	resource := key
	if i := strings.Index(key, ":"); i > 0 {
		resource = key[:i]
	}
	for _, p := range perms {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "*" || p == key || p == resource+":*" {
			return true
		}
	}
	return false
}
