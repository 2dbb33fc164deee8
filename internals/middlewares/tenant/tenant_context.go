// file: internals/middlewares/tenant/tenant_context.go
package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/helpers/tenant"
)

const (
	HeaderCustomerSlug = "X-Customer-Slug"
	LocTenant          = "tenant"
)

type SlugResolver interface {
	BySlug(ctx context.Context, slug string) (tenant.Tenant, error)
}

// UseTenant: header X-Customer-Slug (fallback ?customer=) → tenant di user context.
// Harus dipasang setelah AuthJWT; slug di token wajib sama (kecuali owner).
func UseTenant(r SlugResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.ToLower(strings.TrimSpace(c.Get(HeaderCustomerSlug)))
		if slug == "" {
			slug = strings.ToLower(strings.TrimSpace(c.Query("customer")))
		}
		if slug == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Header "+HeaderCustomerSlug+" wajib diisi")
		}

		t, err := r.BySlug(c.UserContext(), slug)
		if err != nil {
			if errors.Is(err, tenant.ErrUnknownTenant) {
				return fiber.NewError(fiber.StatusNotFound, "Customer tidak ditemukan atau nonaktif")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memuat customer")
		}

		if !helperAuth.IsOwner(c) {
			tokenSlug := helperAuth.GetCustomerSlugFromToken(c)
			if tokenSlug == "" || tokenSlug != strings.ToLower(t.Slug) {
				return fiber.NewError(fiber.StatusForbidden, "Token tidak berlaku untuk customer ini")
			}
		}

		c.Locals(LocTenant, t)
		c.SetUserContext(tenant.WithTenant(c.UserContext(), t))
		return c.Next()
	}
}
