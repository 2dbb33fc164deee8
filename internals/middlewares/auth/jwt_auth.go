package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	helperAuth "schoolhub_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // pakai cookie access_token jika tidak ada Bearer
}

// AuthJWT memverifikasi Bearer token (HS256) lalu mengisi locals:
// user_id, role_id, user_type, user_email, customer_slug.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else if o.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		// user_id: sub > id > user_id
		userID := firstNonEmpty(strClaim(claims, "sub"), strClaim(claims, "id"), strClaim(claims, "user_id"))
		if _, err := uuid.Parse(userID); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "user_id tidak valid")
		}
		c.Locals(helperAuth.LocUserID, userID)

		if rid := strClaim(claims, "role_id"); rid != "" {
			c.Locals(helperAuth.LocRoleID, rid)
		}

		userType := strings.ToLower(strClaim(claims, "user_type"))
		switch userType {
		case helperAuth.UserTypeStaff, helperAuth.UserTypeStudent, helperAuth.UserTypeOwner:
		case "":
			userType = helperAuth.UserTypeStaff
		default:
			return fiber.NewError(fiber.StatusUnauthorized, "user_type tidak dikenal")
		}
		c.Locals(helperAuth.LocUserType, userType)

		if email := strClaim(claims, "email"); email != "" {
			c.Locals(helperAuth.LocUserEmail, email)
		}
		if slug := strClaim(claims, "customer"); slug != "" {
			c.Locals(helperAuth.LocCustomerSlug, strings.ToLower(slug))
		}

		c.Locals("jwt_claims", claims)
		return c.Next()
	}
}

// util kecil untuk ambil string claim
func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
