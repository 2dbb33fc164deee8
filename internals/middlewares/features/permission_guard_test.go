package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helperAuth "schoolhub_backend/internals/helpers/auth"
)

type fakeLoader struct {
	perms map[uuid.UUID][]string
	calls int
}

func (f *fakeLoader) RolePermissions(_ context.Context, roleID uuid.UUID) ([]string, error) {
	f.calls++
	p, ok := f.perms[roleID]
	if !ok {
		return nil, ErrRoleNotFound
	}
	if p == nil {
		return nil, errors.New("boom")
	}
	return p, nil
}

func TestRequirePermission(t *testing.T) {
	editor := uuid.New()
	admin := uuid.New()
	broken := uuid.New()
	loader := &fakeLoader{perms: map[uuid.UUID][]string{
		editor: {"assignments:write", "storage:*"},
		admin:  {"*"},
		broken: nil,
	}}

	tests := []struct {
		name     string
		userType string
		roleID   string
		key      string
		wantCode int
	}{
		{"owner bypass", helperAuth.UserTypeOwner, "", "roles:write", 200},
		{"exact key", helperAuth.UserTypeStaff, editor.String(), "assignments:write", 200},
		{"resource wildcard", helperAuth.UserTypeStaff, editor.String(), "storage:write", 200},
		{"admin wildcard", helperAuth.UserTypeStaff, admin.String(), "roles:write", 200},
		{"missing key", helperAuth.UserTypeStaff, editor.String(), "roles:write", 403},
		{"student rejected", helperAuth.UserTypeStudent, editor.String(), "assignments:write", 403},
		{"no role in token", helperAuth.UserTypeStaff, "", "roles:write", 403},
		{"unknown role", helperAuth.UserTypeStaff, uuid.NewString(), "roles:write", 403},
		{"loader failure", helperAuth.UserTypeStaff, broken.String(), "roles:write", 500},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(func(c *fiber.Ctx) error {
				c.Locals(helperAuth.LocUserType, tc.userType)
				if tc.roleID != "" {
					c.Locals(helperAuth.LocRoleID, tc.roleID)
				}
				return c.Next()
			})
			app.Get("/x", RequirePermission(loader, tc.key), func(c *fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.wantCode, resp.StatusCode)
		})
	}
}

func TestRequirePermissionLoadsOncePerRequest(t *testing.T) {
	role := uuid.New()
	loader := &fakeLoader{perms: map[uuid.UUID][]string{role: {"assignments:*"}}}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocUserType, helperAuth.UserTypeStaff)
		c.Locals(helperAuth.LocRoleID, role.String())
		return c.Next()
	})
	app.Get("/x",
		RequirePermission(loader, "assignments:read"),
		RequirePermission(loader, "assignments:write"),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) },
	)

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 1, loader.calls)
}

func TestOnlyOwner(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocUserType, c.Get("X-Type"))
		return c.Next()
	})
	app.Get("/x", OnlyOwner(), func(c *fiber.Ctx) error { return c.SendStatus(200) })

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Type", "owner")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Type", "staff")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestLoadPermissionsNeverRejects(t *testing.T) {
	role := uuid.New()
	loader := &fakeLoader{perms: map[uuid.UUID][]string{role: {"assignments:write"}}}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocUserType, helperAuth.UserTypeStaff)
		c.Locals(helperAuth.LocRoleID, c.Get("X-Role"))
		return c.Next()
	})
	app.Get("/x", LoadPermissions(loader), func(c *fiber.Ctx) error {
		if helperAuth.HasPermission(c, "assignments:write") {
			return c.SendString("yes")
		}
		return c.SendString("no")
	})

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Role", role.String())
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body := make([]byte, 3)
	n, _ := resp.Body.Read(body)
	assert.Equal(t, "yes", string(body[:n]))

	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Role", uuid.NewString())
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	n, _ = resp.Body.Read(body)
	assert.Equal(t, "no", string(body[:n]))
}
