package controller

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/helpers/dbtest"
	"schoolhub_backend/internals/helpers/tenant"
)

func newTestApp(t *testing.T, user uuid.UUID) (*fiber.App, *dbtest.Recorder) {
	t.Helper()
	db, rec := dbtest.DryRun(t)
	ctl := NewNotificationController(db, nil)

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler(nil)})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocUserID, user.String())
		c.Locals(helperAuth.LocUserType, helperAuth.UserTypeStudent)
		c.SetUserContext(tenant.WithTenant(c.UserContext(), tenant.Tenant{Slug: "demo", Schema: "t_demo"}))
		return c.Next()
	})
	app.Get("/me/unread-count", ctl.UnreadCount)
	app.Patch("/:id/delete-for-me", ctl.DeleteForMe)
	app.Patch("/:id/restore", ctl.Restore)
	return app, rec
}

func TestUnreadCountOnlyCountsCallersRows(t *testing.T) {
	user := uuid.New()
	app, rec := newTestApp(t, user)

	resp, err := app.Test(httptest.NewRequest("GET", "/me/unread-count", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	q := rec.Last()
	assert.Contains(t, q.SQL, `SELECT count(*) FROM "t_demo"."notifications"`)
	assert.Contains(t, q.SQL, "(notification_recipient_id IN ($1) AND notification_is_deleted_for_everyone = FALSE)")
	assert.Contains(t, q.SQL, "(notification_is_deleted_for_me = FALSE AND notification_is_read = FALSE)")
	assert.Equal(t, []any{user}, q.Vars)
}

func TestUpdateMineFiltersRecipientAndState(t *testing.T) {
	user, id := uuid.New(), uuid.New()
	app, rec := newTestApp(t, user)

	// DryRun tidak mengubah baris apa pun, jadi handler melaporkan 404
	resp, err := app.Test(httptest.NewRequest("PATCH", "/"+id.String()+"/delete-for-me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	upd := rec.Last()
	assert.Contains(t, upd.SQL, `UPDATE "t_demo"."notifications" SET`)
	assert.Contains(t, upd.SQL, `"notification_is_deleted_for_me"=`)
	assert.Contains(t, upd.SQL, "notification_recipient_id IN ($3) AND notification_is_deleted_for_everyone = FALSE")
	assert.Contains(t, upd.SQL, "notification_id = $4 AND notification_is_deleted_for_me = FALSE")
	assert.Contains(t, upd.Vars, user)
	assert.Contains(t, upd.Vars, id)

	resp, err = app.Test(httptest.NewRequest("PATCH", "/"+id.String()+"/restore", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, rec.Last().SQL, "notification_is_deleted_for_me = TRUE")

	resp, err = app.Test(httptest.NewRequest("PATCH", "/bukan-uuid/restore", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
