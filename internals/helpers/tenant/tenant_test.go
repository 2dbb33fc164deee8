package tenant

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internals/helpers/dbtest"
)

func TestSchemaFor(t *testing.T) {
	assert.Equal(t, "t_sd_harapan", SchemaFor("SD-Harapan"))
	assert.Equal(t, "t_abc123", SchemaFor(" abc;123 "))
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	want := Tenant{ID: uuid.New(), Slug: "sd-harapan", Schema: "t_sd_harapan"}
	got, ok := FromContext(WithTenant(context.Background(), want))
	require.True(t, ok)
	assert.Equal(t, want, got)

	name, err := Table(WithTenant(context.Background(), want), "roles")
	require.NoError(t, err)
	assert.Equal(t, "t_sd_harapan.roles", name)

	_, err = Table(context.Background(), "roles")
	assert.ErrorIs(t, err, ErrNoTenant)
}

func TestTenantLocationFallback(t *testing.T) {
	assert.Equal(t, "Asia/Jakarta", Tenant{Timezone: "Mars/Olympus"}.Location().String())
	assert.Equal(t, "Europe/Berlin", Tenant{Timezone: "Europe/Berlin"}.Location().String())
}

type rolesTable struct{}

func (rolesTable) TableName() string { return "roles" }

func TestMustScopedNeedsTenant(t *testing.T) {
	db, _ := dbtest.DryRun(t)
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if c.Query("tenant") != "" {
			c.SetUserContext(WithTenant(c.UserContext(), Tenant{Slug: "demo", Schema: "t_demo"}))
		}
		tx, err := MustScoped(c, db, rolesTable{})
		if err != nil {
			return err
		}
		return c.SendString(tx.Statement.Table)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/?tenant=1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "t_demo.roles", string(raw))
}

type countingLookup struct {
	calls int
	err   error
}

func (l *countingLookup) FindActiveBySlug(_ context.Context, slug string) (Tenant, error) {
	l.calls++
	if l.err != nil {
		return Tenant{}, l.err
	}
	return Tenant{Slug: slug, Schema: SchemaFor(slug)}, nil
}

func TestResolverCachesUntilTTL(t *testing.T) {
	l := &countingLookup{}
	r := NewResolver(l, time.Minute)
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		got, err := r.BySlug(context.Background(), " SD-Harapan ")
		require.NoError(t, err)
		assert.Equal(t, "t_sd_harapan", got.Schema)
	}
	assert.Equal(t, 1, l.calls)

	now = now.Add(2 * time.Minute)
	_, err := r.BySlug(context.Background(), "sd-harapan")
	require.NoError(t, err)
	assert.Equal(t, 2, l.calls)

	r.Invalidate("sd-harapan")
	_, _ = r.BySlug(context.Background(), "sd-harapan")
	assert.Equal(t, 3, l.calls)
}

func TestResolverErrors(t *testing.T) {
	r := NewResolver(&countingLookup{err: errors.New("db down")}, time.Minute)
	_, err := r.BySlug(context.Background(), "x")
	assert.EqualError(t, err, "db down")

	_, err = r.BySlug(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrUnknownTenant)
}
