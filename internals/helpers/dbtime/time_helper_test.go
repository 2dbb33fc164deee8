package dbtime

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internals/helpers/tenant"
)

func TestTodayFollowsTenantZone(t *testing.T) {
	// 20:00 UTC = 03:00 esok hari di Jakarta, masih hari yang sama di New York
	now := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)

	jkt := tenant.WithTenant(context.Background(), tenant.Tenant{Slug: "a", Schema: "t_a", Timezone: "Asia/Jakarta"})
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), Today(jkt, now))

	ny := tenant.WithTenant(context.Background(), tenant.Tenant{Slug: "b", Schema: "t_b", Timezone: "America/New_York"})
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), Today(ny, now))

	// tanpa tenant → Asia/Jakarta
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), Today(context.Background(), now))
}

func TestIn(t *testing.T) {
	ctx := tenant.WithTenant(context.Background(), tenant.Tenant{Slug: "a", Schema: "t_a", Timezone: "Asia/Makassar"})
	assert.True(t, In(ctx, time.Time{}).IsZero())
	assert.Nil(t, InPtr(ctx, nil))

	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	got := InPtr(ctx, &now)
	require.NotNil(t, got)
	assert.Equal(t, 8, got.Hour())
	assert.True(t, got.Equal(now))
}
