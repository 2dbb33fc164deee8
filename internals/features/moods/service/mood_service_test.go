package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internals/features/moods/model"
	"schoolhub_backend/internals/helpers/dbtest"
	"schoolhub_backend/internals/helpers/tenant"
)

func demoCtx() context.Context {
	return tenant.WithTenant(context.Background(), tenant.Tenant{Slug: "demo", Schema: "t_demo"})
}

func TestRecordUpsertsOnlyTheLiveEntry(t *testing.T) {
	db, rec := dbtest.DryRun(t)
	user := uuid.New()

	_, err := NewMoodService(db).Record(demoCtx(), model.MoodModel{
		MoodUserID:     user,
		MoodUserType:   "student",
		MoodValue:      model.MoodCalm,
		MoodIntensity:  4,
		MoodRecordedOn: day(14),
	})
	require.NoError(t, err)

	stmts := rec.Statements()
	require.Len(t, stmts, 2)

	ins := stmts[0].SQL
	assert.Contains(t, ins, `INSERT INTO "t_demo"."moods"`)
	assert.Contains(t, ins, `ON CONFLICT ("mood_user_id","mood_recorded_on")`)
	assert.Contains(t, ins, "WHERE mood_deleted_at IS NULL DO UPDATE SET")
	assert.Contains(t, ins, `"mood_value"=`)
	assert.Contains(t, ins, `"mood_intensity"=`)
	assert.Contains(t, ins, `"mood_updated_at"=`)
	// kunci conflict tidak ikut ditimpa
	assert.NotContains(t, ins, `"mood_user_id"=`)
	assert.NotContains(t, ins, `"mood_recorded_on"=`)

	sel := stmts[1]
	assert.Contains(t, sel.SQL, `FROM "t_demo"."moods"`)
	assert.Contains(t, sel.SQL, "mood_user_id = $1 AND mood_recorded_on = $2 AND mood_deleted_at IS NULL")
	require.NotEmpty(t, sel.Vars)
	assert.Equal(t, user, sel.Vars[0])
}

func TestDeleteMineIsScopedToOwner(t *testing.T) {
	db, rec := dbtest.DryRun(t)
	id, user := uuid.New(), uuid.New()

	ok, err := NewMoodService(db).DeleteMine(demoCtx(), id, user)
	require.NoError(t, err)
	assert.False(t, ok)

	upd := rec.Last()
	assert.Contains(t, upd.SQL, `UPDATE "t_demo"."moods" SET "mood_deleted_at"=$1`)
	assert.Contains(t, upd.SQL, "mood_id = $2 AND mood_user_id = $3 AND mood_deleted_at IS NULL")
	require.Len(t, upd.Vars, 3)
	assert.Equal(t, id, upd.Vars[1])
	assert.Equal(t, user, upd.Vars[2])
}

func TestMoodServiceNeedsTenant(t *testing.T) {
	db, rec := dbtest.DryRun(t)
	svc := NewMoodService(db)

	_, err := svc.Record(context.Background(), model.MoodModel{MoodUserID: uuid.New()})
	assert.ErrorIs(t, err, tenant.ErrNoTenant)
	_, err = svc.DeleteMine(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, tenant.ErrNoTenant)
	assert.Empty(t, rec.Statements())
}
