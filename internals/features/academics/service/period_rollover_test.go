package service

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"schoolhub_backend/internals/features/academics/model"
	"schoolhub_backend/internals/helpers/signals"
	"schoolhub_backend/internals/helpers/tenant"
)

func period(start, end string, active bool) model.AcademicPeriodModel {
	s, _ := time.Parse("2006-01-02", start)
	e, _ := time.Parse("2006-01-02", end)
	return model.AcademicPeriodModel{
		AcademicPeriodID:        uuid.New(),
		AcademicPeriodStartDate: s,
		AcademicPeriodEndDate:   e,
		AcademicPeriodIsActive:  active,
	}
}

func TestPlanRollover(t *testing.T) {
	expired := period("2025-01-06", "2025-06-20", true)
	current := period("2025-07-14", "2025-12-20", false)
	alreadyOn := period("2025-07-01", "2025-12-31", true)
	future := period("2026-01-05", "2026-06-20", false)
	oldOff := period("2024-07-01", "2024-12-20", false)

	plan := PlanRollover([]model.AcademicPeriodModel{expired, current, alreadyOn, future, oldOff},
		time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC))

	assert.Equal(t, []uuid.UUID{current.AcademicPeriodID}, plan.Activate)
	assert.Equal(t, []uuid.UUID{expired.AcademicPeriodID}, plan.Deactivate)
}

func TestPlanRolloverEndDayStillActive(t *testing.T) {
	p := period("2025-07-14", "2025-12-20", true)
	plan := PlanRollover([]model.AcademicPeriodModel{p}, time.Date(2025, 12, 20, 23, 0, 0, 0, time.UTC))
	assert.Empty(t, plan.Activate)
	assert.Empty(t, plan.Deactivate)
}

type memPeriods struct {
	rows   []model.AcademicPeriodModel
	failActivate bool
}

func (m *memPeriods) AlivePeriods(context.Context) ([]model.AcademicPeriodModel, error) {
	return append([]model.AcademicPeriodModel(nil), m.rows...), nil
}

func (m *memPeriods) SetActive(_ context.Context, ids []uuid.UUID, active bool) error {
	if m.failActivate && active && len(ids) > 0 {
		return errors.New("db down")
	}
	for _, id := range ids {
		for i := range m.rows {
			if m.rows[i].AcademicPeriodID == id {
				m.rows[i].AcademicPeriodIsActive = active
			}
		}
	}
	return nil
}

func collect(bus *signals.Bus, topic signals.Topic) *[]uuid.UUID {
	var got []uuid.UUID
	bus.Subscribe(topic, func(_ context.Context, ev signals.Event) error {
		got = append(got, ev.SubjectID)
		return nil
	})
	return &got
}

func TestRolloverRunAppliesPlanAndEmits(t *testing.T) {
	expired := period("2026-01-05", "2026-06-20", true)
	current := period("2026-07-13", "2027-06-30", false)
	store := &memPeriods{rows: []model.AcademicPeriodModel{expired, current}}
	bus := signals.NewBus()
	activated := collect(bus, signals.AcademicPeriodActivated)
	deactivated := collect(bus, signals.AcademicPeriodDeactivated)

	r := &PeriodRollover{
		Store: store,
		Bus:   bus,
		Log:   zap.NewNop(),
		// 2026-07-12 23:30 UTC = 2026-07-13 06:30 WIB
		Now: func() time.Time { return time.Date(2026, 7, 12, 23, 30, 0, 0, time.UTC) },
	}
	ctx := tenant.WithTenant(context.Background(), tenant.Tenant{Slug: "acme", Schema: "t_acme", Timezone: "Asia/Jakarta"})

	plan, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{current.AcademicPeriodID}, plan.Activate)
	assert.Equal(t, []uuid.UUID{expired.AcademicPeriodID}, plan.Deactivate)
	assert.Equal(t, []uuid.UUID{current.AcademicPeriodID}, *activated)
	assert.Equal(t, []uuid.UUID{expired.AcademicPeriodID}, *deactivated)
	assert.False(t, store.rows[0].AcademicPeriodIsActive)
	assert.True(t, store.rows[1].AcademicPeriodIsActive)

	// run kedua: tidak ada perubahan, tidak ada event
	plan, err = r.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, plan.Activate)
	assert.Empty(t, plan.Deactivate)
	assert.Len(t, *activated, 1)
}

func TestRolloverRunErrors(t *testing.T) {
	r := &PeriodRollover{Store: &memPeriods{}, Bus: signals.NewBus()}
	_, err := r.Run(context.Background())
	assert.ErrorIs(t, err, tenant.ErrNoTenant)

	current := period("2026-07-13", "2027-06-30", false)
	bus := signals.NewBus()
	activated := collect(bus, signals.AcademicPeriodActivated)
	r = &PeriodRollover{
		Store: &memPeriods{rows: []model.AcademicPeriodModel{current}, failActivate: true},
		Bus:   bus,
		Now:   func() time.Time { return time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC) },
	}
	_, err = r.Run(tenant.WithTenant(context.Background(), tenant.Tenant{Slug: "acme", Schema: "t_acme"}))
	assert.Error(t, err)
	assert.Empty(t, *activated)
}
