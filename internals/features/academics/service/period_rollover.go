package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/academics/model"
	"schoolhub_backend/internals/helpers/dbtime"
	"schoolhub_backend/internals/helpers/signals"
	"schoolhub_backend/internals/helpers/tenant"
)

type RolloverPlan struct {
	Activate   []uuid.UUID
	Deactivate []uuid.UUID
}

// PlanRollover: periode yang mencakup today diaktifkan, yang sudah lewat dinonaktifkan.
// Periode masa depan tidak disentuh.
func PlanRollover(periods []model.AcademicPeriodModel, today time.Time) RolloverPlan {
	var plan RolloverPlan
	d := today.Format("2006-01-02")
	for i := range periods {
		p := &periods[i]
		switch {
		case p.Contains(today) && !p.AcademicPeriodIsActive:
			plan.Activate = append(plan.Activate, p.AcademicPeriodID)
		case p.AcademicPeriodIsActive && p.AcademicPeriodEndDate.Format("2006-01-02") < d:
			plan.Deactivate = append(plan.Deactivate, p.AcademicPeriodID)
		}
	}
	return plan
}

// PeriodStore: akses periode akademik dalam schema tenant di ctx.
type PeriodStore interface {
	AlivePeriods(ctx context.Context) ([]model.AcademicPeriodModel, error)
	SetActive(ctx context.Context, ids []uuid.UUID, active bool) error
}

type GormPeriodStore struct{ DB *gorm.DB }

func (s *GormPeriodStore) AlivePeriods(ctx context.Context) ([]model.AcademicPeriodModel, error) {
	q, err := tenant.Scoped(ctx, s.DB, model.AcademicPeriodModel{})
	if err != nil {
		return nil, err
	}
	var periods []model.AcademicPeriodModel
	err = q.Where("academic_period_deleted_at IS NULL").Find(&periods).Error
	return periods, err
}

func (s *GormPeriodStore) SetActive(ctx context.Context, ids []uuid.UUID, active bool) error {
	if len(ids) == 0 {
		return nil
	}
	q, err := tenant.Scoped(ctx, s.DB, model.AcademicPeriodModel{})
	if err != nil {
		return err
	}
	return q.Where("academic_period_id IN ?", ids).
		Update("academic_period_is_active", active).Error
}

type PeriodRollover struct {
	Store PeriodStore
	Bus   *signals.Bus
	Log   *zap.Logger
	Now   func() time.Time
}

func NewPeriodRollover(db *gorm.DB, bus *signals.Bus, log *zap.Logger) *PeriodRollover {
	if log == nil {
		log = zap.NewNop()
	}
	return &PeriodRollover{Store: &GormPeriodStore{DB: db}, Bus: bus, Log: log, Now: time.Now}
}

// Run untuk tenant di ctx. today mengikuti zona waktu tenant.
func (r *PeriodRollover) Run(ctx context.Context) (RolloverPlan, error) {
	t, ok := tenant.FromContext(ctx)
	if !ok {
		return RolloverPlan{}, tenant.ErrNoTenant
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	today := dbtime.Today(ctx, now())

	periods, err := r.Store.AlivePeriods(ctx)
	if err != nil {
		return RolloverPlan{}, err
	}
	plan := PlanRollover(periods, today)

	if err := r.Store.SetActive(ctx, plan.Deactivate, false); err != nil {
		return plan, err
	}
	for _, id := range plan.Deactivate {
		r.Bus.Publish(ctx, signals.AcademicPeriodDeactivated, id, nil)
	}
	if err := r.Store.SetActive(ctx, plan.Activate, true); err != nil {
		return plan, err
	}
	for _, id := range plan.Activate {
		r.Bus.Publish(ctx, signals.AcademicPeriodActivated, id, nil)
	}

	if r.Log != nil && (len(plan.Activate) > 0 || len(plan.Deactivate) > 0) {
		r.Log.Info("academic period rollover",
			zap.String("tenant", t.Slug),
			zap.Int("activated", len(plan.Activate)),
			zap.Int("deactivated", len(plan.Deactivate)),
		)
	}
	return plan, nil
}
