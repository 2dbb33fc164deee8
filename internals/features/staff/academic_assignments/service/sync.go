// Package service menjaga tabel staff_academic_assignments tetap sinkron
// dengan data staf, role, cabang, kelas, dan periode akademik.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	academicModel "schoolhub_backend/internals/features/academics/model"
	roleModel "schoolhub_backend/internals/features/access/roles/model"
	"schoolhub_backend/internals/features/staff/academic_assignments/model"
	staffModel "schoolhub_backend/internals/features/staff/staffs/model"
	"schoolhub_backend/internals/helpers/signals"
)

type SyncService struct {
	Store Store
	Log   *zap.Logger
	Now   func() time.Time
}

func NewSyncService(store Store, log *zap.Logger) *SyncService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SyncService{Store: store, Log: log.Named("staff_sync"), Now: time.Now}
}

// SyncResult: jumlah staf diproses, baris di-upsert, baris dinonaktifkan.
type SyncResult struct {
	Staff       int   `json:"staff"`
	Upserted    int   `json:"upserted"`
	Deactivated int64 `json:"deactivated"`

	// Failed: staf yang gagal disinkronkan (termasuk yang terlewat karena ctx selesai).
	Failed int `json:"failed"`
}

func (r *SyncResult) add(o SyncResult) {
	r.Staff += o.Staff
	r.Upserted += o.Upserted
	r.Deactivated += o.Deactivated
	r.Failed += o.Failed
}

// BuildRow membentuk snapshot staf untuk satu periode. Nama cabang/kelas
// mengikuti urutan ID; ID yang tidak ditemukan dilewati.
func BuildRow(
	staff *staffModel.StaffModel,
	role *roleModel.RoleModel,
	period *academicModel.AcademicPeriodModel,
	branchNames, classNames map[string]string,
	now time.Time,
) model.StaffAcademicAssignmentModel {
	row := model.StaffAcademicAssignmentModel{
		StaffAcademicAssignmentStaffID:          staff.StaffID,
		StaffAcademicAssignmentAcademicPeriodID: period.AcademicPeriodID,
		StaffAcademicAssignmentStaffFullName:    staff.StaffFullName,
		StaffAcademicAssignmentBranchIDs:        pq.StringArray{},
		StaffAcademicAssignmentBranchNames:      pq.StringArray{},
		StaffAcademicAssignmentClassIDs:         pq.StringArray{},
		StaffAcademicAssignmentClassNames:       pq.StringArray{},
		StaffAcademicAssignmentIsActive:         staff.StaffIsActive,
		StaffAcademicAssignmentSyncedAt:         now,
		StaffAcademicAssignmentUpdatedAt:        now,
	}
	if role != nil {
		id := role.RoleID
		row.StaffAcademicAssignmentRoleID = &id
		row.StaffAcademicAssignmentRoleName = role.RoleName
	}
	for _, id := range staff.StaffBranchIDs {
		if name, ok := branchNames[id]; ok {
			row.StaffAcademicAssignmentBranchIDs = append(row.StaffAcademicAssignmentBranchIDs, id)
			row.StaffAcademicAssignmentBranchNames = append(row.StaffAcademicAssignmentBranchNames, name)
		}
	}
	for _, id := range staff.StaffClassIDs {
		if name, ok := classNames[id]; ok {
			row.StaffAcademicAssignmentClassIDs = append(row.StaffAcademicAssignmentClassIDs, id)
			row.StaffAcademicAssignmentClassNames = append(row.StaffAcademicAssignmentClassNames, name)
		}
	}
	return row
}

// SyncStaff: staf hilang/nonaktif → semua barisnya nonaktif; selain itu upsert
// ke setiap periode (default: semua periode aktif).
func (s *SyncService) SyncStaff(ctx context.Context, staffID uuid.UUID, periods ...academicModel.AcademicPeriodModel) (SyncResult, error) {
	res := SyncResult{Staff: 1}
	now := s.Now()

	staff, err := s.Store.Staff(ctx, staffID)
	if err != nil {
		return res, fmt.Errorf("load staff %s: %w", staffID, err)
	}
	if staff == nil || !staff.StaffIsActive {
		n, err := s.Store.DeactivateStaff(ctx, staffID, now)
		res.Deactivated = n
		return res, err
	}

	if len(periods) == 0 {
		if periods, err = s.Store.ActivePeriods(ctx); err != nil {
			return res, fmt.Errorf("load active periods: %w", err)
		}
	}
	if len(periods) == 0 {
		return res, nil
	}

	role, err := s.Store.Role(ctx, staff.StaffRoleID)
	if err != nil {
		return res, fmt.Errorf("load role: %w", err)
	}
	branchNames, err := s.Store.BranchNames(ctx, staff.StaffBranchIDs)
	if err != nil {
		return res, fmt.Errorf("load branches: %w", err)
	}
	classNames, err := s.Store.ClassNames(ctx, staff.StaffClassIDs)
	if err != nil {
		return res, fmt.Errorf("load classes: %w", err)
	}

	rows := make([]model.StaffAcademicAssignmentModel, 0, len(periods))
	for i := range periods {
		rows = append(rows, BuildRow(staff, role, &periods[i], branchNames, classNames, now))
	}
	if err := s.Store.Upsert(ctx, rows); err != nil {
		return res, fmt.Errorf("upsert assignments: %w", err)
	}
	res.Upserted = len(rows)
	return res, nil
}

// syncMany: satu staf gagal tidak menghentikan staf lain.
func (s *SyncService) syncMany(ctx context.Context, ids []uuid.UUID, periods ...academicModel.AcademicPeriodModel) (SyncResult, error) {
	var (
		total SyncResult
		errs  []error
	)
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			total.Failed += len(ids) - i
			errs = append(errs, err)
			break
		}
		r, err := s.SyncStaff(ctx, id, periods...)
		total.add(r)
		if err != nil {
			total.Failed++
			errs = append(errs, err)
		}
	}
	return total, errors.Join(errs...)
}

func (s *SyncService) SyncWhere(ctx context.Context, f StaffFilter) (SyncResult, error) {
	ids, err := s.Store.ActiveStaffIDs(ctx, f)
	if err != nil {
		return SyncResult{}, err
	}
	return s.syncMany(ctx, ids)
}

// SyncPeriod: semua staf aktif ke satu periode. Periode nonaktif diabaikan.
func (s *SyncService) SyncPeriod(ctx context.Context, periodID uuid.UUID) (SyncResult, error) {
	p, err := s.Store.Period(ctx, periodID)
	if err != nil {
		return SyncResult{}, err
	}
	if p == nil || !p.AcademicPeriodIsActive {
		return SyncResult{}, nil
	}
	ids, err := s.Store.ActiveStaffIDs(ctx, StaffFilter{})
	if err != nil {
		return SyncResult{}, err
	}
	return s.syncMany(ctx, ids, *p)
}

// ResyncAll: seluruh staf aktif tenant ke seluruh periode aktif.
func (s *SyncService) ResyncAll(ctx context.Context) (SyncResult, error) {
	return s.SyncWhere(ctx, StaffFilter{})
}

// Register memasang handler sinkronisasi ke bus.
func (s *SyncService) Register(bus *signals.Bus) {
	bus.Subscribe(signals.StaffSaved, s.logged(func(ctx context.Context, ev signals.Event) (SyncResult, error) {
		return s.SyncStaff(ctx, ev.SubjectID)
	}))
	bus.Subscribe(signals.StaffDeleted, s.logged(func(ctx context.Context, ev signals.Event) (SyncResult, error) {
		n, err := s.Store.DeactivateStaff(ctx, ev.SubjectID, s.Now())
		return SyncResult{Staff: 1, Deactivated: n}, err
	}))
	bus.Subscribe(signals.RoleUpdated, s.logged(func(ctx context.Context, ev signals.Event) (SyncResult, error) {
		id := ev.SubjectID
		return s.SyncWhere(ctx, StaffFilter{RoleID: &id})
	}))
	bus.Subscribe(signals.BranchUpdated, s.logged(func(ctx context.Context, ev signals.Event) (SyncResult, error) {
		id := ev.SubjectID
		return s.SyncWhere(ctx, StaffFilter{BranchID: &id})
	}))
	bus.Subscribe(signals.ClassUpdated, s.logged(func(ctx context.Context, ev signals.Event) (SyncResult, error) {
		id := ev.SubjectID
		return s.SyncWhere(ctx, StaffFilter{ClassID: &id})
	}))
	bus.Subscribe(signals.AcademicPeriodActivated, s.logged(func(ctx context.Context, ev signals.Event) (SyncResult, error) {
		return s.SyncPeriod(ctx, ev.SubjectID)
	}))
	bus.Subscribe(signals.AcademicPeriodDeactivated, s.logged(func(ctx context.Context, ev signals.Event) (SyncResult, error) {
		n, err := s.Store.DeactivatePeriod(ctx, ev.SubjectID, s.Now())
		return SyncResult{Deactivated: n}, err
	}))
}

func (s *SyncService) logged(fn func(context.Context, signals.Event) (SyncResult, error)) signals.Handler {
	return func(ctx context.Context, ev signals.Event) error {
		res, err := fn(ctx, ev)
		fields := []zap.Field{
			zap.String("topic", string(ev.Topic)),
			zap.String("subject_id", ev.SubjectID.String()),
			zap.Int("staff", res.Staff),
			zap.Int("upserted", res.Upserted),
			zap.Int64("deactivated", res.Deactivated),
		}
		if err != nil {
			s.Log.Error("staff assignment sync failed", append(fields, zap.Error(err))...)
			return err
		}
		s.Log.Debug("staff assignment synced", fields...)
		return nil
	}
}
