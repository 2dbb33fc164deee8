package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	academicModel "schoolhub_backend/internals/features/academics/model"
	roleModel "schoolhub_backend/internals/features/access/roles/model"
	"schoolhub_backend/internals/features/staff/academic_assignments/model"
	staffModel "schoolhub_backend/internals/features/staff/staffs/model"
	"schoolhub_backend/internals/helpers/tenant"
)

// StaffFilter: paling banyak satu field diisi; kosong = semua staf aktif.
type StaffFilter struct {
	RoleID   *uuid.UUID
	BranchID *uuid.UUID
	ClassID  *uuid.UUID
}

// Store: akses data yang dibutuhkan sync, selalu dalam schema tenant di ctx.
type Store interface {
	Staff(ctx context.Context, id uuid.UUID) (*staffModel.StaffModel, error)
	ActiveStaffIDs(ctx context.Context, f StaffFilter) ([]uuid.UUID, error)
	Role(ctx context.Context, id uuid.UUID) (*roleModel.RoleModel, error)
	ActivePeriods(ctx context.Context) ([]academicModel.AcademicPeriodModel, error)
	Period(ctx context.Context, id uuid.UUID) (*academicModel.AcademicPeriodModel, error)
	BranchNames(ctx context.Context, ids []string) (map[string]string, error)
	ClassNames(ctx context.Context, ids []string) (map[string]string, error)
	Upsert(ctx context.Context, rows []model.StaffAcademicAssignmentModel) error
	DeactivateStaff(ctx context.Context, staffID uuid.UUID, at time.Time) (int64, error)
	DeactivatePeriod(ctx context.Context, periodID uuid.UUID, at time.Time) (int64, error)
}

type GormStore struct{ DB *gorm.DB }

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

func (s *GormStore) Staff(ctx context.Context, id uuid.UUID) (*staffModel.StaffModel, error) {
	q, err := tenant.Scoped(ctx, s.DB, staffModel.StaffModel{})
	if err != nil {
		return nil, err
	}
	var m staffModel.StaffModel
	if err := q.Where("staff_id = ? AND staff_deleted_at IS NULL", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) ActiveStaffIDs(ctx context.Context, f StaffFilter) ([]uuid.UUID, error) {
	q, err := tenant.Scoped(ctx, s.DB, staffModel.StaffModel{})
	if err != nil {
		return nil, err
	}
	q = q.Where("staff_deleted_at IS NULL AND staff_is_active = TRUE")
	switch {
	case f.RoleID != nil:
		q = q.Where("staff_role_id = ?", *f.RoleID)
	case f.BranchID != nil:
		q = q.Where("? = ANY(staff_branch_ids)", f.BranchID.String())
	case f.ClassID != nil:
		q = q.Where("? = ANY(staff_class_ids)", f.ClassID.String())
	}
	var ids []uuid.UUID
	if err := q.Order("staff_id").Pluck("staff_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *GormStore) Role(ctx context.Context, id uuid.UUID) (*roleModel.RoleModel, error) {
	q, err := tenant.Scoped(ctx, s.DB, roleModel.RoleModel{})
	if err != nil {
		return nil, err
	}
	var m roleModel.RoleModel
	if err := q.Where("role_id = ? AND role_deleted_at IS NULL", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) ActivePeriods(ctx context.Context) ([]academicModel.AcademicPeriodModel, error) {
	q, err := tenant.Scoped(ctx, s.DB, academicModel.AcademicPeriodModel{})
	if err != nil {
		return nil, err
	}
	var rows []academicModel.AcademicPeriodModel
	err = q.Where("academic_period_deleted_at IS NULL AND academic_period_is_active = TRUE").
		Order("academic_period_start_date").Find(&rows).Error
	return rows, err
}

func (s *GormStore) Period(ctx context.Context, id uuid.UUID) (*academicModel.AcademicPeriodModel, error) {
	q, err := tenant.Scoped(ctx, s.DB, academicModel.AcademicPeriodModel{})
	if err != nil {
		return nil, err
	}
	var m academicModel.AcademicPeriodModel
	if err := q.Where("academic_period_id = ? AND academic_period_deleted_at IS NULL", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

type idName struct {
	ID   string
	Name string
}

func (s *GormStore) names(ctx context.Context, m schema.Tabler, idCol, nameCol, delCol string, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	q, err := tenant.Scoped(ctx, s.DB, m)
	if err != nil {
		return nil, err
	}
	var rows []idName
	if err := q.Select(idCol+"::text AS id", nameCol+" AS name").
		Where(idCol+" IN ? AND "+delCol+" IS NULL", ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ID] = r.Name
	}
	return out, nil
}

func (s *GormStore) BranchNames(ctx context.Context, ids []string) (map[string]string, error) {
	return s.names(ctx, academicModel.BranchModel{}, "branch_id", "branch_name", "branch_deleted_at", ids)
}

func (s *GormStore) ClassNames(ctx context.Context, ids []string) (map[string]string, error) {
	return s.names(ctx, academicModel.ClassModel{}, "class_id", "class_name", "class_deleted_at", ids)
}

// Upsert pada (staff_id, academic_period_id).
func (s *GormStore) Upsert(ctx context.Context, rows []model.StaffAcademicAssignmentModel) error {
	if len(rows) == 0 {
		return nil
	}
	q, err := tenant.Scoped(ctx, s.DB, model.StaffAcademicAssignmentModel{})
	if err != nil {
		return err
	}
	return q.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "staff_academic_assignment_staff_id"},
			{Name: "staff_academic_assignment_academic_period_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"staff_academic_assignment_staff_full_name",
			"staff_academic_assignment_role_id",
			"staff_academic_assignment_role_name",
			"staff_academic_assignment_branch_ids",
			"staff_academic_assignment_branch_names",
			"staff_academic_assignment_class_ids",
			"staff_academic_assignment_class_names",
			"staff_academic_assignment_is_active",
			"staff_academic_assignment_synced_at",
			"staff_academic_assignment_updated_at",
		}),
	}).Create(&rows).Error
}

func (s *GormStore) DeactivateStaff(ctx context.Context, staffID uuid.UUID, at time.Time) (int64, error) {
	q, err := tenant.Scoped(ctx, s.DB, model.StaffAcademicAssignmentModel{})
	if err != nil {
		return 0, err
	}
	res := q.Where("staff_academic_assignment_staff_id = ?", staffID).
		Updates(map[string]any{
			"staff_academic_assignment_is_active": false,
			"staff_academic_assignment_synced_at": at,
		})
	return res.RowsAffected, res.Error
}

func (s *GormStore) DeactivatePeriod(ctx context.Context, periodID uuid.UUID, at time.Time) (int64, error) {
	q, err := tenant.Scoped(ctx, s.DB, model.StaffAcademicAssignmentModel{})
	if err != nil {
		return 0, err
	}
	res := q.Where("staff_academic_assignment_academic_period_id = ? AND staff_academic_assignment_is_active = ?", periodID, true).
		Updates(map[string]any{
			"staff_academic_assignment_is_active": false,
			"staff_academic_assignment_synced_at": at,
		})
	return res.RowsAffected, res.Error
}
