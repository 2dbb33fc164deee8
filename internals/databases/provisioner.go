package database

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	academicModel "schoolhub_backend/internals/features/academics/model"
	permissionModel "schoolhub_backend/internals/features/access/permissions/model"
	roleModel "schoolhub_backend/internals/features/access/roles/model"
	assignmentModel "schoolhub_backend/internals/features/assignments/model"
	moodModel "schoolhub_backend/internals/features/moods/model"
	notificationModel "schoolhub_backend/internals/features/notifications/model"
	staffAssignmentModel "schoolhub_backend/internals/features/staff/academic_assignments/model"
	staffModel "schoolhub_backend/internals/features/staff/staffs/model"
	storageModel "schoolhub_backend/internals/features/storage/model"
	"schoolhub_backend/internals/helpers/tenant"
)

// TenantModels: urutan migrasi tabel per-tenant.
func TenantModels() []any {
	return []any{
		&permissionModel.PermissionModel{},
		&roleModel.RoleModel{},
		&academicModel.BranchModel{},
		&academicModel.ClassModel{},
		&academicModel.AcademicPeriodModel{},
		&staffModel.StaffModel{},
		&staffAssignmentModel.StaffAcademicAssignmentModel{},
		&assignmentModel.StaffAssignmentModel{},
		&assignmentModel.StudentAssignmentModel{},
		&notificationModel.NotificationModel{},
		&moodModel.MoodModel{},
		&storageModel.StorageFileModel{},
	}
}

// SystemPermissionRows: katalog bawaan dalam bentuk baris tabel.
func SystemPermissionRows() []permissionModel.PermissionModel {
	rows := make([]permissionModel.PermissionModel, 0, len(permissionModel.SystemPermissions))
	for _, p := range permissionModel.SystemPermissions {
		res, act, _ := permissionModel.SplitKey(p.Key)
		desc := p.Description
		rows = append(rows, permissionModel.PermissionModel{
			PermissionKey:         p.Key,
			PermissionResource:    res,
			PermissionAction:      act,
			PermissionDescription: &desc,
			PermissionIsSystem:    true,
		})
	}
	return rows
}

func AdminRole() roleModel.RoleModel {
	desc := "Akses penuh ke seluruh fitur tenant"
	return roleModel.RoleModel{
		RoleName:        "Administrator",
		RoleSlug:        roleModel.AdminRoleSlug,
		RoleDescription: &desc,
		RolePermissions: []string{permissionModel.WildcardAll},
		RoleIsSystem:    true,
	}
}

type Provisioner struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewProvisioner(db *gorm.DB, log *zap.Logger) *Provisioner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provisioner{DB: db, Log: log.Named("provisioner")}
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Provision: buat schema, migrasi semua tabel tenant, seed permission + role admin.
// Idempotent; dipanggil saat customer dibuat dan saat startup.
func (p *Provisioner) Provision(ctx context.Context, t tenant.Tenant) error {
	if t.Schema == "" || t.Schema != tenant.SchemaFor(t.Slug) {
		return fmt.Errorf("provision %q: invalid schema %q", t.Slug, t.Schema)
	}
	schema := quoteIdent(t.Schema)

	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("CREATE SCHEMA IF NOT EXISTS " + schema).Error; err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		// tabel tanpa prefix schema → dibuat di schema tenant
		if err := tx.Exec("SET LOCAL search_path TO " + schema + ", public").Error; err != nil {
			return fmt.Errorf("set search_path: %w", err)
		}
		if err := tx.AutoMigrate(TenantModels()...); err != nil {
			return fmt.Errorf("automigrate: %w", err)
		}

		perms := SystemPermissionRows()
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "permission_key"}},
			DoNothing: true,
		}).Create(&perms).Error; err != nil {
			return fmt.Errorf("seed permissions: %w", err)
		}

		admin := AdminRole()
		if err := tx.Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "role_slug"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "role_deleted_at IS NULL"}}},
			DoNothing:   true,
		}).Create(&admin).Error; err != nil {
			return fmt.Errorf("seed admin role: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	p.Log.Info("tenant provisioned", zap.String("tenant", t.Slug), zap.String("schema", t.Schema))
	return nil
}

// ProvisionAll: migrasi ulang semua tenant aktif (startup). Error per tenant di-log.
func (p *Provisioner) ProvisionAll(ctx context.Context, tenants []tenant.Tenant) int {
	ok := 0
	for _, t := range tenants {
		if err := p.Provision(ctx, t); err != nil {
			p.Log.Error("provision failed", zap.String("tenant", t.Slug), zap.Error(err))
			continue
		}
		ok++
	}
	return ok
}
