package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schoolhub_backend/internals/features/academics/dto"
	"schoolhub_backend/internals/features/academics/model"
	helper "schoolhub_backend/internals/helpers"
	"schoolhub_backend/internals/helpers/signals"
	"schoolhub_backend/internals/helpers/tenant"
)

func (ctl *AcademicsController) findClass(c *fiber.Ctx) (model.ClassModel, error) {
	var m model.ClassModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	tx, err := tenant.MustScoped(c, ctl.DB, m)
	if err != nil {
		return m, err
	}
	if err := tx.Where("class_id = ? AND class_deleted_at IS NULL", id).Take(&m).Error; err != nil {
		return m, helper.DBError(err, "Kelas tidak ditemukan", "", "Gagal mengambil kelas")
	}
	return m, nil
}

func (ctl *AcademicsController) ensureBranch(c *fiber.Ctx, id uuid.UUID) error {
	tx, err := tenant.MustScoped(c, ctl.DB, model.BranchModel{})
	if err != nil {
		return err
	}
	var n int64
	if err := tx.Where("branch_id = ? AND branch_deleted_at IS NULL", id).Count(&n).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa cabang")
	}
	if n == 0 {
		return helper.NewValidationError("class_branch_id", "branch not found")
	}
	return nil
}

// GET /classes?branch_id=&q=&active=
func (ctl *AcademicsController) ListClasses(c *fiber.Ctx) error {
	active, err := activeFilter(c)
	if err != nil {
		return err
	}
	branchID, err := helper.ParseUUIDQuery(c, "branch_id")
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 200)

	tx, err := tenant.MustScoped(c, ctl.DB, model.ClassModel{})
	if err != nil {
		return err
	}
	tx = tx.Where("class_deleted_at IS NULL")
	if branchID != nil {
		tx = tx.Where("class_branch_id = ?", *branchID)
	}
	if active != nil {
		tx = tx.Where("class_is_active = ?", *active)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		tx = tx.Where("class_name ILIKE ?", "%"+s+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung kelas")
	}
	var rows []model.ClassModel
	if err := tx.Order("class_grade_level ASC NULLS LAST, class_name ASC").
		Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil kelas")
	}
	return helper.JsonList(c, "ok", dto.FromClasses(rows), helper.BuildPagination(total, p))
}

func (ctl *AcademicsController) GetClass(c *fiber.Ctx) error {
	m, err := ctl.findClass(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromClass(m))
}

func (ctl *AcademicsController) CreateClass(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	if err := ctl.ensureBranch(c, req.ClassBranchID); err != nil {
		return err
	}
	tx, err := tenant.MustScoped(c, ctl.DB, model.ClassModel{})
	if err != nil {
		return err
	}
	m := req.ToModel()
	if err := tx.Create(&m).Error; err != nil {
		return helper.DBError(err, "", "Kelas sudah ada", "Gagal membuat kelas")
	}
	return helper.JsonCreated(c, "Kelas dibuat", dto.FromClass(m))
}

func (ctl *AcademicsController) UpdateClass(c *fiber.Ctx) error {
	var req dto.UpdateClassRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m, err := ctl.findClass(c)
	if err != nil {
		return err
	}
	if req.ClassBranchID != nil && *req.ClassBranchID != m.ClassBranchID {
		if err := ctl.ensureBranch(c, *req.ClassBranchID); err != nil {
			return err
		}
	}
	changed := req.Apply(&m)

	tx, err := tenant.MustScoped(c, ctl.DB, m)
	if err != nil {
		return err
	}
	if err := tx.Where("class_id = ?", m.ClassID).Updates(map[string]any{
		"class_branch_id":   m.ClassBranchID,
		"class_name":        m.ClassName,
		"class_grade_level": m.ClassGradeLevel,
		"class_is_active":   m.ClassIsActive,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui kelas")
	}
	if changed {
		ctl.Bus.Publish(c.UserContext(), signals.ClassUpdated, m.ClassID, nil)
	}
	return helper.JsonUpdated(c, "Kelas diperbarui", dto.FromClass(m))
}

func (ctl *AcademicsController) DeleteClass(c *fiber.Ctx) error {
	m, err := ctl.findClass(c)
	if err != nil {
		return err
	}
	tx, err := tenant.MustScoped(c, ctl.DB, m)
	if err != nil {
		return err
	}
	if err := tx.Where("class_id = ?", m.ClassID).Delete(&model.ClassModel{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus kelas")
	}
	ctl.Bus.Publish(c.UserContext(), signals.ClassUpdated, m.ClassID, nil)
	return helper.JsonDeleted(c, "Kelas dihapus", fiber.Map{"class_id": m.ClassID})
}
