package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"schoolhub_backend/internals/features/academics/dto"
	"schoolhub_backend/internals/features/academics/model"
	staffModel "schoolhub_backend/internals/features/staff/staffs/model"
	helper "schoolhub_backend/internals/helpers"
	"schoolhub_backend/internals/helpers/signals"
	"schoolhub_backend/internals/helpers/tenant"
)

func (ctl *AcademicsController) findBranch(c *fiber.Ctx) (model.BranchModel, error) {
	var m model.BranchModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	tx, err := tenant.MustScoped(c, ctl.DB, m)
	if err != nil {
		return m, err
	}
	if err := tx.Where("branch_id = ? AND branch_deleted_at IS NULL", id).Take(&m).Error; err != nil {
		return m, helper.DBError(err, "Cabang tidak ditemukan", "", "Gagal mengambil cabang")
	}
	return m, nil
}

// GET /branches?q=&active=
func (ctl *AcademicsController) ListBranches(c *fiber.Ctx) error {
	active, err := activeFilter(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 200)

	tx, err := tenant.MustScoped(c, ctl.DB, model.BranchModel{})
	if err != nil {
		return err
	}
	tx = tx.Where("branch_deleted_at IS NULL")
	if active != nil {
		tx = tx.Where("branch_is_active = ?", *active)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("branch_name ILIKE ? OR branch_code ILIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung cabang")
	}
	var rows []model.BranchModel
	if err := tx.Order("branch_name ASC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil cabang")
	}
	return helper.JsonList(c, "ok", dto.FromBranches(rows), helper.BuildPagination(total, p))
}

func (ctl *AcademicsController) GetBranch(c *fiber.Ctx) error {
	m, err := ctl.findBranch(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromBranch(m))
}

func (ctl *AcademicsController) CreateBranch(c *fiber.Ctx) error {
	var req dto.CreateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := helper.Validate(&req); err != nil {
		return err
	}
	tx, err := tenant.MustScoped(c, ctl.DB, model.BranchModel{})
	if err != nil {
		return err
	}
	m := req.ToModel()
	if err := tx.Create(&m).Error; err != nil {
		return helper.DBError(err, "", "Kode cabang sudah dipakai", "Gagal membuat cabang")
	}
	return helper.JsonCreated(c, "Cabang dibuat", dto.FromBranch(m))
}

func (ctl *AcademicsController) UpdateBranch(c *fiber.Ctx) error {
	var req dto.UpdateBranchRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m, err := ctl.findBranch(c)
	if err != nil {
		return err
	}
	changed := req.Apply(&m)

	tx, err := tenant.MustScoped(c, ctl.DB, m)
	if err != nil {
		return err
	}
	if err := tx.Where("branch_id = ?", m.BranchID).Updates(map[string]any{
		"branch_name":      m.BranchName,
		"branch_code":      m.BranchCode,
		"branch_address":   m.BranchAddress,
		"branch_is_active": m.BranchIsActive,
	}).Error; err != nil {
		return helper.DBError(err, "", "Kode cabang sudah dipakai", "Gagal memperbarui cabang")
	}
	if changed {
		ctl.Bus.Publish(c.UserContext(), signals.BranchUpdated, m.BranchID, nil)
	}
	return helper.JsonUpdated(c, "Cabang diperbarui", dto.FromBranch(m))
}

// DELETE /branches/:id; ditolak bila masih jadi cabang staf aktif.
func (ctl *AcademicsController) DeleteBranch(c *fiber.Ctx) error {
	m, err := ctl.findBranch(c)
	if err != nil {
		return err
	}
	staffs, err := tenant.MustScoped(c, ctl.DB, staffModel.StaffModel{})
	if err != nil {
		return err
	}
	var used int64
	if err := staffs.Where("staff_deleted_at IS NULL AND ? = ANY(staff_branch_ids)", m.BranchID.String()).
		Count(&used).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa pemakaian cabang")
	}
	if used > 0 {
		return fiber.NewError(fiber.StatusConflict, "Cabang masih dipakai staf")
	}

	tx, err := tenant.MustScoped(c, ctl.DB, m)
	if err != nil {
		return err
	}
	if err := tx.Where("branch_id = ?", m.BranchID).Delete(&model.BranchModel{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus cabang")
	}
	return helper.JsonDeleted(c, "Cabang dihapus", fiber.Map{"branch_id": m.BranchID})
}
