package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"schoolhub_backend/internals/features/academics/dto"
	"schoolhub_backend/internals/features/academics/model"
	helper "schoolhub_backend/internals/helpers"
	"schoolhub_backend/internals/helpers/signals"
	"schoolhub_backend/internals/helpers/tenant"
)

func (ctl *AcademicsController) findPeriod(c *fiber.Ctx) (model.AcademicPeriodModel, error) {
	var m model.AcademicPeriodModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	tx, err := tenant.MustScoped(c, ctl.DB, m)
	if err != nil {
		return m, err
	}
	if err := tx.Where("academic_period_id = ? AND academic_period_deleted_at IS NULL", id).Take(&m).Error; err != nil {
		return m, helper.DBError(err, "Periode akademik tidak ditemukan", "", "Gagal mengambil periode akademik")
	}
	return m, nil
}

// GET /academic-periods?active=&q=
func (ctl *AcademicsController) ListPeriods(c *fiber.Ctx) error {
	active, err := activeFilter(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 100)

	tx, err := tenant.MustScoped(c, ctl.DB, model.AcademicPeriodModel{})
	if err != nil {
		return err
	}
	tx = tx.Where("academic_period_deleted_at IS NULL")
	if active != nil {
		tx = tx.Where("academic_period_is_active = ?", *active)
	}
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		tx = tx.Where("academic_period_name ILIKE ?", "%"+s+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung periode akademik")
	}
	var rows []model.AcademicPeriodModel
	if err := tx.Order("academic_period_start_date DESC").
		Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil periode akademik")
	}
	return helper.JsonList(c, "ok", dto.FromAcademicPeriods(rows), helper.BuildPagination(total, p))
}

func (ctl *AcademicsController) GetPeriod(c *fiber.Ctx) error {
	m, err := ctl.findPeriod(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromAcademicPeriod(m))
}

func (ctl *AcademicsController) CreatePeriod(c *fiber.Ctx) error {
	var req dto.CreateAcademicPeriodRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m, err := req.ToModel()
	if err != nil {
		return err
	}
	tx, err := tenant.MustScoped(c, ctl.DB, m)
	if err != nil {
		return err
	}
	if err := tx.Create(&m).Error; err != nil {
		return helper.DBError(err, "", "Periode akademik sudah ada", "Gagal membuat periode akademik")
	}
	return helper.JsonCreated(c, "Periode akademik dibuat", dto.FromAcademicPeriod(m))
}

func (ctl *AcademicsController) UpdatePeriod(c *fiber.Ctx) error {
	var req dto.UpdateAcademicPeriodRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m, err := ctl.findPeriod(c)
	if err != nil {
		return err
	}
	if err := req.Apply(&m); err != nil {
		return err
	}
	tx, err := tenant.MustScoped(c, ctl.DB, m)
	if err != nil {
		return err
	}
	if err := tx.Where("academic_period_id = ?", m.AcademicPeriodID).Updates(map[string]any{
		"academic_period_name":       m.AcademicPeriodName,
		"academic_period_start_date": m.AcademicPeriodStartDate,
		"academic_period_end_date":   m.AcademicPeriodEndDate,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui periode akademik")
	}
	return helper.JsonUpdated(c, "Periode akademik diperbarui", dto.FromAcademicPeriod(m))
}

// PATCH /academic-periods/:id/activate
func (ctl *AcademicsController) ActivatePeriod(c *fiber.Ctx) error {
	return ctl.setPeriodActive(c, true)
}

// PATCH /academic-periods/:id/deactivate
func (ctl *AcademicsController) DeactivatePeriod(c *fiber.Ctx) error {
	return ctl.setPeriodActive(c, false)
}

func (ctl *AcademicsController) setPeriodActive(c *fiber.Ctx, active bool) error {
	m, err := ctl.findPeriod(c)
	if err != nil {
		return err
	}
	if m.AcademicPeriodIsActive == active {
		return helper.JsonOK(c, "Tidak ada perubahan", dto.FromAcademicPeriod(m))
	}
	tx, err := tenant.MustScoped(c, ctl.DB, m)
	if err != nil {
		return err
	}
	if err := tx.Where("academic_period_id = ?", m.AcademicPeriodID).
		Update("academic_period_is_active", active).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengubah status periode akademik")
	}
	m.AcademicPeriodIsActive = active
	topic := signals.AcademicPeriodDeactivated
	if active {
		topic = signals.AcademicPeriodActivated
	}
	ctl.Bus.Publish(c.UserContext(), topic, m.AcademicPeriodID, nil)
	return helper.JsonUpdated(c, "Status periode akademik diperbarui", dto.FromAcademicPeriod(m))
}

func (ctl *AcademicsController) DeletePeriod(c *fiber.Ctx) error {
	m, err := ctl.findPeriod(c)
	if err != nil {
		return err
	}
	if m.AcademicPeriodIsActive {
		return fiber.NewError(fiber.StatusConflict, "Nonaktifkan periode sebelum menghapus")
	}
	tx, err := tenant.MustScoped(c, ctl.DB, m)
	if err != nil {
		return err
	}
	if err := tx.Where("academic_period_id = ?", m.AcademicPeriodID).
		Delete(&model.AcademicPeriodModel{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus periode akademik")
	}
	return helper.JsonDeleted(c, "Periode akademik dihapus", fiber.Map{"academic_period_id": m.AcademicPeriodID})
}
