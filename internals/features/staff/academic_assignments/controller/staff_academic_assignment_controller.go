package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/staff/academic_assignments/dto"
	"schoolhub_backend/internals/features/staff/academic_assignments/model"
	"schoolhub_backend/internals/features/staff/academic_assignments/service"
	helper "schoolhub_backend/internals/helpers"
	"schoolhub_backend/internals/helpers/tenant"
)

type StaffAcademicAssignmentController struct {
	DB   *gorm.DB
	Sync *service.SyncService
}

func NewStaffAcademicAssignmentController(db *gorm.DB, sync *service.SyncService) *StaffAcademicAssignmentController {
	return &StaffAcademicAssignmentController{DB: db, Sync: sync}
}

// GET /staff-academic-assignments?academic_period_id=&staff_id=&branch_id=&active=
func (ctl *StaffAcademicAssignmentController) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := helper.BindQuery(c, &q); err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 200)

	tx, err := tenant.MustScoped(c, ctl.DB, model.StaffAcademicAssignmentModel{})
	if err != nil {
		return err
	}
	if q.AcademicPeriodID != "" {
		tx = tx.Where("staff_academic_assignment_academic_period_id = ?", q.AcademicPeriodID)
	}
	if q.StaffID != "" {
		tx = tx.Where("staff_academic_assignment_staff_id = ?", q.StaffID)
	}
	if q.BranchID != "" {
		tx = tx.Where("? = ANY(staff_academic_assignment_branch_ids)", strings.ToLower(q.BranchID))
	}
	if q.Active != nil {
		tx = tx.Where("staff_academic_assignment_is_active = ?", *q.Active)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung penugasan staf")
	}
	var rows []model.StaffAcademicAssignmentModel
	if err := tx.Order("staff_academic_assignment_staff_full_name ASC").
		Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil penugasan staf")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p))
}

func (ctl *StaffAcademicAssignmentController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	tx, err := tenant.MustScoped(c, ctl.DB, model.StaffAcademicAssignmentModel{})
	if err != nil {
		return err
	}
	var m model.StaffAcademicAssignmentModel
	if err := tx.Where("staff_academic_assignment_id = ?", id).Take(&m).Error; err != nil {
		return helper.DBError(err, "Penugasan staf tidak ditemukan", "", "Gagal mengambil penugasan staf")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// POST /staff-academic-assignments/resync
func (ctl *StaffAcademicAssignmentController) Resync(c *fiber.Ctx) error {
	res, err := ctl.Sync.ResyncAll(c.UserContext())
	return resyncResponse(c, res, err)
}

// resyncResponse: gagal total → 500; sebagian gagal → 207 dengan jumlah gagal di data.
func resyncResponse(c *fiber.Ctx, res service.SyncResult, err error) error {
	if err == nil {
		return helper.JsonOK(c, "Resync selesai", res)
	}
	if res.Failed == 0 || res.Failed >= res.Staff {
		return fiber.NewError(fiber.StatusInternalServerError, "Resync gagal")
	}
	return helper.JsonPartial(c, "Resync selesai dengan sebagian error", res)
}
