package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"schoolhub_backend/internals/features/assignments/dto"
	"schoolhub_backend/internals/features/assignments/model"
	staffModel "schoolhub_backend/internals/features/staff/staffs/model"
	helper "schoolhub_backend/internals/helpers"
	"schoolhub_backend/internals/helpers/tenant"
)

const staffPrefix = "staff_assignment_"

// GET /staff-assignments
func (ctl *AssignmentController) ListStaff(c *fiber.Ctx) error {
	var q dto.ListStaffAssignmentQuery
	if err := helper.BindQuery(c, &q); err != nil {
		return err
	}
	userID, err := caller(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 100)

	tx, err := tenant.MustScoped(c, ctl.DB, model.StaffAssignmentModel{})
	if err != nil {
		return err
	}
	tx = visible(tx, staffPrefix, userID, q.IncludeDeleted)
	if q.Status != "" {
		tx = tx.Where("staff_assignment_status = ?", q.Status)
	}
	if q.BranchID != "" {
		tx = tx.Where("? = ANY(staff_assignment_branch_ids)", q.BranchID)
	}
	if q.AssigneeID != "" {
		tx = tx.Where("? = ANY(staff_assignment_assignee_ids)", q.AssigneeID)
	}
	if q.Priority != "" {
		tx = tx.Where("staff_assignment_priority = ?", q.Priority)
	}
	if q.Mine {
		tx = tx.Where("staff_assignment_created_by = ?", userID)
	}
	if s := strings.TrimSpace(q.Q); s != "" {
		tx = tx.Where("staff_assignment_title ILIKE ?", "%"+s+"%")
	}
	if tx, err = window(c, tx, staffPrefix); err != nil {
		return err
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung tugas staf")
	}
	var rows []model.StaffAssignmentModel
	if err := tx.Order("staff_assignment_start_date DESC, staff_assignment_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil tugas staf")
	}
	return helper.JsonList(c, "ok", dto.FromStaffAssignments(rows), helper.BuildPagination(total, p))
}

// GET /staff-assignments/me: tugas terpublikasi untuk staf caller.
func (ctl *AssignmentController) ListStaffMine(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	st, err := tenant.MustScoped(c, ctl.DB, staffModel.StaffModel{})
	if err != nil {
		return err
	}
	var me staffModel.StaffModel
	if err := st.Select("staff_id").
		Where("(staff_user_id = ? OR staff_id = ?) AND staff_deleted_at IS NULL", userID, userID).
		Take(&me).Error; err != nil {
		return helper.DBError(err, "Data staf tidak ditemukan", "", "Gagal mengambil staf")
	}
	p := helper.ResolvePaging(c, 20, 100)

	tx, err := tenant.MustScoped(c, ctl.DB, model.StaffAssignmentModel{})
	if err != nil {
		return err
	}
	tx = tx.Where("staff_assignment_is_deleted_for_everyone = FALSE AND staff_assignment_status = ?", model.StatusPublished).
		Where("? = ANY(staff_assignment_assignee_ids)", me.StaffID.String())
	if tx, err = window(c, tx, staffPrefix); err != nil {
		return err
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung tugas staf")
	}
	var rows []model.StaffAssignmentModel
	if err := tx.Order("staff_assignment_end_date ASC").
		Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil tugas staf")
	}
	return helper.JsonList(c, "ok", dto.FromStaffAssignments(rows), helper.BuildPagination(total, p))
}

// GET /staff-assignments/:id
func (ctl *AssignmentController) GetStaff(c *fiber.Ctx) error { return ctl.get(c, staffKind) }

// POST /staff-assignments
func (ctl *AssignmentController) CreateStaff(c *fiber.Ctx) error {
	var req dto.CreateStaffAssignmentRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	userID, err := caller(c)
	if err != nil {
		return err
	}
	m, err := req.ToModel(userID, ctl.Now())
	if err != nil {
		return err
	}
	return ctl.create(c, staffKind, &m)
}

// PATCH /staff-assignments/:id
func (ctl *AssignmentController) UpdateStaff(c *fiber.Ctx) error {
	var req dto.UpdateStaffAssignmentRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	row, _, err := ctl.loadForManage(c, staffKind)
	if err != nil {
		return err
	}
	m := row.(*model.StaffAssignmentModel)
	cols, err := req.Apply(m)
	if err != nil {
		return err
	}
	if err := ctl.persistUpdate(c, m, cols); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Tugas staf diperbarui", dto.FromStaffAssignment(m))
}
