package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicModel "schoolhub_backend/internals/features/academics/model"
	roleModel "schoolhub_backend/internals/features/access/roles/model"
	"schoolhub_backend/internals/features/staff/staffs/dto"
	"schoolhub_backend/internals/features/staff/staffs/model"
	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/helpers/signals"
	"schoolhub_backend/internals/helpers/tenant"
)

type StaffController struct {
	DB  *gorm.DB
	Bus *signals.Bus
}

func NewStaffController(db *gorm.DB, bus *signals.Bus) *StaffController {
	return &StaffController{DB: db, Bus: bus}
}

func (ctl *StaffController) findStaff(c *fiber.Ctx) (model.StaffModel, error) {
	var m model.StaffModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	tx, err := tenant.MustScoped(c, ctl.DB, m)
	if err != nil {
		return m, err
	}
	if err := tx.Where("staff_id = ? AND staff_deleted_at IS NULL", id).Take(&m).Error; err != nil {
		return m, helper.DBError(err, "Staf tidak ditemukan", "", "Gagal mengambil staf")
	}
	return m, nil
}

// checkRefs: role, cabang, dan kelas harus ada di tenant ini.
func (ctl *StaffController) checkRefs(c *fiber.Ctx, m *model.StaffModel) error {
	if err := m.Validate(); err != nil {
		return helper.NewValidationError("staff_branch_ids", err.Error())
	}

	roles, err := tenant.MustScoped(c, ctl.DB, roleModel.RoleModel{})
	if err != nil {
		return err
	}
	var n int64
	if err := roles.Where("role_id = ? AND role_deleted_at IS NULL", m.StaffRoleID).Count(&n).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa role")
	}
	if n == 0 {
		return helper.NewValidationError("staff_role_id", "role not found")
	}

	branches, _ := tenant.MustScoped(c, ctl.DB, academicModel.BranchModel{})
	if err := branches.Where("branch_id IN ? AND branch_deleted_at IS NULL", []string(m.StaffBranchIDs)).
		Count(&n).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa cabang")
	}
	if int(n) != len(m.StaffBranchIDs) {
		return helper.NewValidationError("staff_branch_ids", "some branches not found")
	}

	if len(m.StaffClassIDs) > 0 {
		classes, _ := tenant.MustScoped(c, ctl.DB, academicModel.ClassModel{})
		if err := classes.Where("class_id IN ? AND class_deleted_at IS NULL", []string(m.StaffClassIDs)).
			Count(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa kelas")
		}
		if int(n) != len(m.StaffClassIDs) {
			return helper.NewValidationError("staff_class_ids", "some classes not found")
		}
	}
	return nil
}

// GET /staffs?role_id=&branch_id=&class_id=&active=&q=
func (ctl *StaffController) List(c *fiber.Ctx) error {
	var q dto.ListStaffQuery
	if err := helper.BindQuery(c, &q); err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 200)

	tx, err := tenant.MustScoped(c, ctl.DB, model.StaffModel{})
	if err != nil {
		return err
	}
	tx = tx.Where("staff_deleted_at IS NULL")
	if q.RoleID != "" {
		tx = tx.Where("staff_role_id = ?", q.RoleID)
	}
	if q.BranchID != "" {
		tx = tx.Where("? = ANY(staff_branch_ids)", strings.ToLower(q.BranchID))
	}
	if q.ClassID != "" {
		tx = tx.Where("? = ANY(staff_class_ids)", strings.ToLower(q.ClassID))
	}
	if q.Active != nil {
		tx = tx.Where("staff_is_active = ?", *q.Active)
	}
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("staff_full_name ILIKE ? OR staff_email ILIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung staf")
	}
	var rows []model.StaffModel
	if err := tx.Order("staff_full_name ASC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil staf")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p))
}

func (ctl *StaffController) GetByID(c *fiber.Ctx) error {
	m, err := ctl.findStaff(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// GET /staffs/me: data staf milik user di token.
func (ctl *StaffController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	tx, err := tenant.MustScoped(c, ctl.DB, model.StaffModel{})
	if err != nil {
		return err
	}
	var m model.StaffModel
	if err := tx.Where("(staff_user_id = ? OR staff_id = ?) AND staff_deleted_at IS NULL", userID, userID).
		Take(&m).Error; err != nil {
		return helper.DBError(err, "Data staf tidak ditemukan", "", "Gagal mengambil staf")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

func (ctl *StaffController) Create(c *fiber.Ctx) error {
	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := helper.Validate(&req); err != nil {
		return err
	}
	m := req.ToModel()
	if err := ctl.checkRefs(c, &m); err != nil {
		return err
	}

	tx, err := tenant.MustScoped(c, ctl.DB, m)
	if err != nil {
		return err
	}
	if err := tx.Create(&m).Error; err != nil {
		if errors.Is(err, model.ErrStaffNoBranch) {
			return helper.NewValidationError("staff_branch_ids", err.Error())
		}
		return helper.DBError(err, "", "Staf sudah terdaftar", "Gagal membuat staf")
	}
	ctl.Bus.Publish(c.UserContext(), signals.StaffSaved, m.StaffID, nil)
	return helper.JsonCreated(c, "Staf dibuat", dto.FromModel(m))
}

func (ctl *StaffController) Update(c *fiber.Ctx) error {
	var req dto.UpdateStaffRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m, err := ctl.findStaff(c)
	if err != nil {
		return err
	}
	req.Apply(&m)
	if err := ctl.checkRefs(c, &m); err != nil {
		return err
	}

	tx, err := tenant.MustScoped(c, ctl.DB, m)
	if err != nil {
		return err
	}
	if err := tx.Where("staff_id = ?", m.StaffID).Updates(map[string]any{
		"staff_user_id":    m.StaffUserID,
		"staff_full_name":  m.StaffFullName,
		"staff_email":      m.StaffEmail,
		"staff_phone":      m.StaffPhone,
		"staff_role_id":    m.StaffRoleID,
		"staff_branch_ids": m.StaffBranchIDs,
		"staff_class_ids":  m.StaffClassIDs,
		"staff_is_active":  m.StaffIsActive,
	}).Error; err != nil {
		return helper.DBError(err, "", "Staf sudah terdaftar", "Gagal memperbarui staf")
	}
	ctl.Bus.Publish(c.UserContext(), signals.StaffSaved, m.StaffID, nil)
	return helper.JsonUpdated(c, "Staf diperbarui", dto.FromModel(m))
}

func (ctl *StaffController) Delete(c *fiber.Ctx) error {
	m, err := ctl.findStaff(c)
	if err != nil {
		return err
	}
	tx, err := tenant.MustScoped(c, ctl.DB, m)
	if err != nil {
		return err
	}
	if err := tx.Where("staff_id = ?", m.StaffID).Delete(&model.StaffModel{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus staf")
	}
	ctl.Bus.Publish(c.UserContext(), signals.StaffDeleted, m.StaffID, nil)
	return helper.JsonDeleted(c, "Staf dihapus", fiber.Map{"staff_id": m.StaffID})
}
