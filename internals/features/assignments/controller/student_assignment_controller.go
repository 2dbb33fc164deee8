package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	academicsModel "schoolhub_backend/internals/features/academics/model"
	"schoolhub_backend/internals/features/assignments/dto"
	"schoolhub_backend/internals/features/assignments/model"
	helper "schoolhub_backend/internals/helpers"
	"schoolhub_backend/internals/helpers/tenant"
)

const studentPrefix = "student_assignment_"

func (ctl *AssignmentController) ensureClass(c *fiber.Ctx, id string) error {
	tx, err := tenant.MustScoped(c, ctl.DB, academicsModel.ClassModel{})
	if err != nil {
		return err
	}
	var n int64
	if err := tx.Where("class_id = ? AND class_deleted_at IS NULL", id).Count(&n).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa kelas")
	}
	if n == 0 {
		return helper.NewValidationError("student_assignment_class_id", "class not found")
	}
	return nil
}

// GET /student-assignments
func (ctl *AssignmentController) ListStudent(c *fiber.Ctx) error {
	var q dto.ListStudentAssignmentQuery
	if err := helper.BindQuery(c, &q); err != nil {
		return err
	}
	userID, err := caller(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 100)

	tx, err := tenant.MustScoped(c, ctl.DB, model.StudentAssignmentModel{})
	if err != nil {
		return err
	}
	tx = visible(tx, studentPrefix, userID, q.IncludeDeleted)
	if q.Status != "" {
		tx = tx.Where("student_assignment_status = ?", q.Status)
	}
	if q.ClassID != "" {
		tx = tx.Where("student_assignment_class_id = ?", q.ClassID)
	}
	if q.StudentID != "" {
		tx = tx.Where("? = ANY(student_assignment_student_ids)", q.StudentID)
	}
	if s := strings.TrimSpace(q.Subject); s != "" {
		tx = tx.Where("student_assignment_subject ILIKE ?", s)
	}
	if q.Mine {
		tx = tx.Where("student_assignment_created_by = ?", userID)
	}
	if s := strings.TrimSpace(q.Q); s != "" {
		tx = tx.Where("student_assignment_title ILIKE ?", "%"+s+"%")
	}
	if tx, err = window(c, tx, studentPrefix); err != nil {
		return err
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung tugas siswa")
	}
	var rows []model.StudentAssignmentModel
	if err := tx.Order("student_assignment_end_date ASC, student_assignment_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil tugas siswa")
	}
	return helper.JsonList(c, "ok", dto.FromStudentAssignments(rows), helper.BuildPagination(total, p))
}

// GET /student-assignments/me: tugas terpublikasi yang ditujukan ke siswa caller.
func (ctl *AssignmentController) ListStudentMine(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 100)

	tx, err := tenant.MustScoped(c, ctl.DB, model.StudentAssignmentModel{})
	if err != nil {
		return err
	}
	tx = tx.Where("student_assignment_is_deleted_for_everyone = FALSE AND student_assignment_status = ?", model.StatusPublished).
		Where("? = ANY(student_assignment_student_ids)", userID.String())
	if tx, err = window(c, tx, studentPrefix); err != nil {
		return err
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung tugas siswa")
	}
	var rows []model.StudentAssignmentModel
	if err := tx.Order("student_assignment_end_date ASC").
		Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil tugas siswa")
	}
	return helper.JsonList(c, "ok", dto.FromStudentAssignments(rows), helper.BuildPagination(total, p))
}

// GET /student-assignments/:id
func (ctl *AssignmentController) GetStudent(c *fiber.Ctx) error { return ctl.get(c, studentKind) }

// POST /student-assignments
func (ctl *AssignmentController) CreateStudent(c *fiber.Ctx) error {
	var req dto.CreateStudentAssignmentRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	if err := ctl.ensureClass(c, req.StudentAssignmentClassID.String()); err != nil {
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
	return ctl.create(c, studentKind, &m)
}

// PATCH /student-assignments/:id
func (ctl *AssignmentController) UpdateStudent(c *fiber.Ctx) error {
	var req dto.UpdateStudentAssignmentRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	if req.StudentAssignmentClassID != nil {
		if err := ctl.ensureClass(c, req.StudentAssignmentClassID.String()); err != nil {
			return err
		}
	}
	row, _, err := ctl.loadForManage(c, studentKind)
	if err != nil {
		return err
	}
	m := row.(*model.StudentAssignmentModel)
	cols, err := req.Apply(m)
	if err != nil {
		return err
	}
	if err := ctl.persistUpdate(c, m, cols); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Tugas siswa diperbarui", dto.FromStudentAssignment(m))
}
