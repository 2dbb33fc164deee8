package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/assignments/dto"
	"schoolhub_backend/internals/features/assignments/model"
	"schoolhub_backend/internals/features/assignments/service"
	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/helpers/signals"
	"schoolhub_backend/internals/helpers/tenant"
)

const permWrite = "assignments:write"

// kind: pembeda tugas staf vs tugas siswa untuk handler bersama.
type kind struct {
	label  string
	newRow func() model.Assignment
	render func(model.Assignment) any
}

var (
	staffKind = kind{
		label:  "Tugas staf",
		newRow: func() model.Assignment { return &model.StaffAssignmentModel{} },
		render: func(a model.Assignment) any { return dto.FromStaffAssignment(a.(*model.StaffAssignmentModel)) },
	}
	studentKind = kind{
		label:  "Tugas siswa",
		newRow: func() model.Assignment { return &model.StudentAssignmentModel{} },
		render: func(a model.Assignment) any { return dto.FromStudentAssignment(a.(*model.StudentAssignmentModel)) },
	}
)

type AssignmentController struct {
	DB  *gorm.DB
	Bus *signals.Bus
	Now func() time.Time
}

func NewAssignmentController(db *gorm.DB, bus *signals.Bus) *AssignmentController {
	return &AssignmentController{DB: db, Bus: bus, Now: time.Now}
}

func canWrite(c *fiber.Ctx) bool {
	return helperAuth.IsOwner(c) || helperAuth.HasPermission(c, permWrite)
}

// caller: user_id dari token; owner tidak punya id tersendiri di tenant.
func caller(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := helperAuth.GetUserIDFromToken(c)
	if err != nil && helperAuth.IsOwner(c) {
		return uuid.Nil, nil
	}
	return id, err
}

// visible: baris deleted-for-everyone tidak pernah tampil di list;
// deleted-for-me disembunyikan dari pembuatnya kecuali include_deleted.
func visible(tx *gorm.DB, prefix string, userID uuid.UUID, includeDeleted bool) *gorm.DB {
	tx = tx.Where(prefix + "is_deleted_for_everyone = FALSE")
	if !includeDeleted {
		tx = tx.Where("NOT ("+prefix+"is_deleted_for_me = TRUE AND "+prefix+"created_by = ?)", userID)
	}
	return tx
}

// window: overlap [from, to] dengan [start_date, end_date].
func window(c *fiber.Ctx, tx *gorm.DB, prefix string) (*gorm.DB, error) {
	from, err := helper.ParseDateQuery(c, "from")
	if err != nil {
		return nil, err
	}
	to, err := helper.ParseDateQuery(c, "to")
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "to harus >= from")
	}
	if from != nil {
		tx = tx.Where(prefix+"end_date >= ?", *from)
	}
	if to != nil {
		tx = tx.Where(prefix+"start_date < ?", to.AddDate(0, 0, 1))
	}
	return tx, nil
}

func (ctl *AssignmentController) load(c *fiber.Ctx, k kind) (model.Assignment, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	row := k.newRow()
	tx, err := tenant.MustScoped(c, ctl.DB, row)
	if err != nil {
		return nil, err
	}
	if err := tx.Where(row.Prefix()+"id = ?", id).Take(row).Error; err != nil {
		return nil, helper.DBError(err, k.label+" tidak ditemukan", "", "Gagal mengambil tugas")
	}
	return row, nil
}

// loadForManage: pembuat atau pemegang assignments:write; baris deleted-for-everyone ditolak.
func (ctl *AssignmentController) loadForManage(c *fiber.Ctx, k kind) (model.Assignment, uuid.UUID, error) {
	userID, err := caller(c)
	if err != nil {
		return nil, uuid.Nil, err
	}
	row, err := ctl.load(c, k)
	if err != nil {
		return nil, uuid.Nil, err
	}
	life := row.Life()
	if life.CreatedBy != userID && !canWrite(c) {
		return nil, uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Hanya pembuat tugas yang boleh mengubah")
	}
	if life.IsDeletedForEveryone {
		return nil, uuid.Nil, fiber.NewError(fiber.StatusConflict, k.label+" sudah dihapus")
	}
	return row, userID, nil
}

func (ctl *AssignmentController) get(c *fiber.Ctx, k kind) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	row, err := ctl.load(c, k)
	if err != nil {
		return err
	}
	life := row.Life()
	if life.IsDeletedForEveryone && life.CreatedBy != userID && !canWrite(c) {
		return fiber.NewError(fiber.StatusNotFound, k.label+" tidak ditemukan")
	}
	return helper.JsonOK(c, "ok", k.render(row))
}

func (ctl *AssignmentController) persistUpdate(c *fiber.Ctx, row model.Assignment, cols map[string]any) error {
	if len(cols) == 0 {
		return nil
	}
	tx, err := tenant.MustScoped(c, ctl.DB, row)
	if err != nil {
		return err
	}
	cols[row.Prefix()+"updated_at"] = ctl.Now()
	if err := tx.Where(row.Prefix()+"id = ?", row.ID()).Updates(cols).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui tugas")
	}
	return nil
}

// transition: handler bersama publish/draft/delete/restore.
func (ctl *AssignmentController) transition(k kind, act service.Action, okMsg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := caller(c)
		if err != nil {
			return err
		}
		row, err := ctl.load(c, k)
		if err != nil {
			return err
		}
		life := row.Life()
		if err := service.Authorize(act, life, userID, canWrite(c)); err != nil {
			if errors.Is(err, service.ErrNotCreator) {
				return fiber.NewError(fiber.StatusForbidden, "Hanya pembuat tugas yang boleh melakukan ini")
			}
			return fiber.NewError(fiber.StatusForbidden, "Tidak diizinkan")
		}
		now := ctl.Now()
		if err := service.Apply(act, life, now); err != nil {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		if err := ctl.persistUpdate(c, row, life.Columns(row.Prefix())); err != nil {
			return err
		}
		if act == service.ActionPublish {
			service.AnnouncePublished(c.UserContext(), ctl.Bus, row, userID)
		}
		return helper.JsonUpdated(c, okMsg, k.render(row))
	}
}

func (ctl *AssignmentController) create(c *fiber.Ctx, k kind, row model.Assignment) error {
	tx, err := tenant.MustScoped(c, ctl.DB, row)
	if err != nil {
		return err
	}
	if err := tx.Create(row).Error; err != nil {
		if errors.Is(err, model.ErrDateOrder) || errors.Is(err, model.ErrNoBranch) {
			return helper.NewValidationError(row.Prefix()+"end_date", err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat tugas")
	}
	if row.Life().IsPublished() {
		service.AnnouncePublished(c.UserContext(), ctl.Bus, row, row.Life().CreatedBy)
	}
	return helper.JsonCreated(c, k.label+" dibuat", k.render(row))
}

type LifecycleHandlers struct {
	Publish           fiber.Handler
	Draft             fiber.Handler
	DeleteForMe       fiber.Handler
	RestoreForMe      fiber.Handler
	DeleteForEveryone fiber.Handler
	Restore           fiber.Handler
}

func (ctl *AssignmentController) lifecycle(k kind) LifecycleHandlers {
	return LifecycleHandlers{
		Publish:           ctl.transition(k, service.ActionPublish, k.label+" dipublikasikan"),
		Draft:             ctl.transition(k, service.ActionDraft, k.label+" dikembalikan ke draft"),
		DeleteForMe:       ctl.transition(k, service.ActionDeleteForMe, k.label+" disembunyikan"),
		RestoreForMe:      ctl.transition(k, service.ActionRestoreForMe, k.label+" ditampilkan kembali"),
		DeleteForEveryone: ctl.transition(k, service.ActionDeleteForEveryone, k.label+" dihapus"),
		Restore:           ctl.transition(k, service.ActionRestore, k.label+" dipulihkan"),
	}
}

func (ctl *AssignmentController) StaffLifecycle() LifecycleHandlers   { return ctl.lifecycle(staffKind) }
func (ctl *AssignmentController) StudentLifecycle() LifecycleHandlers { return ctl.lifecycle(studentKind) }
