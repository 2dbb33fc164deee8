package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/notifications/dto"
	"schoolhub_backend/internals/features/notifications/model"
	"schoolhub_backend/internals/features/notifications/service"
	staffModel "schoolhub_backend/internals/features/staff/staffs/model"
	helper "schoolhub_backend/internals/helpers"
	helperAuth "schoolhub_backend/internals/helpers/auth"
	"schoolhub_backend/internals/helpers/tenant"
)

type NotificationController struct {
	DB      *gorm.DB
	Service *service.Service
}

func NewNotificationController(db *gorm.DB, svc *service.Service) *NotificationController {
	return &NotificationController{DB: db, Service: svc}
}

func (ctl *NotificationController) scoped(c *fiber.Ctx) (*gorm.DB, error) {
	return tenant.MustScoped(c, ctl.DB, model.NotificationModel{})
}

// mine: notifikasi milik caller yang belum dihapus untuk semua.
func (ctl *NotificationController) mine(c *fiber.Ctx) (*gorm.DB, uuid.UUID, error) {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return nil, uuid.Nil, err
	}
	ids := []uuid.UUID{userID}
	if helperAuth.GetUserType(c) == helperAuth.UserTypeStaff {
		if staffID, ok := ctl.staffIDOf(c, userID); ok {
			ids = append(ids, staffID)
		}
	}
	tx, err := ctl.scoped(c)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return tx.Where("notification_recipient_id IN ? AND notification_is_deleted_for_everyone = FALSE", ids), userID, nil
}

// staffIDOf: penerima staf dialamatkan via staff_id, bukan user_id.
func (ctl *NotificationController) staffIDOf(c *fiber.Ctx, userID uuid.UUID) (uuid.UUID, bool) {
	tx, err := tenant.MustScoped(c, ctl.DB, staffModel.StaffModel{})
	if err != nil {
		return uuid.Nil, false
	}
	var st staffModel.StaffModel
	if err := tx.Select("staff_id").
		Where("staff_user_id = ? AND staff_deleted_at IS NULL", userID).
		Take(&st).Error; err != nil {
		return uuid.Nil, false
	}
	return st.StaffID, st.StaffID != userID
}

// POST /notifications
func (ctl *NotificationController) Send(c *fiber.Ctx) error {
	var req dto.SendNotificationRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	var createdBy *uuid.UUID
	if id, err := helperAuth.GetUserIDFromToken(c); err == nil {
		createdBy = &id
	}
	rows, err := ctl.Service.Send(c.UserContext(), req.ToInput(createdBy))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengirim notifikasi")
	}
	return helper.JsonCreated(c, "Notifikasi dikirim", fiber.Map{"sent": len(rows)})
}

// GET /notifications/me?unread_only=&category=&include_deleted=
func (ctl *NotificationController) ListMine(c *fiber.Ctx) error {
	var q dto.ListMyQuery
	if err := helper.BindQuery(c, &q); err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 100)

	tx, _, err := ctl.mine(c)
	if err != nil {
		return err
	}
	if !q.IncludeDeleted {
		tx = tx.Where("notification_is_deleted_for_me = FALSE")
	}
	if q.UnreadOnly {
		tx = tx.Where("notification_is_read = FALSE")
	}
	if q.Category != "" {
		tx = tx.Where("notification_category = ?", q.Category)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung notifikasi")
	}
	var rows []model.NotificationModel
	if err := tx.Order("notification_created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil notifikasi")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p))
}

// GET /notifications/me/unread-count
func (ctl *NotificationController) UnreadCount(c *fiber.Ctx) error {
	tx, _, err := ctl.mine(c)
	if err != nil {
		return err
	}
	var n int64
	if err := tx.Where("notification_is_deleted_for_me = FALSE AND notification_is_read = FALSE").
		Count(&n).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung notifikasi")
	}
	return helper.JsonOK(c, "ok", fiber.Map{"unread": n})
}

func (ctl *NotificationController) updateMine(c *fiber.Ctx, extraWhere string, values map[string]any, okMsg string) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	tx, _, err := ctl.mine(c)
	if err != nil {
		return err
	}
	tx = tx.Where("notification_id = ?", id)
	if extraWhere != "" {
		tx = tx.Where(extraWhere)
	}
	res := tx.Updates(values)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui notifikasi")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Notifikasi tidak ditemukan")
	}
	return helper.JsonUpdated(c, okMsg, fiber.Map{"notification_id": id})
}

// PATCH /notifications/:id/read
func (ctl *NotificationController) MarkRead(c *fiber.Ctx) error {
	now := time.Now()
	return ctl.updateMine(c, "", map[string]any{
		"notification_is_read": true,
		"notification_read_at": gorm.Expr("COALESCE(notification_read_at, ?)", now),
	}, "Notifikasi dibaca")
}

// PATCH /notifications/me/read-all
func (ctl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	tx, _, err := ctl.mine(c)
	if err != nil {
		return err
	}
	res := tx.Where("notification_is_read = FALSE AND notification_is_deleted_for_me = FALSE").
		Updates(map[string]any{"notification_is_read": true, "notification_read_at": time.Now()})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui notifikasi")
	}
	return helper.JsonUpdated(c, "Semua notifikasi dibaca", fiber.Map{"updated": res.RowsAffected})
}

// PATCH /notifications/:id/delete-for-me
func (ctl *NotificationController) DeleteForMe(c *fiber.Ctx) error {
	return ctl.updateMine(c, "notification_is_deleted_for_me = FALSE", map[string]any{
		"notification_is_deleted_for_me": true,
		"notification_deleted_for_me_at": time.Now(),
	}, "Notifikasi dihapus")
}

// PATCH /notifications/:id/restore
func (ctl *NotificationController) Restore(c *fiber.Ctx) error {
	return ctl.updateMine(c, "notification_is_deleted_for_me = TRUE", map[string]any{
		"notification_is_deleted_for_me": false,
		"notification_deleted_for_me_at": nil,
	}, "Notifikasi dipulihkan")
}

// DELETE /notifications/:id (admin, untuk semua)
func (ctl *NotificationController) DeleteForEveryone(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	tx, err := ctl.scoped(c)
	if err != nil {
		return err
	}
	res := tx.Where("notification_id = ? AND notification_is_deleted_for_everyone = FALSE", id).
		Updates(map[string]any{
			"notification_is_deleted_for_everyone": true,
			"notification_deleted_for_everyone_at": time.Now(),
		})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus notifikasi")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Notifikasi tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Notifikasi dihapus untuk semua", fiber.Map{"notification_id": id})
}
