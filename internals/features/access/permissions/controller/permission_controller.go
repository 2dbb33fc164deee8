package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/access/permissions/dto"
	"schoolhub_backend/internals/features/access/permissions/model"
	helper "schoolhub_backend/internals/helpers"
	"schoolhub_backend/internals/helpers/tenant"
)

type PermissionController struct {
	DB *gorm.DB
}

func NewPermissionController(db *gorm.DB) *PermissionController {
	return &PermissionController{DB: db}
}

// GET /permissions?resource=&q=
func (ctl *PermissionController) List(c *fiber.Ctx) error {
	var q dto.ListPermissionQuery
	if err := helper.BindQuery(c, &q); err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 50, 200)

	tx, err := tenant.MustScoped(c, ctl.DB, model.PermissionModel{})
	if err != nil {
		return err
	}
	if r := strings.ToLower(strings.TrimSpace(q.Resource)); r != "" {
		tx = tx.Where("permission_resource = ?", r)
	}
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("permission_key ILIKE ? OR permission_description ILIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung permission")
	}
	var rows []model.PermissionModel
	if err := tx.Order("permission_resource ASC, permission_action ASC").
		Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil permission")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p))
}

// GET /permissions/:id
func (ctl *PermissionController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	tx, err := tenant.MustScoped(c, ctl.DB, model.PermissionModel{})
	if err != nil {
		return err
	}
	var m model.PermissionModel
	if err := tx.Where("permission_id = ?", id).Take(&m).Error; err != nil {
		return helper.DBError(err, "Permission tidak ditemukan", "", "Gagal mengambil permission")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// POST /permissions (permission kustom)
func (ctl *PermissionController) Create(c *fiber.Ctx) error {
	var req dto.CreatePermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := helper.Validate(&req); err != nil {
		return err
	}

	tx, err := tenant.MustScoped(c, ctl.DB, model.PermissionModel{})
	if err != nil {
		return err
	}
	m := req.ToModel()
	if err := tx.Create(&m).Error; err != nil {
		return helper.DBError(err, "", "Permission key sudah ada", "Gagal membuat permission")
	}
	return helper.JsonCreated(c, "Permission dibuat", dto.FromModel(m))
}

// PATCH /permissions/:id (hanya deskripsi; key immutable)
func (ctl *PermissionController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdatePermissionRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}

	tx, err := tenant.MustScoped(c, ctl.DB, model.PermissionModel{})
	if err != nil {
		return err
	}
	var m model.PermissionModel
	if err := tx.Where("permission_id = ?", id).Take(&m).Error; err != nil {
		return helper.DBError(err, "Permission tidak ditemukan", "", "Gagal mengambil permission")
	}
	m.PermissionDescription = helper.TrimPtr(req.PermissionDescription)

	tx, _ = tenant.MustScoped(c, ctl.DB, model.PermissionModel{})
	if err := tx.Where("permission_id = ?", id).
		Updates(map[string]any{"permission_description": m.PermissionDescription}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui permission")
	}
	return helper.JsonUpdated(c, "Permission diperbarui", dto.FromModel(m))
}

// DELETE /permissions/:id; permission sistem tidak bisa dihapus.
func (ctl *PermissionController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	tx, err := tenant.MustScoped(c, ctl.DB, model.PermissionModel{})
	if err != nil {
		return err
	}
	var m model.PermissionModel
	if err := tx.Where("permission_id = ?", id).Take(&m).Error; err != nil {
		return helper.DBError(err, "Permission tidak ditemukan", "", "Gagal mengambil permission")
	}
	if m.PermissionIsSystem || model.IsSystemKey(m.PermissionKey) {
		return fiber.NewError(fiber.StatusConflict, "Permission sistem tidak bisa dihapus")
	}

	tx, _ = tenant.MustScoped(c, ctl.DB, model.PermissionModel{})
	if err := tx.Where("permission_id = ?", id).Delete(&model.PermissionModel{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus permission")
	}
	return helper.JsonDeleted(c, "Permission dihapus", fiber.Map{"permission_id": id})
}
