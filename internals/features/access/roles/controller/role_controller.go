package controller

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	permissionModel "schoolhub_backend/internals/features/access/permissions/model"
	"schoolhub_backend/internals/features/access/roles/dto"
	"schoolhub_backend/internals/features/access/roles/model"
	staffModel "schoolhub_backend/internals/features/staff/staffs/model"
	helper "schoolhub_backend/internals/helpers"
	"schoolhub_backend/internals/helpers/signals"
	"schoolhub_backend/internals/helpers/tenant"
)

type RoleController struct {
	DB  *gorm.DB
	Bus *signals.Bus
}

func NewRoleController(db *gorm.DB, bus *signals.Bus) *RoleController {
	return &RoleController{DB: db, Bus: bus}
}

func (ctl *RoleController) roles(c *fiber.Ctx) (*gorm.DB, error) {
	return tenant.MustScoped(c, ctl.DB, model.RoleModel{})
}

func (ctl *RoleController) findRole(c *fiber.Ctx) (model.RoleModel, error) {
	var m model.RoleModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	tx, err := ctl.roles(c)
	if err != nil {
		return m, err
	}
	if err := tx.Where("role_id = ? AND role_deleted_at IS NULL", id).Take(&m).Error; err != nil {
		return m, helper.DBError(err, "Role tidak ditemukan", "", "Gagal mengambil role")
	}
	return m, nil
}

// checkKeys: 422 bila ada key yang tidak ada di katalog.
func (ctl *RoleController) checkKeys(c *fiber.Ctx, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	tx, err := tenant.MustScoped(c, ctl.DB, permissionModel.PermissionModel{})
	if err != nil {
		return err
	}
	var catalogue []string
	if err := tx.Pluck("permission_key", &catalogue).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memuat katalog permission")
	}
	if missing := dto.UnknownKeys(keys, catalogue); len(missing) > 0 {
		return helper.NewValidationError("role_permissions", "unknown permission: "+strings.Join(missing, ", "))
	}
	return nil
}

func (ctl *RoleController) savePermissions(c *fiber.Ctx, m *model.RoleModel, keys []string) error {
	tx, err := ctl.roles(c)
	if err != nil {
		return err
	}
	m.RolePermissions = pq.StringArray(keys)
	if err := tx.Where("role_id = ?", m.RoleID).
		Updates(map[string]any{"role_permissions": m.RolePermissions}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan permission role")
	}
	ctl.Bus.Publish(c.UserContext(), signals.RoleUpdated, m.RoleID, nil)
	return nil
}

// GET /roles?q=&permission=
func (ctl *RoleController) List(c *fiber.Ctx) error {
	var q dto.ListRoleQuery
	if err := helper.BindQuery(c, &q); err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 100)

	tx, err := ctl.roles(c)
	if err != nil {
		return err
	}
	tx = tx.Where("role_deleted_at IS NULL")
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("role_name ILIKE ? OR role_slug ILIKE ?", like, like)
	}
	if k := strings.ToLower(strings.TrimSpace(q.Permission)); k != "" {
		tx = tx.Where("? = ANY(role_permissions)", k)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung role")
	}
	var rows []model.RoleModel
	if err := tx.Order("role_name ASC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil role")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p))
}

// GET /roles/:id
func (ctl *RoleController) GetByID(c *fiber.Ctx) error {
	m, err := ctl.findRole(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// POST /roles
func (ctl *RoleController) Create(c *fiber.Ctx) error {
	var req dto.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := helper.Validate(&req); err != nil {
		return err
	}
	if err := ctl.checkKeys(c, req.RolePermissions); err != nil {
		return err
	}

	tx, err := ctl.roles(c)
	if err != nil {
		return err
	}
	m := req.ToModel()
	if err := tx.Create(&m).Error; err != nil {
		return helper.DBError(err, "", "Slug role sudah dipakai", "Gagal membuat role")
	}
	return helper.JsonCreated(c, "Role dibuat", dto.FromModel(m))
}

// PATCH /roles/:id
func (ctl *RoleController) Update(c *fiber.Ctx) error {
	var req dto.UpdateRoleRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	m, err := ctl.findRole(c)
	if err != nil {
		return err
	}
	if m.RoleIsSystem && req.RoleSlug != nil && strings.TrimSpace(*req.RoleSlug) != m.RoleSlug {
		return fiber.NewError(fiber.StatusConflict, "Slug role sistem tidak bisa diubah")
	}
	renamed := req.Apply(&m)

	tx, err := ctl.roles(c)
	if err != nil {
		return err
	}
	if err := tx.Where("role_id = ?", m.RoleID).Updates(map[string]any{
		"role_name":        m.RoleName,
		"role_slug":        m.RoleSlug,
		"role_description": m.RoleDescription,
	}).Error; err != nil {
		return helper.DBError(err, "", "Slug role sudah dipakai", "Gagal memperbarui role")
	}
	if renamed {
		ctl.Bus.Publish(c.UserContext(), signals.RoleUpdated, m.RoleID, nil)
	}
	return helper.JsonUpdated(c, "Role diperbarui", dto.FromModel(m))
}

// PATCH /roles/:id/permissions (ganti seluruh set)
func (ctl *RoleController) ReplacePermissions(c *fiber.Ctx) error {
	var req dto.RolePermissionsRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	keys := dto.NormalizeKeys(req.Permissions)
	if err := ctl.checkKeys(c, keys); err != nil {
		return err
	}
	m, err := ctl.findRole(c)
	if err != nil {
		return err
	}
	if err := ctl.savePermissions(c, &m, keys); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Permission role diganti", dto.FromModel(m))
}

// POST /roles/:id/permissions (grant)
func (ctl *RoleController) GrantPermissions(c *fiber.Ctx) error {
	var req dto.RolePermissionsRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	keys := dto.NormalizeKeys(req.Permissions)
	if err := ctl.checkKeys(c, keys); err != nil {
		return err
	}
	m, err := ctl.findRole(c)
	if err != nil {
		return err
	}
	if err := ctl.savePermissions(c, &m, dto.MergeKeys(m.RolePermissions, keys)); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Permission ditambahkan", dto.FromModel(m))
}

// permissionKeyParam: client meng-encode ":" dan "*" ("roles%3A%2A").
func permissionKeyParam(c *fiber.Ctx) (string, error) {
	key, err := url.PathUnescape(c.Params("key"))
	if err != nil || strings.TrimSpace(key) == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "key permission tidak valid")
	}
	return key, nil
}

// DELETE /roles/:id/permissions/:key (revoke)
func (ctl *RoleController) RevokePermission(c *fiber.Ctx) error {
	key, err := permissionKeyParam(c)
	if err != nil {
		return err
	}
	m, err := ctl.findRole(c)
	if err != nil {
		return err
	}
	keys, found := dto.RemoveKey(m.RolePermissions, key)
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "Permission tidak dimiliki role ini")
	}
	if err := ctl.savePermissions(c, &m, keys); err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Permission dicabut", dto.FromModel(m))
}

// DELETE /roles/:id (soft). Role sistem / masih dipakai staf aktif → 409.
func (ctl *RoleController) Delete(c *fiber.Ctx) error {
	m, err := ctl.findRole(c)
	if err != nil {
		return err
	}
	if m.RoleIsSystem {
		return fiber.NewError(fiber.StatusConflict, "Role sistem tidak bisa dihapus")
	}

	staffs, err := tenant.MustScoped(c, ctl.DB, staffModel.StaffModel{})
	if err != nil {
		return err
	}
	var used int64
	if err := staffs.Where("staff_role_id = ? AND staff_deleted_at IS NULL AND staff_is_active = TRUE", m.RoleID).
		Count(&used).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa pemakaian role")
	}
	if used > 0 {
		return fiber.NewError(fiber.StatusConflict, "Role masih dipakai staf aktif")
	}

	tx, err := ctl.roles(c)
	if err != nil {
		return err
	}
	if err := tx.Where("role_id = ?", m.RoleID).Delete(&model.RoleModel{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus role")
	}
	return helper.JsonDeleted(c, "Role dihapus", fiber.Map{"role_id": m.RoleID})
}
