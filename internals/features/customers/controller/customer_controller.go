package controller

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/customers/dto"
	"schoolhub_backend/internals/features/customers/model"
	helper "schoolhub_backend/internals/helpers"
	"schoolhub_backend/internals/helpers/tenant"
)

type Provisioner interface {
	Provision(ctx context.Context, t tenant.Tenant) error
}

type CacheInvalidator interface {
	Invalidate(slug string)
}

type CustomerController struct {
	DB          *gorm.DB
	Provisioner Provisioner
	Cache       CacheInvalidator
	Log         *zap.Logger
}

func NewCustomerController(db *gorm.DB, p Provisioner, cache CacheInvalidator, log *zap.Logger) *CustomerController {
	if log == nil {
		log = zap.NewNop()
	}
	return &CustomerController{DB: db, Provisioner: p, Cache: cache, Log: log.Named("customers")}
}

func (ctl *CustomerController) find(c *fiber.Ctx) (model.CustomerModel, error) {
	var m model.CustomerModel
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return m, err
	}
	if err := ctl.DB.WithContext(c.UserContext()).Where("customer_id = ?", id).Take(&m).Error; err != nil {
		return m, helper.DBError(err, "Customer tidak ditemukan", "", "Gagal mengambil customer")
	}
	return m, nil
}

func (ctl *CustomerController) invalidate(slug string) {
	if ctl.Cache != nil {
		ctl.Cache.Invalidate(slug)
	}
}

// GET /customers?q=&active=
func (ctl *CustomerController) List(c *fiber.Ctx) error {
	var q dto.ListCustomerQuery
	if err := helper.BindQuery(c, &q); err != nil {
		return err
	}
	p := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&model.CustomerModel{})
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("customer_name ILIKE ? OR customer_slug ILIKE ?", like, like)
	}
	if q.Active != nil {
		tx = tx.Where("customer_is_active = ?", *q.Active)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung customer")
	}
	var rows []model.CustomerModel
	if err := tx.Order("customer_slug ASC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil customer")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p))
}

// GET /customers/:id
func (ctl *CustomerController) GetByID(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// POST /customers: registry + schema tenant dibuat sekaligus.
func (ctl *CustomerController) Create(c *fiber.Ctx) error {
	var req dto.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := helper.Validate(&req); err != nil {
		return err
	}
	m, err := req.ToModel()
	if err != nil {
		return err
	}

	db := ctl.DB.WithContext(c.UserContext())
	if err := db.Create(&m).Error; err != nil {
		return helper.DBError(err, "", "Slug customer sudah dipakai", "Gagal membuat customer")
	}
	if err := ctl.Provisioner.Provision(c.UserContext(), tenant.FromCustomer(&m)); err != nil {
		ctl.Log.Error("provision failed, rolling back customer", zap.String("slug", m.CustomerSlug), zap.Error(err))
		if derr := db.Unscoped().Delete(&model.CustomerModel{}, "customer_id = ?", m.CustomerID).Error; derr != nil {
			ctl.Log.Error("rollback customer failed", zap.String("slug", m.CustomerSlug), zap.Error(derr))
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyiapkan schema customer")
	}
	ctl.invalidate(m.CustomerSlug)
	return helper.JsonCreated(c, "Customer dibuat", dto.FromModel(m))
}

// PATCH /customers/:id
func (ctl *CustomerController) Update(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return err
	}
	var req dto.UpdateCustomerRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return err
	}
	cols, err := req.Apply(&m)
	if err != nil {
		return err
	}
	if len(cols) > 0 {
		if err := ctl.DB.WithContext(c.UserContext()).Model(&model.CustomerModel{}).
			Where("customer_id = ?", m.CustomerID).Updates(cols).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui customer")
		}
		ctl.invalidate(m.CustomerSlug)
	}
	return helper.JsonUpdated(c, "Customer diperbarui", dto.FromModel(m))
}

// DELETE /customers/:id: soft delete; schema tenant tidak di-drop.
func (ctl *CustomerController) Delete(c *fiber.Ctx) error {
	m, err := ctl.find(c)
	if err != nil {
		return err
	}
	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.CustomerModel{}).Where("customer_id = ?", m.CustomerID).
			Update("customer_is_active", false).Error; err != nil {
			return err
		}
		return tx.Delete(&model.CustomerModel{}, "customer_id = ?", m.CustomerID).Error
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus customer")
	}
	ctl.invalidate(m.CustomerSlug)
	return helper.JsonDeleted(c, "Customer dihapus", fiber.Map{"customer_id": m.CustomerID})
}
