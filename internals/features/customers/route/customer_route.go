package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/customers/controller"
)

// Base: /api/o/customers (owner only)
func CustomerRoutes(api fiber.Router, db *gorm.DB, p controller.Provisioner, cache controller.CacheInvalidator, log *zap.Logger) {
	ctl := controller.NewCustomerController(db, p, cache, log)

	g := api.Group("/customers")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
