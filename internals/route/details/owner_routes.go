package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	customerController "schoolhub_backend/internals/features/customers/controller"
	customerRoute "schoolhub_backend/internals/features/customers/route"
)

// OwnerRoutes: registry tenant, tanpa tenant middleware.
func OwnerRoutes(owner fiber.Router, db *gorm.DB, p customerController.Provisioner, cache customerController.CacheInvalidator, log *zap.Logger) {
	customerRoute.CustomerRoutes(owner, db, p, cache, log)
}
