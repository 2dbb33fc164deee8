package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"schoolhub_backend/internals/configs"
	database "schoolhub_backend/internals/databases"
	"schoolhub_backend/internals/helpers/tenant"
	authMiddleware "schoolhub_backend/internals/middlewares/auth"
	guard "schoolhub_backend/internals/middlewares/features"
	tenantMiddleware "schoolhub_backend/internals/middlewares/tenant"
	routeDetails "schoolhub_backend/internals/route/details"
)

var startTime time.Time

type Deps struct {
	Config      *configs.Config
	Log         *zap.Logger
	Resolver    *tenant.Resolver
	Provisioner *database.Provisioner
	Tenant      routeDetails.TenantDeps
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	BaseRoutes(app, d.Tenant.DB, d.Config.Env)

	auth := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              d.Config.JWTSecret,
		AllowCookieFallback: true,
	})

	// ===================== OWNER (GLOBAL) =====================
	d.Log.Info("mounting owner routes", zap.String("prefix", "/api/o"))
	owner := app.Group("/api/o", auth, guard.OnlyOwner())
	routeDetails.OwnerRoutes(owner, d.Tenant.DB, d.Provisioner, d.Resolver, d.Log)

	// ===================== TENANT =====================
	d.Log.Info("mounting tenant routes", zap.String("prefix", "/api/t"))
	api := app.Group("/api/t", auth, tenantMiddleware.UseTenant(d.Resolver))
	routeDetails.TenantRoutes(api, d.Tenant)
}
