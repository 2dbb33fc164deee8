package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"schoolhub_backend/internals/configs"
	database "schoolhub_backend/internals/databases"
	academicService "schoolhub_backend/internals/features/academics/service"
	notificationService "schoolhub_backend/internals/features/notifications/service"
	syncService "schoolhub_backend/internals/features/staff/academic_assignments/service"
	storageService "schoolhub_backend/internals/features/storage/service"
	helper "schoolhub_backend/internals/helpers"
	"schoolhub_backend/internals/helpers/mailer"
	helperOSS "schoolhub_backend/internals/helpers/oss"
	"schoolhub_backend/internals/helpers/signals"
	"schoolhub_backend/internals/helpers/tenant"
	middlewares "schoolhub_backend/internals/middlewares"
	guard "schoolhub_backend/internals/middlewares/features"
	routes "schoolhub_backend/internals/route"
	routeDetails "schoolhub_backend/internals/route/details"
	"schoolhub_backend/internals/scheduler"
	"schoolhub_backend/internals/seeds"
)

func main() {
	cfg := configs.LoadEnv()
	logger := configs.NewLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	rep := configs.NewReporter(cfg, logger)
	defer rep.Close()

	// 🔌 DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	database.TunePool(db, logger)
	database.WarmUpQueries(db, logger)

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := database.MigrateGlobal(bootCtx, db, logger); err != nil {
		logger.Fatal("global migration", zap.Error(err))
	}
	lookup := tenant.NewGormLookup(db)
	provisioner := database.NewProvisioner(db, logger)
	if list, err := lookup.ListActive(bootCtx); err != nil {
		logger.Warn("list tenants for migration", zap.Error(err))
	} else {
		ok := provisioner.ProvisionAll(bootCtx, list)
		logger.Info("tenant schemas migrated", zap.Int("ok", ok), zap.Int("total", len(list)))
	}
	if cfg.SeedDemoTenant && !cfg.IsProduction() {
		if err := seeds.RunAllSeeds(bootCtx, db, provisioner, logger, cfg.SeedDemoFile); err != nil {
			logger.Error("seed demo tenant", zap.Error(err))
		}
	}
	cancelBoot()

	// 📡 signals + listeners
	bus := signals.NewBus().WithLogger(logger)
	sync := syncService.NewSyncService(syncService.NewGormStore(db), logger)
	sync.Register(bus)

	mail := mailer.New(mailer.Options{
		APIKey:    cfg.SendgridAPIKey,
		AppName:   cfg.AppName,
		FromName:  cfg.MailFromName,
		FromEmail: cfg.MailFromEmail,
	}, logger)
	notifications := notificationService.NewService(db, mail, logger)
	notifications.Register(bus)

	// 🗂 object storage
	var store helperOSS.ObjectStore
	if cfg.OSSEnabled() {
		oss, err := helperOSS.NewOSSStore(helperOSS.OSSOptions{
			Endpoint:      cfg.OSSEndpoint,
			AccessKey:     cfg.OSSAccessKey,
			SecretKey:     cfg.OSSSecretKey,
			SecurityToken: cfg.OSSSecurityToken,
			Bucket:        cfg.OSSBucket,
		}, logger)
		if err != nil {
			logger.Fatal("oss init", zap.Error(err))
		}
		store = oss
	} else {
		logger.Warn("OSS belum dikonfigurasi, storage memakai memory store (data hilang saat restart)")
		store = helperOSS.NewMemoryStore()
	}
	storage := storageService.NewService(store, storageService.NewGormRepo(db), cfg.MaxUploadBytes, logger)
	if cfg.SignedURLTTL > 0 {
		storage.SignTTL = cfg.SignedURLTTL
	}

	// ⏱ cron per tenant
	cron := scheduler.New(lookup, logger)
	jobs := []scheduler.Job{
		scheduler.TrashReaperJob(cfg.CronTrashReaper, storage, cfg.TrashRetentionDays, cfg.ReaperDryRun),
		scheduler.NotificationPurgeJob(cfg.CronNotificationPurge, notifications, cfg.NotificationRetentDays, logger),
		scheduler.PeriodRolloverJob(cfg.CronPeriodRollover, academicService.NewPeriodRollover(db, bus, logger)),
	}
	for _, j := range jobs {
		if err := cron.Add(j); err != nil {
			logger.Fatal("schedule job", zap.Error(err))
		}
	}
	cron.Start()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		BodyLimit:             int(cfg.MaxUploadBytes) + 1<<20,
		ErrorHandler: helper.ErrorHandler(func(c *fiber.Ctx, err error) {
			rep.Error(err, map[string]interface{}{
				"method": c.Method(),
				"path":   c.Path(),
				"reqid":  c.Locals("reqid"),
			})
		}),
	})
	middlewares.SetupMiddlewares(app, logger, rep)

	routes.SetupRoutes(app, routes.Deps{
		Config:      cfg,
		Log:         logger,
		Resolver:    tenant.NewResolver(lookup, cfg.TenantCacheTTL),
		Provisioner: provisioner,
		Tenant: routeDetails.TenantDeps{
			DB:            db,
			Bus:           bus,
			Perms:         guard.NewGormPermissionLoader(db),
			Notifications: notifications,
			Storage:       storage,
			Sync:          sync,
		},
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		logger.Info("✅ Listening", zap.String("port", cfg.Port))
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown: HTTP → cron → pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	cron.Stop(ctx)
	database.Close(db)
}
