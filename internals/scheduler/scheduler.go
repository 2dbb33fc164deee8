// Package scheduler menjalankan job cron untuk setiap tenant aktif.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"schoolhub_backend/internals/helpers/tenant"
)

type TenantLister interface {
	ListActive(ctx context.Context) ([]tenant.Tenant, error)
}

// TenantJob dipanggil sekali per tenant; ctx sudah membawa tenant.
type TenantJob func(ctx context.Context, t tenant.Tenant) error

type Job struct {
	Name    string
	Spec    string
	Timeout time.Duration
	Run     TenantJob
}

type Result struct {
	Tenants int
	Failed  int
}

// cronLogger: adapter cron.Logger → zap.
type cronLogger struct{ s *zap.SugaredLogger }

func (l cronLogger) Info(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
func (l cronLogger) Error(err error, msg string, kv ...interface{}) {
	l.s.Errorw(msg, append(kv, "err", err)...)
}

type Scheduler struct {
	cron    *cron.Cron
	tenants TenantLister
	log     *zap.Logger
}

func New(tenants TenantLister, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("scheduler")
	cl := cronLogger{s: log.Sugar()}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		tenants: tenants,
		log:     log,
	}
}

// Add mendaftarkan job; spec kosong = job dinonaktifkan.
func (s *Scheduler) Add(job Job) error {
	if job.Spec == "" {
		s.log.Info("job disabled", zap.String("job", job.Name))
		return nil
	}
	if job.Timeout <= 0 {
		job.Timeout = 10 * time.Minute
	}
	_, err := s.cron.AddFunc(job.Spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), job.Timeout)
		defer cancel()
		s.RunNow(ctx, job)
	})
	if err != nil {
		return fmt.Errorf("add job %s (%q): %w", job.Name, job.Spec, err)
	}
	s.log.Info("job scheduled", zap.String("job", job.Name), zap.String("spec", job.Spec))
	return nil
}

// RunNow menjalankan job untuk semua tenant aktif secara berurutan.
// Kegagalan satu tenant tidak menghentikan tenant lain.
func (s *Scheduler) RunNow(ctx context.Context, job Job) Result {
	var res Result
	list, err := s.tenants.ListActive(ctx)
	if err != nil {
		s.log.Error("list tenants failed", zap.String("job", job.Name), zap.Error(err))
		return res
	}
	started := time.Now()
	for _, t := range list {
		if ctx.Err() != nil {
			s.log.Warn("job cancelled", zap.String("job", job.Name), zap.Error(ctx.Err()))
			break
		}
		res.Tenants++
		if err := s.runOne(ctx, job, t); err != nil {
			res.Failed++
			s.log.Error("job failed", zap.String("job", job.Name), zap.String("tenant", t.Slug), zap.Error(err))
		}
	}
	s.log.Info("job done",
		zap.String("job", job.Name),
		zap.Int("tenants", res.Tenants),
		zap.Int("failed", res.Failed),
		zap.Duration("elapsed", time.Since(started)),
	)
	return res
}

func (s *Scheduler) runOne(ctx context.Context, job Job, t tenant.Tenant) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return job.Run(tenant.WithTenant(ctx, t), t)
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop menunggu job yang sedang berjalan selesai (atau ctx habis).
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out")
	}
}
