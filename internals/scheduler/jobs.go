package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	academicService "schoolhub_backend/internals/features/academics/service"
	notificationService "schoolhub_backend/internals/features/notifications/service"
	storageService "schoolhub_backend/internals/features/storage/service"
	"schoolhub_backend/internals/helpers/tenant"
)

func days(n int) time.Duration { return time.Duration(n) * 24 * time.Hour }

func TrashReaperJob(spec string, svc *storageService.Service, retentionDays int, dryRun bool) Job {
	return Job{
		Name: "trash-reaper",
		Spec: spec,
		Run: func(ctx context.Context, t tenant.Tenant) error {
			_, err := svc.ReapTrash(ctx, days(retentionDays), dryRun)
			return err
		},
	}
}

func NotificationPurgeJob(spec string, svc *notificationService.Service, retentionDays int, log *zap.Logger) Job {
	return Job{
		Name: "notification-purge",
		Spec: spec,
		Run: func(ctx context.Context, t tenant.Tenant) error {
			n, err := svc.Purge(ctx, days(retentionDays))
			if err == nil && n > 0 && log != nil {
				log.Info("notifications purged", zap.String("tenant", t.Slug), zap.Int64("rows", n))
			}
			return err
		},
	}
}

func PeriodRolloverJob(spec string, r *academicService.PeriodRollover) Job {
	return Job{
		Name: "period-rollover",
		Spec: spec,
		Run: func(ctx context.Context, t tenant.Tenant) error {
			_, err := r.Run(ctx)
			return err
		},
	}
}
