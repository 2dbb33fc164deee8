// Package dbtime: konversi waktu DB (UTC) ke zona waktu tenant.
package dbtime

import (
	"context"
	"time"

	"schoolhub_backend/internals/helpers/tenant"
)

// Location: zona tenant di ctx; tanpa tenant → Asia/Jakarta, lalu UTC.
func Location(ctx context.Context) *time.Location {
	if t, ok := tenant.FromContext(ctx); ok {
		return t.Location()
	}
	return tenant.Tenant{}.Location()
}

// In mengonversi t ke zona tenant. Zero time dikembalikan apa adanya.
func In(ctx context.Context, t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(Location(ctx))
}

func InPtr(ctx context.Context, t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := In(ctx, *t)
	return &v
}

// Today: tanggal lokal tenant untuk now, sebagai 00:00 UTC (kolom DATE).
func Today(ctx context.Context, now time.Time) time.Time {
	l := now.In(Location(ctx))
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.UTC)
}
