package tenant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	customerModel "schoolhub_backend/internals/features/customers/model"
)

// Lookup mencari tenant aktif berdasarkan slug.
type Lookup interface {
	FindActiveBySlug(ctx context.Context, slug string) (Tenant, error)
}

type cached struct {
	t       Tenant
	expires time.Time
}

// Resolver: Lookup + cache in-process dengan TTL.
type Resolver struct {
	lookup Lookup
	ttl    time.Duration
	now    func() time.Time

	mu    sync.RWMutex
	cache map[string]cached
}

func NewResolver(l Lookup, ttl time.Duration) *Resolver {
	return &Resolver{
		lookup: l,
		ttl:    ttl,
		now:    time.Now,
		cache:  make(map[string]cached),
	}
}

func (r *Resolver) BySlug(ctx context.Context, slug string) (Tenant, error) {
	key := strings.ToLower(strings.TrimSpace(slug))
	if key == "" {
		return Tenant{}, ErrUnknownTenant
	}

	r.mu.RLock()
	hit, ok := r.cache[key]
	r.mu.RUnlock()
	if ok && r.now().Before(hit.expires) {
		return hit.t, nil
	}

	t, err := r.lookup.FindActiveBySlug(ctx, key)
	if err != nil {
		return Tenant{}, err
	}
	if r.ttl > 0 {
		r.mu.Lock()
		r.cache[key] = cached{t: t, expires: r.now().Add(r.ttl)}
		r.mu.Unlock()
	}
	return t, nil
}

func (r *Resolver) Invalidate(slug string) {
	r.mu.Lock()
	delete(r.cache, strings.ToLower(strings.TrimSpace(slug)))
	r.mu.Unlock()
}

/* ===== GORM lookup (public.customers) ===== */

type GormLookup struct{ DB *gorm.DB }

func NewGormLookup(db *gorm.DB) *GormLookup { return &GormLookup{DB: db} }

func (g *GormLookup) FindActiveBySlug(ctx context.Context, slug string) (Tenant, error) {
	var m customerModel.CustomerModel
	err := g.DB.WithContext(ctx).
		Where("LOWER(customer_slug) = ? AND customer_is_active = TRUE", slug).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Tenant{}, ErrUnknownTenant
	}
	if err != nil {
		return Tenant{}, err
	}
	return FromCustomer(&m), nil
}

// ListActive dipakai scheduler untuk iterasi semua tenant.
func (g *GormLookup) ListActive(ctx context.Context) ([]Tenant, error) {
	var rows []customerModel.CustomerModel
	if err := g.DB.WithContext(ctx).
		Where("customer_is_active = TRUE").
		Order("customer_slug ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Tenant, 0, len(rows))
	for i := range rows {
		out = append(out, FromCustomer(&rows[i]))
	}
	return out, nil
}

func FromCustomer(m *customerModel.CustomerModel) Tenant {
	return Tenant{
		ID:       m.CustomerID,
		Slug:     m.CustomerSlug,
		Name:     m.CustomerName,
		Schema:   m.CustomerSchema,
		Timezone: m.CustomerTimezone,
	}
}
