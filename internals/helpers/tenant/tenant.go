// Package tenant membawa identitas tenant (customer/sekolah) lewat context.Context
// dan mengarahkan query GORM ke schema Postgres milik tenant tersebut.
package tenant

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type Tenant struct {
	ID       uuid.UUID `json:"id"`
	Slug     string    `json:"slug"`
	Name     string    `json:"name"`
	Schema   string    `json:"schema"`
	Timezone string    `json:"timezone"`
}

// Location: fallback Asia/Jakarta, lalu UTC.
func (t Tenant) Location() *time.Location {
	if tz := strings.TrimSpace(t.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation("Asia/Jakarta"); err == nil {
		return loc
	}
	return time.UTC
}

var (
	ErrNoTenant      = errors.New("tenant context missing")
	ErrUnknownTenant = errors.New("tenant not found")
)

type ctxKey struct{}

func WithTenant(ctx context.Context, t Tenant) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

func FromContext(ctx context.Context) (Tenant, bool) {
	if ctx == nil {
		return Tenant{}, false
	}
	t, ok := ctx.Value(ctxKey{}).(Tenant)
	return t, ok && t.Schema != ""
}

// FromFiber membaca tenant dari user context request.
func FromFiber(c *fiber.Ctx) (Tenant, error) {
	t, ok := FromContext(c.UserContext())
	if !ok {
		return Tenant{}, fiber.NewError(fiber.StatusBadRequest, "Tenant tidak ditemukan. Sertakan header X-Customer-Slug.")
	}
	return t, nil
}

var reSchemaUnsafe = regexp.MustCompile(`[^a-z0-9_]`)

// SchemaFor: "sd-harapan" → "t_sd_harapan".
func SchemaFor(slug string) string {
	s := strings.ToLower(strings.TrimSpace(slug))
	s = strings.ReplaceAll(s, "-", "_")
	s = reSchemaUnsafe.ReplaceAllString(s, "")
	return "t_" + s
}

// Table: nama tabel qualified "schema.table" untuk raw SQL / join.
func Table(ctx context.Context, table string) (string, error) {
	t, ok := FromContext(ctx)
	if !ok {
		return "", ErrNoTenant
	}
	return t.Schema + "." + table, nil
}

// Scoped mengembalikan *gorm.DB yang terikat ke tabel model di schema tenant.
func Scoped(ctx context.Context, db *gorm.DB, m schema.Tabler) (*gorm.DB, error) {
	name, err := Table(ctx, m.TableName())
	if err != nil {
		return nil, err
	}
	return db.WithContext(ctx).Table(name), nil
}

// MustScoped dipakai di controller setelah middleware tenant; error → *fiber.Error.
func MustScoped(c *fiber.Ctx, db *gorm.DB, m schema.Tabler) (*gorm.DB, error) {
	t, err := FromFiber(c)
	if err != nil {
		return nil, err
	}
	return db.WithContext(c.UserContext()).Table(t.Schema + "." + m.TableName()), nil
}

// MustFromContext untuk job/background yang tenant-nya sudah pasti di-set.
func MustFromContext(ctx context.Context) Tenant {
	t, ok := FromContext(ctx)
	if !ok {
		panic(ErrNoTenant)
	}
	return t
}
