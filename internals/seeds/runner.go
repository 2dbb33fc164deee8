package seeds

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"

	customerDTO "schoolhub_backend/internals/features/customers/dto"
	customerModel "schoolhub_backend/internals/features/customers/model"
	"schoolhub_backend/internals/helpers/tenant"
)

type Provisioner interface {
	Provision(ctx context.Context, t tenant.Tenant) error
}

// LoadDemoFromJSON membaca dan memvalidasi file seed.
func LoadDemoFromJSON(filePath string) (DemoSeed, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return DemoSeed{}, fmt.Errorf("read seed file: %w", err)
	}
	var s DemoSeed
	if err := sonic.Unmarshal(raw, &s); err != nil {
		return DemoSeed{}, fmt.Errorf("decode seed file: %w", err)
	}
	if err := s.Validate(); err != nil {
		return DemoSeed{}, err
	}
	return s, nil
}

// RunAllSeeds: customer demo (dibuat kalau belum ada) → provision schema → data awal.
// Aman dijalankan berulang; baris yang sudah ada dilewati.
func RunAllSeeds(ctx context.Context, db *gorm.DB, p Provisioner, log *zap.Logger, filePath string) error {
	s, err := LoadDemoFromJSON(filePath)
	if err != nil {
		return err
	}
	log.Info("📥 seeding demo tenant", zap.String("file", filePath), zap.String("slug", s.Customer.CustomerSlug))

	t, err := ensureCustomer(ctx, db, s.Customer)
	if err != nil {
		return err
	}
	if err := p.Provision(ctx, t); err != nil {
		return fmt.Errorf("provision %s: %w", t.Slug, err)
	}

	res, err := seedTenantData(tenant.WithTenant(ctx, t), db, s)
	if err != nil {
		return err
	}
	log.Info("✅ demo tenant seeded",
		zap.String("slug", t.Slug),
		zap.Int("branches", res.Branches),
		zap.Int("classes", res.Classes),
		zap.Int("periods", res.Periods),
		zap.Int("staffs", res.Staffs),
	)
	return nil
}

func ensureCustomer(ctx context.Context, db *gorm.DB, req customerDTO.CreateCustomerRequest) (tenant.Tenant, error) {
	req.Normalize()

	var existing customerModel.CustomerModel
	err := db.WithContext(ctx).Where("customer_slug = ?", req.CustomerSlug).First(&existing).Error
	switch {
	case err == nil:
		return tenant.FromCustomer(&existing), nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return tenant.Tenant{}, fmt.Errorf("find customer: %w", err)
	}

	m, err := req.ToModel()
	if err != nil {
		return tenant.Tenant{}, err
	}
	if err := db.WithContext(ctx).Create(&m).Error; err != nil {
		return tenant.Tenant{}, fmt.Errorf("create customer: %w", err)
	}
	return tenant.FromCustomer(&m), nil
}
