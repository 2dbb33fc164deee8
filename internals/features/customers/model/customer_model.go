package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerModel: registry tenant di schema public.
type CustomerModel struct {
	CustomerID       uuid.UUID      `gorm:"column:customer_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"customer_id"`
	CustomerSlug     string         `gorm:"column:customer_slug;type:varchar(63);not null" json:"customer_slug"`
	CustomerName     string         `gorm:"column:customer_name;type:varchar(160);not null" json:"customer_name"`
	CustomerSchema   string         `gorm:"column:customer_schema;type:varchar(70);not null" json:"customer_schema"`
	CustomerTimezone string         `gorm:"column:customer_timezone;type:varchar(64);not null;default:Asia/Jakarta" json:"customer_timezone"`
	CustomerIsActive bool           `gorm:"column:customer_is_active;not null;default:true" json:"customer_is_active"`
	CustomerCreated  time.Time      `gorm:"column:customer_created_at;type:timestamptz;not null;autoCreateTime" json:"customer_created_at"`
	CustomerUpdated  time.Time      `gorm:"column:customer_updated_at;type:timestamptz;not null;autoUpdateTime" json:"customer_updated_at"`
	CustomerDeleted  gorm.DeletedAt `gorm:"column:customer_deleted_at;index" json:"-"`
}

func (CustomerModel) TableName() string { return "public.customers" }
