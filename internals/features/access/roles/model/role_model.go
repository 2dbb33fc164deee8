package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type RoleModel struct {
	RoleID          uuid.UUID      `gorm:"column:role_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"role_id"`
	RoleName        string         `gorm:"column:role_name;type:varchar(80);not null" json:"role_name"`
	RoleSlug        string         `gorm:"column:role_slug;type:varchar(80);not null;uniqueIndex:uq_roles_slug_alive,where:role_deleted_at IS NULL" json:"role_slug"`
	RoleDescription *string        `gorm:"column:role_description;type:text" json:"role_description,omitempty"`
	RolePermissions pq.StringArray `gorm:"column:role_permissions;type:text[];not null;default:'{}'" json:"role_permissions"`
	RoleIsSystem    bool           `gorm:"column:role_is_system;not null;default:false" json:"role_is_system"`

	RoleCreatedAt time.Time      `gorm:"column:role_created_at;type:timestamptz;not null;autoCreateTime" json:"role_created_at"`
	RoleUpdatedAt time.Time      `gorm:"column:role_updated_at;type:timestamptz;not null;autoUpdateTime" json:"role_updated_at"`
	RoleDeletedAt gorm.DeletedAt `gorm:"column:role_deleted_at;index" json:"-"`
}

func (RoleModel) TableName() string { return "roles" }

const AdminRoleSlug = "admin"
