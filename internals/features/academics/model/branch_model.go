package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BranchModel struct {
	BranchID       uuid.UUID `gorm:"column:branch_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"branch_id"`
	BranchName     string    `gorm:"column:branch_name;type:varchar(120);not null" json:"branch_name"`
	BranchCode     string    `gorm:"column:branch_code;type:varchar(40);not null;uniqueIndex:uq_branches_code_alive,where:branch_deleted_at IS NULL" json:"branch_code"`
	BranchAddress  *string   `gorm:"column:branch_address;type:text" json:"branch_address,omitempty"`
	BranchIsActive bool      `gorm:"column:branch_is_active;not null;default:true" json:"branch_is_active"`

	BranchCreatedAt time.Time      `gorm:"column:branch_created_at;type:timestamptz;not null;autoCreateTime" json:"branch_created_at"`
	BranchUpdatedAt time.Time      `gorm:"column:branch_updated_at;type:timestamptz;not null;autoUpdateTime" json:"branch_updated_at"`
	BranchDeletedAt gorm.DeletedAt `gorm:"column:branch_deleted_at;index" json:"-"`
}

func (BranchModel) TableName() string { return "branches" }
