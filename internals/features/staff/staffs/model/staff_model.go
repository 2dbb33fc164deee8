package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type StaffModel struct {
	StaffID        uuid.UUID      `gorm:"column:staff_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"staff_id"`
	StaffUserID    *uuid.UUID     `gorm:"column:staff_user_id;type:uuid;index" json:"staff_user_id,omitempty"`
	StaffFullName  string         `gorm:"column:staff_full_name;type:varchar(120);not null" json:"staff_full_name"`
	StaffEmail     *string        `gorm:"column:staff_email;type:varchar(160)" json:"staff_email,omitempty"`
	StaffPhone     *string        `gorm:"column:staff_phone;type:varchar(32)" json:"staff_phone,omitempty"`
	StaffRoleID    uuid.UUID      `gorm:"column:staff_role_id;type:uuid;not null;index" json:"staff_role_id"`
	StaffBranchIDs pq.StringArray `gorm:"column:staff_branch_ids;type:text[];not null;default:'{}'" json:"staff_branch_ids"`
	StaffClassIDs  pq.StringArray `gorm:"column:staff_class_ids;type:text[];not null;default:'{}'" json:"staff_class_ids"`
	StaffIsActive  bool           `gorm:"column:staff_is_active;not null;default:true" json:"staff_is_active"`

	StaffCreatedAt time.Time      `gorm:"column:staff_created_at;type:timestamptz;not null;autoCreateTime" json:"staff_created_at"`
	StaffUpdatedAt time.Time      `gorm:"column:staff_updated_at;type:timestamptz;not null;autoUpdateTime" json:"staff_updated_at"`
	StaffDeletedAt gorm.DeletedAt `gorm:"column:staff_deleted_at;index" json:"-"`
}

func (StaffModel) TableName() string { return "staffs" }

var ErrStaffNoBranch = errors.New("staff must be assigned to at least one branch")

// Validate: minimal satu cabang.
func (m *StaffModel) Validate() error {
	for _, b := range m.StaffBranchIDs {
		if _, err := uuid.Parse(b); err == nil {
			return nil
		}
	}
	return ErrStaffNoBranch
}

func (m *StaffModel) BeforeSave(*gorm.DB) error { return m.Validate() }

func (m *StaffModel) HasBranch(id uuid.UUID) bool {
	s := id.String()
	for _, b := range m.StaffBranchIDs {
		if b == s {
			return true
		}
	}
	return false
}
