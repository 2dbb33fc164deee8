package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassModel struct {
	ClassID         uuid.UUID `gorm:"column:class_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"class_id"`
	ClassBranchID   uuid.UUID `gorm:"column:class_branch_id;type:uuid;not null;index" json:"class_branch_id"`
	ClassName       string    `gorm:"column:class_name;type:varchar(120);not null" json:"class_name"`
	ClassGradeLevel *int      `gorm:"column:class_grade_level" json:"class_grade_level,omitempty"`
	ClassIsActive   bool      `gorm:"column:class_is_active;not null;default:true" json:"class_is_active"`

	ClassCreatedAt time.Time      `gorm:"column:class_created_at;type:timestamptz;not null;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time      `gorm:"column:class_updated_at;type:timestamptz;not null;autoUpdateTime" json:"class_updated_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;index" json:"-"`
}

func (ClassModel) TableName() string { return "classes" }
