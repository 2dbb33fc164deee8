package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// StaffAcademicAssignmentModel: snapshot staf per periode akademik; ditulis oleh SyncService.
type StaffAcademicAssignmentModel struct {
	StaffAcademicAssignmentID               uuid.UUID      `gorm:"column:staff_academic_assignment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"staff_academic_assignment_id"`
	StaffAcademicAssignmentStaffID          uuid.UUID      `gorm:"column:staff_academic_assignment_staff_id;type:uuid;not null;uniqueIndex:uq_saa_staff_period,priority:1" json:"staff_academic_assignment_staff_id"`
	StaffAcademicAssignmentAcademicPeriodID uuid.UUID      `gorm:"column:staff_academic_assignment_academic_period_id;type:uuid;not null;uniqueIndex:uq_saa_staff_period,priority:2;index" json:"staff_academic_assignment_academic_period_id"`
	StaffAcademicAssignmentStaffFullName    string         `gorm:"column:staff_academic_assignment_staff_full_name;type:varchar(120);not null" json:"staff_academic_assignment_staff_full_name"`
	StaffAcademicAssignmentRoleID           *uuid.UUID     `gorm:"column:staff_academic_assignment_role_id;type:uuid" json:"staff_academic_assignment_role_id,omitempty"`
	StaffAcademicAssignmentRoleName         string         `gorm:"column:staff_academic_assignment_role_name;type:varchar(80)" json:"staff_academic_assignment_role_name"`
	StaffAcademicAssignmentBranchIDs        pq.StringArray `gorm:"column:staff_academic_assignment_branch_ids;type:text[];not null;default:'{}'" json:"staff_academic_assignment_branch_ids"`
	StaffAcademicAssignmentBranchNames      pq.StringArray `gorm:"column:staff_academic_assignment_branch_names;type:text[];not null;default:'{}'" json:"staff_academic_assignment_branch_names"`
	StaffAcademicAssignmentClassIDs         pq.StringArray `gorm:"column:staff_academic_assignment_class_ids;type:text[];not null;default:'{}'" json:"staff_academic_assignment_class_ids"`
	StaffAcademicAssignmentClassNames       pq.StringArray `gorm:"column:staff_academic_assignment_class_names;type:text[];not null;default:'{}'" json:"staff_academic_assignment_class_names"`
	StaffAcademicAssignmentIsActive         bool           `gorm:"column:staff_academic_assignment_is_active;not null;default:true;index" json:"staff_academic_assignment_is_active"`
	StaffAcademicAssignmentSyncedAt         time.Time      `gorm:"column:staff_academic_assignment_synced_at;type:timestamptz;not null" json:"staff_academic_assignment_synced_at"`

	StaffAcademicAssignmentCreatedAt time.Time `gorm:"column:staff_academic_assignment_created_at;type:timestamptz;not null;autoCreateTime" json:"staff_academic_assignment_created_at"`
	StaffAcademicAssignmentUpdatedAt time.Time `gorm:"column:staff_academic_assignment_updated_at;type:timestamptz;not null;autoUpdateTime" json:"staff_academic_assignment_updated_at"`
}

func (StaffAcademicAssignmentModel) TableName() string { return "staff_academic_assignments" }
