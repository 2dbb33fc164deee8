package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/staff/academic_assignments/model"
)

type ListQuery struct {
	AcademicPeriodID string `query:"academic_period_id" validate:"omitempty,uuid"`
	StaffID          string `query:"staff_id" validate:"omitempty,uuid"`
	BranchID         string `query:"branch_id" validate:"omitempty,uuid"`
	Active           *bool  `query:"active"`
}

type StaffAcademicAssignmentResponse struct {
	ID               uuid.UUID  `json:"staff_academic_assignment_id"`
	StaffID          uuid.UUID  `json:"staff_id"`
	AcademicPeriodID uuid.UUID  `json:"academic_period_id"`
	StaffFullName    string     `json:"staff_full_name"`
	RoleID           *uuid.UUID `json:"role_id,omitempty"`
	RoleName         string     `json:"role_name"`
	BranchIDs        []string   `json:"branch_ids"`
	BranchNames      []string   `json:"branch_names"`
	ClassIDs         []string   `json:"class_ids"`
	ClassNames       []string   `json:"class_names"`
	IsActive         bool       `json:"is_active"`
	SyncedAt         time.Time  `json:"synced_at"`
}

func orEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

func FromModel(m model.StaffAcademicAssignmentModel) StaffAcademicAssignmentResponse {
	return StaffAcademicAssignmentResponse{
		ID:               m.StaffAcademicAssignmentID,
		StaffID:          m.StaffAcademicAssignmentStaffID,
		AcademicPeriodID: m.StaffAcademicAssignmentAcademicPeriodID,
		StaffFullName:    m.StaffAcademicAssignmentStaffFullName,
		RoleID:           m.StaffAcademicAssignmentRoleID,
		RoleName:         m.StaffAcademicAssignmentRoleName,
		BranchIDs:        orEmpty(m.StaffAcademicAssignmentBranchIDs),
		BranchNames:      orEmpty(m.StaffAcademicAssignmentBranchNames),
		ClassIDs:         orEmpty(m.StaffAcademicAssignmentClassIDs),
		ClassNames:       orEmpty(m.StaffAcademicAssignmentClassNames),
		IsActive:         m.StaffAcademicAssignmentIsActive,
		SyncedAt:         m.StaffAcademicAssignmentSyncedAt,
	}
}

func FromModels(list []model.StaffAcademicAssignmentModel) []StaffAcademicAssignmentResponse {
	out := make([]StaffAcademicAssignmentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
