package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"schoolhub_backend/internals/features/staff/staffs/model"
	helper "schoolhub_backend/internals/helpers"
)

type CreateStaffRequest struct {
	StaffUserID    *uuid.UUID  `json:"staff_user_id"`
	StaffFullName  string      `json:"staff_full_name" validate:"required,min=2,max=120"`
	StaffEmail     *string     `json:"staff_email" validate:"omitempty,email,max=160"`
	StaffPhone     *string     `json:"staff_phone" validate:"omitempty,max=32"`
	StaffRoleID    uuid.UUID   `json:"staff_role_id" validate:"required"`
	StaffBranchIDs []uuid.UUID `json:"staff_branch_ids" validate:"required,min=1"`
	StaffClassIDs  []uuid.UUID `json:"staff_class_ids"`
	StaffIsActive  *bool       `json:"staff_is_active"`
}

func (r *CreateStaffRequest) Normalize() {
	r.StaffFullName = strings.TrimSpace(r.StaffFullName)
	r.StaffEmail = helper.TrimPtr(r.StaffEmail)
	if r.StaffEmail != nil {
		e := strings.ToLower(*r.StaffEmail)
		r.StaffEmail = &e
	}
	r.StaffPhone = helper.TrimPtr(r.StaffPhone)
}

func (r *CreateStaffRequest) ToModel() model.StaffModel {
	active := true
	if r.StaffIsActive != nil {
		active = *r.StaffIsActive
	}
	return model.StaffModel{
		StaffUserID:    r.StaffUserID,
		StaffFullName:  r.StaffFullName,
		StaffEmail:     r.StaffEmail,
		StaffPhone:     r.StaffPhone,
		StaffRoleID:    r.StaffRoleID,
		StaffBranchIDs: pq.StringArray(helper.UUIDStrings(r.StaffBranchIDs)),
		StaffClassIDs:  pq.StringArray(helper.UUIDStrings(r.StaffClassIDs)),
		StaffIsActive:  active,
	}
}

type UpdateStaffRequest struct {
	StaffUserID    *uuid.UUID   `json:"staff_user_id"`
	StaffFullName  *string      `json:"staff_full_name" validate:"omitempty,min=2,max=120"`
	StaffEmail     *string      `json:"staff_email" validate:"omitempty,email,max=160"`
	StaffPhone     *string      `json:"staff_phone" validate:"omitempty,max=32"`
	StaffRoleID    *uuid.UUID   `json:"staff_role_id"`
	StaffBranchIDs *[]uuid.UUID `json:"staff_branch_ids"`
	StaffClassIDs  *[]uuid.UUID `json:"staff_class_ids"`
	StaffIsActive  *bool        `json:"staff_is_active"`
}

func (u *UpdateStaffRequest) Apply(m *model.StaffModel) {
	if u.StaffUserID != nil {
		m.StaffUserID = u.StaffUserID
	}
	if u.StaffFullName != nil {
		m.StaffFullName = strings.TrimSpace(*u.StaffFullName)
	}
	if u.StaffEmail != nil {
		m.StaffEmail = helper.TrimPtr(u.StaffEmail)
		if m.StaffEmail != nil {
			e := strings.ToLower(*m.StaffEmail)
			m.StaffEmail = &e
		}
	}
	if u.StaffPhone != nil {
		m.StaffPhone = helper.TrimPtr(u.StaffPhone)
	}
	if u.StaffRoleID != nil {
		m.StaffRoleID = *u.StaffRoleID
	}
	if u.StaffBranchIDs != nil {
		m.StaffBranchIDs = pq.StringArray(helper.UUIDStrings(*u.StaffBranchIDs))
	}
	if u.StaffClassIDs != nil {
		m.StaffClassIDs = pq.StringArray(helper.UUIDStrings(*u.StaffClassIDs))
	}
	if u.StaffIsActive != nil {
		m.StaffIsActive = *u.StaffIsActive
	}
}

type ListStaffQuery struct {
	RoleID   string `query:"role_id" validate:"omitempty,uuid"`
	BranchID string `query:"branch_id" validate:"omitempty,uuid"`
	ClassID  string `query:"class_id" validate:"omitempty,uuid"`
	Active   *bool  `query:"active"`
	Q        string `query:"q"`
}

type StaffResponse struct {
	StaffID        uuid.UUID  `json:"staff_id"`
	StaffUserID    *uuid.UUID `json:"staff_user_id,omitempty"`
	StaffFullName  string     `json:"staff_full_name"`
	StaffEmail     *string    `json:"staff_email,omitempty"`
	StaffPhone     *string    `json:"staff_phone,omitempty"`
	StaffRoleID    uuid.UUID  `json:"staff_role_id"`
	StaffBranchIDs []string   `json:"staff_branch_ids"`
	StaffClassIDs  []string   `json:"staff_class_ids"`
	StaffIsActive  bool       `json:"staff_is_active"`
	StaffCreatedAt time.Time  `json:"staff_created_at"`
	StaffUpdatedAt time.Time  `json:"staff_updated_at"`
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}

func FromModel(m model.StaffModel) StaffResponse {
	return StaffResponse{
		StaffID:        m.StaffID,
		StaffUserID:    m.StaffUserID,
		StaffFullName:  m.StaffFullName,
		StaffEmail:     m.StaffEmail,
		StaffPhone:     m.StaffPhone,
		StaffRoleID:    m.StaffRoleID,
		StaffBranchIDs: nonNil(m.StaffBranchIDs),
		StaffClassIDs:  nonNil(m.StaffClassIDs),
		StaffIsActive:  m.StaffIsActive,
		StaffCreatedAt: m.StaffCreatedAt,
		StaffUpdatedAt: m.StaffUpdatedAt,
	}
}

func FromModels(list []model.StaffModel) []StaffResponse {
	out := make([]StaffResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
