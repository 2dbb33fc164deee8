package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/academics/model"
	helper "schoolhub_backend/internals/helpers"
)

type CreateBranchRequest struct {
	BranchName     string  `json:"branch_name" validate:"required,min=2,max=120"`
	BranchCode     string  `json:"branch_code" validate:"required,max=40"`
	BranchAddress  *string `json:"branch_address" validate:"omitempty,max=500"`
	BranchIsActive *bool   `json:"branch_is_active"`
}

func (r *CreateBranchRequest) Normalize() {
	r.BranchName = strings.TrimSpace(r.BranchName)
	r.BranchCode = strings.ToUpper(strings.TrimSpace(r.BranchCode))
	r.BranchAddress = helper.TrimPtr(r.BranchAddress)
}

func (r *CreateBranchRequest) ToModel() model.BranchModel {
	active := true
	if r.BranchIsActive != nil {
		active = *r.BranchIsActive
	}
	return model.BranchModel{
		BranchName:     r.BranchName,
		BranchCode:     r.BranchCode,
		BranchAddress:  r.BranchAddress,
		BranchIsActive: active,
	}
}

type UpdateBranchRequest struct {
	BranchName     *string `json:"branch_name" validate:"omitempty,min=2,max=120"`
	BranchCode     *string `json:"branch_code" validate:"omitempty,max=40"`
	BranchAddress  *string `json:"branch_address" validate:"omitempty,max=500"`
	BranchIsActive *bool   `json:"branch_is_active"`
}

// Apply: true bila ada perubahan yang mempengaruhi data turunan (nama/aktif).
func (u *UpdateBranchRequest) Apply(m *model.BranchModel) bool {
	changed := false
	if u.BranchName != nil {
		name := strings.TrimSpace(*u.BranchName)
		changed = changed || name != m.BranchName
		m.BranchName = name
	}
	if u.BranchCode != nil {
		m.BranchCode = strings.ToUpper(strings.TrimSpace(*u.BranchCode))
	}
	if u.BranchAddress != nil {
		m.BranchAddress = helper.TrimPtr(u.BranchAddress)
	}
	if u.BranchIsActive != nil {
		changed = changed || *u.BranchIsActive != m.BranchIsActive
		m.BranchIsActive = *u.BranchIsActive
	}
	return changed
}

type BranchResponse struct {
	BranchID        uuid.UUID `json:"branch_id"`
	BranchName      string    `json:"branch_name"`
	BranchCode      string    `json:"branch_code"`
	BranchAddress   *string   `json:"branch_address,omitempty"`
	BranchIsActive  bool      `json:"branch_is_active"`
	BranchCreatedAt time.Time `json:"branch_created_at"`
	BranchUpdatedAt time.Time `json:"branch_updated_at"`
}

func FromBranch(m model.BranchModel) BranchResponse {
	return BranchResponse{
		BranchID:        m.BranchID,
		BranchName:      m.BranchName,
		BranchCode:      m.BranchCode,
		BranchAddress:   m.BranchAddress,
		BranchIsActive:  m.BranchIsActive,
		BranchCreatedAt: m.BranchCreatedAt,
		BranchUpdatedAt: m.BranchUpdatedAt,
	}
}

func FromBranches(list []model.BranchModel) []BranchResponse {
	out := make([]BranchResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromBranch(m))
	}
	return out
}
