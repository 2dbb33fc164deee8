package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/academics/model"
)

type CreateClassRequest struct {
	ClassBranchID   uuid.UUID `json:"class_branch_id" validate:"required"`
	ClassName       string    `json:"class_name" validate:"required,min=1,max=120"`
	ClassGradeLevel *int      `json:"class_grade_level" validate:"omitempty,min=0,max=15"`
	ClassIsActive   *bool     `json:"class_is_active"`
}

func (r *CreateClassRequest) ToModel() model.ClassModel {
	active := true
	if r.ClassIsActive != nil {
		active = *r.ClassIsActive
	}
	return model.ClassModel{
		ClassBranchID:   r.ClassBranchID,
		ClassName:       strings.TrimSpace(r.ClassName),
		ClassGradeLevel: r.ClassGradeLevel,
		ClassIsActive:   active,
	}
}

type UpdateClassRequest struct {
	ClassBranchID   *uuid.UUID `json:"class_branch_id"`
	ClassName       *string    `json:"class_name" validate:"omitempty,min=1,max=120"`
	ClassGradeLevel *int       `json:"class_grade_level" validate:"omitempty,min=0,max=15"`
	ClassIsActive   *bool      `json:"class_is_active"`
}

// Apply: true bila nama/aktif berubah.
func (u *UpdateClassRequest) Apply(m *model.ClassModel) bool {
	changed := false
	if u.ClassBranchID != nil {
		m.ClassBranchID = *u.ClassBranchID
	}
	if u.ClassName != nil {
		name := strings.TrimSpace(*u.ClassName)
		changed = changed || name != m.ClassName
		m.ClassName = name
	}
	if u.ClassGradeLevel != nil {
		m.ClassGradeLevel = u.ClassGradeLevel
	}
	if u.ClassIsActive != nil {
		changed = changed || *u.ClassIsActive != m.ClassIsActive
		m.ClassIsActive = *u.ClassIsActive
	}
	return changed
}

type ClassResponse struct {
	ClassID         uuid.UUID `json:"class_id"`
	ClassBranchID   uuid.UUID `json:"class_branch_id"`
	ClassName       string    `json:"class_name"`
	ClassGradeLevel *int      `json:"class_grade_level,omitempty"`
	ClassIsActive   bool      `json:"class_is_active"`
	ClassCreatedAt  time.Time `json:"class_created_at"`
	ClassUpdatedAt  time.Time `json:"class_updated_at"`
}

func FromClass(m model.ClassModel) ClassResponse {
	return ClassResponse{
		ClassID:         m.ClassID,
		ClassBranchID:   m.ClassBranchID,
		ClassName:       m.ClassName,
		ClassGradeLevel: m.ClassGradeLevel,
		ClassIsActive:   m.ClassIsActive,
		ClassCreatedAt:  m.ClassCreatedAt,
		ClassUpdatedAt:  m.ClassUpdatedAt,
	}
}

func FromClasses(list []model.ClassModel) []ClassResponse {
	out := make([]ClassResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromClass(m))
	}
	return out
}
