package dto

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"schoolhub_backend/internals/features/access/permissions/model"
	helper "schoolhub_backend/internals/helpers"
)

var rePermissionKey = regexp.MustCompile(`^[a-z][a-z0-9_]*:(\*|[a-z][a-z0-9_]*)$`)

func IsPermissionKey(s string) bool { return rePermissionKey.MatchString(s) }

func init() {
	helper.RegisterValidation("permission_key", func(fl validator.FieldLevel) bool {
		return IsPermissionKey(fl.Field().String())
	}, "{0} must look like resource:action")
}

type CreatePermissionRequest struct {
	PermissionKey         string  `json:"permission_key" validate:"required,max=80,permission_key"`
	PermissionDescription *string `json:"permission_description" validate:"omitempty,max=500"`
}

func (r *CreatePermissionRequest) Normalize() {
	r.PermissionKey = strings.ToLower(strings.TrimSpace(r.PermissionKey))
	r.PermissionDescription = helper.TrimPtr(r.PermissionDescription)
}

func (r *CreatePermissionRequest) ToModel() model.PermissionModel {
	res, act, _ := model.SplitKey(r.PermissionKey)
	return model.PermissionModel{
		PermissionKey:         r.PermissionKey,
		PermissionResource:    res,
		PermissionAction:      act,
		PermissionDescription: r.PermissionDescription,
	}
}

type UpdatePermissionRequest struct {
	PermissionDescription *string `json:"permission_description" validate:"omitempty,max=500"`
}

type ListPermissionQuery struct {
	Resource string `query:"resource"`
	Q        string `query:"q"`
}

type PermissionResponse struct {
	PermissionID          uuid.UUID `json:"permission_id"`
	PermissionKey         string    `json:"permission_key"`
	PermissionResource    string    `json:"permission_resource"`
	PermissionAction      string    `json:"permission_action"`
	PermissionDescription *string   `json:"permission_description,omitempty"`
	PermissionIsSystem    bool      `json:"permission_is_system"`
	PermissionCreatedAt   time.Time `json:"permission_created_at"`
	PermissionUpdatedAt   time.Time `json:"permission_updated_at"`
}

func FromModel(m model.PermissionModel) PermissionResponse {
	return PermissionResponse{
		PermissionID:          m.PermissionID,
		PermissionKey:         m.PermissionKey,
		PermissionResource:    m.PermissionResource,
		PermissionAction:      m.PermissionAction,
		PermissionDescription: m.PermissionDescription,
		PermissionIsSystem:    m.PermissionIsSystem,
		PermissionCreatedAt:   m.PermissionCreatedAt,
		PermissionUpdatedAt:   m.PermissionUpdatedAt,
	}
}

func FromModels(list []model.PermissionModel) []PermissionResponse {
	out := make([]PermissionResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
