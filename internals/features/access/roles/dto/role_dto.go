package dto

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/access/roles/model"
	helper "schoolhub_backend/internals/helpers"
)

type CreateRoleRequest struct {
	RoleName        string   `json:"role_name" validate:"required,min=2,max=80"`
	RoleSlug        string   `json:"role_slug" validate:"omitempty,max=80,slug"`
	RoleDescription *string  `json:"role_description" validate:"omitempty,max=500"`
	RolePermissions []string `json:"role_permissions" validate:"omitempty,dive,required"`
}

func (r *CreateRoleRequest) Normalize() {
	r.RoleName = strings.TrimSpace(r.RoleName)
	r.RoleSlug = strings.ToLower(strings.TrimSpace(r.RoleSlug))
	if r.RoleSlug == "" {
		r.RoleSlug = helper.GenerateSlug(r.RoleName)
	}
	r.RoleDescription = helper.TrimPtr(r.RoleDescription)
	r.RolePermissions = NormalizeKeys(r.RolePermissions)
}

func (r *CreateRoleRequest) ToModel() model.RoleModel {
	return model.RoleModel{
		RoleName:        r.RoleName,
		RoleSlug:        r.RoleSlug,
		RoleDescription: r.RoleDescription,
		RolePermissions: r.RolePermissions,
	}
}

type UpdateRoleRequest struct {
	RoleName        *string `json:"role_name" validate:"omitempty,min=2,max=80"`
	RoleSlug        *string `json:"role_slug" validate:"omitempty,max=80,slug"`
	RoleDescription *string `json:"role_description" validate:"omitempty,max=500"`
}

// Apply mengembalikan true bila nama berubah.
func (u *UpdateRoleRequest) Apply(m *model.RoleModel) bool {
	renamed := false
	if u.RoleName != nil {
		name := strings.TrimSpace(*u.RoleName)
		renamed = name != m.RoleName
		m.RoleName = name
	}
	if u.RoleSlug != nil {
		m.RoleSlug = strings.ToLower(strings.TrimSpace(*u.RoleSlug))
	}
	if u.RoleDescription != nil {
		m.RoleDescription = helper.TrimPtr(u.RoleDescription)
	}
	return renamed
}

// PATCH /:id/permissions (ganti set) & POST /:id/permissions (grant)
type RolePermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required,min=1,dive,required"`
}

type ListRoleQuery struct {
	Q          string `query:"q"`
	Permission string `query:"permission"`
}

type RoleResponse struct {
	RoleID          uuid.UUID `json:"role_id"`
	RoleName        string    `json:"role_name"`
	RoleSlug        string    `json:"role_slug"`
	RoleDescription *string   `json:"role_description,omitempty"`
	RolePermissions []string  `json:"role_permissions"`
	RoleIsSystem    bool      `json:"role_is_system"`
	RoleCreatedAt   time.Time `json:"role_created_at"`
	RoleUpdatedAt   time.Time `json:"role_updated_at"`
}

func FromModel(m model.RoleModel) RoleResponse {
	perms := []string(m.RolePermissions)
	if perms == nil {
		perms = []string{}
	}
	return RoleResponse{
		RoleID:          m.RoleID,
		RoleName:        m.RoleName,
		RoleSlug:        m.RoleSlug,
		RoleDescription: m.RoleDescription,
		RolePermissions: perms,
		RoleIsSystem:    m.RoleIsSystem,
		RoleCreatedAt:   m.RoleCreatedAt,
		RoleUpdatedAt:   m.RoleUpdatedAt,
	}
}

func FromModels(list []model.RoleModel) []RoleResponse {
	out := make([]RoleResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}

// NormalizeKeys: lowercase, trim, unik, urut.
func NormalizeKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MergeKeys: grant.
func MergeKeys(current, add []string) []string {
	return NormalizeKeys(append(append([]string{}, current...), add...))
}

// RemoveKey: revoke.
func RemoveKey(current []string, key string) ([]string, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	out := make([]string, 0, len(current))
	found := false
	for _, k := range current {
		if k == key {
			found = true
			continue
		}
		out = append(out, k)
	}
	return out, found
}

// UnknownKeys: key yang tidak ada di katalog, terurut. "*" dan "resource:*" valid
// bila resource tersebut ada di katalog.
func UnknownKeys(requested, catalogue []string) []string {
	known := make(map[string]struct{}, len(catalogue))
	resources := make(map[string]struct{})
	for _, k := range catalogue {
		known[k] = struct{}{}
		if i := strings.Index(k, ":"); i > 0 {
			resources[k[:i]] = struct{}{}
		}
	}
	var missing []string
	for _, k := range requested {
		if k == "*" {
			continue
		}
		if _, ok := known[k]; ok {
			continue
		}
		if strings.HasSuffix(k, ":*") {
			if _, ok := resources[strings.TrimSuffix(k, ":*")]; ok {
				continue
			}
		}
		missing = append(missing, k)
	}
	sort.Strings(missing)
	return missing
}
