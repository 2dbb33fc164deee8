package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/customers/model"
	helper "schoolhub_backend/internals/helpers"
	"schoolhub_backend/internals/helpers/tenant"
)

const MaxSlugLen = 50

type CreateCustomerRequest struct {
	CustomerName     string `json:"customer_name" validate:"required,min=2,max=160"`
	CustomerSlug     string `json:"customer_slug" validate:"omitempty,max=50,slug"`
	CustomerTimezone string `json:"customer_timezone" validate:"omitempty,max=64"`
}

func (r *CreateCustomerRequest) Normalize() {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CustomerSlug = strings.ToLower(strings.TrimSpace(r.CustomerSlug))
	if r.CustomerSlug == "" {
		r.CustomerSlug = helper.GenerateSlug(r.CustomerName)
		if len(r.CustomerSlug) > MaxSlugLen {
			r.CustomerSlug = strings.Trim(r.CustomerSlug[:MaxSlugLen], "-")
		}
	}
	r.CustomerTimezone = strings.TrimSpace(r.CustomerTimezone)
}

func checkTimezone(tz string) error {
	if _, err := time.LoadLocation(tz); err != nil {
		return helper.NewValidationError("customer_timezone", "customer_timezone must be an IANA time zone")
	}
	return nil
}

func (r *CreateCustomerRequest) ToModel() (model.CustomerModel, error) {
	if r.CustomerSlug == "" {
		return model.CustomerModel{}, helper.NewValidationError("customer_slug", "customer_slug is required")
	}
	tz := r.CustomerTimezone
	if tz == "" {
		tz = "Asia/Jakarta"
	}
	if err := checkTimezone(tz); err != nil {
		return model.CustomerModel{}, err
	}
	return model.CustomerModel{
		CustomerSlug:     r.CustomerSlug,
		CustomerName:     r.CustomerName,
		CustomerSchema:   tenant.SchemaFor(r.CustomerSlug),
		CustomerTimezone: tz,
		CustomerIsActive: true,
	}, nil
}

// Slug & schema tidak bisa diubah setelah dibuat.
type UpdateCustomerRequest struct {
	CustomerName     *string `json:"customer_name" validate:"omitempty,min=2,max=160"`
	CustomerTimezone *string `json:"customer_timezone" validate:"omitempty,max=64"`
	CustomerIsActive *bool   `json:"customer_is_active"`
}

func (u *UpdateCustomerRequest) Apply(m *model.CustomerModel) (map[string]any, error) {
	cols := map[string]any{}
	if u.CustomerName != nil {
		m.CustomerName = strings.TrimSpace(*u.CustomerName)
		cols["customer_name"] = m.CustomerName
	}
	if u.CustomerTimezone != nil {
		tz := strings.TrimSpace(*u.CustomerTimezone)
		if err := checkTimezone(tz); err != nil {
			return nil, err
		}
		m.CustomerTimezone = tz
		cols["customer_timezone"] = tz
	}
	if u.CustomerIsActive != nil {
		m.CustomerIsActive = *u.CustomerIsActive
		cols["customer_is_active"] = m.CustomerIsActive
	}
	return cols, nil
}

type ListCustomerQuery struct {
	Q      string `query:"q"`
	Active *bool  `query:"active"`
}

type CustomerResponse struct {
	CustomerID       uuid.UUID `json:"customer_id"`
	CustomerSlug     string    `json:"customer_slug"`
	CustomerName     string    `json:"customer_name"`
	CustomerSchema   string    `json:"customer_schema"`
	CustomerTimezone string    `json:"customer_timezone"`
	CustomerIsActive bool      `json:"customer_is_active"`
	CustomerCreated  time.Time `json:"customer_created_at"`
	CustomerUpdated  time.Time `json:"customer_updated_at"`
}

func FromModel(m model.CustomerModel) CustomerResponse {
	return CustomerResponse{
		CustomerID:       m.CustomerID,
		CustomerSlug:     m.CustomerSlug,
		CustomerName:     m.CustomerName,
		CustomerSchema:   m.CustomerSchema,
		CustomerTimezone: m.CustomerTimezone,
		CustomerIsActive: m.CustomerIsActive,
		CustomerCreated:  m.CustomerCreated,
		CustomerUpdated:  m.CustomerUpdated,
	}
}

func FromModels(rows []model.CustomerModel) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
