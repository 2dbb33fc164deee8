package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/academics/model"
	helper "schoolhub_backend/internals/helpers"
)

// Tanggal dikirim sebagai "YYYY-MM-DD".
type CreateAcademicPeriodRequest struct {
	AcademicPeriodName      string `json:"academic_period_name" validate:"required,min=2,max=120"`
	AcademicPeriodStartDate string `json:"academic_period_start_date" validate:"required"`
	AcademicPeriodEndDate   string `json:"academic_period_end_date" validate:"required"`
}

func (r *CreateAcademicPeriodRequest) ToModel() (model.AcademicPeriodModel, error) {
	start, err := helper.ParseDateField("academic_period_start_date", r.AcademicPeriodStartDate)
	if err != nil {
		return model.AcademicPeriodModel{}, err
	}
	end, err := helper.ParseDateField("academic_period_end_date", r.AcademicPeriodEndDate)
	if err != nil {
		return model.AcademicPeriodModel{}, err
	}
	m := model.AcademicPeriodModel{
		AcademicPeriodName:      strings.TrimSpace(r.AcademicPeriodName),
		AcademicPeriodStartDate: start,
		AcademicPeriodEndDate:   end,
	}
	if err := m.Validate(); err != nil {
		return m, helper.NewValidationError("academic_period_end_date", err.Error())
	}
	return m, nil
}

type UpdateAcademicPeriodRequest struct {
	AcademicPeriodName      *string `json:"academic_period_name" validate:"omitempty,min=2,max=120"`
	AcademicPeriodStartDate *string `json:"academic_period_start_date"`
	AcademicPeriodEndDate   *string `json:"academic_period_end_date"`
}

func (u *UpdateAcademicPeriodRequest) Apply(m *model.AcademicPeriodModel) error {
	if u.AcademicPeriodName != nil {
		m.AcademicPeriodName = strings.TrimSpace(*u.AcademicPeriodName)
	}
	if u.AcademicPeriodStartDate != nil {
		t, err := helper.ParseDateField("academic_period_start_date", *u.AcademicPeriodStartDate)
		if err != nil {
			return err
		}
		m.AcademicPeriodStartDate = t
	}
	if u.AcademicPeriodEndDate != nil {
		t, err := helper.ParseDateField("academic_period_end_date", *u.AcademicPeriodEndDate)
		if err != nil {
			return err
		}
		m.AcademicPeriodEndDate = t
	}
	if err := m.Validate(); err != nil {
		return helper.NewValidationError("academic_period_end_date", err.Error())
	}
	return nil
}

type AcademicPeriodResponse struct {
	AcademicPeriodID        uuid.UUID `json:"academic_period_id"`
	AcademicPeriodName      string    `json:"academic_period_name"`
	AcademicPeriodStartDate string    `json:"academic_period_start_date"`
	AcademicPeriodEndDate   string    `json:"academic_period_end_date"`
	AcademicPeriodIsActive  bool      `json:"academic_period_is_active"`
	AcademicPeriodCreatedAt time.Time `json:"academic_period_created_at"`
	AcademicPeriodUpdatedAt time.Time `json:"academic_period_updated_at"`
}

func FromAcademicPeriod(m model.AcademicPeriodModel) AcademicPeriodResponse {
	return AcademicPeriodResponse{
		AcademicPeriodID:        m.AcademicPeriodID,
		AcademicPeriodName:      m.AcademicPeriodName,
		AcademicPeriodStartDate: m.AcademicPeriodStartDate.Format(helper.DateLayout),
		AcademicPeriodEndDate:   m.AcademicPeriodEndDate.Format(helper.DateLayout),
		AcademicPeriodIsActive:  m.AcademicPeriodIsActive,
		AcademicPeriodCreatedAt: m.AcademicPeriodCreatedAt,
		AcademicPeriodUpdatedAt: m.AcademicPeriodUpdatedAt,
	}
}

func FromAcademicPeriods(list []model.AcademicPeriodModel) []AcademicPeriodResponse {
	out := make([]AcademicPeriodResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromAcademicPeriod(m))
	}
	return out
}
