package dto

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"schoolhub_backend/internals/features/moods/model"
	helper "schoolhub_backend/internals/helpers"
)

func init() {
	helper.RegisterValidation("mood", func(fl validator.FieldLevel) bool {
		return model.IsMood(fl.Field().String())
	}, "{0} must be one of happy excited calm neutral tired sad anxious angry")
}

// Date opsional "YYYY-MM-DD"; default hari ini di zona tenant.
type RecordMoodRequest struct {
	Mood      string  `json:"mood" validate:"required,mood"`
	Intensity *int    `json:"intensity" validate:"omitempty,min=1,max=5"`
	Note      *string `json:"note" validate:"omitempty,max=1000"`
	Date      *string `json:"date"`
}

func (r *RecordMoodRequest) Normalize() {
	r.Mood = strings.ToLower(strings.TrimSpace(r.Mood))
	r.Note = helper.TrimPtr(r.Note)
}

// ToModel: tanggal di masa depan (relatif today) ditolak.
func (r *RecordMoodRequest) ToModel(userID uuid.UUID, userType string, today time.Time) (model.MoodModel, error) {
	day := today
	if r.Date != nil && strings.TrimSpace(*r.Date) != "" {
		t, err := helper.ParseDateField("date", *r.Date)
		if err != nil {
			return model.MoodModel{}, err
		}
		day = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		if day.After(today) {
			return model.MoodModel{}, helper.NewValidationError("date", "date must not be in the future")
		}
	}
	intensity := 3
	if r.Intensity != nil {
		intensity = *r.Intensity
	}
	return model.MoodModel{
		MoodUserID:     userID,
		MoodUserType:   userType,
		MoodValue:      r.Mood,
		MoodIntensity:  intensity,
		MoodNote:       r.Note,
		MoodRecordedOn: day,
	}, nil
}

// GET /moods?from=&to=&user_type=&mood=&user_id=
type ListMoodQuery struct {
	UserType string `query:"user_type" validate:"omitempty,oneof=staff student"`
	Mood     string `query:"mood" validate:"omitempty,mood"`
	UserID   string `query:"user_id" validate:"omitempty,uuid"`
}

type MoodResponse struct {
	MoodID         uuid.UUID `json:"mood_id"`
	MoodUserID     uuid.UUID `json:"mood_user_id"`
	MoodUserType   string    `json:"mood_user_type"`
	Mood           string    `json:"mood"`
	MoodIntensity  int       `json:"mood_intensity"`
	MoodNote       *string   `json:"mood_note,omitempty"`
	MoodRecordedOn string    `json:"mood_recorded_on"`
	MoodCreatedAt  time.Time `json:"mood_created_at"`
	MoodUpdatedAt  time.Time `json:"mood_updated_at"`
}

func FromModel(m model.MoodModel) MoodResponse {
	return MoodResponse{
		MoodID:         m.MoodID,
		MoodUserID:     m.MoodUserID,
		MoodUserType:   m.MoodUserType,
		Mood:           m.MoodValue,
		MoodIntensity:  m.MoodIntensity,
		MoodNote:       m.MoodNote,
		MoodRecordedOn: m.MoodRecordedOn.Format(helper.DateLayout),
		MoodCreatedAt:  m.MoodCreatedAt,
		MoodUpdatedAt:  m.MoodUpdatedAt,
	}
}

func FromModels(rows []model.MoodModel) []MoodResponse {
	out := make([]MoodResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
