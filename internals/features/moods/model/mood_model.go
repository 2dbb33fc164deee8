package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MoodHappy   = "happy"
	MoodExcited = "excited"
	MoodCalm    = "calm"
	MoodNeutral = "neutral"
	MoodTired   = "tired"
	MoodSad     = "sad"
	MoodAnxious = "anxious"
	MoodAngry   = "angry"

	MinIntensity = 1
	MaxIntensity = 5
)

// Moods: urutan tampilan di summary.
var Moods = []string{MoodHappy, MoodExcited, MoodCalm, MoodNeutral, MoodTired, MoodSad, MoodAnxious, MoodAngry}

func IsMood(s string) bool {
	for _, m := range Moods {
		if m == s {
			return true
		}
	}
	return false
}

// MoodModel: satu entri per user per hari (unik selama belum dihapus).
type MoodModel struct {
	MoodID         uuid.UUID `gorm:"column:mood_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"mood_id"`
	MoodUserID     uuid.UUID `gorm:"column:mood_user_id;type:uuid;not null;uniqueIndex:uq_moods_user_day,priority:1,where:mood_deleted_at IS NULL" json:"mood_user_id"`
	MoodUserType   string    `gorm:"column:mood_user_type;type:varchar(16);not null;index" json:"mood_user_type"`
	MoodValue      string    `gorm:"column:mood_value;type:varchar(16);not null;index" json:"mood_value"`
	MoodIntensity  int       `gorm:"column:mood_intensity;not null;default:3" json:"mood_intensity"`
	MoodNote       *string   `gorm:"column:mood_note;type:text" json:"mood_note,omitempty"`
	MoodRecordedOn time.Time `gorm:"column:mood_recorded_on;type:date;not null;uniqueIndex:uq_moods_user_day,priority:2,where:mood_deleted_at IS NULL;index" json:"mood_recorded_on"`

	MoodCreatedAt time.Time      `gorm:"column:mood_created_at;type:timestamptz;not null;autoCreateTime" json:"mood_created_at"`
	MoodUpdatedAt time.Time      `gorm:"column:mood_updated_at;type:timestamptz;not null;autoUpdateTime" json:"mood_updated_at"`
	MoodDeletedAt gorm.DeletedAt `gorm:"column:mood_deleted_at;index" json:"mood_deleted_at,omitempty"`
}

func (MoodModel) TableName() string { return "moods" }
