package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AcademicPeriodModel struct {
	AcademicPeriodID        uuid.UUID `gorm:"column:academic_period_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"academic_period_id"`
	AcademicPeriodName      string    `gorm:"column:academic_period_name;type:varchar(120);not null" json:"academic_period_name"`
	AcademicPeriodStartDate time.Time `gorm:"column:academic_period_start_date;type:date;not null" json:"academic_period_start_date"`
	AcademicPeriodEndDate   time.Time `gorm:"column:academic_period_end_date;type:date;not null" json:"academic_period_end_date"`
	AcademicPeriodIsActive  bool      `gorm:"column:academic_period_is_active;not null;default:false;index" json:"academic_period_is_active"`

	AcademicPeriodCreatedAt time.Time      `gorm:"column:academic_period_created_at;type:timestamptz;not null;autoCreateTime" json:"academic_period_created_at"`
	AcademicPeriodUpdatedAt time.Time      `gorm:"column:academic_period_updated_at;type:timestamptz;not null;autoUpdateTime" json:"academic_period_updated_at"`
	AcademicPeriodDeletedAt gorm.DeletedAt `gorm:"column:academic_period_deleted_at;index" json:"-"`
}

func (AcademicPeriodModel) TableName() string { return "academic_periods" }

var ErrPeriodDateOrder = errors.New("end date must be after start date")

func (m *AcademicPeriodModel) Validate() error {
	if !m.AcademicPeriodEndDate.After(m.AcademicPeriodStartDate) {
		return ErrPeriodDateOrder
	}
	return nil
}

func (m *AcademicPeriodModel) BeforeSave(*gorm.DB) error { return m.Validate() }

// Contains: day (tanggal lokal tenant) ada di [start, end].
func (m *AcademicPeriodModel) Contains(day time.Time) bool {
	d := day.Format("2006-01-02")
	return d >= m.AcademicPeriodStartDate.Format("2006-01-02") &&
		d <= m.AcademicPeriodEndDate.Format("2006-01-02")
}
