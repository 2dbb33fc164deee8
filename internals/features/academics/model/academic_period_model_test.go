package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestAcademicPeriodValidate(t *testing.T) {
	ok := AcademicPeriodModel{AcademicPeriodStartDate: date("2025-07-14"), AcademicPeriodEndDate: date("2025-12-20")}
	assert.NoError(t, ok.BeforeSave(nil))

	same := AcademicPeriodModel{AcademicPeriodStartDate: date("2025-07-14"), AcademicPeriodEndDate: date("2025-07-14")}
	assert.ErrorIs(t, same.BeforeSave(nil), ErrPeriodDateOrder)

	reversed := AcademicPeriodModel{AcademicPeriodStartDate: date("2025-12-20"), AcademicPeriodEndDate: date("2025-07-14")}
	assert.ErrorIs(t, reversed.Validate(), ErrPeriodDateOrder)
}

func TestAcademicPeriodContains(t *testing.T) {
	p := AcademicPeriodModel{AcademicPeriodStartDate: date("2025-07-14"), AcademicPeriodEndDate: date("2025-12-20")}
	assert.True(t, p.Contains(date("2025-07-14")))
	assert.True(t, p.Contains(date("2025-12-20")))
	assert.False(t, p.Contains(date("2025-12-21")))

	jkt := time.FixedZone("WIB", 7*3600)
	assert.True(t, p.Contains(time.Date(2025, 7, 14, 0, 30, 0, 0, jkt)))
}
