package dto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internals/features/academics/model"
	helper "schoolhub_backend/internals/helpers"
)

func TestCreateAcademicPeriodRequest(t *testing.T) {
	r := CreateAcademicPeriodRequest{
		AcademicPeriodName:      " Semester Ganjil 2025/2026 ",
		AcademicPeriodStartDate: "2025-07-14",
		AcademicPeriodEndDate:   "2025-12-20",
	}
	m, err := r.ToModel()
	require.NoError(t, err)
	assert.Equal(t, "Semester Ganjil 2025/2026", m.AcademicPeriodName)
	assert.Equal(t, "2025-12-20", m.AcademicPeriodEndDate.Format(helper.DateLayout))

	r.AcademicPeriodEndDate = "2025-07-01"
	_, err = r.ToModel()
	var ve *helper.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "academic_period_end_date")

	r.AcademicPeriodEndDate = "20/12/2025"
	_, err = r.ToModel()
	require.True(t, errors.As(err, &ve))
}

func TestUpdateAcademicPeriodRequestKeepsOrder(t *testing.T) {
	m, err := (&CreateAcademicPeriodRequest{
		AcademicPeriodName:      "Genap",
		AcademicPeriodStartDate: "2026-01-05",
		AcademicPeriodEndDate:   "2026-06-20",
	}).ToModel()
	require.NoError(t, err)

	early := "2025-12-31"
	assert.Error(t, (&UpdateAcademicPeriodRequest{AcademicPeriodEndDate: &early}).Apply(&m))

	later := "2026-06-27"
	assert.NoError(t, (&UpdateAcademicPeriodRequest{AcademicPeriodEndDate: &later}).Apply(&m))
}

func TestUpdateBranchRequestApply(t *testing.T) {
	m := model.BranchModel{BranchName: "Pusat", BranchCode: "PST", BranchIsActive: true}

	code := " pst-2 "
	assert.False(t, (&UpdateBranchRequest{BranchCode: &code}).Apply(&m))
	assert.Equal(t, "PST-2", m.BranchCode)

	name := "Cabang Pusat"
	assert.True(t, (&UpdateBranchRequest{BranchName: &name}).Apply(&m))

	off := false
	assert.True(t, (&UpdateBranchRequest{BranchIsActive: &off}).Apply(&m))
}

func TestUpdateClassRequestApply(t *testing.T) {
	m := model.ClassModel{ClassName: "7A", ClassIsActive: true}
	grade := 7
	assert.False(t, (&UpdateClassRequest{ClassGradeLevel: &grade}).Apply(&m))
	name := "7B"
	assert.True(t, (&UpdateClassRequest{ClassName: &name}).Apply(&m))
}
