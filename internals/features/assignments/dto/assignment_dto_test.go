package dto

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internals/features/assignments/model"
	helper "schoolhub_backend/internals/helpers"
)

func TestCreateStaffAssignmentDefaults(t *testing.T) {
	branch := uuid.New()
	req := CreateStaffAssignmentRequest{
		StaffAssignmentTitle:       "  Rapat guru  ",
		StaffAssignmentBranchIDs:   []uuid.UUID{branch, branch},
		StaffAssignmentAssigneeIDs: []uuid.UUID{uuid.New()},
		StaffAssignmentStartDate:   "2026-01-10",
		StaffAssignmentEndDate:     "2026-01-12",
	}
	by := uuid.New()
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	m, err := req.ToModel(by, now)
	require.NoError(t, err)
	assert.Equal(t, "Rapat guru", m.StaffAssignmentTitle)
	assert.Equal(t, model.PriorityNormal, m.StaffAssignmentPriority)
	assert.Len(t, m.StaffAssignmentBranchIDs, 1)
	assert.Equal(t, model.StatusDraft, m.Status)
	assert.True(t, m.IsDraft)
	assert.Equal(t, by, m.CreatedBy)
	assert.Nil(t, m.PublishedAt)
}

func TestCreateStaffAssignmentPublishNow(t *testing.T) {
	req := CreateStaffAssignmentRequest{
		StaffAssignmentTitle:     "Piket",
		StaffAssignmentBranchIDs: []uuid.UUID{uuid.New()},
		StaffAssignmentStartDate: "2026-01-10",
		StaffAssignmentEndDate:   "2026-01-11",
		Publish:                  true,
	}
	m, err := req.ToModel(uuid.New(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.StatusPublished, m.Status)
	assert.False(t, m.IsDraft)
	assert.NotNil(t, m.PublishedAt)
}

func TestCreateStaffAssignmentRejectsBadWindow(t *testing.T) {
	req := CreateStaffAssignmentRequest{
		StaffAssignmentTitle:     "Piket",
		StaffAssignmentBranchIDs: []uuid.UUID{uuid.New()},
		StaffAssignmentStartDate: "2026-01-10",
		StaffAssignmentEndDate:   "2026-01-10",
	}
	_, err := req.ToModel(uuid.New(), time.Now())
	var ve *helper.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "staff_assignment_end_date")

	req.StaffAssignmentEndDate = "besok"
	_, err = req.ToModel(uuid.New(), time.Now())
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "staff_assignment_end_date")
}

func TestUpdateStaffAssignmentPartial(t *testing.T) {
	m := model.StaffAssignmentModel{
		StaffAssignmentTitle:     "Lama",
		StaffAssignmentBranchIDs: []string{uuid.NewString()},
		StaffAssignmentStartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		StaffAssignmentEndDate:   time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	}
	title := "Baru"
	cols, err := (&UpdateStaffAssignmentRequest{StaffAssignmentTitle: &title}).Apply(&m)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"staff_assignment_title": "Baru"}, cols)

	empty := []uuid.UUID{}
	_, err = (&UpdateStaffAssignmentRequest{StaffAssignmentBranchIDs: &empty}).Apply(&m)
	var ve *helper.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "staff_assignment_branch_ids")
}

func TestUpdateStudentAssignmentWindow(t *testing.T) {
	m := model.StudentAssignmentModel{
		StudentAssignmentTitle:     "PR",
		StudentAssignmentStartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		StudentAssignmentEndDate:   time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC),
	}
	end := "2026-01-31"
	_, err := (&UpdateStudentAssignmentRequest{StudentAssignmentEndDate: &end}).Apply(&m)
	require.Error(t, err)

	end = "2026-02-10"
	cols, err := (&UpdateStudentAssignmentRequest{StudentAssignmentEndDate: &end}).Apply(&m)
	require.NoError(t, err)
	assert.Contains(t, cols, "student_assignment_end_date")
}
