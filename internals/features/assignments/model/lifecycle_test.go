package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecyclePublishDraft(t *testing.T) {
	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	l := NewDraft(uuid.New(), now)
	assert.True(t, l.IsDraft)
	assert.Equal(t, StatusDraft, l.Status)

	require.NoError(t, l.Publish(now.Add(time.Hour)))
	assert.True(t, l.IsPublished())
	assert.False(t, l.IsDraft)
	assert.Equal(t, now.Add(time.Hour), *l.PublishedAt)
	assert.ErrorIs(t, l.Publish(now), ErrAlreadyPublished)

	require.NoError(t, l.MoveToDraft(now.Add(2*time.Hour)))
	assert.True(t, l.IsDraft)
	assert.Equal(t, now.Add(2*time.Hour), *l.DraftAt)
	assert.ErrorIs(t, l.MoveToDraft(now), ErrAlreadyDraft)
}

func TestLifecycleSoftDelete(t *testing.T) {
	creator := uuid.New()
	now := time.Now()
	l := NewDraft(creator, now)

	require.NoError(t, l.DeleteForMe(now))
	assert.True(t, l.IsDeletedForMe)
	assert.Equal(t, &now, l.DeletedForMeAt)
	assert.ErrorIs(t, l.DeleteForMe(now), ErrAlreadyDeleted)

	require.NoError(t, l.RestoreForMe())
	assert.False(t, l.IsDeletedForMe)
	assert.Nil(t, l.DeletedForMeAt)
	assert.ErrorIs(t, l.RestoreForMe(), ErrNotDeleted)

	require.NoError(t, l.DeleteForEveryone(now))
	assert.True(t, l.IsDeletedForEveryone)
	assert.ErrorIs(t, l.Publish(now), ErrDeletedForEveryone)

	require.NoError(t, l.Restore())
	assert.False(t, l.IsDeletedForEveryone)
	assert.Nil(t, l.DeletedForEveryoneAt)
	assert.ErrorIs(t, l.Restore(), ErrNotDeleted)
}

func TestLifecycleColumnsArePrefixed(t *testing.T) {
	l := NewDraft(uuid.New(), time.Now())
	cols := l.Columns("staff_assignment_")
	assert.Contains(t, cols, "staff_assignment_status")
	assert.Contains(t, cols, "staff_assignment_deleted_for_everyone_at")
	assert.NotContains(t, cols, "staff_assignment_created_by")
}

func TestStaffAssignmentValidate(t *testing.T) {
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	m := StaffAssignmentModel{
		StaffAssignmentStartDate: start,
		StaffAssignmentEndDate:   start.Add(48 * time.Hour),
	}
	assert.ErrorIs(t, m.BeforeSave(nil), ErrNoBranch)

	m.StaffAssignmentBranchIDs = pq.StringArray{uuid.NewString()}
	assert.NoError(t, m.BeforeSave(nil))

	m.StaffAssignmentEndDate = start
	assert.ErrorIs(t, m.BeforeSave(nil), ErrDateOrder)
}

func TestStudentAssignmentValidateAndAssignees(t *testing.T) {
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	s1 := uuid.New()
	m := StudentAssignmentModel{
		StudentAssignmentStartDate:  start,
		StudentAssignmentEndDate:    start.Add(-time.Hour),
		StudentAssignmentStudentIDs: pq.StringArray{s1.String(), "bogus"},
	}
	assert.ErrorIs(t, m.BeforeSave(nil), ErrDateOrder)
	assert.Equal(t, []uuid.UUID{s1}, m.Assignees())
	assert.Equal(t, "student", m.AssigneeType())

	var a Assignment = &m
	assert.Equal(t, "student_assignment_", a.Prefix())
}
