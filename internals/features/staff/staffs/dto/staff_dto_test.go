package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "schoolhub_backend/internals/helpers"
)

func TestCreateStaffRequestValidation(t *testing.T) {
	r := CreateStaffRequest{StaffFullName: "Siti", StaffRoleID: uuid.New()}
	msgs := helper.ValidationMessages(&r)
	require.NotNil(t, msgs)
	assert.Contains(t, msgs, "staff_branch_ids")

	b := uuid.New()
	email := " Siti@Sekolah.ID "
	r.StaffBranchIDs = []uuid.UUID{b, b, uuid.Nil}
	r.StaffEmail = &email
	r.Normalize()
	assert.Nil(t, helper.ValidationMessages(&r))

	m := r.ToModel()
	assert.Equal(t, []string{b.String()}, []string(m.StaffBranchIDs))
	assert.Equal(t, "siti@sekolah.id", *m.StaffEmail)
	assert.True(t, m.StaffIsActive)
	assert.NoError(t, m.Validate())
}

func TestUpdateStaffRequestApplyCanEmptyBranches(t *testing.T) {
	r := CreateStaffRequest{StaffFullName: "Budi", StaffRoleID: uuid.New(), StaffBranchIDs: []uuid.UUID{uuid.New()}}
	m := r.ToModel()

	empty := []uuid.UUID{}
	(&UpdateStaffRequest{StaffBranchIDs: &empty}).Apply(&m)
	assert.Error(t, m.Validate())
}
