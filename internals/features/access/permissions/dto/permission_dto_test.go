package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "schoolhub_backend/internals/helpers"
)

func TestCreatePermissionRequestValidation(t *testing.T) {
	ok := CreatePermissionRequest{PermissionKey: "  Reports:Export "}
	ok.Normalize()
	assert.Equal(t, "reports:export", ok.PermissionKey)
	assert.Nil(t, helper.ValidationMessages(&ok))

	m := ok.ToModel()
	assert.Equal(t, "reports", m.PermissionResource)
	assert.Equal(t, "export", m.PermissionAction)

	bad := CreatePermissionRequest{PermissionKey: "no-colon"}
	msgs := helper.ValidationMessages(&bad)
	require.NotNil(t, msgs)
	assert.Contains(t, msgs, "permission_key")
}

func TestIsPermissionKey(t *testing.T) {
	assert.True(t, IsPermissionKey("storage:*"))
	assert.True(t, IsPermissionKey("staff_assignments:sync"))
	assert.False(t, IsPermissionKey("*"))
	assert.False(t, IsPermissionKey("Roles:write"))
}
