package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	permissionModel "schoolhub_backend/internals/features/access/permissions/model"
	"schoolhub_backend/internals/helpers/tenant"
)

func TestTenantModelsAreTablers(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range TenantModels() {
		tb, ok := m.(schema.Tabler)
		require.True(t, ok, "%T", m)
		assert.NotContains(t, tb.TableName(), ".", "tenant tables must not be schema-qualified")
		assert.False(t, seen[tb.TableName()], tb.TableName())
		seen[tb.TableName()] = true
	}
	assert.True(t, seen["storage_files"])
	assert.True(t, seen["moods"])
}

func TestSeedRows(t *testing.T) {
	rows := SystemPermissionRows()
	require.Len(t, rows, len(permissionModel.SystemPermissions))
	for _, r := range rows {
		assert.True(t, r.PermissionIsSystem)
		assert.Equal(t, r.PermissionResource+":"+r.PermissionAction, r.PermissionKey)
	}

	admin := AdminRole()
	assert.True(t, admin.RoleIsSystem)
	assert.Equal(t, []string{permissionModel.WildcardAll}, []string(admin.RolePermissions))
}

func TestProvisionRejectsMismatchedSchema(t *testing.T) {
	p := NewProvisioner(nil, nil)
	err := p.Provision(context.Background(), tenant.Tenant{Slug: "acme", Schema: "public"})
	assert.Error(t, err)
	err = p.Provision(context.Background(), tenant.Tenant{Slug: "acme"})
	assert.Error(t, err)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"t_acme"`, quoteIdent("t_acme"))
	assert.Equal(t, `"a""b"`, quoteIdent(`a"b`))
}
