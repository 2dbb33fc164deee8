package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitKey(t *testing.T) {
	tests := []struct {
		in       string
		resource string
		action   string
		ok       bool
	}{
		{"roles:write", "roles", "write", true},
		{" Storage:READ ", "storage", "read", true},
		{"roles", "", "", false},
		{"roles:", "", "", false},
		{"a:b:c", "", "", false},
	}
	for _, tc := range tests {
		r, a, ok := SplitKey(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.resource, r, tc.in)
		assert.Equal(t, tc.action, a, tc.in)
	}
}

func TestSystemPermissionsAreWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range SystemPermissions {
		_, _, ok := SplitKey(p.Key)
		assert.True(t, ok, p.Key)
		assert.False(t, seen[p.Key], "duplicate %s", p.Key)
		seen[p.Key] = true
		assert.True(t, IsSystemKey(p.Key))
	}
	assert.False(t, IsSystemKey("custom:thing"))
}
