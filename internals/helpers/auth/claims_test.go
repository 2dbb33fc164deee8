package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionsAllow(t *testing.T) {
	tests := []struct {
		name  string
		perms []string
		key   string
		want  bool
	}{
		{name: "empty", perms: nil, key: "roles:read", want: false},
		{name: "exact", perms: []string{"roles:read"}, key: "roles:read", want: true},
		{name: "case insensitive", perms: []string{" Roles:Read "}, key: "roles:read", want: true},
		{name: "wildcard all", perms: []string{"*"}, key: "storage:write", want: true},
		{name: "resource wildcard", perms: []string{"storage:*"}, key: "storage:write", want: true},
		{name: "other resource wildcard", perms: []string{"moods:*"}, key: "storage:write", want: false},
		{name: "different action", perms: []string{"roles:read"}, key: "roles:write", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PermissionsAllow(tt.perms, tt.key))
		})
	}
}
