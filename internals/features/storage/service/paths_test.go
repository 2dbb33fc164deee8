package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanFolder(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"/", "", false},
		{"  /rapor//2026/ ", "rapor/2026", false},
		{`foto\kelas 7`, "foto/kelas 7", false},
		{"./a/./b", "a/b", false},
		{"a/../b", "", true},
		{"..", "", true},
		{"a/\x00b", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := CleanFolder(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanName(t *testing.T) {
	n, err := CleanName("  laporan.pdf ")
	require.NoError(t, err)
	assert.Equal(t, "laporan.pdf", n)

	for _, bad := range []string{"", "..", "a/b.txt", `a\b.txt`} {
		_, err := CleanName(bad)
		assert.ErrorIs(t, err, ErrInvalidName, bad)
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "acme/files/", FolderPrefix("acme", ""))
	assert.Equal(t, "acme/files/a/b/", FolderPrefix("acme", "a/b"))
	assert.Equal(t, "acme/files/a/x.txt", ObjectKey("acme", "a", "x.txt"))
	assert.Equal(t, "b", FolderName("acme/files/a/b/"))
	assert.Equal(t, "a/b", Relative("acme", "acme/files/a/b/"))

	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	now := time.Date(2026, 7, 4, 9, 8, 7, 0, time.UTC)
	assert.Equal(t,
		"acme/trash/2026/07/04/090807__11111111-2222-3333-4444-555555555555__x.txt",
		TrashKey("acme", id, "x.txt", now))
}

func TestCandidate(t *testing.T) {
	assert.Equal(t, "a.txt", Candidate("a.txt", 0))
	assert.Equal(t, "a (2).txt", Candidate("a.txt", 2))
	assert.Equal(t, "README (1)", Candidate("README", 1))
}
