package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internals/constants"
	"schoolhub_backend/internals/features/storage/model"
	"schoolhub_backend/internals/features/storage/service"
)

func TestFromEntry(t *testing.T) {
	id := uuid.New()
	e := service.Entry{
		Folders: []service.Folder{{Name: "2026", Path: "rapor/2026"}},
		Files: []service.FileEntry{
			{Key: "acme/files/rapor/asing.zip", Name: "asing.zip", Size: 3},
			{Key: "acme/files/rapor/nilai.pdf", Name: "nilai.pdf", Size: 9, File: &model.StorageFileModel{
				StorageFileID:          id,
				StorageFileContentType: "application/pdf",
			}},
		},
	}
	out := FromEntry("rapor", e)
	assert.Equal(t, "rapor", out.Path)
	assert.Equal(t, []FolderResponse{{Name: "2026", Path: "rapor/2026"}}, out.Folders)
	require.Len(t, out.Files, 2)
	assert.Nil(t, out.Files[0].ID)
	assert.Equal(t, constants.FileKindArchive, out.Files[0].Kind)
	require.NotNil(t, out.Files[1].ID)
	assert.Equal(t, id, *out.Files[1].ID)
	assert.Equal(t, constants.FileKindPDF, out.Files[1].Kind)
}

func TestFromEntryEmptyEncodesArrays(t *testing.T) {
	out := FromEntry("", service.Entry{})
	assert.NotNil(t, out.Folders)
	assert.NotNil(t, out.Files)
}

func TestFromFile(t *testing.T) {
	r := FromFile(model.StorageFileModel{StorageFileName: "a.png", StorageFileContentType: "image/png", StorageFileIsDeleted: true})
	assert.Equal(t, constants.FileKindImage, r.Kind)
	assert.True(t, r.IsDeleted)
	assert.Empty(t, r.URL)
}
