package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internals/features/storage/model"
	helperOSS "schoolhub_backend/internals/helpers/oss"
	"schoolhub_backend/internals/helpers/tenant"
)

type memRepo struct {
	rows map[uuid.UUID]*model.StorageFileModel
}

func newMemRepo() *memRepo { return &memRepo{rows: map[uuid.UUID]*model.StorageFileModel{}} }

func (r *memRepo) ByID(_ context.Context, id uuid.UUID) (model.StorageFileModel, error) {
	m, ok := r.rows[id]
	if !ok {
		return model.StorageFileModel{}, ErrFileNotFound
	}
	return *m, nil
}

func (r *memRepo) LiveKeys(_ context.Context, keys []string) (map[string]model.StorageFileModel, error) {
	out := map[string]model.StorageFileModel{}
	for _, k := range keys {
		for _, m := range r.rows {
			if !m.StorageFileIsDeleted && m.StorageFileObjectKey == k {
				out[k] = *m
			}
		}
	}
	return out, nil
}

func (r *memRepo) LiveUnder(_ context.Context, folder string) ([]model.StorageFileModel, error) {
	var out []model.StorageFileModel
	for _, m := range r.rows {
		if m.StorageFileIsDeleted {
			continue
		}
		if m.StorageFileFolderPath == folder || strings.HasPrefix(m.StorageFileFolderPath, folder+"/") {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *memRepo) Create(_ context.Context, m *model.StorageFileModel) error {
	m.StorageFileID = uuid.New()
	cp := *m
	r.rows[m.StorageFileID] = &cp
	return nil
}

func (r *memRepo) Update(_ context.Context, id uuid.UUID, cols map[string]any) error {
	m, ok := r.rows[id]
	if !ok {
		return ErrFileNotFound
	}
	for k, v := range cols {
		switch k {
		case "storage_file_object_key":
			m.StorageFileObjectKey = v.(string)
		case "storage_file_folder_path":
			m.StorageFileFolderPath = v.(string)
		case "storage_file_name":
			m.StorageFileName = v.(string)
		case "storage_file_is_deleted":
			m.StorageFileIsDeleted = v.(bool)
		case "storage_file_deleted_at":
			if t, ok := v.(time.Time); ok {
				m.StorageFileDeletedAt = &t
			} else {
				m.StorageFileDeletedAt = nil
			}
		case "storage_file_trash_key":
			if s, ok := v.(string); ok {
				m.StorageFileTrashKey = &s
			} else {
				m.StorageFileTrashKey = nil
			}
		}
	}
	return nil
}

func (r *memRepo) PurgeTrashed(_ context.Context, before time.Time) (int64, error) {
	var n int64
	for id, m := range r.rows {
		if m.StorageFileIsDeleted && m.StorageFileDeletedAt != nil && m.StorageFileDeletedAt.Before(before) {
			delete(r.rows, id)
			n++
		}
	}
	return n, nil
}

func setup(t *testing.T) (*Service, *helperOSS.MemoryStore, *memRepo, context.Context) {
	t.Helper()
	store := helperOSS.NewMemoryStore()
	repo := newMemRepo()
	svc := NewService(store, repo, 1<<20, nil)
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }
	ctx := tenant.WithTenant(context.Background(), tenant.Tenant{Slug: "acme", Schema: "t_acme"})
	return svc, store, repo, ctx
}

func upload(t *testing.T, svc *Service, ctx context.Context, folder, name, body string) model.StorageFileModel {
	t.Helper()
	m, err := svc.Upload(ctx, UploadInput{Folder: folder, Name: name, Body: strings.NewReader(body), Size: int64(len(body))})
	require.NoError(t, err)
	return m
}

func TestUploadAndList(t *testing.T) {
	svc, store, _, ctx := setup(t)

	_, err := svc.CreateFolder(ctx, "/rapor/2026/")
	require.NoError(t, err)
	m := upload(t, svc, ctx, "rapor", "nilai.txt", "hello")
	assert.Equal(t, "acme/files/rapor/nilai.txt", m.StorageFileObjectKey)
	assert.Equal(t, "text/plain; charset=utf-8", m.StorageFileContentType)
	assert.EqualValues(t, 5, m.StorageFileSize)

	dup := upload(t, svc, ctx, "rapor", "nilai.txt", "again")
	assert.Equal(t, "nilai (1).txt", dup.StorageFileName)

	require.NoError(t, store.Put(ctx, "acme/files/rapor/asing.bin", strings.NewReader("x"), ""))

	e, err := svc.List(ctx, "rapor")
	require.NoError(t, err)
	require.Len(t, e.Folders, 1)
	assert.Equal(t, Folder{Name: "2026", Path: "rapor/2026"}, e.Folders[0])
	require.Len(t, e.Files, 3)
	assert.Equal(t, "asing.bin", e.Files[0].Name)
	assert.Nil(t, e.Files[0].File)
	assert.NotNil(t, e.Files[1].File)

	_, err = svc.List(ctx, "../other")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestUploadLimitsAndTenant(t *testing.T) {
	svc, _, _, ctx := setup(t)
	svc.MaxUpload = 4

	_, err := svc.Upload(ctx, UploadInput{Name: "a.txt", Body: strings.NewReader("12345")})
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = svc.Upload(ctx, UploadInput{Name: "../a.txt", Body: strings.NewReader("1")})
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = svc.Upload(context.Background(), UploadInput{Name: "a.txt", Body: strings.NewReader("1")})
	assert.ErrorIs(t, err, tenant.ErrNoTenant)
}

func TestUploadOptimizeToWebP(t *testing.T) {
	svc, store, _, ctx := setup(t)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 32))))

	m, err := svc.Upload(ctx, UploadInput{Folder: "foto", Name: "kelas.png", Body: &buf, Optimize: true})
	require.NoError(t, err)
	assert.Equal(t, "kelas.webp", m.StorageFileName)
	assert.Equal(t, "image/webp", m.StorageFileContentType)
	_, ok := store.Read("acme/files/foto/kelas.webp")
	assert.True(t, ok)
}

func TestMoveTrashRestore(t *testing.T) {
	svc, store, _, ctx := setup(t)
	m := upload(t, svc, ctx, "a", "x.txt", "hello")
	upload(t, svc, ctx, "b", "x.txt", "other")

	b := "b"
	_, err := svc.Move(ctx, m.StorageFileID, &b, nil)
	assert.ErrorIs(t, err, ErrExists)

	name := "y.txt"
	moved, err := svc.Move(ctx, m.StorageFileID, &b, &name)
	require.NoError(t, err)
	assert.Equal(t, "acme/files/b/y.txt", moved.StorageFileObjectKey)
	_, ok := store.Read("acme/files/a/x.txt")
	assert.False(t, ok)

	trashed, err := svc.Trash(ctx, m.StorageFileID)
	require.NoError(t, err)
	assert.True(t, trashed.StorageFileIsDeleted)
	require.NotNil(t, trashed.StorageFileTrashKey)
	assert.True(t, strings.HasPrefix(*trashed.StorageFileTrashKey, "acme/trash/2026/08/01/"))
	_, ok = store.Read("acme/files/b/y.txt")
	assert.False(t, ok)

	_, err = svc.Trash(ctx, m.StorageFileID)
	assert.ErrorIs(t, err, ErrAlreadyInTrash)
	_, url, err := svc.Get(ctx, m.StorageFileID)
	require.NoError(t, err)
	assert.Empty(t, url)

	restored, err := svc.Restore(ctx, m.StorageFileID)
	require.NoError(t, err)
	assert.False(t, restored.StorageFileIsDeleted)
	data, ok := store.Read("acme/files/b/y.txt")
	require.True(t, ok)
	assert.Equal(t, "hello", string(data))

	_, err = svc.Restore(ctx, m.StorageFileID)
	assert.ErrorIs(t, err, ErrNotDeleted)

	_, url, err = svc.Get(ctx, m.StorageFileID)
	require.NoError(t, err)
	assert.Contains(t, url, "acme/files/b/y.txt")
}

func TestRestoreRefusesOccupiedKey(t *testing.T) {
	svc, _, _, ctx := setup(t)
	m := upload(t, svc, ctx, "", "x.txt", "1")
	_, err := svc.Trash(ctx, m.StorageFileID)
	require.NoError(t, err)
	upload(t, svc, ctx, "", "x.txt", "2")

	_, err = svc.Restore(ctx, m.StorageFileID)
	assert.ErrorIs(t, err, ErrExists)
}

func TestDeleteFolderRecursive(t *testing.T) {
	svc, store, repo, ctx := setup(t)
	_, err := svc.CreateFolder(ctx, "kelas/7a")
	require.NoError(t, err)
	a := upload(t, svc, ctx, "kelas", "a.txt", "a")
	b := upload(t, svc, ctx, "kelas/7a", "b.txt", "b")
	keep := upload(t, svc, ctx, "kelasx", "c.txt", "c")
	require.NoError(t, store.Put(ctx, "acme/files/kelas/7a/asing.bin", strings.NewReader("x"), ""))

	res, err := svc.DeleteFolder(ctx, "kelas")
	require.NoError(t, err)
	assert.Equal(t, FolderDeleteResult{Trashed: 3, Removed: 1}, res)
	assert.True(t, repo.rows[a.StorageFileID].StorageFileIsDeleted)
	assert.True(t, repo.rows[b.StorageFileID].StorageFileIsDeleted)
	assert.False(t, repo.rows[keep.StorageFileID].StorageFileIsDeleted)

	left, err := store.List(ctx, "acme/files/kelas/", "")
	require.NoError(t, err)
	assert.Empty(t, left.Objects)

	_, err = svc.DeleteFolder(ctx, "/")
	assert.ErrorIs(t, err, ErrRootFolder)
}

func TestReapTrash(t *testing.T) {
	svc, store, repo, ctx := setup(t)
	start := svc.Now()
	store.Now = func() time.Time { return start }
	m := upload(t, svc, ctx, "", "old.txt", "x")
	_, err := svc.Trash(ctx, m.StorageFileID)
	require.NoError(t, err)

	later := start.AddDate(0, 0, 31)
	svc.Now = func() time.Time { return later }
	res, err := svc.ReapTrash(ctx, 30*24*time.Hour, false)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Deleted)
	_, ok := repo.rows[m.StorageFileID]
	assert.False(t, ok)
}
