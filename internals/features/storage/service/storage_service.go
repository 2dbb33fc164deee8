package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"schoolhub_backend/internals/features/storage/model"
	helperOSS "schoolhub_backend/internals/helpers/oss"
	"schoolhub_backend/internals/helpers/tenant"
)

var (
	ErrTooLarge       = errors.New("file too large")
	ErrExists         = errors.New("target already exists")
	ErrNotDeleted     = errors.New("file is not in trash")
	ErrAlreadyInTrash = errors.New("file already in trash")
	ErrRootFolder     = errors.New("root folder cannot be deleted")
)

const (
	folderContentType = "application/x-directory"
	maxNameAttempts   = 50
)

type Service struct {
	Store     helperOSS.ObjectStore
	Repo      Repo
	Log       *zap.Logger
	MaxUpload int64
	SignTTL   time.Duration
	WebP      helperOSS.WebPOptions
	Now       func() time.Time
}

func NewService(store helperOSS.ObjectStore, repo Repo, maxUpload int64, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}
	return &Service{
		Store:     store,
		Repo:      repo,
		Log:       log.Named("storage"),
		MaxUpload: maxUpload,
		SignTTL:   15 * time.Minute,
		WebP:      helperOSS.DefaultWebPOptions(),
		Now:       time.Now,
	}
}

func slugOf(ctx context.Context) (string, error) {
	t, ok := tenant.FromContext(ctx)
	if !ok || t.Slug == "" {
		return "", tenant.ErrNoTenant
	}
	return t.Slug, nil
}

type Entry struct {
	Folders []Folder
	Files   []FileEntry
}

type Folder struct {
	Name string
	Path string
}

// FileEntry: objek di folder; File nil kalau objek tidak tercatat di storage_files.
type FileEntry struct {
	Key          string
	Name         string
	Size         int64
	LastModified time.Time
	File         *model.StorageFileModel
}

// List: subfolder langsung + file di folder (delimiter "/").
func (s *Service) List(ctx context.Context, folder string) (Entry, error) {
	var out Entry
	slug, err := slugOf(ctx)
	if err != nil {
		return out, err
	}
	if folder, err = CleanFolder(folder); err != nil {
		return out, err
	}
	prefix := FolderPrefix(slug, folder)
	listing, err := s.Store.List(ctx, prefix, "/")
	if err != nil {
		return out, err
	}
	for _, p := range listing.Prefixes {
		out.Folders = append(out.Folders, Folder{Name: FolderName(p), Path: Relative(slug, p)})
	}

	keys := make([]string, 0, len(listing.Objects))
	for _, o := range listing.Objects {
		if o.Key == prefix || strings.HasSuffix(o.Key, "/") {
			continue
		}
		keys = append(keys, o.Key)
	}
	known, err := s.Repo.LiveKeys(ctx, keys)
	if err != nil {
		return out, err
	}
	for _, o := range listing.Objects {
		if o.Key == prefix || strings.HasSuffix(o.Key, "/") {
			continue
		}
		e := FileEntry{Key: o.Key, Name: strings.TrimPrefix(o.Key, prefix), Size: o.Size, LastModified: o.LastModified}
		if m, ok := known[o.Key]; ok {
			m := m
			e.File = &m
		}
		out.Files = append(out.Files, e)
	}
	return out, nil
}

// CreateFolder: marker objek 0 byte berakhiran "/".
func (s *Service) CreateFolder(ctx context.Context, folder string) (string, error) {
	slug, err := slugOf(ctx)
	if err != nil {
		return "", err
	}
	if folder, err = CleanFolder(folder); err != nil {
		return "", err
	}
	if folder == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	if err := s.Store.Put(ctx, FolderPrefix(slug, folder), bytes.NewReader(nil), folderContentType); err != nil {
		return "", err
	}
	return folder, nil
}

type UploadInput struct {
	Folder     string
	Name       string
	Body       io.Reader
	Size       int64
	Optimize   bool
	UploadedBy *uuid.UUID
}

// freeName: "a.txt" → "a (1).txt" dst. bila key sudah dipakai file aktif / objek lain.
func (s *Service) freeName(ctx context.Context, slug, folder, name string) (string, error) {
	for i := 0; i < maxNameAttempts; i++ {
		cand := Candidate(name, i)
		key := ObjectKey(slug, folder, cand)
		if _, err := s.Store.Stat(ctx, key); errors.Is(err, helperOSS.ErrObjectNotFound) {
			return cand, nil
		} else if err != nil {
			return "", err
		}
	}
	return "", ErrExists
}

func (s *Service) Upload(ctx context.Context, in UploadInput) (model.StorageFileModel, error) {
	var m model.StorageFileModel
	slug, err := slugOf(ctx)
	if err != nil {
		return m, err
	}
	folder, err := CleanFolder(in.Folder)
	if err != nil {
		return m, err
	}
	name, err := CleanName(in.Name)
	if err != nil {
		return m, err
	}
	if in.Size > s.MaxUpload {
		return m, ErrTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(in.Body, s.MaxUpload+1))
	if err != nil {
		return m, err
	}
	if int64(len(data)) > s.MaxUpload {
		return m, ErrTooLarge
	}

	contentType := helperOSS.SniffContentType(data, name)
	if in.Optimize && helperOSS.IsOptimizable(contentType) {
		out, err := helperOSS.ToWebP(data, name, s.WebP)
		if err != nil {
			return m, err
		}
		data, contentType, name = out, "image/webp", helperOSS.WebPName(name)
	}

	if name, err = s.freeName(ctx, slug, folder, name); err != nil {
		return m, err
	}
	key := ObjectKey(slug, folder, name)
	if err := s.Store.Put(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return m, err
	}

	m = model.StorageFileModel{
		StorageFileObjectKey:   key,
		StorageFileFolderPath:  folder,
		StorageFileName:        name,
		StorageFileSize:        int64(len(data)),
		StorageFileContentType: contentType,
		StorageFileUploadedBy:  in.UploadedBy,
	}
	if err := s.Repo.Create(ctx, &m); err != nil {
		if derr := s.Store.Delete(ctx, key); derr != nil {
			s.Log.Warn("rollback upload failed", zap.String("key", key), zap.Error(derr))
		}
		return m, err
	}
	return m, nil
}

// Get: metadata + signed URL (kosong untuk file di trash).
func (s *Service) Get(ctx context.Context, id uuid.UUID) (model.StorageFileModel, string, error) {
	m, err := s.Repo.ByID(ctx, id)
	if err != nil {
		return m, "", err
	}
	if m.StorageFileIsDeleted {
		return m, "", nil
	}
	u, err := s.Store.SignURL(ctx, m.StorageFileObjectKey, s.SignTTL)
	return m, u, err
}

// Move: rename/pindah folder. Objek di-copy lalu sumber dihapus.
func (s *Service) Move(ctx context.Context, id uuid.UUID, folder *string, name *string) (model.StorageFileModel, error) {
	m, err := s.Repo.ByID(ctx, id)
	if err != nil {
		return m, err
	}
	if m.StorageFileIsDeleted {
		return m, ErrAlreadyInTrash
	}
	slug, err := slugOf(ctx)
	if err != nil {
		return m, err
	}
	newFolder, newName := m.StorageFileFolderPath, m.StorageFileName
	if folder != nil {
		if newFolder, err = CleanFolder(*folder); err != nil {
			return m, err
		}
	}
	if name != nil {
		if newName, err = CleanName(*name); err != nil {
			return m, err
		}
	}
	dst := ObjectKey(slug, newFolder, newName)
	if dst == m.StorageFileObjectKey {
		return m, nil
	}
	if _, err := s.Store.Stat(ctx, dst); err == nil {
		return m, ErrExists
	} else if !errors.Is(err, helperOSS.ErrObjectNotFound) {
		return m, err
	}
	if err := helperOSS.Move(ctx, s.Store, m.StorageFileObjectKey, dst); err != nil {
		return m, err
	}
	cols := map[string]any{
		"storage_file_object_key":  dst,
		"storage_file_folder_path": newFolder,
		"storage_file_name":        newName,
		"storage_file_updated_at":  s.Now(),
	}
	if err := s.Repo.Update(ctx, id, cols); err != nil {
		return m, err
	}
	m.StorageFileObjectKey, m.StorageFileFolderPath, m.StorageFileName = dst, newFolder, newName
	return m, nil
}

func (s *Service) trash(ctx context.Context, slug string, m *model.StorageFileModel) error {
	now := s.Now()
	key := TrashKey(slug, m.StorageFileID, m.StorageFileName, now)
	if err := helperOSS.Move(ctx, s.Store, m.StorageFileObjectKey, key); err != nil && !errors.Is(err, helperOSS.ErrObjectNotFound) {
		return err
	}
	if err := s.Repo.Update(ctx, m.StorageFileID, map[string]any{
		"storage_file_is_deleted": true,
		"storage_file_deleted_at": now,
		"storage_file_trash_key":  key,
	}); err != nil {
		return err
	}
	m.StorageFileIsDeleted, m.StorageFileDeletedAt, m.StorageFileTrashKey = true, &now, &key
	return nil
}

// Trash: pindahkan objek ke "<slug>/trash/YYYY/MM/DD/...".
func (s *Service) Trash(ctx context.Context, id uuid.UUID) (model.StorageFileModel, error) {
	m, err := s.Repo.ByID(ctx, id)
	if err != nil {
		return m, err
	}
	if m.StorageFileIsDeleted {
		return m, ErrAlreadyInTrash
	}
	slug, err := slugOf(ctx)
	if err != nil {
		return m, err
	}
	err = s.trash(ctx, slug, &m)
	return m, err
}

// Restore: kembalikan ke key semula; gagal kalau key sudah ditempati.
func (s *Service) Restore(ctx context.Context, id uuid.UUID) (model.StorageFileModel, error) {
	m, err := s.Repo.ByID(ctx, id)
	if err != nil {
		return m, err
	}
	if !m.StorageFileIsDeleted || m.StorageFileTrashKey == nil {
		return m, ErrNotDeleted
	}
	if _, err := s.Store.Stat(ctx, m.StorageFileObjectKey); err == nil {
		return m, ErrExists
	} else if !errors.Is(err, helperOSS.ErrObjectNotFound) {
		return m, err
	}
	if err := helperOSS.Move(ctx, s.Store, *m.StorageFileTrashKey, m.StorageFileObjectKey); err != nil {
		if errors.Is(err, helperOSS.ErrObjectNotFound) {
			return m, ErrFileNotFound
		}
		return m, err
	}
	if err := s.Repo.Update(ctx, id, map[string]any{
		"storage_file_is_deleted": false,
		"storage_file_deleted_at": nil,
		"storage_file_trash_key":  nil,
	}); err != nil {
		return m, err
	}
	m.StorageFileIsDeleted, m.StorageFileDeletedAt, m.StorageFileTrashKey = false, nil, nil
	return m, nil
}

type FolderDeleteResult struct {
	Trashed int `json:"trashed"`
	Removed int `json:"removed"`
}

// DeleteFolder: file tercatat → trash; objek lain di bawah prefix (marker, objek asing) → trash/hapus.
func (s *Service) DeleteFolder(ctx context.Context, folder string) (FolderDeleteResult, error) {
	var res FolderDeleteResult
	slug, err := slugOf(ctx)
	if err != nil {
		return res, err
	}
	if folder, err = CleanFolder(folder); err != nil {
		return res, err
	}
	if folder == "" {
		return res, ErrRootFolder
	}

	rows, err := s.Repo.LiveUnder(ctx, folder)
	if err != nil {
		return res, err
	}
	var errs []error
	for i := range rows {
		if err := s.trash(ctx, slug, &rows[i]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", rows[i].StorageFileObjectKey, err))
			continue
		}
		res.Trashed++
	}

	listing, err := s.Store.List(ctx, FolderPrefix(slug, folder), "")
	if err != nil {
		return res, errors.Join(append(errs, err)...)
	}
	var markers []string
	now := s.Now()
	for _, o := range listing.Objects {
		if strings.HasSuffix(o.Key, "/") {
			markers = append(markers, o.Key)
			continue
		}
		key := TrashKey(slug, uuid.New(), FolderName(o.Key), now)
		if err := helperOSS.Move(ctx, s.Store, o.Key, key); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Key, err))
			continue
		}
		res.Trashed++
	}
	if err := s.Store.Delete(ctx, markers...); err != nil {
		errs = append(errs, err)
	} else {
		res.Removed = len(markers)
	}
	return res, errors.Join(errs...)
}

// ReapTrash: hapus permanen objek trash tenant yang lebih tua dari retention.
func (s *Service) ReapTrash(ctx context.Context, retention time.Duration, dryRun bool) (helperOSS.ReapResult, error) {
	slug, err := slugOf(ctx)
	if err != nil {
		return helperOSS.ReapResult{}, err
	}
	cutoff := s.Now().Add(-retention)
	res, err := helperOSS.ReapPrefix(ctx, s.Store, TrashRoot(slug), cutoff, dryRun, s.Log)
	if err != nil || dryRun {
		return res, err
	}
	n, err := s.Repo.PurgeTrashed(ctx, cutoff)
	if n > 0 {
		s.Log.Info("trashed file rows purged", zap.String("tenant", slug), zap.Int64("rows", n))
	}
	return res, err
}
