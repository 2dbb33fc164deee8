package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/storage/model"
	"schoolhub_backend/internals/helpers/tenant"
)

var ErrFileNotFound = errors.New("file not found")

// Repo: persistensi storage_files; tenant dibaca dari ctx.
type Repo interface {
	ByID(ctx context.Context, id uuid.UUID) (model.StorageFileModel, error)
	// LiveKeys: subset keys yang dipakai file aktif.
	LiveKeys(ctx context.Context, keys []string) (map[string]model.StorageFileModel, error)
	// LiveUnder: file aktif di folder dan seluruh subfolder-nya.
	LiveUnder(ctx context.Context, folder string) ([]model.StorageFileModel, error)
	Create(ctx context.Context, m *model.StorageFileModel) error
	Update(ctx context.Context, id uuid.UUID, cols map[string]any) error
	// PurgeTrashed: hapus permanen baris yang masuk trash sebelum cutoff.
	PurgeTrashed(ctx context.Context, before time.Time) (int64, error)
}

type GormRepo struct {
	DB *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo { return &GormRepo{DB: db} }

func (r *GormRepo) scoped(ctx context.Context) (*gorm.DB, error) {
	return tenant.Scoped(ctx, r.DB, model.StorageFileModel{})
}

func (r *GormRepo) ByID(ctx context.Context, id uuid.UUID) (model.StorageFileModel, error) {
	var m model.StorageFileModel
	tx, err := r.scoped(ctx)
	if err != nil {
		return m, err
	}
	err = tx.Where("storage_file_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m, ErrFileNotFound
	}
	return m, err
}

func (r *GormRepo) LiveKeys(ctx context.Context, keys []string) (map[string]model.StorageFileModel, error) {
	out := map[string]model.StorageFileModel{}
	if len(keys) == 0 {
		return out, nil
	}
	tx, err := r.scoped(ctx)
	if err != nil {
		return nil, err
	}
	var rows []model.StorageFileModel
	if err := tx.Where("storage_file_is_deleted = FALSE AND storage_file_object_key IN ?", keys).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, m := range rows {
		out[m.StorageFileObjectKey] = m
	}
	return out, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *GormRepo) LiveUnder(ctx context.Context, folder string) ([]model.StorageFileModel, error) {
	tx, err := r.scoped(ctx)
	if err != nil {
		return nil, err
	}
	tx = tx.Where("storage_file_is_deleted = FALSE")
	if folder != "" {
		tx = tx.Where("(storage_file_folder_path = ? OR storage_file_folder_path LIKE ?)", folder, escapeLike(folder)+"/%")
	}
	var rows []model.StorageFileModel
	err = tx.Find(&rows).Error
	return rows, err
}

func (r *GormRepo) Create(ctx context.Context, m *model.StorageFileModel) error {
	tx, err := r.scoped(ctx)
	if err != nil {
		return err
	}
	return tx.Create(m).Error
}

func (r *GormRepo) Update(ctx context.Context, id uuid.UUID, cols map[string]any) error {
	tx, err := r.scoped(ctx)
	if err != nil {
		return err
	}
	res := tx.Where("storage_file_id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFileNotFound
	}
	return nil
}

func (r *GormRepo) PurgeTrashed(ctx context.Context, before time.Time) (int64, error) {
	tx, err := r.scoped(ctx)
	if err != nil {
		return 0, err
	}
	res := tx.Where("storage_file_is_deleted = TRUE AND storage_file_deleted_at < ?", before).
		Delete(&model.StorageFileModel{})
	return res.RowsAffected, res.Error
}
