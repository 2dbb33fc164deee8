package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolhub_backend/internals/features/moods/model"
	"schoolhub_backend/internals/helpers/tenant"
)

type MoodService struct {
	DB *gorm.DB
}

func NewMoodService(db *gorm.DB) *MoodService { return &MoodService{DB: db} }

// Record: upsert per (user, hari) selama entri hari itu belum dihapus.
func (s *MoodService) Record(ctx context.Context, m model.MoodModel) (model.MoodModel, error) {
	tx, err := tenant.Scoped(ctx, s.DB, m)
	if err != nil {
		return m, err
	}
	err = tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "mood_user_id"}, {Name: "mood_recorded_on"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "mood_deleted_at IS NULL"},
		}},
		DoUpdates: clause.Assignments(map[string]any{
			"mood_user_type":  m.MoodUserType,
			"mood_value":      m.MoodValue,
			"mood_intensity":  m.MoodIntensity,
			"mood_note":       m.MoodNote,
			"mood_updated_at": time.Now(),
		}),
	}).Create(&m).Error
	if err != nil {
		return m, err
	}

	// baca ulang: saat conflict, id hasil RETURNING milik baris lama
	q, err := tenant.Scoped(ctx, s.DB, m)
	if err != nil {
		return m, err
	}
	var out model.MoodModel
	err = q.Where("mood_user_id = ? AND mood_recorded_on = ? AND mood_deleted_at IS NULL", m.MoodUserID, m.MoodRecordedOn).
		Take(&out).Error
	return out, err
}

func (s *MoodService) query(ctx context.Context, from, to *time.Time, apply func(*gorm.DB) *gorm.DB) (*gorm.DB, error) {
	tx, err := tenant.Scoped(ctx, s.DB, model.MoodModel{})
	if err != nil {
		return nil, err
	}
	tx = tx.Where("mood_deleted_at IS NULL")
	if from != nil {
		tx = tx.Where("mood_recorded_on >= ?", *from)
	}
	if to != nil {
		tx = tx.Where("mood_recorded_on <= ?", *to)
	}
	if apply != nil {
		tx = apply(tx)
	}
	return tx, nil
}

// Range: entri [from, to] (tanggal inklusif); nil = tanpa batas.
func (s *MoodService) Range(ctx context.Context, from, to *time.Time, apply func(*gorm.DB) *gorm.DB) ([]model.MoodModel, error) {
	tx, err := s.query(ctx, from, to, apply)
	if err != nil {
		return nil, err
	}
	var rows []model.MoodModel
	err = tx.Order("mood_recorded_on DESC, mood_created_at DESC").Find(&rows).Error
	return rows, err
}

// Page: seperti Range dengan offset/limit + total.
func (s *MoodService) Page(ctx context.Context, from, to *time.Time, apply func(*gorm.DB) *gorm.DB, offset, limit int) ([]model.MoodModel, int64, error) {
	tx, err := s.query(ctx, from, to, apply)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.MoodModel
	err = tx.Order("mood_recorded_on DESC, mood_created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}

// DeleteMine: soft delete milik user sendiri; false kalau tidak ada.
func (s *MoodService) DeleteMine(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tx, err := tenant.Scoped(ctx, s.DB, model.MoodModel{})
	if err != nil {
		return false, err
	}
	res := tx.Where("mood_id = ? AND mood_user_id = ? AND mood_deleted_at IS NULL", id, userID).
		Updates(map[string]any{"mood_deleted_at": time.Now()})
	return res.RowsAffected > 0, res.Error
}
