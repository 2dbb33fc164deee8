package helper

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type ReapResult struct {
	Scanned int
	Deleted int
}

// ReapPrefix menghapus objek di bawah prefix yang LastModified-nya sebelum cutoff.
func ReapPrefix(ctx context.Context, s ObjectStore, prefix string, cutoff time.Time, dryRun bool, log *zap.Logger) (ReapResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var res ReapResult
	listing, err := s.List(ctx, prefix, "")
	if err != nil {
		return res, err
	}
	var keys []string
	for _, obj := range listing.Objects {
		res.Scanned++
		if obj.Key != "" && obj.LastModified.Before(cutoff) {
			keys = append(keys, obj.Key)
		}
	}
	if len(keys) == 0 {
		return res, nil
	}
	if dryRun {
		log.Info("trash reaper dry-run", zap.String("prefix", prefix), zap.Int("would_delete", len(keys)), zap.Int("scanned", res.Scanned))
		return res, nil
	}
	for _, batch := range chunks(keys, deleteBatch) {
		if err := s.Delete(ctx, batch...); err != nil {
			log.Warn("trash reaper delete batch failed", zap.String("prefix", prefix), zap.Int("size", len(batch)), zap.Error(err))
			continue
		}
		res.Deleted += len(batch)
	}
	log.Info("trash reaped", zap.String("prefix", prefix), zap.Int("deleted", res.Deleted), zap.Int("scanned", res.Scanned))
	return res, nil
}
