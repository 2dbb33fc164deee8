// Package helper: object storage (Aliyun OSS) + implementasi in-memory.
package helper

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrObjectNotFound = errors.New("object not found")

// deleteBatch: batas DeleteObjects per request di OSS.
const deleteBatch = 1000

type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Listing: hasil List dengan delimiter; Prefixes = "subfolder" langsung.
type Listing struct {
	Objects  []ObjectInfo
	Prefixes []string
}

type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	Copy(ctx context.Context, srcKey, dstKey string) error
	Delete(ctx context.Context, keys ...string) error
	// List: delimiter "" = rekursif.
	List(ctx context.Context, prefix, delimiter string) (Listing, error)
	SignURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Move: copy lalu delete sumber (OSS tidak punya rename).
func Move(ctx context.Context, s ObjectStore, srcKey, dstKey string) error {
	if srcKey == dstKey {
		return nil
	}
	if err := s.Copy(ctx, srcKey, dstKey); err != nil {
		return err
	}
	return s.Delete(ctx, srcKey)
}

func chunks(keys []string, n int) [][]string {
	var out [][]string
	for i := 0; i < len(keys); i += n {
		end := i + n
		if end > len(keys) {
			end = len(keys)
		}
		out = append(out, keys[i:end])
	}
	return out
}
