package helper

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

type memObject struct {
	data        []byte
	contentType string
	modified    time.Time
}

// MemoryStore: ObjectStore di memori, dipakai saat OSS belum dikonfigurasi (dev) dan di test.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memObject
	BaseURL string
	Now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: map[string]memObject{}, BaseURL: "memory://bucket", Now: time.Now}
}

func (m *MemoryStore) Put(_ context.Context, key string, r io.Reader, contentType string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.objects[key] = memObject{data: b, contentType: contentType, modified: m.Now()}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Stat(_ context.Context, key string) (ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[key]
	if !ok {
		return ObjectInfo{}, ErrObjectNotFound
	}
	return ObjectInfo{Key: key, Size: int64(len(o.data)), ContentType: o.contentType, LastModified: o.modified}, nil
}

func (m *MemoryStore) Copy(_ context.Context, srcKey, dstKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.objects[srcKey]
	if !ok {
		return ErrObjectNotFound
	}
	o.data = bytes.Clone(o.data)
	o.modified = m.Now()
	m.objects[dstKey] = o
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.objects, k)
	}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) List(_ context.Context, prefix, delimiter string) (Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out Listing
	seen := map[string]bool{}
	for k, o := range m.objects {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		rest := strings.TrimPrefix(k, prefix)
		if delimiter != "" {
			if i := strings.Index(rest, delimiter); i >= 0 {
				p := prefix + rest[:i+len(delimiter)]
				if !seen[p] {
					seen[p] = true
					out.Prefixes = append(out.Prefixes, p)
				}
				continue
			}
		}
		out.Objects = append(out.Objects, ObjectInfo{Key: k, Size: int64(len(o.data)), ContentType: o.contentType, LastModified: o.modified})
	}
	sort.Slice(out.Objects, func(i, j int) bool { return out.Objects[i].Key < out.Objects[j].Key })
	sort.Strings(out.Prefixes)
	return out, nil
}

func (m *MemoryStore) SignURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	m.mu.RLock()
	_, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return "", ErrObjectNotFound
	}
	exp := m.Now().Add(ttl).Unix()
	return m.BaseURL + "/" + key + "?expires=" + url.QueryEscape(time.Unix(exp, 0).UTC().Format(time.RFC3339)), nil
}

// Read: isi objek, untuk test.
func (m *MemoryStore) Read(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[key]
	return o.data, ok
}
