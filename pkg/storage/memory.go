package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryBaseURL is the origin of URLs issued by MemoryStorage.
const MemoryBaseURL = "http://memory.storage.local"

// MemoryStorage is an in-process Bucket and Signer for development and tests.
// Its signed URLs are not servable; they only encode the request.
type MemoryStorage struct {
	now     func() time.Time
	objects map[string]memoryObject
	bucket  string
	mu      sync.RWMutex
}

type memoryObject struct {
	updatedAt   time.Time
	contentType string
	data        []byte
}

// NewMemory creates an empty in-memory bucket.
func NewMemory(bucket string) *MemoryStorage {
	return &MemoryStorage{
		bucket:  bucket,
		objects: make(map[string]memoryObject),
		now:     time.Now,
	}
}

// WithClock replaces the clock used for modification times.
func (m *MemoryStorage) WithClock(now func() time.Time) *MemoryStorage {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
	return m
}

// Name returns the bucket name.
func (m *MemoryStorage) Name() string { return m.bucket }

// Put stores the contents of r under key, replacing any previous object.
func (m *MemoryStorage) Put(ctx context.Context, key string, r io.Reader, _ int64, contentType string) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, fmt.Errorf("%w: read input: %v", ErrUploadFailed, err)
	}
	if contentType == "" {
		contentType = MIMEOctetStream
	}

	m.mu.Lock()
	m.objects[key] = memoryObject{
		data:        buf.Bytes(),
		contentType: contentType,
		updatedAt:   m.now().UTC(),
	}
	m.mu.Unlock()

	return m.Stat(ctx, key)
}

// Stat returns metadata for key.
func (m *MemoryStorage) Stat(_ context.Context, key string) (*Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return &Object{
		Key:         key,
		Size:        int64(len(obj.data)),
		ContentType: obj.contentType,
		UpdatedAt:   obj.updatedAt,
	}, nil
}

// List returns the objects under prefix in key order.
func (m *MemoryStorage) List(ctx context.Context, prefix string) ([]Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListFailed, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Object, 0, len(m.objects))
	for key, obj := range m.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		out = append(out, Object{
			Key:         key,
			Size:        int64(len(obj.data)),
			ContentType: obj.contentType,
			UpdatedAt:   obj.updatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Delete removes key.
func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[key]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	delete(m.objects, key)
	return nil
}

// Ping always succeeds.
func (m *MemoryStorage) Ping(context.Context) error { return nil }

// Read returns a copy of the stored bytes. Useful in tests.
func (m *MemoryStorage) Read(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return bytes.Clone(obj.data), nil
}

// SignedURL encodes key, expiry and disposition into a URL under MemoryBaseURL.
func (m *MemoryStorage) SignedURL(_ context.Context, key string, opts ...URLOption) (string, error) {
	o := applyURLOptions(opts)

	m.mu.RLock()
	expires := m.now().Add(o.expiry).UTC()
	m.mu.RUnlock()

	q := url.Values{}
	q.Set("X-Expires", expires.Format(time.RFC3339))
	if o.downloadName != "" {
		q.Set("response-content-disposition", attachmentDisposition(o.downloadName))
	}

	return MemoryBaseURL + "/" + url.PathEscape(m.bucket) + "/" + escapeKey(key) + "?" + q.Encode(), nil
}

// escapeKey escapes each path segment while keeping "/" separators.
func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

var (
	_ Bucket = (*MemoryStorage)(nil)
	_ Signer = (*MemoryStorage)(nil)
)
