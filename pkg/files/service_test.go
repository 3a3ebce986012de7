package files_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filevault/pkg/auth"
	"github.com/dmitrymomot/filevault/pkg/files"
	"github.com/dmitrymomot/filevault/pkg/storage"
)

var (
	alice = auth.Identity{Subject: "alice", Email: "alice@example.com"}
	bob   = auth.Identity{Subject: "bob", Email: "bob@example.com"}
	admin = auth.Identity{Subject: "root", Email: "root@example.com", IsAdmin: true}
)

type fakeSigner struct {
	err  error
	keys []string
	mu   sync.Mutex
}

func (f *fakeSigner) SignedURL(_ context.Context, key string, _ ...storage.URLOption) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "https://signed.example.com/" + key, nil
}

type opRecord struct {
	err error
	op  string
}

type fakeRecorder struct {
	ops []opRecord
	mu  sync.Mutex
}

func (f *fakeRecorder) RecordOperation(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, opRecord{op: op, err: err})
}

func textUpload(name, body string) files.Upload {
	return files.Upload{
		Filename: name,
		Size:     int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func newService(t *testing.T, opts ...files.Option) (*files.Service, *storage.MemoryStorage, *fakeSigner) {
	t.Helper()
	bucket := storage.NewMemory("bkt")
	signer := &fakeSigner{}
	return files.NewService(bucket, signer, opts...), bucket, signer
}

func seed(t *testing.T, b *storage.MemoryStorage, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, err := b.Put(context.Background(), k, strings.NewReader("data"), 4, "text/plain")
		require.NoError(t, err)
	}
}

func TestServiceUpload(t *testing.T) {
	t.Parallel()

	t.Run("stores under owner prefix", func(t *testing.T) {
		t.Parallel()
		svc, bucket, _ := newService(t)

		res, err := svc.Upload(context.Background(), alice, []files.Upload{
			textUpload("a.txt", "hello"),
			textUpload("b.json", `{"k":1}`),
		})
		require.NoError(t, err)
		require.Len(t, res, 2)

		assert.Equal(t, "a.txt", res[0].Filename)
		assert.Equal(t, "alice", files.Owner(res[0].ObjectName))
		assert.True(t, strings.HasSuffix(res[0].ObjectName, "_a.txt"))
		assert.Equal(t, int64(5), res[0].Size)
		assert.Equal(t, "text/plain; charset=utf-8", res[0].ContentType)
		assert.NotNil(t, res[0].UpdatedAt)
		assert.Equal(t, "application/json", res[1].ContentType)

		data, err := bucket.Read(res[0].ObjectName)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("keeps declared content type", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)

		u := textUpload("a.txt", "x")
		u.ContentType = "text/markdown"
		res, err := svc.Upload(context.Background(), alice, []files.Upload{u})
		require.NoError(t, err)
		assert.Equal(t, "text/markdown", res[0].ContentType)
	})

	t.Run("same name twice yields distinct keys", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)

		res, err := svc.Upload(context.Background(), alice, []files.Upload{
			textUpload("same.txt", "1"),
			textUpload("same.txt", "2"),
		})
		require.NoError(t, err)
		assert.NotEqual(t, res[0].ObjectName, res[1].ObjectName)
	})

	t.Run("invalid file aborts the rest of the batch", func(t *testing.T) {
		t.Parallel()
		svc, bucket, _ := newService(t)

		opened := false
		bad := textUpload("evil.exe", "x")
		bad.Open = func() (io.ReadCloser, error) {
			opened = true
			return io.NopCloser(strings.NewReader("x")), nil
		}

		res, err := svc.Upload(context.Background(), alice, []files.Upload{
			textUpload("first.txt", "1"),
			bad,
			textUpload("third.txt", "3"),
		})
		require.ErrorIs(t, err, files.ErrInvalidFileType)
		assert.False(t, opened)
		require.Len(t, res, 1)

		stored, err := bucket.List(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.True(t, strings.HasSuffix(stored[0].Key, "_first.txt"))
	})

	t.Run("no files", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)

		_, err := svc.Upload(context.Background(), alice, nil)
		require.ErrorIs(t, err, files.ErrNoFiles)
	})

	t.Run("open failure", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)

		u := textUpload("a.txt", "x")
		u.Open = func() (io.ReadCloser, error) { return nil, errors.New("disk gone") }
		_, err := svc.Upload(context.Background(), alice, []files.Upload{u})
		require.Error(t, err)
	})
}

func TestServiceList(t *testing.T) {
	t.Parallel()

	svc, bucket, _ := newService(t)
	seed(t, bucket,
		"alice/t1_report.txt",
		"alice/t2_data.json",
		"bob/t3_report.pdf",
		"bob/t4_notes.txt",
	)

	t.Run("user sees own files only", func(t *testing.T) {
		t.Parallel()
		l, err := svc.List(context.Background(), alice, files.ListOptions{})
		require.NoError(t, err)
		assert.False(t, l.Admin)
		require.Len(t, l.Files, 2)
		for _, f := range l.Files {
			assert.Equal(t, "alice", f.Owner)
			assert.Equal(t, "bkt", f.Bucket)
		}
	})

	t.Run("admin sees everything", func(t *testing.T) {
		t.Parallel()
		l, err := svc.List(context.Background(), admin, files.ListOptions{})
		require.NoError(t, err)
		assert.True(t, l.Admin)
		assert.Len(t, l.Files, 4)
	})

	t.Run("filters apply", func(t *testing.T) {
		t.Parallel()
		l, err := svc.List(context.Background(), admin, files.ListOptions{Query: "REPORT", FileType: "pdf"})
		require.NoError(t, err)
		require.Len(t, l.Files, 1)
		assert.Equal(t, "bob/t3_report.pdf", l.Files[0].ObjectName)
	})

	t.Run("prefix does not leak similar subjects", func(t *testing.T) {
		t.Parallel()
		svc, bucket, _ := newService(t)
		seed(t, bucket, "al/x_a.txt", "alice/y_b.txt")

		l, err := svc.List(context.Background(), auth.Identity{Subject: "al"}, files.ListOptions{})
		require.NoError(t, err)
		require.Len(t, l.Files, 1)
		assert.Equal(t, "al/x_a.txt", l.Files[0].ObjectName)
	})
}

func TestServiceDownloadURL(t *testing.T) {
	t.Parallel()

	t.Run("owner", func(t *testing.T) {
		t.Parallel()
		svc, bucket, _ := newService(t)
		seed(t, bucket, "alice/t_a.txt")

		url, err := svc.DownloadURL(context.Background(), alice, "alice/t_a.txt")
		require.NoError(t, err)
		assert.Equal(t, "https://signed.example.com/alice/t_a.txt", url)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		t.Parallel()
		svc, bucket, signer := newService(t)
		seed(t, bucket, "alice/t_a.txt")

		_, err := svc.DownloadURL(context.Background(), bob, "alice/t_a.txt")
		require.ErrorIs(t, err, files.ErrForbidden)
		assert.Empty(t, signer.keys)
	})

	t.Run("admin gets a url", func(t *testing.T) {
		t.Parallel()
		svc, bucket, _ := newService(t)
		seed(t, bucket, "alice/t_a.txt")

		url, err := svc.DownloadURL(context.Background(), admin, "alice/t_a.txt")
		require.NoError(t, err)
		assert.NotEmpty(t, url)
	})

	t.Run("missing wins over forbidden", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)

		_, err := svc.DownloadURL(context.Background(), bob, "alice/t_missing.txt")
		require.ErrorIs(t, err, files.ErrNotFound)
	})

	t.Run("signing unavailable", func(t *testing.T) {
		t.Parallel()
		svc, bucket, signer := newService(t)
		seed(t, bucket, "alice/t_a.txt")
		signer.err = storage.ErrNoCredentials

		_, err := svc.DownloadURL(context.Background(), alice, "alice/t_a.txt")
		require.ErrorIs(t, err, files.ErrSigningUnavailable)
	})

	t.Run("real signer gets ttl and disposition", func(t *testing.T) {
		t.Parallel()
		fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		bucket := storage.NewMemory("bkt").WithClock(func() time.Time { return fixed })
		seed(t, bucket, "alice/t_a b.txt")
		svc := files.NewService(bucket, bucket)

		url, err := svc.DownloadURL(context.Background(), alice, "alice/t_a b.txt")
		require.NoError(t, err)
		assert.Contains(t, url, "X-Expires=2024-01-01T00%3A10%3A00Z")
		assert.Contains(t, url, "attachment%3B+filename%3D%22t_a+b.txt%22")
	})
}

func TestServiceDelete(t *testing.T) {
	t.Parallel()

	t.Run("owner", func(t *testing.T) {
		t.Parallel()
		svc, bucket, _ := newService(t)
		seed(t, bucket, "alice/t_a.txt")

		require.NoError(t, svc.Delete(context.Background(), alice, "alice/t_a.txt"))
		_, err := bucket.Stat(context.Background(), "alice/t_a.txt")
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("admin cannot delete others", func(t *testing.T) {
		t.Parallel()
		svc, bucket, _ := newService(t)
		seed(t, bucket, "alice/t_a.txt")

		require.ErrorIs(t, svc.Delete(context.Background(), admin, "alice/t_a.txt"), files.ErrForbidden)
		_, err := bucket.Stat(context.Background(), "alice/t_a.txt")
		require.NoError(t, err)
	})

	t.Run("other user", func(t *testing.T) {
		t.Parallel()
		svc, bucket, _ := newService(t)
		seed(t, bucket, "alice/t_a.txt")

		require.ErrorIs(t, svc.Delete(context.Background(), bob, "alice/t_a.txt"), files.ErrForbidden)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)

		require.ErrorIs(t, svc.Delete(context.Background(), alice, "alice/none.txt"), files.ErrNotFound)
		require.ErrorIs(t, svc.Delete(context.Background(), alice, ""), files.ErrNotFound)
	})
}

func TestServiceRecorder(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	svc, bucket, _ := newService(t, files.WithRecorder(rec), files.WithURLTTL(time.Minute))
	seed(t, bucket, "alice/t_a.txt")

	_, _ = svc.List(context.Background(), alice, files.ListOptions{})
	_, _ = svc.DownloadURL(context.Background(), bob, "alice/t_a.txt")
	_ = svc.Delete(context.Background(), alice, "alice/t_a.txt")

	require.Len(t, rec.ops, 3)
	assert.Equal(t, files.OpList, rec.ops[0].op)
	require.NoError(t, rec.ops[0].err)
	assert.Equal(t, files.OpDownload, rec.ops[1].op)
	require.ErrorIs(t, rec.ops[1].err, files.ErrForbidden)
	assert.Equal(t, files.OpDelete, rec.ops[2].op)
	require.NoError(t, rec.ops[2].err)
}
