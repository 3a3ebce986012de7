package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/filevault/pkg/auth"
	"github.com/dmitrymomot/filevault/pkg/logger"
	"github.com/dmitrymomot/filevault/pkg/storage"
)

// DefaultURLTTL is the lifetime of download URLs.
const DefaultURLTTL = 10 * time.Minute

// Operation names passed to a Recorder.
const (
	OpUpload   = "upload"
	OpList     = "list"
	OpDownload = "download"
	OpDelete   = "delete"
)

// Recorder observes the outcome of each service operation.
type Recorder interface {
	RecordOperation(op string, err error)
}

// Upload is one file of an upload batch. Open is called only after the
// filename has passed validation.
type Upload struct {
	Open        func() (io.ReadCloser, error)
	Filename    string
	ContentType string
	Size        int64
}

// Uploaded describes a stored upload. Filename is the original name.
type Uploaded struct {
	UpdatedAt   *time.Time `json:"updated_at"`
	ObjectName  string     `json:"object_name"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"content_type"`
	Size        int64      `json:"size"`
}

// Listing is the result of List.
type Listing struct {
	Files []View `json:"files"`
	Admin bool   `json:"admin"`
}

// Service runs file operations for authenticated identities.
type Service struct {
	bucket   storage.Bucket
	signer   storage.Signer
	recorder Recorder
	logger   *slog.Logger
	urlTTL   time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithURLTTL sets the download URL lifetime. Non-positive values are ignored.
func WithURLTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.urlTTL = d
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the operation recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// NewService creates a Service over bucket and signer.
func NewService(bucket storage.Bucket, signer storage.Signer, opts ...Option) *Service {
	s := &Service{
		bucket: bucket,
		signer: signer,
		urlTTL: DefaultURLTTL,
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload stores each file under a fresh key owned by id. Files are written
// one at a time; the first invalid or failing file stops the batch and files
// written before it stay stored.
func (s *Service) Upload(ctx context.Context, id auth.Identity, uploads []Upload) (result []Uploaded, err error) {
	defer func() { s.record(OpUpload, err) }()

	if len(uploads) == 0 {
		return nil, ErrNoFiles
	}

	result = make([]Uploaded, 0, len(uploads))
	for _, u := range uploads {
		ext, err := ValidateExtension(u.Filename)
		if err != nil {
			return result, err
		}

		obj, err := s.put(ctx, id, u, ext)
		if err != nil {
			return result, err
		}

		s.logger.InfoContext(ctx, "file uploaded",
			slog.String("uid", id.Subject),
			slog.String("object_name", obj.Key),
			slog.Int64("size", obj.Size),
		)

		up := Uploaded{
			ObjectName:  obj.Key,
			Filename:    u.Filename,
			Size:        obj.Size,
			ContentType: obj.ContentType,
		}
		if !obj.UpdatedAt.IsZero() {
			t := obj.UpdatedAt
			up.UpdatedAt = &t
		}
		result = append(result, up)
	}
	return result, nil
}

func (s *Service) put(ctx context.Context, id auth.Identity, u Upload, ext string) (*storage.Object, error) {
	if u.Open == nil {
		return nil, fmt.Errorf("files: upload %q has no content", u.Filename)
	}
	body, err := u.Open()
	if err != nil {
		return nil, fmt.Errorf("files: open %q: %w", u.Filename, err)
	}
	defer body.Close()

	contentType := u.ContentType
	if storage.IsGeneric(contentType) {
		contentType = storage.TypeByExtension(ext)
	}

	key := GenerateKey(id.Subject, u.Filename)
	obj, err := s.bucket.Put(ctx, key, body, u.Size, contentType)
	if err != nil {
		return nil, fmt.Errorf("files: store %q: %w", u.Filename, err)
	}
	return obj, nil
}

// List returns the catalog visible to id: every object for admins, the
// caller's own prefix otherwise.
func (s *Service) List(ctx context.Context, id auth.Identity, opts ListOptions) (_ *Listing, err error) {
	defer func() { s.record(OpList, err) }()

	prefix := ""
	if !id.IsAdmin {
		prefix = id.Subject + "/"
	}

	objects, err := s.bucket.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("files: list: %w", err)
	}

	views := make([]View, 0, len(objects))
	for _, obj := range objects {
		views = append(views, NewView(obj, s.bucket.Name()))
	}

	return &Listing{Files: Catalog(views, opts), Admin: id.IsAdmin}, nil
}

// DownloadURL returns a signed attachment URL for key. Existence is checked
// before ownership.
func (s *Service) DownloadURL(ctx context.Context, id auth.Identity, key string) (_ string, err error) {
	defer func() { s.record(OpDownload, err) }()

	if err := s.exists(ctx, key); err != nil {
		return "", err
	}
	if err := CanDownload(id, key); err != nil {
		return "", err
	}

	url, err := s.signer.SignedURL(ctx, key,
		storage.WithExpiry(s.urlTTL),
		storage.WithDownload(DisplayName(key)),
	)
	if err != nil {
		if errors.Is(err, storage.ErrNoCredentials) {
			return "", fmt.Errorf("%w: %v", ErrSigningUnavailable, err)
		}
		return "", fmt.Errorf("files: sign %s: %w", key, err)
	}
	return url, nil
}

// Delete removes key when id owns it. Existence is checked before ownership.
func (s *Service) Delete(ctx context.Context, id auth.Identity, key string) (err error) {
	defer func() { s.record(OpDelete, err) }()

	if err := s.exists(ctx, key); err != nil {
		return err
	}
	if err := CanDelete(id, key); err != nil {
		return err
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return fmt.Errorf("files: delete %s: %w", key, err)
	}

	s.logger.InfoContext(ctx, "file deleted",
		slog.String("uid", id.Subject),
		slog.String("object_name", key),
	)
	return nil
}

func (s *Service) exists(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrNotFound)
	}
	_, err := s.bucket.Stat(ctx, key)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	default:
		return fmt.Errorf("files: stat %s: %w", key, err)
	}
}

func (s *Service) record(op string, err error) {
	if s.recorder != nil {
		s.recorder.RecordOperation(op, err)
	}
}
