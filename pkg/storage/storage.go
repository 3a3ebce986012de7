package storage

import (
	"context"
	"io"
	"time"
)

// Object describes a stored blob as reported by the object store.
type Object struct {
	// Key is the full object key inside the bucket.
	Key string

	// ContentType is the stored MIME type. May be empty when the store
	// does not report one.
	ContentType string

	// UpdatedAt is the last modification time. Zero when unknown.
	UpdatedAt time.Time

	// Size is the object size in bytes. Zero when unknown.
	Size int64
}

// Bucket is the object store boundary: a flat key namespace with prefix listing.
type Bucket interface {
	// Name returns the bucket name.
	Name() string

	// Put writes r under key and returns the stored object's metadata.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*Object, error)

	// Stat returns metadata for key, or ErrNotFound.
	Stat(ctx context.Context, key string) (*Object, error)

	// List returns every object whose key starts with prefix.
	// An empty prefix lists the whole bucket.
	List(ctx context.Context, prefix string) ([]Object, error)

	// Delete removes key. Deleting a missing key returns ErrNotFound.
	Delete(ctx context.Context, key string) error

	// Ping checks that the bucket is reachable.
	Ping(ctx context.Context) error
}

// Signer issues time-limited download URLs for private objects.
type Signer interface {
	SignedURL(ctx context.Context, key string, opts ...URLOption) (string, error)
}

// Config holds S3-compatible storage configuration.
type Config struct {
	// Bucket is the bucket name (required).
	Bucket string `env:"BUCKET,required,notEmpty"`

	// Driver selects the implementation: "s3" or "memory".
	Driver string `env:"STORAGE_DRIVER" envDefault:"s3"`

	// Region is the AWS region (default: us-east-1).
	Region string `env:"STORAGE_REGION" envDefault:"us-east-1"`

	// Endpoint is a custom S3 endpoint for MinIO and other compatible services.
	Endpoint string `env:"STORAGE_ENDPOINT"`

	// AccessKey and SecretKey are static credentials. When both are empty
	// the default AWS credential chain is used.
	AccessKey string `env:"STORAGE_ACCESS_KEY"`
	SecretKey string `env:"STORAGE_SECRET_KEY"`

	// ListConcurrency bounds parallel metadata lookups while listing.
	ListConcurrency int `env:"STORAGE_LIST_CONCURRENCY" envDefault:"8"`

	// PathStyle enables path-style addressing (required for MinIO).
	PathStyle bool `env:"STORAGE_PATH_STYLE"`
}

// Supported drivers.
const (
	DriverS3     = "s3"
	DriverMemory = "memory"
)

// Default configuration values.
const (
	DefaultRegion          = "us-east-1"
	DefaultListConcurrency = 8
)

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.ListConcurrency <= 0 {
		c.ListConcurrency = DefaultListConcurrency
	}
}

func (c *Config) validate() error {
	if c.Bucket == "" {
		return ErrInvalidConfig
	}
	// Static credentials come in pairs.
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return ErrInvalidConfig
	}
	return nil
}

// Open builds the Bucket and Signer selected by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Bucket, Signer, error) {
	switch cfg.Driver {
	case "", DriverS3:
		s, err := New(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case DriverMemory:
		if cfg.Bucket == "" {
			return nil, nil, ErrInvalidConfig
		}
		m := NewMemory(cfg.Bucket)
		return m, m, nil
	default:
		return nil, nil, ErrUnknownDriver
	}
}
