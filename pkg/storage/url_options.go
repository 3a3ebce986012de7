package storage

import (
	"fmt"
	"time"
)

// URLOption configures signed URL generation.
type URLOption func(*urlOptions)

type urlOptions struct {
	downloadName string
	expiry       time.Duration
}

// DefaultURLExpiry is the default lifetime of a signed URL.
const DefaultURLExpiry = 10 * time.Minute

// WithExpiry sets the signed URL lifetime. Non-positive values keep the default.
func WithExpiry(d time.Duration) URLOption {
	return func(o *urlOptions) {
		if d > 0 {
			o.expiry = d
		}
	}
}

// WithDownload forces "attachment" disposition with filename as the suggested save name.
func WithDownload(filename string) URLOption {
	return func(o *urlOptions) {
		o.downloadName = filename
	}
}

func applyURLOptions(opts []URLOption) *urlOptions {
	o := &urlOptions{expiry: DefaultURLExpiry}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func attachmentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
