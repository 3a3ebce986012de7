// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/filevault/pkg/auth"
	"github.com/dmitrymomot/filevault/pkg/logger"
	"github.com/dmitrymomot/filevault/pkg/storage"
)

// ErrInvalid is returned for values that parse but make no sense.
var ErrInvalid = errors.New("config: invalid value")

// Config is the complete service configuration.
type Config struct {
	// AdminEmails is a comma-separated allow-list.
	AdminEmails string `env:"ADMIN_EMAILS"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://127.0.0.1:5173"`

	Log     logger.Config
	Auth    auth.Config
	Storage storage.Config

	Port            int           `env:"PORT" envDefault:"8080"`
	UploadMaxMemory int64         `env:"UPLOAD_MAX_MEMORY" envDefault:"33554432"`
	SignedURLTTL    time.Duration `env:"SIGNED_URL_TTL" envDefault:"10m"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the configuration.
func Load() (*Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: PORT %d", ErrInvalid, c.Port)
	}
	if c.UploadMaxMemory <= 0 {
		return fmt.Errorf("%w: UPLOAD_MAX_MEMORY %d", ErrInvalid, c.UploadMaxMemory)
	}
	if c.SignedURLTTL <= 0 {
		return fmt.Errorf("%w: SIGNED_URL_TTL %s", ErrInvalid, c.SignedURLTTL)
	}
	switch c.Storage.Driver {
	case storage.DriverS3, storage.DriverMemory:
	default:
		return fmt.Errorf("%w: STORAGE_DRIVER %q", ErrInvalid, c.Storage.Driver)
	}
	return nil
}

// Address returns the listen address for Port.
func (c *Config) Address() string {
	return ":" + strconv.Itoa(c.Port)
}

// Admins returns the normalized admin emails.
func (c *Config) Admins() []string {
	return auth.ParseAdminList(c.AdminEmails)
}

// Origins returns the trimmed, non-empty CORS origins.
func (c *Config) Origins() []string {
	out := make([]string, 0, len(c.AllowedOrigins))
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
