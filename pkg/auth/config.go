package auth

import (
	"context"
	"strings"
)

// Config selects and configures the token verifier.
type Config struct {
	// ProjectID sets issuer and audience for Firebase ID tokens.
	ProjectID string `env:"AUTH_PROJECT_ID"`

	// Issuer, Audience and JWKSURL override the Firebase defaults for other OIDC providers.
	Issuer   string `env:"AUTH_ISSUER"`
	Audience string `env:"AUTH_AUDIENCE"`
	JWKSURL  string `env:"AUTH_JWKS_URL"`

	// HMACSecret enables HS256 tokens when no OIDC settings are present.
	HMACSecret string `env:"AUTH_HMAC_SECRET"`
}

// FirebaseIssuerPrefix is the issuer of Firebase ID tokens, followed by the project id.
const FirebaseIssuerPrefix = "https://securetoken.google.com/"

func (c Config) oidcEnabled() bool {
	return c.ProjectID != "" || c.Issuer != "" || c.JWKSURL != ""
}

func (c Config) issuer() string {
	if c.Issuer != "" {
		return strings.TrimRight(c.Issuer, "/")
	}
	if c.ProjectID != "" {
		return FirebaseIssuerPrefix + c.ProjectID
	}
	return ""
}

func (c Config) audience() string {
	if c.Audience != "" {
		return c.Audience
	}
	return c.ProjectID
}

// NewVerifier builds the verifier selected by cfg. OIDC settings win over HMAC.
func NewVerifier(ctx context.Context, cfg Config) (Verifier, error) {
	switch {
	case cfg.oidcEnabled():
		return NewOIDCVerifier(ctx, cfg)
	case cfg.HMACSecret != "":
		return NewHMACVerifier([]byte(cfg.HMACSecret)), nil
	default:
		return nil, ErrNoVerifier
	}
}
