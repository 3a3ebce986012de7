package auth

import "errors"

var (
	// ErrUnauthenticated is returned for a missing, malformed or rejected credential.
	ErrUnauthenticated = errors.New("auth: unauthenticated")

	// ErrMissingToken means the header was absent or not a bearer credential.
	ErrMissingToken = errors.New("auth: missing bearer token")

	// ErrInvalidClaims means a verified token did not carry a subject.
	ErrInvalidClaims = errors.New("auth: invalid claims")

	// ErrNoVerifier means neither OIDC nor HMAC settings were provided.
	ErrNoVerifier = errors.New("auth: no token verifier configured")
)
