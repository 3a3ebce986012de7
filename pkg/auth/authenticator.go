package auth

import (
	"context"
	"fmt"
)

// Verifier validates a raw token with the identity provider.
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(ctx context.Context, token string) (Claims, error)

// Verify calls f.
func (f VerifierFunc) Verify(ctx context.Context, token string) (Claims, error) {
	return f(ctx, token)
}

// Authenticator resolves Authorization headers into identities.
type Authenticator struct {
	verifier Verifier
	policy   *AdminPolicy
}

// NewAuthenticator creates an Authenticator. A nil policy grants no admins.
func NewAuthenticator(verifier Verifier, policy *AdminPolicy) *Authenticator {
	if policy == nil {
		policy = NewAdminPolicy()
	}
	return &Authenticator{verifier: verifier, policy: policy}
}

// Authenticate parses the header, verifies the token and returns the identity.
// Every failure wraps ErrUnauthenticated; the cause is kept for logging only.
func (a *Authenticator) Authenticate(ctx context.Context, header string) (Identity, error) {
	token, err := ParseBearer(header)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	claims, err := a.verifier.Verify(ctx, token)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	id, err := NewIdentity(claims, a.policy)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	return id, nil
}
