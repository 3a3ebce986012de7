package auth

import (
	"fmt"
	"strings"
)

// Claims are the verified fields a Verifier extracts from a token.
type Claims struct {
	Subject       string
	Email         string
	EmailVerified bool
}

// Identity is the authenticated caller of a single request.
type Identity struct {
	// Subject is the issuer-assigned user id.
	Subject string `json:"uid"`
	// Email is lowercased. May be empty.
	Email         string `json:"email"`
	EmailVerified bool   `json:"-"`
	IsAdmin       bool   `json:"is_admin"`
}

// NewIdentity validates claims and derives the admin flag from policy.
// A nil policy grants no admin role.
func NewIdentity(c Claims, policy *AdminPolicy) (Identity, error) {
	subject := c.Subject
	if strings.TrimSpace(subject) == "" {
		return Identity{}, fmt.Errorf("%w: empty subject", ErrInvalidClaims)
	}
	if strings.TrimSpace(subject) != subject {
		// Trimming would hand the caller another user's prefix.
		return Identity{}, fmt.Errorf("%w: subject has surrounding whitespace", ErrInvalidClaims)
	}
	if strings.Contains(subject, "/") {
		// The subject becomes the object key prefix.
		return Identity{}, fmt.Errorf("%w: subject contains '/'", ErrInvalidClaims)
	}

	id := Identity{
		Subject:       subject,
		Email:         normalizeEmail(c.Email),
		EmailVerified: c.EmailVerified,
	}
	id.IsAdmin = policy.IsAdmin(id.Email)
	return id, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
