package auth

import "strings"

// BearerPrefix is the case-sensitive scheme prefix, including its single space.
const BearerPrefix = "Bearer "

// ParseBearer extracts the token from an Authorization header value.
// Surrounding whitespace around the token is dropped. It fails with
// ErrMissingToken when the header is empty, uses another scheme, or carries
// a blank token.
func ParseBearer(header string) (string, error) {
	token, ok := strings.CutPrefix(header, BearerPrefix)
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
