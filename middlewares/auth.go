package middlewares

import (
	"log/slog"

	"github.com/dmitrymomot/filevault/internal"
	"github.com/dmitrymomot/filevault/pkg/auth"
)

type identityKey struct{}

// Authenticate resolves the Authorization header into an auth.Identity and
// stores it in the request context. Failures are logged at WARN and returned
// as errors wrapping auth.ErrUnauthenticated.
func Authenticate(authn *auth.Authenticator) internal.Middleware {
	extract := internal.NewExtractor(internal.FromHeader("Authorization"))

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			header, _ := extract.Extract(c)

			id, err := authn.Authenticate(c, header)
			if err != nil {
				c.LogWarn("authentication failed",
					slog.String("path", c.Request().URL.Path),
					slog.Any("error", err),
				)
				return err
			}

			c.Set(identityKey{}, id)
			return next(c)
		}
	}
}

// GetIdentity returns the authenticated identity.
// The second value is false when Authenticate did not run.
func GetIdentity(c internal.Context) (auth.Identity, bool) {
	id, ok := c.Get(identityKey{}).(auth.Identity)
	return id, ok
}
