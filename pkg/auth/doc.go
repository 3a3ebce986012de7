// Package auth turns a raw Authorization header into a verified Identity.
//
// The flow has three steps: ParseBearer extracts the token, a Verifier
// checks it with the identity provider, and the AdminPolicy decides whether
// the verified email carries the admin role. Authenticator ties them
// together; every failure collapses into ErrUnauthenticated.
//
// Two verifiers are provided. OIDCVerifier validates provider-issued ID
// tokens (Firebase secure-token issuer by default) with go-oidc.
// HMACVerifier validates HS256 tokens signed with a shared secret and is
// meant for local development and tests.
package auth
