package driven

import "context"

// TokenProvider provides the bearer token for authenticated API calls.
// There is no refresh: an expired token is reported, not renewed.
type TokenProvider interface {
	// Token returns the current access token.
	// Returns domain.ErrAuthRequired or domain.ErrAuthExpired when unusable.
	Token(ctx context.Context) (string, error)
}
