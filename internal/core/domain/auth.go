package domain

import "time"

// Credentials is the bearer credential issued by the backend on login.
// Only one credential is held per installation.
type Credentials struct {
	// Token is the bearer access token.
	Token string

	// Email is the account the token was issued for.
	Email string

	// ExpiresAt is read from the token's exp claim.
	// Zero means the expiry is unknown.
	ExpiresAt time.Time

	// CreatedAt is when the credential was obtained.
	CreatedAt time.Time
}

// Expired reports whether the credential has passed its known expiry.
func (c *Credentials) Expired(now time.Time) bool {
	if c == nil || c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(c.ExpiresAt)
}

// Valid reports whether the credential can be used for a request.
func (c *Credentials) Valid(now time.Time) bool {
	return c != nil && c.Token != "" && !c.Expired(now)
}
