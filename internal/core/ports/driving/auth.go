package driving

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// AuthGate holds the credential and guards protected operations.
type AuthGate interface {
	// Login authenticates and stores the credential.
	Login(ctx context.Context, email, password string) error

	// Register creates an account. It does not log in.
	Register(ctx context.Context, email, password string) error

	// Logout clears the credential.
	Logout(ctx context.Context) error

	// Restore loads a previously saved credential. Expired ones are discarded.
	Restore(ctx context.Context) error

	// Authenticated reports whether a usable credential is present.
	Authenticated() bool

	// Credentials returns a copy of the current credential, or nil.
	Credentials() *domain.Credentials

	// Token returns the bearer token or an auth error.
	Token(ctx context.Context) (string, error)

	// OnChange registers fn to be called when authentication state changes.
	OnChange(fn func(authenticated bool))
}
