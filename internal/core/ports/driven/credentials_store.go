package driven

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// CredentialsStore persists the bearer credential between runs.
type CredentialsStore interface {
	// Save stores or replaces the credential.
	Save(ctx context.Context, creds domain.Credentials) error

	// Get retrieves the stored credential.
	// Returns nil and no error if none is stored.
	Get(ctx context.Context) (*domain.Credentials, error)

	// Delete removes the stored credential. Deleting nothing is not an error.
	Delete(ctx context.Context) error
}
