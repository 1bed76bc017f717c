package driving

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// DocumentService manages the user's uploaded documents.
type DocumentService interface {
	// List refreshes the registry and returns the current documents.
	List(ctx context.Context) ([]domain.Document, error)

	// Upload validates a local PDF and sends it to the backend.
	Upload(ctx context.Context, path string) (*domain.Document, error)

	// Delete removes a document and drops its conversation once the
	// server confirms.
	Delete(ctx context.Context, id int64) error
}

// DocumentRegistry holds the last-known document list.
type DocumentRegistry interface {
	// Refresh replaces the list with a fresh fetch.
	// On failure the previous list is kept.
	Refresh(ctx context.Context) error

	// RequestRefresh is a throttled, user-initiated Refresh.
	// Returns domain.ErrRateLimited when called too often.
	RequestRefresh(ctx context.Context) error

	// Documents returns the current list.
	Documents() []domain.Document

	// Get returns a document by ID from the current list.
	Get(id int64) (domain.Document, bool)

	// Loaded reports whether any fetch has succeeded yet.
	Loaded() bool

	// Subscribe registers fn to be called after each successful refresh.
	Subscribe(fn func([]domain.Document))
}
