package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

// Ensure CredentialsStore implements the interface.
var _ driven.CredentialsStore = (*CredentialsStore)(nil)

// CredentialsStore keeps the credential in memory.
type CredentialsStore struct {
	mu    sync.RWMutex
	creds *domain.Credentials
}

// NewCredentialsStore creates an empty credentials store.
func NewCredentialsStore() *CredentialsStore {
	return &CredentialsStore{}
}

// Save stores or replaces the credential.
func (s *CredentialsStore) Save(_ context.Context, creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = &creds
	return nil
}

// Get returns the stored credential, or nil.
func (s *CredentialsStore) Get(_ context.Context) (*domain.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return nil, nil
	}
	c := *s.creds
	return &c, nil
}

// Delete removes the credential.
func (s *CredentialsStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	return nil
}
