// Package tui provides an interactive terminal user interface for docchat.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// ConversationFeed publishes a snapshot after every conversation change.
type ConversationFeed interface {
	Subscribe(fn func(*domain.Conversations))
}

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Auth holds the credential and performs login and registration.
	Auth driving.AuthGate

	// Documents uploads and deletes documents.
	Documents driving.DocumentService

	// Registry holds the last-known document list.
	Registry driving.DocumentRegistry

	// Session submits chat messages.
	Session driving.SessionController

	// Selection tracks the active document.
	Selection driving.SelectionCoordinator

	// Conversations signals transcript changes. Optional.
	Conversations ConversationFeed
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Auth == nil {
		return ErrMissingAuthGate
	}
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	if p.Registry == nil {
		return ErrMissingRegistry
	}
	if p.Session == nil {
		return ErrMissingSessionController
	}
	if p.Selection == nil {
		return ErrMissingSelection
	}
	return nil
}
