package mcp

import (
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session runs chat exchanges.
	Session driving.SessionController

	// Documents lists and refreshes the user's documents.
	Documents driving.DocumentService

	// Registry resolves document IDs against the last-known list.
	Registry driving.DocumentRegistry

	// Selection tracks the active document.
	Selection driving.SelectionCoordinator
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionController
	}
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	if p.Registry == nil {
		return ErrMissingRegistry
	}
	if p.Selection == nil {
		return ErrMissingSelection
	}
	return nil
}
