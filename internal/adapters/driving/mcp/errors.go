// Package mcp provides an MCP (Model Context Protocol) server adapter for docchat.
// It lets AI assistants list the user's documents and chat with them.
package mcp

import "errors"

// ErrMissingSessionController is returned when the session controller is not provided.
var ErrMissingSessionController = errors.New("mcp: session controller is required")

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("mcp: document service is required")

// ErrMissingSelection is returned when the selection coordinator is not provided.
var ErrMissingSelection = errors.New("mcp: selection coordinator is required")

// ErrMissingRegistry is returned when the document registry is not provided.
var ErrMissingRegistry = errors.New("mcp: document registry is required")
