package tui

import "errors"

// ErrMissingAuthGate is returned when the auth gate is not provided.
var ErrMissingAuthGate = errors.New("tui: auth gate is required")

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("tui: document service is required")

// ErrMissingRegistry is returned when the document registry is not provided.
var ErrMissingRegistry = errors.New("tui: document registry is required")

// ErrMissingSessionController is returned when the session controller is not provided.
var ErrMissingSessionController = errors.New("tui: session controller is required")

// ErrMissingSelection is returned when the selection coordinator is not provided.
var ErrMissingSelection = errors.New("tui: selection coordinator is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
