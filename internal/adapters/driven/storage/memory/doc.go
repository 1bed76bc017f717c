// Package memory provides in-memory stores for tests and for ephemeral
// sessions where nothing should outlive the process.
package memory
