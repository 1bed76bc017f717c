package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedFile indicates an upload that is not a readable PDF.
	ErrUnsupportedFile = errors.New("unsupported file: only PDF documents are accepted")

	// ErrRateLimited indicates a user-initiated action was throttled.
	ErrRateLimited = errors.New("rate limited")

	// Authentication Errors.

	// ErrAuthRequired indicates no credential is present.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthExpired indicates the credential has passed its expiry.
	// There is no refresh; the user must log in again.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrAuthInvalid indicates the backend rejected the credential.
	ErrAuthInvalid = errors.New("authentication invalid")

	// Session Errors.

	// ErrEmptyMessage indicates a submission with no text after trimming.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrNoActiveDocument indicates a submission with no document selected.
	ErrNoActiveDocument = errors.New("no active document")

	// ErrSubmissionInFlight indicates the document already has a pending request.
	ErrSubmissionInFlight = errors.New("a request for this document is still in flight")

	// ErrDocumentNotSelectable indicates an attempt to select a document
	// that has not finished processing.
	ErrDocumentNotSelectable = errors.New("document is not ready for chat")
)

// IsGuardRejection reports whether err is a silent validation rejection
// from the submission guard.
func IsGuardRejection(err error) bool {
	return errors.Is(err, ErrEmptyMessage) ||
		errors.Is(err, ErrNoActiveDocument) ||
		errors.Is(err, ErrSubmissionInFlight)
}
