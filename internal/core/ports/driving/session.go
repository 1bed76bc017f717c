package driving

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// SessionController runs the submit-message protocol.
//
// Submit and Resolve are split so event-loop surfaces can render the
// optimistic message before the network round-trip.
type SessionController interface {
	// Submit guards, appends the optimistic user message, and builds the
	// request for the active document. Guard rejections return an error
	// and leave no trace in the conversation.
	Submit(ctx context.Context, text string) (*domain.Submission, error)

	// Resolve dispatches a submission and files the answer, or the failure,
	// under the submission's captured document. It returns the appended
	// bot message.
	Resolve(ctx context.Context, sub *domain.Submission) domain.Message

	// Send is Submit followed by Resolve.
	Send(ctx context.Context, text string) (domain.Message, error)

	// SendTo selects the document, then sends.
	SendTo(ctx context.Context, docID int64, text string) (domain.Message, error)

	// Conversation returns the document's thread.
	Conversation(docID int64) domain.Conversation

	// InFlight reports whether the document has a pending request.
	InFlight(docID int64) bool
}

// SelectionCoordinator tracks the active document.
type SelectionCoordinator interface {
	// Select makes doc active. Only completed documents are selectable.
	Select(doc domain.Document) error

	// NewChat clears the active document's conversation and unsets the
	// selection. Idempotent.
	NewChat()

	// OnDocumentDeleted handles a server-confirmed deletion.
	OnDocumentDeleted(docID int64)

	// Reconcile drops state for documents missing from docs.
	Reconcile(docs []domain.Document)

	// Active returns the active document ID.
	Active() (int64, bool)

	// Subscribe registers fn to be called when the selection changes.
	Subscribe(fn func(id int64, ok bool))
}
