package domain

// Submission is an accepted chat message awaiting its answer.
// DocumentID is captured when the message is submitted; the answer is
// always filed under it, whatever is selected by the time it arrives.
type Submission struct {
	// DocumentID is the thread the message was posted to.
	DocumentID int64

	// UserMessage is the optimistic message already in the thread.
	UserMessage Message

	// Query is the request to dispatch.
	Query ChatQuery
}
