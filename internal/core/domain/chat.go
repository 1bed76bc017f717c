package domain

// GenericFailureMessage is shown for a failed request when the backend
// gives no detail.
const GenericFailureMessage = "Error calling the API. Please try again."

// ChatQuery is one request to the chat endpoint.
type ChatQuery struct {
	// Query is the user's question.
	Query string

	// History is the prior exchanges, oldest first.
	History []HistoryPair

	// DocumentID scopes retrieval to a single document.
	DocumentID int64
}

// ChatAnswer is a successful chat response.
type ChatAnswer struct {
	// Answer is the generated text.
	Answer string

	// Sources are the passages the answer cites. May be empty.
	Sources []Source
}

// SuggestedQuestions are offered when a conversation is fresh.
var SuggestedQuestions = []string{
	"Summarise the main content of this document.",
	"What are the key points in this document?",
	"List the important terms mentioned.",
}
