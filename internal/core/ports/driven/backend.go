package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// AuthAPI is the backend's account endpoints. Neither call needs a credential.
type AuthAPI interface {
	// Login exchanges an email and password for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)

	// Register creates an account.
	Register(ctx context.Context, email, password string) error
}

// DocumentAPI is the backend's document endpoints.
// All calls are authenticated with the current credential.
type DocumentAPI interface {
	// List returns every document owned by the user, in server order.
	List(ctx context.Context) ([]domain.Document, error)

	// Upload sends a PDF. Processing continues asynchronously on the server.
	Upload(ctx context.Context, filename string, content io.Reader) (*domain.Document, error)

	// Delete removes a document. A nil error means the server confirmed it.
	Delete(ctx context.Context, id int64) error
}

// ChatAPI is the backend's answer-generation endpoint.
type ChatAPI interface {
	// Ask sends one question with its history and returns the answer.
	Ask(ctx context.Context, query domain.ChatQuery) (*domain.ChatAnswer, error)
}

// FailureMessage is implemented by backend errors that carry text suitable
// for showing to the user.
type FailureMessage interface {
	error

	// Message returns the server-provided detail or a generic fallback.
	Message() string
}
