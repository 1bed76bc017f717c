// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/docchat/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLogin is the login and registration form.
	ViewLogin ViewType = iota
	// ViewMain is the document sidebar and chat pane.
	ViewMain
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewMain:
		return "main"
	default:
		return "unknown"
	}
}

// AuthCompleted carries the result of a login or registration.
type AuthCompleted struct {
	Register bool
	Email    string
	Err      error
}

// LoggedOut is sent after the credential has been cleared.
type LoggedOut struct {
	Err error
}

// StateChanged is sent when documents, selection, conversations or
// authentication change in the services. Views re-read what they show.
type StateChanged struct{}

// Notified carries a transient notification for the status bar.
type Notified struct {
	Notification domain.Notification
}

// DocumentSelected is sent when a document becomes the chat target.
type DocumentSelected struct {
	DocumentID int64
}

// AnswerReceived is sent when a submission has been resolved.
type AnswerReceived struct {
	DocumentID int64
	Message    domain.Message
}

// UploadCompleted carries the result of an upload.
type UploadCompleted struct {
	Path     string
	Document *domain.Document
	Err      error
}

// DeleteCompleted carries the result of a deletion.
type DeleteCompleted struct {
	DocumentID int64
	Err        error
}

// RefreshCompleted carries the result of a user-requested refresh.
type RefreshCompleted struct {
	Err error
}

// Quit is sent to exit the application.
type Quit struct{}
