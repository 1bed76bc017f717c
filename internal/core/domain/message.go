package domain

// Sender identifies who wrote a message.
type Sender string

const (
	// SenderUser is a message typed by the user.
	SenderUser Sender = "user"

	// SenderBot is an answer (or failure) from the backend.
	SenderBot Sender = "bot"
)

// Source is a retrieved passage the backend cited for an answer.
type Source struct {
	// DocumentID is the document the passage came from.
	DocumentID int64

	// Filename is the name of that document.
	Filename string

	// Text is the passage itself.
	Text string
}

// Message is one entry of a conversation thread.
type Message struct {
	// ID is unique within the session.
	ID string

	// Text is the message body. For failed bot messages it is the error text.
	Text string

	// Sender is who wrote the message.
	Sender Sender

	// Sources are attached to bot answers only.
	Sources []Source

	// ResponseTo is the ID of the user message a bot message answers.
	ResponseTo string

	// Failed marks a bot message recording a failed exchange.
	// Failed exchanges are never sent back as history.
	Failed bool
}

// IsUser reports whether the message was written by the user.
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

// IsAnswer reports whether the message is a successful bot answer.
func (m Message) IsAnswer() bool {
	return m.Sender == SenderBot && !m.Failed
}
