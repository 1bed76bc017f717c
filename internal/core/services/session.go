package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Ensure SessionController implements the interface.
var _ driving.SessionController = (*SessionController)(nil)

// AuthFailureMessage is shown when a submission has no usable credential.
const AuthFailureMessage = "Authentication error. Please log in again."

// SessionController runs the submit-message protocol against the active
// document.
type SessionController struct {
	store     *ConversationStore
	selection *SelectionCoordinator
	registry  driving.DocumentRegistry
	chat      driven.ChatAPI
	tokens    driven.TokenProvider
	notifier  driven.Notifier
	window    int
	newID     func() string

	mu       sync.Mutex
	inFlight map[int64]bool
}

// SessionDeps are the collaborators of a SessionController.
type SessionDeps struct {
	Store     *ConversationStore
	Selection *SelectionCoordinator
	Registry  driving.DocumentRegistry
	Chat      driven.ChatAPI
	Tokens    driven.TokenProvider
	Notifier  driven.Notifier

	// HistoryWindow is the number of trailing messages searched for
	// history. Zero uses domain.DefaultHistoryWindow.
	HistoryWindow int
}

// NewSessionController creates a session controller.
func NewSessionController(deps SessionDeps) *SessionController {
	window := deps.HistoryWindow
	if window <= 0 {
		window = domain.DefaultHistoryWindow
	}
	return &SessionController{
		store:     deps.Store,
		selection: deps.Selection,
		registry:  deps.Registry,
		chat:      deps.Chat,
		tokens:    deps.Tokens,
		notifier:  deps.Notifier,
		window:    window,
		newID:     uuid.NewString,
		inFlight:  make(map[int64]bool),
	}
}

// Submit checks the guard, appends the optimistic user message and builds
// the request. Nothing is recorded when the guard rejects.
func (s *SessionController) Submit(ctx context.Context, text string) (*domain.Submission, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}

	docID, ok := s.selection.Active()
	if !ok {
		return nil, domain.ErrNoActiveDocument
	}

	if s.InFlight(docID) {
		return nil, domain.ErrSubmissionInFlight
	}

	if s.tokens != nil {
		if _, err := s.tokens.Token(ctx); err != nil {
			notify(s.notifier, domain.NotifyWarn, AuthFailureMessage)
			return nil, err
		}
	}

	s.mu.Lock()
	if s.inFlight[docID] {
		s.mu.Unlock()
		return nil, domain.ErrSubmissionInFlight
	}
	s.inFlight[docID] = true
	s.mu.Unlock()

	history := s.store.Get(docID).History(s.window)

	userMsg := domain.Message{
		ID:     s.newID(),
		Text:   text,
		Sender: domain.SenderUser,
	}
	s.store.Append(docID, userMsg)

	logger.Debug("submitted message %s to document %d with %d history pairs", userMsg.ID, docID, len(history))

	return &domain.Submission{
		DocumentID:  docID,
		UserMessage: userMsg,
		Query: domain.ChatQuery{
			Query:      text,
			History:    history,
			DocumentID: docID,
		},
	}, nil
}

// Resolve sends the submission and files the outcome under the document
// that was active when it was submitted. It clears the in-flight flag on
// every path.
func (s *SessionController) Resolve(ctx context.Context, sub *domain.Submission) domain.Message {
	defer s.release(sub.DocumentID)

	reply := domain.Message{
		ID:         s.newID(),
		Sender:     domain.SenderBot,
		ResponseTo: sub.UserMessage.ID,
	}

	answer, err := s.ask(ctx, sub.Query)
	if err != nil {
		logger.Warn("chat request for document %d failed: %v", sub.DocumentID, err)
		reply.Text = failureText(err)
		reply.Failed = true
		notify(s.notifier, domain.NotifyError, reply.Text)
	} else {
		reply.Text = answer.Answer
		reply.Sources = answer.Sources
	}

	s.store.Append(sub.DocumentID, reply)
	return reply
}

// Send submits text to the active document and waits for the answer.
func (s *SessionController) Send(ctx context.Context, text string) (domain.Message, error) {
	sub, err := s.Submit(ctx, text)
	if err != nil {
		return domain.Message{}, err
	}
	return s.Resolve(ctx, sub), nil
}

// SendTo selects docID and sends text to it.
func (s *SessionController) SendTo(ctx context.Context, docID int64, text string) (domain.Message, error) {
	if s.registry == nil {
		return domain.Message{}, errors.New("document registry not configured")
	}
	if !s.registry.Loaded() {
		if err := s.registry.Refresh(ctx); err != nil {
			return domain.Message{}, fmt.Errorf("failed to load documents: %w", err)
		}
	}

	doc, ok := s.registry.Get(docID)
	if !ok {
		return domain.Message{}, fmt.Errorf("document %d: %w", docID, domain.ErrNotFound)
	}
	if err := s.selection.Select(doc); err != nil {
		return domain.Message{}, fmt.Errorf("document %d (%s): %w", docID, doc.Status.Description(), err)
	}

	return s.Send(ctx, text)
}

// Conversation returns the document's thread.
func (s *SessionController) Conversation(docID int64) domain.Conversation {
	return s.store.Get(docID)
}

// InFlight reports whether the document has a pending request.
func (s *SessionController) InFlight(docID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[docID]
}

func (s *SessionController) ask(ctx context.Context, query domain.ChatQuery) (*domain.ChatAnswer, error) {
	if s.chat == nil {
		return nil, errors.New("chat API not configured")
	}
	answer, err := s.chat.Ask(ctx, query)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, errors.New("empty chat response")
	}
	return answer, nil
}

func (s *SessionController) release(docID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, docID)
}

// failureText picks the user-facing text for a failed exchange.
func failureText(err error) string {
	var fm driven.FailureMessage
	if errors.As(err, &fm) {
		return fm.Message()
	}
	if errors.Is(err, domain.ErrAuthRequired) || errors.Is(err, domain.ErrAuthExpired) ||
		errors.Is(err, domain.ErrAuthInvalid) {
		return AuthFailureMessage
	}
	return domain.GenericFailureMessage
}
