package mcp

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

type mockSession struct {
	SendToFunc func(ctx context.Context, docID int64, text string) (domain.Message, error)
	threads    map[int64]domain.Conversation
}

func (m *mockSession) Submit(context.Context, string) (*domain.Submission, error) {
	return nil, domain.ErrNoActiveDocument
}

func (m *mockSession) Resolve(context.Context, *domain.Submission) domain.Message {
	return domain.Message{}
}

func (m *mockSession) Send(context.Context, string) (domain.Message, error) {
	return domain.Message{}, domain.ErrNoActiveDocument
}

func (m *mockSession) SendTo(ctx context.Context, docID int64, text string) (domain.Message, error) {
	if m.SendToFunc != nil {
		return m.SendToFunc(ctx, docID, text)
	}
	return domain.Message{Sender: domain.SenderBot, Text: "ok"}, nil
}

func (m *mockSession) Conversation(docID int64) domain.Conversation {
	return m.threads[docID]
}

func (m *mockSession) InFlight(int64) bool { return false }

type mockDocuments struct {
	docs []domain.Document
	err  error
}

func (m *mockDocuments) List(context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}

func (m *mockDocuments) Upload(context.Context, string) (*domain.Document, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockDocuments) Delete(context.Context, int64) error {
	return domain.ErrNotImplemented
}

type mockRegistry struct {
	docs      []domain.Document
	loaded    bool
	refreshes int
}

func (m *mockRegistry) Refresh(context.Context) error {
	m.refreshes++
	m.loaded = true
	return nil
}

func (m *mockRegistry) RequestRefresh(ctx context.Context) error { return m.Refresh(ctx) }
func (m *mockRegistry) Documents() []domain.Document { return m.docs }
func (m *mockRegistry) Loaded() bool { return m.loaded }
func (m *mockRegistry) Subscribe(func([]domain.Document)) {}

func (m *mockRegistry) Get(id int64) (domain.Document, bool) {
	return domain.FindDocument(m.docs, id)
}

type mockSelection struct {
	selected []int64
	newChats int
}

func (m *mockSelection) Select(doc domain.Document) error {
	if !doc.Selectable() {
		return domain.ErrDocumentNotSelectable
	}
	m.selected = append(m.selected, doc.ID)
	return nil
}

func (m *mockSelection) NewChat() { m.newChats++ }

func (m *mockSelection) Subscribe(func(int64, bool)) {}
func (m *mockSelection) OnDocumentDeleted(int64) {}
func (m *mockSelection) Reconcile([]domain.Document) {}

func (m *mockSelection) Active() (int64, bool) {
	if len(m.selected) == 0 {
		return 0, false
	}
	return m.selected[len(m.selected)-1], true
}

func testPorts() (*Ports, *mockSession, *mockRegistry, *mockSelection) {
	docs := []domain.Document{
		{ID: 7, Filename: "a.pdf", Status: domain.StatusCompleted},
		{ID: 9, Filename: "b.pdf", Status: domain.StatusProcessing},
	}
	session := &mockSession{threads: map[int64]domain.Conversation{}}
	registry := &mockRegistry{docs: docs}
	selection := &mockSelection{}
	return &Ports{
		Session:   session,
		Documents: &mockDocuments{docs: docs},
		Registry:  registry,
		Selection: selection,
	}, session, registry, selection
}
