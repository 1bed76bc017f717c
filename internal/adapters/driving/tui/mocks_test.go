package tui

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

type mockAuth struct {
	authenticated bool
	email         string
	loginFunc     func(ctx context.Context, email, password string) error
	logoutCalled  bool
	onChange      []func(bool)
}

func (m *mockAuth) Login(ctx context.Context, email, password string) error {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	m.authenticated = true
	m.email = email
	return nil
}

func (m *mockAuth) Register(context.Context, string, string) error { return nil }

func (m *mockAuth) Logout(context.Context) error {
	m.logoutCalled = true
	m.authenticated = false
	return nil
}

func (m *mockAuth) Restore(context.Context) error { return nil }

func (m *mockAuth) Authenticated() bool { return m.authenticated }

func (m *mockAuth) Credentials() *domain.Credentials {
	if !m.authenticated {
		return nil
	}
	return &domain.Credentials{Token: "t", Email: m.email}
}

func (m *mockAuth) Token(context.Context) (string, error) {
	if !m.authenticated {
		return "", domain.ErrAuthRequired
	}
	return "t", nil
}

func (m *mockAuth) OnChange(fn func(bool)) { m.onChange = append(m.onChange, fn) }

type mockDocuments struct{}

func (m *mockDocuments) List(context.Context) ([]domain.Document, error) { return nil, nil }

func (m *mockDocuments) Upload(context.Context, string) (*domain.Document, error) {
	return &domain.Document{}, nil
}

func (m *mockDocuments) Delete(context.Context, int64) error { return nil }

type mockRegistry struct {
	docs        []domain.Document
	refreshes   int
	subscribers []func([]domain.Document)
}

func (m *mockRegistry) Refresh(context.Context) error {
	m.refreshes++
	return nil
}

func (m *mockRegistry) RequestRefresh(context.Context) error { return nil }

func (m *mockRegistry) Documents() []domain.Document { return m.docs }

func (m *mockRegistry) Get(id int64) (domain.Document, bool) { return domain.FindDocument(m.docs, id) }

func (m *mockRegistry) Loaded() bool { return true }

func (m *mockRegistry) Subscribe(fn func([]domain.Document)) {
	m.subscribers = append(m.subscribers, fn)
}

type mockSession struct{}

func (m *mockSession) Submit(context.Context, string) (*domain.Submission, error) {
	return nil, domain.ErrNoActiveDocument
}

func (m *mockSession) Resolve(context.Context, *domain.Submission) domain.Message {
	return domain.Message{}
}

func (m *mockSession) Send(context.Context, string) (domain.Message, error) {
	return domain.Message{}, nil
}

func (m *mockSession) SendTo(context.Context, int64, string) (domain.Message, error) {
	return domain.Message{}, nil
}

func (m *mockSession) Conversation(int64) domain.Conversation { return nil }

func (m *mockSession) InFlight(int64) bool { return false }

type mockSelection struct {
	active      int64
	hasActive   bool
	subscribers []func(int64, bool)
}

func (m *mockSelection) Select(doc domain.Document) error {
	if !doc.Selectable() {
		return domain.ErrDocumentNotSelectable
	}
	m.active, m.hasActive = doc.ID, true
	return nil
}

func (m *mockSelection) NewChat() { m.active, m.hasActive = 0, false }

func (m *mockSelection) OnDocumentDeleted(int64) {}

func (m *mockSelection) Reconcile([]domain.Document) {}

func (m *mockSelection) Active() (int64, bool) { return m.active, m.hasActive }

func (m *mockSelection) Subscribe(fn func(int64, bool)) {
	m.subscribers = append(m.subscribers, fn)
}

type mockFeed struct {
	subscribers []func(*domain.Conversations)
}

func (m *mockFeed) Subscribe(fn func(*domain.Conversations)) {
	m.subscribers = append(m.subscribers, fn)
}

type testServices struct {
	auth      *mockAuth
	registry  *mockRegistry
	selection *mockSelection
	feed      *mockFeed
}

func testPorts() (*Ports, *testServices) {
	svc := &testServices{
		auth: &mockAuth{},
		registry: &mockRegistry{docs: []domain.Document{
			{ID: 1, Filename: "report.pdf", Status: domain.StatusCompleted},
		}},
		selection: &mockSelection{},
		feed:      &mockFeed{},
	}
	return &Ports{
		Auth:          svc.auth,
		Documents:     &mockDocuments{},
		Registry:      svc.registry,
		Session:       &mockSession{},
		Selection:     svc.selection,
		Conversations: svc.feed,
	}, svc
}
