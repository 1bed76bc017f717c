package cli

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

type mockAuth struct {
	authenticated bool
	creds         *domain.Credentials
	loginFunc     func(ctx context.Context, email, password string) error
	registerFunc  func(ctx context.Context, email, password string) error
	logoutCalled  bool
}

func (m *mockAuth) Login(ctx context.Context, email, password string) error {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	m.authenticated = true
	m.creds = &domain.Credentials{Token: "t", Email: email}
	return nil
}

func (m *mockAuth) Register(ctx context.Context, email, password string) error {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, email, password)
	}
	return nil
}

func (m *mockAuth) Logout(context.Context) error {
	m.logoutCalled = true
	m.authenticated = false
	m.creds = nil
	return nil
}

func (m *mockAuth) Restore(context.Context) error { return nil }

func (m *mockAuth) Authenticated() bool { return m.authenticated }

func (m *mockAuth) Credentials() *domain.Credentials { return m.creds }

func (m *mockAuth) Token(context.Context) (string, error) { return "t", nil }

func (m *mockAuth) OnChange(func(bool)) {}

type mockDocuments struct {
	docs       []domain.Document
	uploadFunc func(ctx context.Context, path string) (*domain.Document, error)
	deleted    []int64
	deleteErr  error
}

func (m *mockDocuments) List(context.Context) ([]domain.Document, error) { return m.docs, nil }

func (m *mockDocuments) Upload(ctx context.Context, path string) (*domain.Document, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, path)
	}
	return &domain.Document{ID: 10, Filename: "new.pdf", Status: domain.StatusProcessing}, nil
}

func (m *mockDocuments) Delete(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type mockRegistry struct {
	docs []domain.Document
}

func (m *mockRegistry) Refresh(context.Context) error { return nil }

func (m *mockRegistry) RequestRefresh(context.Context) error { return nil }

func (m *mockRegistry) Documents() []domain.Document { return m.docs }

func (m *mockRegistry) Get(id int64) (domain.Document, bool) { return domain.FindDocument(m.docs, id) }

func (m *mockRegistry) Loaded() bool { return true }

func (m *mockRegistry) Subscribe(func([]domain.Document)) {}

type mockSelection struct {
	active    int64
	hasActive bool
	newChats  int
}

func (m *mockSelection) Select(doc domain.Document) error {
	if !doc.Selectable() {
		return domain.ErrDocumentNotSelectable
	}
	m.active, m.hasActive = doc.ID, true
	return nil
}

func (m *mockSelection) NewChat() {
	m.newChats++
	m.active, m.hasActive = 0, false
}

func (m *mockSelection) OnDocumentDeleted(int64) {}

func (m *mockSelection) Reconcile([]domain.Document) {}

func (m *mockSelection) Active() (int64, bool) { return m.active, m.hasActive }

func (m *mockSelection) Subscribe(func(int64, bool)) {}

// mockSession answers every question with "answer: <question>".
type mockSession struct {
	threads  map[int64]domain.Conversation
	sel      *mockSelection
	asked    []string
	sendErr  error
	failNext bool
}

func (m *mockSession) Submit(context.Context, string) (*domain.Submission, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockSession) Resolve(context.Context, *domain.Submission) domain.Message {
	return domain.Message{}
}

func (m *mockSession) Send(_ context.Context, text string) (domain.Message, error) {
	if m.sendErr != nil {
		return domain.Message{}, m.sendErr
	}
	if strings.TrimSpace(text) == "" {
		return domain.Message{}, domain.ErrEmptyMessage
	}
	id, ok := m.sel.Active()
	if !ok {
		return domain.Message{}, domain.ErrNoActiveDocument
	}
	m.asked = append(m.asked, text)
	user := domain.Message{ID: "u", Text: text, Sender: domain.SenderUser}
	bot := domain.Message{
		ID: "b", Text: "answer: " + text, Sender: domain.SenderBot, ResponseTo: "u",
		Sources: []domain.Source{{DocumentID: id, Filename: "report.pdf", Text: "a passage"}},
	}
	if m.failNext {
		bot = domain.Message{ID: "b", Text: "Error calling the API. Please try again.", Sender: domain.SenderBot, ResponseTo: "u", Failed: true}
	}
	m.threads[id] = append(m.threads[id], user, bot)
	return bot, nil
}

func (m *mockSession) SendTo(ctx context.Context, docID int64, text string) (domain.Message, error) {
	doc, ok := domain.FindDocument(testDocuments(), docID)
	if !ok {
		return domain.Message{}, domain.ErrNotFound
	}
	if err := m.sel.Select(doc); err != nil {
		return domain.Message{}, err
	}
	return m.Send(ctx, text)
}

func (m *mockSession) Conversation(docID int64) domain.Conversation { return m.threads[docID] }

func (m *mockSession) InFlight(int64) bool { return false }

type mockSettings struct {
	settings domain.AppSettings
	set      map[string]string
}

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Set(key, value string) error {
	if key == "bogus" {
		return domain.ErrInvalidInput
	}
	m.set[key] = value
	return nil
}

func (m *mockSettings) Keys() []string { return []string{"backend.base_url"} }

type mockNotifications struct {
	handler func(domain.Notification)
}

func (m *mockNotifications) SetHandler(h func(domain.Notification)) { m.handler = h }

type testServices struct {
	auth      *mockAuth
	documents *mockDocuments
	registry  *mockRegistry
	selection *mockSelection
	session   *mockSession
	settings  *mockSettings
}

func testDocuments() []domain.Document {
	return []domain.Document{
		{ID: 1, Filename: "report.pdf", Status: domain.StatusCompleted, CreatedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)},
		{ID: 2, Filename: "draft.pdf", Status: domain.StatusProcessing},
	}
}

// setupTestServices installs logged-in mocks and returns them with a
// cleanup that restores the previous services and flags.
func setupTestServices() (*testServices, func()) {
	prev := Services{
		Auth:          authGate,
		Documents:     documentService,
		Registry:      documentRegistry,
		Session:       sessionController,
		Selection:     selection,
		Settings:      settingsService,
		Conversations: conversationFeed,
		Notifications: notifications,
		Lifecycle:     lifecycle,
	}

	sel := &mockSelection{}
	svc := &testServices{
		auth:      &mockAuth{authenticated: true, creds: &domain.Credentials{Token: "t", Email: "a@b.c"}},
		documents: &mockDocuments{docs: testDocuments()},
		registry:  &mockRegistry{docs: testDocuments()},
		selection: sel,
		session:   &mockSession{threads: map[int64]domain.Conversation{}, sel: sel},
		settings: &mockSettings{
			settings: domain.DefaultAppSettings(),
			set:      map[string]string{},
		},
	}

	SetServices(&Services{
		Auth:          svc.auth,
		Documents:     svc.documents,
		Registry:      svc.registry,
		Session:       svc.session,
		Selection:     svc.selection,
		Settings:      svc.settings,
		Notifications: &mockNotifications{},
	})

	return svc, func() {
		SetServices(&prev)
		authEmail = ""
		deleteYes = false
	}
}

// execute runs the root command with args and stdin, returning combined
// output.
func execute(stdin string, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

var _ driving.SessionController = (*mockSession)(nil)
