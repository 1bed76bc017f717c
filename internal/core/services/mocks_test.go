package services

import (
	"context"
	"io"
	"sync"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

// mockDocumentAPI implements driven.DocumentAPI for testing.
type mockDocumentAPI struct {
	ListFunc   func(ctx context.Context) ([]domain.Document, error)
	UploadFunc func(ctx context.Context, filename string, content io.Reader) (*domain.Document, error)
	DeleteFunc func(ctx context.Context, id int64) error

	mu        sync.Mutex
	listCalls int
}

func (m *mockDocumentAPI) List(ctx context.Context) ([]domain.Document, error) {
	m.mu.Lock()
	m.listCalls++
	m.mu.Unlock()
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockDocumentAPI) Upload(ctx context.Context, filename string, content io.Reader) (*domain.Document, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, filename, content)
	}
	return &domain.Document{ID: 1, Filename: filename, Status: domain.StatusProcessing}, nil
}

func (m *mockDocumentAPI) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockDocumentAPI) ListCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

// mockChatAPI implements driven.ChatAPI for testing.
type mockChatAPI struct {
	AskFunc func(ctx context.Context, query domain.ChatQuery) (*domain.ChatAnswer, error)

	mu      sync.Mutex
	queries []domain.ChatQuery
}

func (m *mockChatAPI) Ask(ctx context.Context, query domain.ChatQuery) (*domain.ChatAnswer, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()
	if m.AskFunc != nil {
		return m.AskFunc(ctx, query)
	}
	return &domain.ChatAnswer{Answer: "answer to " + query.Query}, nil
}

func (m *mockChatAPI) Queries() []domain.ChatQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ChatQuery(nil), m.queries...)
}

// mockAuthAPI implements driven.AuthAPI for testing.
type mockAuthAPI struct {
	LoginFunc    func(ctx context.Context, email, password string) (string, error)
	RegisterFunc func(ctx context.Context, email, password string) error
}

func (m *mockAuthAPI) Login(ctx context.Context, email, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return "token", nil
}

func (m *mockAuthAPI) Register(ctx context.Context, email, password string) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, password)
	}
	return nil
}

// mockTokenProvider implements driven.TokenProvider for testing.
type mockTokenProvider struct {
	TokenFunc func(ctx context.Context) (string, error)
}

func (m *mockTokenProvider) Token(ctx context.Context) (string, error) {
	if m.TokenFunc != nil {
		return m.TokenFunc(ctx)
	}
	return "token", nil
}

// mockNotifier records notifications.
type mockNotifier struct {
	mu    sync.Mutex
	items []domain.Notification
}

func (m *mockNotifier) Notify(n domain.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, n)
}

func (m *mockNotifier) All() []domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Notification(nil), m.items...)
}

// mockPDFInspector implements driven.PDFInspector for testing.
type mockPDFInspector struct {
	PageCountFunc func(path string) (int, error)
}

func (m *mockPDFInspector) PageCount(path string) (int, error) {
	if m.PageCountFunc != nil {
		return m.PageCountFunc(path)
	}
	return 1, nil
}

// apiFailure is a backend error carrying a user-facing message.
type apiFailure struct{ detail string }

func (e *apiFailure) Error() string   { return "api: " + e.detail }
func (e *apiFailure) Message() string { return e.detail }

// Ensure mocks implement interfaces
var (
	_ driven.DocumentAPI    = (*mockDocumentAPI)(nil)
	_ driven.ChatAPI        = (*mockChatAPI)(nil)
	_ driven.AuthAPI        = (*mockAuthAPI)(nil)
	_ driven.TokenProvider  = (*mockTokenProvider)(nil)
	_ driven.Notifier       = (*mockNotifier)(nil)
	_ driven.PDFInspector   = (*mockPDFInspector)(nil)
	_ driven.FailureMessage = (*apiFailure)(nil)
)

func completed(id int64, name string) domain.Document {
	return domain.Document{ID: id, Filename: name, Status: domain.StatusCompleted}
}
