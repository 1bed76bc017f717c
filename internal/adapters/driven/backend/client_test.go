package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(_ context.Context) (string, error) {
	return s.token, s.err
}

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens driven.TokenProvider) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL + "/api/v1/", Tokens: tokens})
	require.NoError(t, err)
	return c
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(Config{})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBackendURL, c.BaseURL())
}

func TestNewClient_RejectsBadScheme(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "localhost:8000"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ada@example.com", r.PostForm.Get("username"))
		assert.Equal(t, "secret", r.PostForm.Get("password"))

		_, _ = w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer"}`))
	}, nil)

	token, err := c.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

func TestClient_LoginRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Incorrect email or password"}`))
	}, nil)

	_, err := c.Login(context.Background(), "ada@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthInvalid)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Incorrect email or password", apiErr.Message())
}

func TestClient_Register(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/register", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"email": "ada@example.com", "password": "longenough"}, body)
		_, _ = w.Write([]byte(`{"id":1,"email":"ada@example.com"}`))
	}, nil)

	require.NoError(t, c.Register(context.Background(), "ada@example.com", "longenough"))
}

func TestClient_List(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/documents/", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[
			{"id":7,"filename":"a.pdf","filepath":"storage/a.pdf","status":"COMPLETED","created_at":"2024-05-01T10:00:00.123456"},
			{"id":9,"filename":"b.pdf","filepath":"storage/b.pdf","status":"PROCESSING","created_at":"2024-05-01T11:00:00Z"}
		]`))
	}, staticTokens{token: "tok-1"})

	docs, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, int64(7), docs[0].ID)
	assert.Equal(t, "a.pdf", docs[0].Filename)
	assert.Equal(t, domain.StatusCompleted, docs[0].Status)
	assert.Equal(t, 2024, docs[0].CreatedAt.Year())
	assert.Equal(t, domain.StatusProcessing, docs[1].Status)
}

func TestClient_ListWithoutCredential(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}, staticTokens{err: domain.ErrAuthExpired})

	_, err := c.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthExpired)
	assert.False(t, called, "request must not be sent without a credential")
}

func TestClient_NoTokenProvider(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {}, nil)

	_, err := c.List(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestClient_Upload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/documents/upload", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "report.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4", string(content))

		_, _ = w.Write([]byte(`{"id":12,"filename":"report.pdf","status":"UPLOADING","created_at":"2024-05-01T10:00:00"}`))
	}, staticTokens{token: "tok-1"})

	doc, err := c.Upload(context.Background(), "/tmp/dir/report.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, int64(12), doc.ID)
	assert.Equal(t, domain.StatusUploading, doc.Status)
}

func TestClient_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/api/v1/documents/7", r.URL.Path)
			_, _ = w.Write([]byte(`{"id":7}`))
		}, staticTokens{token: "tok-1"})

		require.NoError(t, c.Delete(context.Background(), 7))
	})

	t.Run("not found", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Document not found"}`))
		}, staticTokens{token: "tok-1"})

		err := c.Delete(context.Background(), 7)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestClient_Ask(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chat/", r.URL.Path)

		var body struct {
			Query      string     `json:"query"`
			History    [][]string `json:"history"`
			DocumentID int64      `json:"document_id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "And then?", body.Query)
		assert.Equal(t, [][]string{{"What?", "This."}}, body.History)
		assert.Equal(t, int64(7), body.DocumentID)

		_, _ = w.Write([]byte(`{"answer":"That.","sources":[{"document_id":7,"filename":"a.pdf","text":"passage"}]}`))
	}, staticTokens{token: "tok-1"})

	answer, err := c.Ask(context.Background(), domain.ChatQuery{
		Query:      "And then?",
		History:    []domain.HistoryPair{{Question: "What?", Answer: "This."}},
		DocumentID: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, "That.", answer.Answer)
	assert.Equal(t, []domain.Source{{DocumentID: 7, Filename: "a.pdf", Text: "passage"}}, answer.Sources)
}

func TestClient_AskEmptyHistoryIsArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"history":[]`)
		_, _ = w.Write([]byte(`{"answer":"ok","sources":[]}`))
	}, staticTokens{token: "tok-1"})

	answer, err := c.Ask(context.Background(), domain.ChatQuery{Query: "q", DocumentID: 1})
	require.NoError(t, err)
	assert.Nil(t, answer.Sources)
}

func TestClient_ServerErrorWithoutDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	}, staticTokens{token: "tok-1"})

	_, err := c.Ask(context.Background(), domain.ChatQuery{Query: "q", DocumentID: 1})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, domain.GenericFailureMessage, apiErr.Message())
	assert.False(t, errors.Is(err, domain.ErrAuthInvalid))
}

func TestParseDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string detail", `{"detail":"Document not indexed"}`, "Document not indexed"},
		{"validation list", `{"detail":[{"loc":["body","query"],"msg":"field required"}]}`, "field required"},
		{"no detail", `{"error":"x"}`, ""},
		{"not json", `oops`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDetail([]byte(tt.body)))
		})
	}
}
