package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

func newTestServer(t *testing.T) (*Server, *mockSession, *mockRegistry, *mockSelection) {
	t.Helper()
	ports, session, registry, selection := testPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server, session, registry, selection
}

func TestServer_handleListDocuments(t *testing.T) {
	server, _, _, _ := newTestServer(t)

	_, output, err := server.handleListDocuments(context.Background(), nil, ListDocumentsInput{})

	require.NoError(t, err)
	assert.Equal(t, 2, output.Count)
	assert.Equal(t, DocumentOutput{ID: 7, Filename: "a.pdf", Status: "COMPLETED", Ready: true}, output.Documents[0])
	assert.False(t, output.Documents[1].Ready)
}

func TestServer_handleListDocuments_Error(t *testing.T) {
	server, _, _, _ := newTestServer(t)
	server.ports.Documents = &mockDocuments{err: errors.New("backend down")}

	_, _, err := server.handleListDocuments(context.Background(), nil, ListDocumentsInput{})
	assert.EqualError(t, err, "backend down")
}

func TestServer_handleAskDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("returns answer with sources", func(t *testing.T) {
		server, session, _, _ := newTestServer(t)
		session.SendToFunc = func(_ context.Context, docID int64, text string) (domain.Message, error) {
			assert.Equal(t, int64(7), docID)
			assert.Equal(t, "What is it?", text)
			return domain.Message{
				Sender:  domain.SenderBot,
				Text:    "A report.",
				Sources: []domain.Source{{DocumentID: 7, Filename: "a.pdf", Text: "passage"}},
			}, nil
		}

		_, output, err := server.handleAskDocument(ctx, nil, AskDocumentInput{DocumentID: 7, Question: "What is it?"})

		require.NoError(t, err)
		assert.Equal(t, "A report.", output.Answer)
		assert.False(t, output.Failed)
		assert.Equal(t, []SourceOutput{{DocumentID: 7, Filename: "a.pdf", Text: "passage"}}, output.Sources)
	})

	t.Run("failed exchange is reported in output", func(t *testing.T) {
		server, session, _, _ := newTestServer(t)
		session.SendToFunc = func(context.Context, int64, string) (domain.Message, error) {
			return domain.Message{Sender: domain.SenderBot, Text: "Document not indexed", Failed: true}, nil
		}

		_, output, err := server.handleAskDocument(ctx, nil, AskDocumentInput{DocumentID: 7, Question: "q"})

		require.NoError(t, err)
		assert.True(t, output.Failed)
		assert.Equal(t, "Document not indexed", output.Answer)
	})

	t.Run("guard rejection is an error", func(t *testing.T) {
		server, session, _, _ := newTestServer(t)
		session.SendToFunc = func(context.Context, int64, string) (domain.Message, error) {
			return domain.Message{}, domain.ErrEmptyMessage
		}

		_, _, err := server.handleAskDocument(ctx, nil, AskDocumentInput{DocumentID: 7, Question: "  "})

		assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	})
}

func TestServer_handleNewChat(t *testing.T) {
	ctx := context.Background()

	t.Run("selects then clears", func(t *testing.T) {
		server, _, registry, selection := newTestServer(t)

		_, output, err := server.handleNewChat(ctx, nil, NewChatInput{DocumentID: 7})

		require.NoError(t, err)
		assert.True(t, output.Cleared)
		assert.Equal(t, 1, registry.refreshes, "unloaded registry is refreshed first")
		assert.Equal(t, []int64{7}, selection.selected)
		assert.Equal(t, 1, selection.newChats)
	})

	t.Run("unknown document", func(t *testing.T) {
		server, _, _, selection := newTestServer(t)

		_, _, err := server.handleNewChat(ctx, nil, NewChatInput{DocumentID: 42})

		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Zero(t, selection.newChats)
	})

	t.Run("document still processing", func(t *testing.T) {
		server, _, _, selection := newTestServer(t)

		_, _, err := server.handleNewChat(ctx, nil, NewChatInput{DocumentID: 9})

		assert.ErrorIs(t, err, domain.ErrDocumentNotSelectable)
		assert.Zero(t, selection.newChats)
	})
}
