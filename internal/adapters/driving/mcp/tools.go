package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput describes one document.
type DocumentOutput struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Ready    bool   `json:"ready"`
}

// AskDocumentInput is the input schema for the ask_document tool.
type AskDocumentInput struct {
	DocumentID int64  `json:"document_id" jsonschema:"id of a document whose status is COMPLETED"`
	Question   string `json:"question" jsonschema:"the question to ask about the document"`
}

// AskDocumentOutput is the output schema for the ask_document tool.
type AskDocumentOutput struct {
	DocumentID int64          `json:"document_id"`
	Answer     string         `json:"answer"`
	Failed     bool           `json:"failed"`
	Sources    []SourceOutput `json:"sources,omitempty"`
}

// SourceOutput is a passage cited by an answer.
type SourceOutput struct {
	DocumentID int64  `json:"document_id"`
	Filename   string `json:"filename"`
	Text       string `json:"text"`
}

// NewChatInput is the input schema for the new_chat tool.
type NewChatInput struct {
	DocumentID int64 `json:"document_id" jsonschema:"id of the document whose conversation is cleared"`
}

// NewChatOutput is the output schema for the new_chat tool.
type NewChatOutput struct {
	DocumentID int64 `json:"document_id"`
	Cleared    bool  `json:"cleared"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.sdk, &mcp.Tool{
		Name:        "list_documents",
		Description: "List the user's uploaded documents and their processing status",
	}, s.handleListDocuments)

	mcp.AddTool(s.sdk, &mcp.Tool{
		Name: "ask_document",
		Description: "Ask a question about one document. Earlier exchanges with the same " +
			"document are sent as context.",
	}, s.handleAskDocument)

	mcp.AddTool(s.sdk, &mcp.Tool{
		Name:        "new_chat",
		Description: "Forget the conversation with a document and start over",
	}, s.handleNewChat)
}

func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Documents.List(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i, d := range docs {
		output.Documents[i] = documentOutput(d)
	}
	return nil, output, nil
}

func (s *Server) handleAskDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskDocumentInput,
) (*mcp.CallToolResult, AskDocumentOutput, error) {
	msg, err := s.ports.Session.SendTo(ctx, input.DocumentID, input.Question)
	if err != nil {
		return nil, AskDocumentOutput{}, fmt.Errorf("asking document %d: %w", input.DocumentID, err)
	}

	output := AskDocumentOutput{
		DocumentID: input.DocumentID,
		Answer:     msg.Text,
		Failed:     msg.Failed,
	}
	for _, src := range msg.Sources {
		output.Sources = append(output.Sources, SourceOutput{
			DocumentID: src.DocumentID,
			Filename:   src.Filename,
			Text:       src.Text,
		})
	}
	return nil, output, nil
}

func (s *Server) handleNewChat(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input NewChatInput,
) (*mcp.CallToolResult, NewChatOutput, error) {
	if !s.ports.Registry.Loaded() {
		if err := s.ports.Registry.Refresh(ctx); err != nil {
			return nil, NewChatOutput{}, err
		}
	}

	doc, ok := s.ports.Registry.Get(input.DocumentID)
	if !ok {
		return nil, NewChatOutput{}, fmt.Errorf("document %d: %w", input.DocumentID, domain.ErrNotFound)
	}
	if err := s.ports.Selection.Select(doc); err != nil {
		return nil, NewChatOutput{}, fmt.Errorf("document %d: %w", input.DocumentID, err)
	}
	s.ports.Selection.NewChat()

	return nil, NewChatOutput{DocumentID: input.DocumentID, Cleared: true}, nil
}

func documentOutput(d domain.Document) DocumentOutput {
	return DocumentOutput{
		ID:       d.ID,
		Filename: d.Filename,
		Status:   d.Status.String(),
		Ready:    d.Selectable(),
	}
}
