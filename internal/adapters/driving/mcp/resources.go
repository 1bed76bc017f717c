package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for docchat resources.
	uriScheme = "docchat://"
)

// transcriptEntry is one message of a conversation resource.
type transcriptEntry struct {
	ID         string         `json:"id"`
	Sender     string         `json:"sender"`
	Text       string         `json:"text"`
	ResponseTo string         `json:"response_to,omitempty"`
	Failed     bool           `json:"failed,omitempty"`
	Sources    []SourceOutput `json:"sources,omitempty"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.sdk.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "The user's documents and their processing status",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	s.sdk.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}/conversation",
		Name:        "document-conversation",
		Description: "The conversation held with a document in this session",
		MIMEType:    "application/json",
	}, s.handleConversationResource)
}

func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docs, err := s.ports.Documents.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	infos := make([]DocumentOutput, len(docs))
	for i, d := range docs {
		infos[i] = documentOutput(d)
	}
	return jsonResult(req.Params.URI, infos)
}

func (s *Server) handleConversationResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docID, ok := extractConversationID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	thread := s.ports.Session.Conversation(docID)
	entries := make([]transcriptEntry, len(thread))
	for i, m := range thread {
		entries[i] = transcriptEntryFor(m)
	}
	return jsonResult(req.Params.URI, entries)
}

func transcriptEntryFor(m domain.Message) transcriptEntry {
	e := transcriptEntry{
		ID:         m.ID,
		Sender:     string(m.Sender),
		Text:       m.Text,
		ResponseTo: m.ResponseTo,
		Failed:     m.Failed,
	}
	for _, src := range m.Sources {
		e.Sources = append(e.Sources, SourceOutput{DocumentID: src.DocumentID, Filename: src.Filename, Text: src.Text})
	}
	return e
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractConversationID parses docchat://documents/{documentId}/conversation.
func extractConversationID(uri string) (int64, bool) {
	const prefix = uriScheme + "documents/"
	const suffix = "/conversation"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return 0, false
	}

	raw := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
