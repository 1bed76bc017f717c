package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// chatRequest is the wire form of a question. History entries are
// [question, answer] pairs.
type chatRequest struct {
	Query      string      `json:"query"`
	History    [][2]string `json:"history"`
	DocumentID int64       `json:"document_id"`
}

type chatResponse struct {
	Answer  string           `json:"answer"`
	Sources []sourceResponse `json:"sources"`
}

type sourceResponse struct {
	DocumentID int64  `json:"document_id"`
	Filename   string `json:"filename"`
	Text       string `json:"text"`
}

// Ask posts a question about one document.
func (c *Client) Ask(ctx context.Context, query domain.ChatQuery) (*domain.ChatAnswer, error) {
	history := make([][2]string, len(query.History))
	for i, pair := range query.History {
		history[i] = [2]string{pair.Question, pair.Answer}
	}

	body, err := json.Marshal(chatRequest{
		Query:      query.Query,
		History:    history,
		DocumentID: query.DocumentID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := newRequest(ctx, http.MethodPost, c.url("/chat/"), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp chatResponse
	if err := c.do(c.authed, req, &resp); err != nil {
		return nil, err
	}

	answer := &domain.ChatAnswer{Answer: resp.Answer}
	if len(resp.Sources) > 0 {
		answer.Sources = make([]domain.Source, len(resp.Sources))
		for i, s := range resp.Sources {
			answer.Sources[i] = domain.Source{DocumentID: s.DocumentID, Filename: s.Filename, Text: s.Text}
		}
	}
	return answer, nil
}
