package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// documentResponse is the wire form of a document.
type documentResponse struct {
	ID        int64     `json:"id"`
	Filename  string    `json:"filename"`
	Status    string    `json:"status"`
	CreatedAt timestamp `json:"created_at"`
}

func (d documentResponse) toDomain() domain.Document {
	return domain.Document{
		ID:        d.ID,
		Filename:  d.Filename,
		Status:    domain.DocumentStatus(strings.ToUpper(d.Status)),
		CreatedAt: time.Time(d.CreatedAt),
	}
}

// timestamp accepts RFC 3339 and the zone-less ISO form the server emits.
type timestamp time.Time

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*t = timestamp{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = timestamp(parsed)
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

// List returns the user's documents in server order.
func (c *Client) List(ctx context.Context) ([]domain.Document, error) {
	req, err := newRequest(ctx, http.MethodGet, c.url("/documents/"), http.NoBody)
	if err != nil {
		return nil, err
	}

	var resp []documentResponse
	if err := c.do(c.authed, req, &resp); err != nil {
		return nil, err
	}

	docs := make([]domain.Document, len(resp))
	for i, d := range resp {
		docs[i] = d.toDomain()
	}
	return docs, nil
}

// Upload sends content as a multipart "file" part with a PDF content type.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*domain.Document, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(filename)))
	header.Set("Content-Type", "application/pdf")

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create form part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	req, err := newRequest(ctx, http.MethodPost, c.url("/documents/upload"), &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var resp documentResponse
	if err := c.do(c.authed, req, &resp); err != nil {
		return nil, err
	}
	doc := resp.toDomain()
	return &doc, nil
}

// Delete removes a document.
func (c *Client) Delete(ctx context.Context, id int64) error {
	req, err := newRequest(ctx, http.MethodDelete, c.url(fmt.Sprintf("/documents/%d", id)), http.NoBody)
	if err != nil {
		return err
	}
	return c.do(c.authed, req, nil)
}
