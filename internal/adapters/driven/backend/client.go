package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Ensure Client implements the interfaces.
var (
	_ driven.AuthAPI     = (*Client)(nil)
	_ driven.DocumentAPI = (*Client)(nil)
	_ driven.ChatAPI     = (*Client)(nil)
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the API root (default: domain.DefaultBackendURL).
	BaseURL string

	// Timeout bounds each request (default: domain.DefaultRequestTimeout).
	Timeout time.Duration

	// Tokens supplies the bearer credential. Required for document and chat calls.
	Tokens driven.TokenProvider

	// Transport is the underlying round tripper (default: http.DefaultTransport).
	Transport http.RoundTripper
}

// Client talks to the backend over HTTP.
type Client struct {
	baseURL string
	public  *http.Client
	authed  *http.Client
}

// NewClient creates a backend client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultBackendURL
	}
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return nil, fmt.Errorf("%w: base URL must start with http:// or https://", domain.ErrInvalidInput)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = domain.DefaultRequestTimeout
	}
	if cfg.Transport == nil {
		cfg.Transport = http.DefaultTransport
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		public:  &http.Client{Timeout: cfg.Timeout, Transport: cfg.Transport},
	}
	if cfg.Tokens != nil {
		c.authed = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &oauth2.Transport{
				Source: tokenSource{provider: cfg.Tokens},
				Base:   cfg.Transport,
			},
		}
	}
	return c, nil
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// do sends req and decodes a JSON response into out (if non-nil).
func (c *Client) do(client *http.Client, req *http.Request, out any) error {
	if client == nil {
		return domain.ErrAuthRequired
	}

	logger.Debug("backend: %s %s", req.Method, req.URL.Path)

	resp, err := client.Do(req)
	if err != nil {
		// Token source failures surface as the bare sentinel.
		switch {
		case errors.Is(err, domain.ErrAuthExpired):
			return domain.ErrAuthExpired
		case errors.Is(err, domain.ErrAuthRequired):
			return domain.ErrAuthRequired
		}
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: parseDetail(body)}
		logger.Debug("backend: %s %s failed: %v", req.Method, req.URL.Path, apiErr)
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
