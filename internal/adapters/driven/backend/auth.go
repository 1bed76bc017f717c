package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login posts an OAuth2 password form and returns the access token.
// The email is sent as the form's username field.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := newRequest(ctx, http.MethodPost, c.url("/auth/login"), strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok tokenResponse
	if err := c.do(c.public, req, &tok); err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, email, password string) error {
	body, err := json.Marshal(registerRequest{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := newRequest(ctx, http.MethodPost, c.url("/auth/register"), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(c.public, req, nil)
}
