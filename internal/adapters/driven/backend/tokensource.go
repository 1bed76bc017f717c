package backend

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

// tokenSource adapts a driven.TokenProvider to oauth2.TokenSource.
// The provider is asked on every request; there is no caching here.
type tokenSource struct {
	provider driven.TokenProvider
}

// Token implements oauth2.TokenSource.
func (t tokenSource) Token() (*oauth2.Token, error) {
	accessToken, err := t.provider.Token(context.Background())
	if err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}, nil
}
