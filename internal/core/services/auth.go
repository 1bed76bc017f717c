package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Ensure AuthGate implements the interfaces.
var (
	_ driving.AuthGate     = (*AuthGate)(nil)
	_ driven.TokenProvider = (*AuthGate)(nil)
)

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type registerInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// AuthGate holds the session credential. It is the token source for every
// authenticated backend call.
type AuthGate struct {
	api      driven.AuthAPI
	store    driven.CredentialsStore
	validate *validator.Validate
	now      func() time.Time

	mu        sync.RWMutex
	creds     *domain.Credentials
	listeners []func(bool)
}

// NewAuthGate creates an auth gate. store may be nil, in which case the
// credential lives only as long as the process.
func NewAuthGate(api driven.AuthAPI, store driven.CredentialsStore) *AuthGate {
	return &AuthGate{
		api:      api,
		store:    store,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Login authenticates and stores the credential.
func (g *AuthGate) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if err := g.check(loginInput{Email: email, Password: password}); err != nil {
		return err
	}
	if g.api == nil {
		return errors.New("auth API not configured")
	}

	token, err := g.api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if token == "" {
		return fmt.Errorf("login failed: %w", domain.ErrAuthInvalid)
	}

	creds := g.credentialsFor(token, email)
	if g.store != nil {
		if err := g.store.Save(ctx, creds); err != nil {
			logger.Warn("failed to persist credential: %v", err)
		}
	}

	g.set(&creds)
	logger.Info("logged in as %s", creds.Email)
	return nil
}

// Register creates an account. The caller logs in separately.
func (g *AuthGate) Register(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if err := g.check(registerInput{Email: email, Password: password}); err != nil {
		return err
	}
	if g.api == nil {
		return errors.New("auth API not configured")
	}

	if err := g.api.Register(ctx, email, password); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	logger.Info("registered %s", email)
	return nil
}

// Logout clears the credential in memory and in the store.
func (g *AuthGate) Logout(ctx context.Context) error {
	var storeErr error
	if g.store != nil {
		if err := g.store.Delete(ctx); err != nil {
			storeErr = fmt.Errorf("failed to delete stored credential: %w", err)
		}
	}
	g.set(nil)
	return storeErr
}

// Restore loads a saved credential. An expired one is deleted.
func (g *AuthGate) Restore(ctx context.Context) error {
	if g.store == nil {
		return nil
	}

	creds, err := g.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load credential: %w", err)
	}
	if creds == nil {
		return nil
	}
	if !creds.Valid(g.now()) {
		logger.Info("stored credential for %s has expired", creds.Email)
		if err := g.store.Delete(ctx); err != nil {
			logger.Warn("failed to delete expired credential: %v", err)
		}
		return nil
	}

	g.set(creds)
	logger.Debug("restored credential for %s", creds.Email)
	return nil
}

// Authenticated reports whether a usable credential is present.
func (g *AuthGate) Authenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.creds.Valid(g.now())
}

// Credentials returns a copy of the current credential.
func (g *AuthGate) Credentials() *domain.Credentials {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.creds == nil {
		return nil
	}
	c := *g.creds
	return &c
}

// Token returns the bearer token.
func (g *AuthGate) Token(_ context.Context) (string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.creds == nil || g.creds.Token == "" {
		return "", domain.ErrAuthRequired
	}
	if g.creds.Expired(g.now()) {
		return "", domain.ErrAuthExpired
	}
	return g.creds.Token, nil
}

// OnChange registers fn to be called when the authentication state flips.
func (g *AuthGate) OnChange(fn func(authenticated bool)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

func (g *AuthGate) set(creds *domain.Credentials) {
	g.mu.Lock()
	was := g.creds.Valid(g.now())
	g.creds = creds
	is := g.creds.Valid(g.now())
	listeners := append([]func(bool){}, g.listeners...)
	g.mu.Unlock()

	if was == is {
		return
	}
	for _, fn := range listeners {
		fn(is)
	}
}

// credentialsFor builds a credential, reading expiry and subject from the
// token when it is a JWT. The signature cannot be checked client-side.
func (g *AuthGate) credentialsFor(token, email string) domain.Credentials {
	creds := domain.Credentials{
		Token:     token,
		Email:     email,
		CreatedAt: g.now(),
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		logger.Debug("token is not a readable JWT: %v", err)
		return creds
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		creds.ExpiresAt = exp.Time
	}
	if sub, err := parsed.Claims.GetSubject(); err == nil && sub != "" && creds.Email == "" {
		creds.Email = sub
	}
	return creds
}

func (g *AuthGate) check(input any) error {
	err := g.validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, field)
	case "email":
		return fmt.Errorf("%w: %s is not a valid email address", domain.ErrInvalidInput, field)
	case "min":
		return fmt.Errorf("%w: %s must be at least %s characters", domain.ErrInvalidInput, field, fe.Param())
	default:
		return fmt.Errorf("%w: %s is invalid", domain.ErrInvalidInput, field)
	}
}
