package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Ensure DocumentRegistry implements the interface.
var _ driving.DocumentRegistry = (*DocumentRegistry)(nil)

// RefreshFailureMessage is shown when the document list cannot be fetched.
const RefreshFailureMessage = "Could not load the document list."

// DocumentRegistry holds the last-known-good document list.
type DocumentRegistry struct {
	api       driven.DocumentAPI
	selection *SelectionCoordinator
	notifier  driven.Notifier
	limiter   *rate.Limiter

	mu          sync.RWMutex
	docs        []domain.Document
	loaded      bool
	lastErr     error
	lastRefresh time.Time
	subscribers []func([]domain.Document)
}

// NewDocumentRegistry creates an empty registry.
func NewDocumentRegistry(api driven.DocumentAPI, selection *SelectionCoordinator, notifier driven.Notifier) *DocumentRegistry {
	return &DocumentRegistry{
		api:       api,
		selection: selection,
		notifier:  notifier,
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 2),
	}
}

// Refresh replaces the list with the server's. On failure the previous
// list stays in place.
func (r *DocumentRegistry) Refresh(ctx context.Context) error {
	if r.api == nil {
		return errors.New("document API not configured")
	}

	docs, err := r.api.List(ctx)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		r.mu.Lock()
		r.lastErr = err
		r.mu.Unlock()

		logger.Warn("document refresh failed: %v", err)
		notify(r.notifier, domain.NotifyError, RefreshFailureMessage)
		return fmt.Errorf("failed to list documents: %w", err)
	}

	list := make([]domain.Document, len(docs))
	copy(list, docs)

	r.mu.Lock()
	r.docs = list
	r.loaded = true
	r.lastErr = nil
	r.lastRefresh = time.Now()
	subscribers := append([]func([]domain.Document){}, r.subscribers...)
	r.mu.Unlock()

	logger.Debug("document list refreshed: %d documents", len(list))

	if r.selection != nil {
		r.selection.Reconcile(list)
	}
	for _, fn := range subscribers {
		fn(r.Documents())
	}
	return nil
}

// RequestRefresh is Refresh throttled for user-initiated requests.
func (r *DocumentRegistry) RequestRefresh(ctx context.Context) error {
	if !r.limiter.Allow() {
		return domain.ErrRateLimited
	}
	return r.Refresh(ctx)
}

// Documents returns a copy of the current list, in server order.
func (r *DocumentRegistry) Documents() []domain.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Document, len(r.docs))
	copy(out, r.docs)
	return out
}

// Get returns a document from the current list.
func (r *DocumentRegistry) Get(id int64) (domain.Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return domain.FindDocument(r.docs, id)
}

// Loaded reports whether a refresh has ever succeeded.
func (r *DocumentRegistry) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// LastError returns the error from the most recent refresh, if it failed.
func (r *DocumentRegistry) LastError() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// LastRefresh returns when the list was last replaced.
func (r *DocumentRegistry) LastRefresh() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastRefresh
}

// Subscribe registers fn to be called after each successful refresh.
func (r *DocumentRegistry) Subscribe(fn func([]domain.Document)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers = append(r.subscribers, fn)
}

// Reset forgets the list, as after logout.
func (r *DocumentRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = nil
	r.loaded = false
	r.lastErr = nil
	r.lastRefresh = time.Time{}
}
