package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Lifecycle ties background polling to the authentication state. Polling
// runs while a credential is held; logout stops it and discards the
// session's conversations.
type Lifecycle struct {
	scheduler driving.Scheduler
	selection *SelectionCoordinator
	store     *ConversationStore
	registry  *DocumentRegistry

	mu     sync.Mutex
	parent context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewLifecycle creates a lifecycle. registry may be nil.
func NewLifecycle(
	scheduler driving.Scheduler,
	selection *SelectionCoordinator,
	store *ConversationStore,
	registry *DocumentRegistry,
) *Lifecycle {
	return &Lifecycle{
		scheduler: scheduler,
		selection: selection,
		store:     store,
		registry:  registry,
	}
}

// Bind subscribes to auth changes. If the gate is already authenticated,
// polling starts immediately.
func (l *Lifecycle) Bind(ctx context.Context, auth driving.AuthGate) {
	l.mu.Lock()
	l.parent = ctx
	l.mu.Unlock()

	auth.OnChange(func(authenticated bool) {
		if authenticated {
			l.Start()
			return
		}
		l.Stop()
		l.reset()
	})

	if auth.Authenticated() {
		l.Start()
	}
}

// Start runs the scheduler in the background. It is a no-op while running.
func (l *Lifecycle) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done != nil || l.scheduler == nil {
		return
	}

	parent := l.parent
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	l.cancel = cancel
	l.done = done

	go func() {
		defer close(done)
		if err := l.scheduler.Start(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("scheduler stopped: %v", err)
		}
	}()
	logger.Debug("polling started")
}

// Stop halts the scheduler and waits for it to exit.
func (l *Lifecycle) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel = nil
	l.done = nil
	l.mu.Unlock()

	if done == nil {
		return
	}
	cancel()
	if err := l.scheduler.Stop(); err != nil {
		logger.Warn("failed to stop scheduler: %v", err)
	}
	<-done
	logger.Debug("polling stopped")
}

// Running reports whether polling is active.
func (l *Lifecycle) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.done != nil
}

func (l *Lifecycle) reset() {
	if l.selection != nil {
		l.selection.NewChat()
	}
	if l.store != nil {
		l.store.Reset()
	}
	if l.registry != nil {
		l.registry.Reset()
	}
}
