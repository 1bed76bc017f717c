// Package notify delivers transient notifications to the active surface.
package notify

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Ensure Dispatcher implements the interface.
var _ driven.Notifier = (*Dispatcher)(nil)

// DefaultDedupWindow is how long an identical notification is suppressed.
const DefaultDedupWindow = 30 * time.Second

// Dispatcher forwards notifications to a handler, collapsing repeats of the
// same level and text inside the dedup window. With no handler set,
// notifications are written to the log.
type Dispatcher struct {
	mu      sync.RWMutex
	handler func(domain.Notification)
	seen    *cache.Cache
}

// NewDispatcher creates a dispatcher. A window <= 0 uses DefaultDedupWindow.
func NewDispatcher(window time.Duration) *Dispatcher {
	if window <= 0 {
		window = DefaultDedupWindow
	}
	return &Dispatcher{
		seen: cache.New(window, 2*window),
	}
}

// SetHandler replaces the handler. Nil restores log output.
// The handler must not block.
func (d *Dispatcher) SetHandler(h func(domain.Notification)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handler = h
}

// Notify delivers n unless an identical notification was delivered recently.
func (d *Dispatcher) Notify(n domain.Notification) {
	if n.Message == "" {
		return
	}

	// Add fails when the key is present and unexpired.
	if err := d.seen.Add(key(n), struct{}{}, cache.DefaultExpiration); err != nil {
		logger.Debug("notify: suppressed duplicate %q", n.Message)
		return
	}

	d.mu.RLock()
	h := d.handler
	d.mu.RUnlock()

	if h != nil {
		h(n)
		return
	}

	switch n.Level {
	case domain.NotifyError:
		logger.Error("%s", n.Message)
	case domain.NotifyWarn:
		logger.Warn("%s", n.Message)
	default:
		logger.Info("%s", n.Message)
	}
}

// Reset forgets recently delivered notifications.
func (d *Dispatcher) Reset() {
	d.seen.Flush()
}

func key(n domain.Notification) string {
	return string(n.Level) + "\x00" + n.Message
}
