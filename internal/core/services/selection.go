package services

import (
	"sync"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Ensure SelectionCoordinator implements the interface.
var _ driving.SelectionCoordinator = (*SelectionCoordinator)(nil)

// SelectionCoordinator tracks the active document and keeps the
// conversation store in step with document deletions.
type SelectionCoordinator struct {
	store *ConversationStore

	mu          sync.RWMutex
	active      int64
	hasActive   bool
	subscribers []func(id int64, ok bool)
}

// NewSelectionCoordinator creates a coordinator with nothing selected.
func NewSelectionCoordinator(store *ConversationStore) *SelectionCoordinator {
	return &SelectionCoordinator{store: store}
}

// Select makes doc the active document. Switching leaves every thread intact.
func (c *SelectionCoordinator) Select(doc domain.Document) error {
	if !doc.Selectable() {
		return domain.ErrDocumentNotSelectable
	}

	c.mu.Lock()
	changed := !c.hasActive || c.active != doc.ID
	c.active = doc.ID
	c.hasActive = true
	c.mu.Unlock()

	if changed {
		logger.Debug("selected document %d", doc.ID)
		c.publish(doc.ID, true)
	}
	return nil
}

// NewChat discards the active document's thread and clears the selection.
// With nothing selected it only clears the selection.
func (c *SelectionCoordinator) NewChat() {
	c.mu.Lock()
	id, had := c.active, c.hasActive
	c.active = 0
	c.hasActive = false
	c.mu.Unlock()

	if !had {
		return
	}
	c.store.Clear(id)
	logger.Debug("new chat: cleared document %d", id)
	c.publish(0, false)
}

// OnDocumentDeleted handles a server-confirmed deletion.
func (c *SelectionCoordinator) OnDocumentDeleted(docID int64) {
	if id, ok := c.Active(); ok && id == docID {
		c.NewChat()
		return
	}
	c.store.Clear(docID)
}

// Reconcile treats every document missing from docs as deleted.
func (c *SelectionCoordinator) Reconcile(docs []domain.Document) {
	ids := make([]int64, len(docs))
	for i := range docs {
		ids[i] = docs[i].ID
	}

	if id, ok := c.Active(); ok {
		if _, found := domain.FindDocument(docs, id); !found {
			logger.Info("active document %d no longer listed", id)
			c.NewChat()
		}
	}
	c.store.Retain(ids)
}

// Active returns the active document ID.
func (c *SelectionCoordinator) Active() (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active, c.hasActive
}

// Subscribe registers fn to be called when the selection changes.
func (c *SelectionCoordinator) Subscribe(fn func(id int64, ok bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

func (c *SelectionCoordinator) publish(id int64, ok bool) {
	c.mu.RLock()
	subscribers := append([]func(int64, bool){}, c.subscribers...)
	c.mu.RUnlock()

	for _, fn := range subscribers {
		fn(id, ok)
	}
}
