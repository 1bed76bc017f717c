package services

import (
	"sync"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// ConversationStore holds the session's current conversations snapshot.
// Every change swaps in a new snapshot; readers never see a partial write.
type ConversationStore struct {
	mu          sync.RWMutex
	snapshot    *domain.Conversations
	subscribers []func(*domain.Conversations)
}

// NewConversationStore creates an empty store.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{snapshot: domain.NewConversations()}
}

// Snapshot returns the current snapshot. It must not be modified.
func (s *ConversationStore) Snapshot() *domain.Conversations {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Get returns the document's thread, or an empty conversation.
func (s *ConversationStore) Get(docID int64) domain.Conversation {
	return s.Snapshot().Get(docID)
}

// Append adds msg to the end of the document's thread.
func (s *ConversationStore) Append(docID int64, msg domain.Message) *domain.Conversations {
	return s.replace(func(c *domain.Conversations) *domain.Conversations {
		return c.Append(docID, msg)
	})
}

// Clear removes the document's thread entirely.
func (s *ConversationStore) Clear(docID int64) *domain.Conversations {
	return s.replace(func(c *domain.Conversations) *domain.Conversations {
		if !c.Has(docID) {
			return c
		}
		return c.Clear(docID)
	})
}

// Retain drops every thread whose document is not listed.
func (s *ConversationStore) Retain(docIDs []int64) *domain.Conversations {
	return s.replace(func(c *domain.Conversations) *domain.Conversations {
		next := c.Retain(docIDs)
		if next.Len() == c.Len() {
			return c
		}
		return next
	})
}

// Reset drops every thread.
func (s *ConversationStore) Reset() *domain.Conversations {
	return s.replace(func(c *domain.Conversations) *domain.Conversations {
		if c.Len() == 0 {
			return c
		}
		return domain.NewConversations()
	})
}

// Subscribe registers fn to be called with each new snapshot.
func (s *ConversationStore) Subscribe(fn func(*domain.Conversations)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// replace swaps in the snapshot returned by next. Subscribers are only
// called when the snapshot actually changed.
func (s *ConversationStore) replace(next func(*domain.Conversations) *domain.Conversations) *domain.Conversations {
	s.mu.Lock()
	prev := s.snapshot
	s.snapshot = next(prev)
	current := s.snapshot
	subscribers := append([]func(*domain.Conversations){}, s.subscribers...)
	s.mu.Unlock()

	if current != prev {
		for _, fn := range subscribers {
			fn(current)
		}
	}
	return current
}
