package domain

// DefaultHistoryWindow is the number of trailing messages considered when
// building history for the backend (three exchanges).
const DefaultHistoryWindow = 6

// HistoryPair is one prior (question, answer) exchange sent as context.
type HistoryPair struct {
	Question string
	Answer   string
}

// Conversation is the ordered thread for one document.
// An empty conversation is fresh.
type Conversation []Message

// Fresh reports whether nothing has been said yet.
func (c Conversation) Fresh() bool {
	return len(c) == 0
}

// Last returns the most recent message, if any.
func (c Conversation) Last() (Message, bool) {
	if len(c) == 0 {
		return Message{}, false
	}
	return c[len(c)-1], true
}

// History derives the (question, answer) pairs to send as conversational
// memory. Only the trailing window messages are searched: a user message
// whose answer lies outside the window, or has no answer yet, is dropped.
// Failed answers are skipped. Pairs keep the order of their questions and
// never exceed window/2.
func (c Conversation) History(window int) []HistoryPair {
	if window <= 0 {
		return nil
	}

	tail := c
	if len(tail) > window {
		tail = tail[len(tail)-window:]
	}

	pairs := make([]HistoryPair, 0, len(tail)/2)
	for i := range tail {
		question := tail[i]
		if !question.IsUser() {
			continue
		}
		for j := i + 1; j < len(tail); j++ {
			answer := tail[j]
			if answer.Sender != SenderBot || answer.ResponseTo != question.ID {
				continue
			}
			if !answer.Failed {
				pairs = append(pairs, HistoryPair{Question: question.Text, Answer: answer.Text})
			}
			break
		}
	}

	return pairs
}

// Conversations is an immutable snapshot of every thread in the session,
// keyed by document ID. Every mutating method returns a new snapshot and
// leaves the receiver untouched, so observers can detect change by
// comparing pointers. A nil snapshot is empty.
type Conversations struct {
	threads map[int64]Conversation
}

// NewConversations returns an empty snapshot.
func NewConversations() *Conversations {
	return &Conversations{threads: map[int64]Conversation{}}
}

// Get returns the thread for a document, or an empty conversation.
func (c *Conversations) Get(docID int64) Conversation {
	if c == nil {
		return Conversation{}
	}
	thread, ok := c.threads[docID]
	if !ok {
		return Conversation{}
	}
	out := make(Conversation, len(thread))
	copy(out, thread)
	return out
}

// Has reports whether a thread exists for the document.
func (c *Conversations) Has(docID int64) bool {
	if c == nil {
		return false
	}
	_, ok := c.threads[docID]
	return ok
}

// Len returns the number of threads.
func (c *Conversations) Len() int {
	if c == nil {
		return 0
	}
	return len(c.threads)
}

// DocumentIDs returns the ids that have a thread, in no particular order.
func (c *Conversations) DocumentIDs() []int64 {
	if c == nil {
		return nil
	}
	ids := make([]int64, 0, len(c.threads))
	for id := range c.threads {
		ids = append(ids, id)
	}
	return ids
}

// Append returns a new snapshot with msg added to the end of the document's
// thread. The thread is created on first use.
func (c *Conversations) Append(docID int64, msg Message) *Conversations {
	next := c.clone()
	prev := next.threads[docID]
	thread := make(Conversation, len(prev), len(prev)+1)
	copy(thread, prev)
	next.threads[docID] = append(thread, msg)
	return next
}

// Clear returns a new snapshot without the document's thread.
func (c *Conversations) Clear(docID int64) *Conversations {
	next := c.clone()
	delete(next.threads, docID)
	return next
}

// Retain returns a new snapshot holding only threads for the given ids.
func (c *Conversations) Retain(docIDs []int64) *Conversations {
	keep := make(map[int64]struct{}, len(docIDs))
	for _, id := range docIDs {
		keep[id] = struct{}{}
	}

	next := NewConversations()
	if c == nil {
		return next
	}
	for id, thread := range c.threads {
		if _, ok := keep[id]; ok {
			next.threads[id] = thread
		}
	}
	return next
}

// clone copies the map. Threads are shared because they are never mutated
// in place.
func (c *Conversations) clone() *Conversations {
	next := NewConversations()
	if c == nil {
		return next
	}
	for id, thread := range c.threads {
		next.threads[id] = thread
	}
	return next
}
