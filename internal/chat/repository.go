package chat

import "sync"

// Repository stores chat messages in memory, append-only per group.
// Messages live outside the ledger: they never affect balances.
type Repository struct {
	mu       sync.Mutex
	messages map[string][]Message // group id -> messages in send order
}

// NewRepository creates a new chat repository
func NewRepository() *Repository {
	return &Repository{messages: make(map[string][]Message)}
}

// Append stores a message at the end of a group's conversation
func (r *Repository) Append(m Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[m.GroupID] = append(r.messages[m.GroupID], m)
}

// ListByGroup returns a group's messages in send order
func (r *Repository) ListByGroup(groupID string) []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages[groupID]...)
}
