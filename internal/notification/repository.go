package notification

import "sync"

// Repository is the in-memory outbox of dispatched notifications.
type Repository struct {
	mu   sync.Mutex
	sent []Notification
}

// NewRepository creates a new notification repository
func NewRepository() *Repository {
	return &Repository{}
}

// Record appends a notification to the outbox
func (r *Repository) Record(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

// List returns every dispatched notification in send order
func (r *Repository) List() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent...)
}
