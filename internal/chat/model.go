package chat

import "time"

// Message is one chat message in a group's conversation.
type Message struct {
	ID         string    `json:"id"`
	GroupID    string    `json:"group_id"`
	MemberID   string    `json:"member_id"`
	MemberName string    `json:"member_name"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}
