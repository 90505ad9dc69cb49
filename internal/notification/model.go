package notification

import (
	"errors"
	"time"
)

// Channel is an outbound invite delivery channel.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelShare    Channel = "share" // generic share link, no recipient address
)

// ErrUnknownChannel is returned for channels outside the supported set.
var ErrUnknownChannel = errors.New("unknown notification channel")

// ParseChannel validates a raw channel string.
func ParseChannel(s string) (Channel, error) {
	switch c := Channel(s); c {
	case ChannelEmail, ChannelSMS, ChannelWhatsApp, ChannelShare:
		return c, nil
	default:
		return "", ErrUnknownChannel
	}
}

// Invite is a request to invite someone into a group.
type Invite struct {
	GroupID       string
	GroupName     string
	InviterName   string
	RecipientName string
	Recipient     string // email address or phone number, channel-dependent
}

// Notification is one dispatched invite, recorded in the outbox.
// Delivery is fire-and-forget: the ledger never depends on it.
type Notification struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	Channel   Channel   `json:"channel"`
	Recipient string    `json:"recipient,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sent_at"`
}
