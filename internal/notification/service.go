package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wesplit/wesplit/internal/ledger"
)

// Service dispatches group invites. Invites sit entirely outside the
// ledger: sending one mutates nothing but the outbox, and the ledger never
// waits on a delivery.
type Service struct {
	repo  *Repository
	store *ledger.Store
}

// NewService creates a new notification service
func NewService(repo *Repository, store *ledger.Store) *Service {
	return &Service{repo: repo, store: store}
}

// SendInvite composes and records an invite to join a group, attributed to
// the acting member.
func (s *Service) SendInvite(ctx context.Context, groupID string, channel Channel, recipient, recipientName, inviterID string) (*Notification, error) {
	sender, ok := senders[channel]
	if !ok {
		return nil, fmt.Errorf("%w: %w: %s", ledger.ErrValidation, ErrUnknownChannel, channel)
	}
	if channel != ChannelShare && recipient == "" {
		return nil, fmt.Errorf("%w: recipient is required for %s invites", ledger.ErrValidation, channel)
	}

	g, err := s.store.GetGroup(groupID)
	if err != nil {
		return nil, err
	}
	inviterName := "A group member"
	for _, m := range g.Members {
		if m.ID == inviterID {
			inviterName = m.Name
			break
		}
	}

	n := sender.Compose(Invite{
		GroupID:       groupID,
		GroupName:     g.Name,
		InviterName:   inviterName,
		RecipientName: recipientName,
		Recipient:     recipient,
	})
	n.ID = uuid.NewString()
	n.SentAt = time.Now().UTC()
	s.repo.Record(n)

	slog.Info("invite dispatched", "group_id", groupID, "channel", channel)
	return &n, nil
}

// List returns the outbox in send order
func (s *Service) List(ctx context.Context) []Notification {
	return s.repo.List()
}
