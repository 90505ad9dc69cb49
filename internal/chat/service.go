package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wesplit/wesplit/internal/ledger"
)

// Service handles chat business logic
type Service struct {
	repo  *Repository
	store *ledger.Store
}

// NewService creates a new chat service
func NewService(repo *Repository, store *ledger.Store) *Service {
	return &Service{repo: repo, store: store}
}

// Post appends a message to a group's conversation as the acting member.
// The sender must be a current member of the group.
func (s *Service) Post(ctx context.Context, groupID, memberID, text string) (*Message, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: message is required", ledger.ErrValidation)
	}
	g, err := s.store.GetGroup(groupID)
	if err != nil {
		return nil, err
	}

	var sender *ledger.Member
	for i, m := range g.Members {
		if m.ID == memberID {
			sender = &g.Members[i]
			break
		}
	}
	if sender == nil {
		return nil, fmt.Errorf("%w: sender %s is not a member of group %s", ledger.ErrValidation, memberID, groupID)
	}

	msg := Message{
		ID:         uuid.NewString(),
		GroupID:    groupID,
		MemberID:   sender.ID,
		MemberName: sender.Name,
		Message:    text,
		Timestamp:  time.Now().UTC(),
	}
	s.repo.Append(msg)
	return &msg, nil
}

// ListByGroup returns a group's conversation in send order
func (s *Service) ListByGroup(ctx context.Context, groupID string) ([]Message, error) {
	if _, err := s.store.GetGroup(groupID); err != nil {
		return nil, err
	}
	return s.repo.ListByGroup(groupID), nil
}
