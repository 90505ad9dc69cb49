package group

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wesplit/wesplit/internal/ledger"
)

// Service handles group business logic
type Service struct {
	store *ledger.Store
}

// NewService creates a new group service
func NewService(store *ledger.Store) *Service {
	return &Service{store: store}
}

// Create creates a new group with the creator as its first member
func (s *Service) Create(ctx context.Context, req *CreateGroupRequest) (*ledger.Group, error) {
	creator := req.Creator.toMember()
	if creator.Name == "" {
		return nil, fmt.Errorf("%w: creator is required", ledger.ErrValidation)
	}

	g, err := s.store.CreateGroup(req.Name, req.Description, creator)
	if err != nil {
		return nil, err
	}
	slog.Info("group created", "group_id", g.ID, "name", g.Name)
	return g, nil
}

// List retrieves all groups
func (s *Service) List(ctx context.Context) []*ledger.Group {
	return s.store.ListGroups()
}

// GetByID retrieves a group by its ID
func (s *Service) GetByID(ctx context.Context, id string) (*ledger.Group, error) {
	return s.store.GetGroup(id)
}

// Update modifies a group's name or description
func (s *Service) Update(ctx context.Context, id string, req *UpdateGroupRequest) (*ledger.Group, error) {
	return s.store.UpdateGroup(id, req.Name, req.Description)
}

// AddMember adds a member to a group
func (s *Service) AddMember(ctx context.Context, groupID string, req *MemberRequest) (*ledger.Group, error) {
	g, err := s.store.AddMember(groupID, req.toMember())
	if err != nil {
		return nil, err
	}
	slog.Info("member added", "group_id", groupID, "member_name", req.Name)
	return g, nil
}

// RemoveMember removes a member from a group's member set
func (s *Service) RemoveMember(ctx context.Context, groupID, memberID string) error {
	if err := s.store.RemoveMember(groupID, memberID); err != nil {
		return err
	}
	slog.Info("member removed", "group_id", groupID, "member_id", memberID)
	return nil
}
