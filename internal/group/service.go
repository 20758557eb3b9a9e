package group

import (
	"context"
	"errors"
	"fmt"

	"github.com/Khanalpratyush/splittwise/internal/user"
)

var (
	// ErrGroupNotFound is returned when the requested group does not exist.
	ErrGroupNotFound = errors.New("group not found")
	// ErrNotOwner is returned when a non-owner attempts an owner-only action.
	ErrNotOwner = errors.New("only the group owner can do this")
	// ErrNotMember is returned when a non-member tries to view a group.
	ErrNotMember = errors.New("you are not a member of this group")
	// ErrMemberNotFound is returned when a listed member id has no account.
	ErrMemberNotFound = errors.New("member not found")
)

// Service handles business logic for groups.
type Service struct {
	repo     *Repository
	userRepo *user.Repository
}

// NewService creates a new group service.
func NewService(repo *Repository, userRepo *user.Repository) *Service {
	return &Service{repo: repo, userRepo: userRepo}
}

// CreateGroup creates a group owned by creatorID. Duplicate member ids are
// collapsed and the creator is always enrolled as owner, listed or not.
func (s *Service) CreateGroup(ctx context.Context, creatorID int64, req *CreateGroupRequest) (*GroupWithMembers, error) {
	seen := map[int64]bool{creatorID: true}
	memberIDs := make([]int64, 0, len(req.MemberIDs))
	for _, id := range req.MemberIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		u, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, fmt.Errorf("%w: %d", ErrMemberNotFound, id)
		}
		memberIDs = append(memberIDs, id)
	}

	g := &Group{Name: req.Name, OwnerID: creatorID}
	if err := s.repo.Create(ctx, g, memberIDs); err != nil {
		return nil, err
	}

	members, err := s.repo.GetMembers(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	return &GroupWithMembers{Group: *g, Members: members}, nil
}

// GetGroup retrieves a group with its members. Only members can view it.
func (s *Service) GetGroup(ctx context.Context, viewerID, groupID int64) (*GroupWithMembers, error) {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	isMember, err := s.repo.IsMember(ctx, groupID, viewerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotMember
	}

	members, err := s.repo.GetMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &GroupWithMembers{Group: *g, Members: members}, nil
}

// ListGroups retrieves every group the user belongs to.
func (s *Service) ListGroups(ctx context.Context, userID int64) ([]*Group, error) {
	return s.repo.ListForUser(ctx, userID)
}

// DeleteGroup removes a group. Only the owner may delete it; the group's
// expenses survive as non-group expenses.
func (s *Service) DeleteGroup(ctx context.Context, userID, groupID int64) error {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrGroupNotFound
	}
	if g.OwnerID != userID {
		return ErrNotOwner
	}

	return s.repo.Delete(ctx, groupID)
}

// IsMember reports whether the user belongs to the group.
func (s *Service) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	return s.repo.IsMember(ctx, groupID, userID)
}
