package friend

import (
	"context"
	"errors"
	"fmt"

	"github.com/Khanalpratyush/splittwise/internal/user"
)

var (
	// ErrSelfFriend is returned when a user tries to befriend themselves.
	ErrSelfFriend = errors.New("cannot add yourself as a friend")
	// ErrUserNotFound is returned when the target user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// Service handles business logic for friendships.
type Service struct {
	repo     *Repository
	userRepo *user.Repository
}

// NewService creates a new friend service.
func NewService(repo *Repository, userRepo *user.Repository) *Service {
	return &Service{repo: repo, userRepo: userRepo}
}

// AddFriend establishes a symmetric friendship between the two users. The
// operation is idempotent.
func (s *Service) AddFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return ErrSelfFriend
	}

	target, err := s.userRepo.GetByID(ctx, friendID)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if target == nil {
		return ErrUserNotFound
	}

	return s.repo.AddFriend(ctx, userID, friendID)
}

// ListFriends returns the user's friends.
func (s *Service) ListFriends(ctx context.Context, userID int64) ([]*Friend, error) {
	return s.repo.ListFriends(ctx, userID)
}
