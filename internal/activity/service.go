package activity

import (
	"context"
	"log/slog"
)

const feedLimit = 50

// Service handles activity feed business logic.
type Service struct {
	repo *Repository
}

// NewService creates a new activity service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Record stores an activity event. The feed is best effort: a failed insert
// is logged and swallowed so it never fails the expense operation that
// triggered it.
func (s *Service) Record(ctx context.Context, eventType string, expenseID, actorID int64) {
	if _, err := s.repo.Create(ctx, eventType, expenseID, actorID); err != nil {
		slog.Warn("failed to record activity",
			"type", eventType,
			"expense_id", expenseID,
			"actor_id", actorID,
			"error", err,
		)
	}
}

// ListForUser retrieves the newest events visible to a user.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]*Activity, error) {
	return s.repo.ListForUser(ctx, userID, feedLimit)
}
