package friend

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles database operations for friendships.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new friend repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// AddFriend records the friendship in both directions. Re-adding an existing
// friend is a no-op, so the call is safe to repeat.
func (r *Repository) AddFriend(ctx context.Context, userID, friendID int64) error {
	query := `
		INSERT INTO friends (user_id, friend_id)
		VALUES ($1, $2), ($2, $1)
		ON CONFLICT (user_id, friend_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, userID, friendID); err != nil {
		return fmt.Errorf("failed to add friend: %w", err)
	}
	return nil
}

// ListFriends returns the user's friends with their profile details.
func (r *Repository) ListFriends(ctx context.Context, userID int64) ([]*Friend, error) {
	query := `
		SELECT f.user_id, f.friend_id, u.name, u.email, f.created_at
		FROM friends f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = $1
		ORDER BY u.name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	friends := make([]*Friend, 0)
	for rows.Next() {
		var f Friend
		if err := rows.Scan(&f.UserID, &f.FriendID, &f.Name, &f.Email, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friends: %w", err)
	}

	return friends, nil
}

// ListFriendIDs returns just the ids of the user's friends.
func (r *Repository) ListFriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := `SELECT friend_id FROM friends WHERE user_id = $1 ORDER BY friend_id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan friend id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friend ids: %w", err)
	}

	return ids, nil
}
