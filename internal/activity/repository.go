package activity

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles activity data persistence.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new activity repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new activity event.
func (r *Repository) Create(ctx context.Context, eventType string, expenseID, actorID int64) (*Activity, error) {
	query := `
		INSERT INTO activities (type, expense_id, actor_id)
		VALUES ($1, $2, $3)
		RETURNING id, type, expense_id, actor_id, created_at
	`

	a := &Activity{}
	err := r.db.QueryRowContext(ctx, query, eventType, expenseID, actorID).Scan(
		&a.ID, &a.Type, &a.ExpenseID, &a.ActorID, &a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	return a, nil
}

// ListForUser retrieves the most recent events on expenses the user can see:
// expenses they paid, expenses they participate in, and their own actions.
func (r *Repository) ListForUser(ctx context.Context, userID int64, limit int) ([]*Activity, error) {
	query := `
		SELECT DISTINCT a.id, a.type, a.expense_id, a.actor_id, a.created_at,
			u.name, e.description, e.amount
		FROM activities a
		JOIN users u ON a.actor_id = u.id
		JOIN expenses e ON a.expense_id = e.id
		LEFT JOIN expense_splits s ON s.expense_id = e.id
		WHERE a.actor_id = $1 OR e.payer_id = $1 OR s.user_id = $1
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*Activity
	for rows.Next() {
		a := &Activity{}
		if err := rows.Scan(
			&a.ID, &a.Type, &a.ExpenseID, &a.ActorID, &a.CreatedAt,
			&a.ActorName, &a.Description, &a.Amount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	return activities, rows.Err()
}
