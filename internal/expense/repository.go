package expense

import (
	"context"
	"database/sql"
	"fmt"
)

// Store defines the persistence operations the expense service needs. The
// abstraction keeps the service testable without a running database.
type Store interface {
	CreateExpense(ctx context.Context, e *Expense, splits []*Split) (*ExpenseWithSplits, error)
	GetExpense(ctx context.Context, id int64) (*Expense, error)
	GetSplits(ctx context.Context, expenseID int64) ([]*Split, error)
	ListForUser(ctx context.Context, userID int64) ([]*ExpenseWithSplits, error)
	ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]*ExpenseWithSplits, int, error)
	UpdateExpense(ctx context.Context, e *Expense, splits []*Split) (*ExpenseWithSplits, error)
	DeleteExpense(ctx context.Context, id int64) error
	SettleSplit(ctx context.Context, expenseID, userID int64) (*Split, bool, error)
}

// Repository implements Store on Postgres.
type Repository struct {
	db *sql.DB
}

var _ Store = (*Repository)(nil)

// NewRepository creates a new expense repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const expenseColumns = `e.id, e.payer_id, e.group_id, e.description, e.amount, e.kind, e.split_type, e.date, e.created_at, e.updated_at, u.name`

func scanExpense(row interface{ Scan(...any) error }) (*Expense, error) {
	e := &Expense{}
	err := row.Scan(
		&e.ID,
		&e.PayerID,
		&e.GroupID,
		&e.Description,
		&e.Amount,
		&e.Kind,
		&e.SplitType,
		&e.Date,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.PayerName,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CreateExpense inserts an expense and its splits in one transaction.
func (r *Repository) CreateExpense(ctx context.Context, e *Expense, splits []*Split) (*ExpenseWithSplits, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (payer_id, group_id, description, amount, kind, split_type, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, date, created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, query,
		e.PayerID, e.GroupID, e.Description, e.Amount, e.Kind, e.SplitType, e.Date,
	).Scan(&e.ID, &e.Date, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	created, err := insertSplits(ctx, tx, e.ID, splits)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	return &ExpenseWithSplits{Expense: e, Splits: created}, nil
}

func insertSplits(ctx context.Context, tx *sql.Tx, expenseID int64, splits []*Split) ([]*Split, error) {
	query := `
		INSERT INTO expense_splits (expense_id, user_id, amount)
		VALUES ($1, $2, $3)
		RETURNING id, expense_id, user_id, amount, settled, updated_at
	`

	created := make([]*Split, 0, len(splits))
	for _, s := range splits {
		out := &Split{}
		err := tx.QueryRowContext(ctx, query, expenseID, s.UserID, s.Amount).Scan(
			&out.ID, &out.ExpenseID, &out.UserID, &out.Amount, &out.Settled, &out.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create split: %w", err)
		}
		created = append(created, out)
	}
	return created, nil
}

// GetExpense retrieves an expense by its ID. Returns nil when absent.
func (r *Repository) GetExpense(ctx context.Context, id int64) (*Expense, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.id = $1
	`, expenseColumns)

	e, err := scanExpense(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

// GetSplits retrieves all splits for an expense in insertion order.
func (r *Repository) GetSplits(ctx context.Context, expenseID int64) ([]*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.user_id, s.amount, s.settled, s.updated_at, u.name
		FROM expense_splits s
		JOIN users u ON s.user_id = u.id
		WHERE s.expense_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		s := &Split{}
		if err := rows.Scan(&s.ID, &s.ExpenseID, &s.UserID, &s.Amount, &s.Settled, &s.UpdatedAt, &s.UserName); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, s)
	}

	return splits, rows.Err()
}

// ListForUser retrieves every expense visible to a user (as payer or split
// participant), newest first, with splits attached.
func (r *Repository) ListForUser(ctx context.Context, userID int64) ([]*ExpenseWithSplits, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT %s
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		LEFT JOIN expense_splits s ON s.expense_id = e.id
		WHERE e.payer_id = $1 OR s.user_id = $1
		ORDER BY e.date DESC, e.id DESC
	`, expenseColumns)

	return r.queryExpensesWithSplits(ctx, query, userID)
}

// ListByGroup retrieves expenses for a group with pagination.
func (r *Repository) ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]*ExpenseWithSplits, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1
		ORDER BY e.date DESC, e.id DESC
		LIMIT $2 OFFSET $3
	`, expenseColumns)

	expenses, err := r.queryExpensesWithSplits(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

func (r *Repository) queryExpensesWithSplits(ctx context.Context, query string, args ...any) ([]*ExpenseWithSplits, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*ExpenseWithSplits
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, &ExpenseWithSplits{Expense: e})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, e := range expenses {
		splits, err := r.GetSplits(ctx, e.Expense.ID)
		if err != nil {
			return nil, err
		}
		e.Splits = splits
	}
	return expenses, nil
}

// UpdateExpense rewrites an expense and replaces its splits in one
// transaction. Replaced splits lose their settled state: the obligations are
// new ones.
func (r *Repository) UpdateExpense(ctx context.Context, e *Expense, splits []*Split) (*ExpenseWithSplits, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE expenses
		SET description = $2, amount = $3, group_id = $4, kind = $5, split_type = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING date, created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, query,
		e.ID, e.Description, e.Amount, e.GroupID, e.Kind, e.SplitType,
	).Scan(&e.Date, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_splits WHERE expense_id = $1`, e.ID); err != nil {
		return nil, fmt.Errorf("failed to replace splits: %w", err)
	}

	created, err := insertSplits(ctx, tx, e.ID, splits)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense update: %w", err)
	}

	return &ExpenseWithSplits{Expense: e, Splits: created}, nil
}

// DeleteExpense removes an expense and its splits.
func (r *Repository) DeleteExpense(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_splits WHERE expense_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete splits: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

// SettleSplit flips the split owned by userID on the given expense to
// settled. The conditional update keyed on (expense_id, user_id) makes
// concurrent settles safe: the second writer matches zero rows and falls
// through to the idempotent read. Returns the split and whether this call
// performed the transition; (nil, false, nil) when no such split exists.
func (r *Repository) SettleSplit(ctx context.Context, expenseID, userID int64) (*Split, bool, error) {
	query := `
		UPDATE expense_splits
		SET settled = TRUE, updated_at = NOW()
		WHERE expense_id = $1 AND user_id = $2 AND settled = FALSE
		RETURNING id, expense_id, user_id, amount, settled, updated_at
	`

	s := &Split{}
	err := r.db.QueryRowContext(ctx, query, expenseID, userID).Scan(
		&s.ID, &s.ExpenseID, &s.UserID, &s.Amount, &s.Settled, &s.UpdatedAt,
	)
	if err == nil {
		return s, true, nil
	}
	if err != sql.ErrNoRows {
		return nil, false, fmt.Errorf("failed to settle split: %w", err)
	}

	// Already settled, or no split at all. Settling twice is a no-op, not
	// an error.
	readQuery := `
		SELECT id, expense_id, user_id, amount, settled, updated_at
		FROM expense_splits
		WHERE expense_id = $1 AND user_id = $2
	`
	err = r.db.QueryRowContext(ctx, readQuery, expenseID, userID).Scan(
		&s.ID, &s.ExpenseID, &s.UserID, &s.Amount, &s.Settled, &s.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read split: %w", err)
	}
	return s, false, nil
}
