package database

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS friends (
		user_id    BIGINT NOT NULL REFERENCES users(id),
		friend_id  BIGINT NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, friend_id),
		CHECK (user_id <> friend_id)
	)`,

	`CREATE TABLE IF NOT EXISTS groups (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		owner_id   BIGINT NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS group_members (
		group_id  BIGINT NOT NULL REFERENCES groups(id),
		user_id   BIGINT NOT NULL REFERENCES users(id),
		role      TEXT NOT NULL DEFAULT 'MEMBER',
		joined_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (group_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS expenses (
		id          BIGSERIAL PRIMARY KEY,
		payer_id    BIGINT NOT NULL REFERENCES users(id),
		group_id    BIGINT REFERENCES groups(id),
		description TEXT NOT NULL,
		amount      NUMERIC(14, 4) NOT NULL CHECK (amount > 0),
		kind        TEXT NOT NULL,
		split_type  TEXT,
		date        TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS expense_splits (
		id         BIGSERIAL PRIMARY KEY,
		expense_id BIGINT NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
		user_id    BIGINT NOT NULL REFERENCES users(id),
		amount     NUMERIC(14, 4) NOT NULL CHECK (amount >= 0),
		settled    BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (expense_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id         BIGSERIAL PRIMARY KEY,
		type       TEXT NOT NULL,
		expense_id BIGINT NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
		actor_id   BIGINT NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_expenses_payer ON expenses(payer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_group ON expenses(group_id)`,
	`CREATE INDEX IF NOT EXISTS idx_splits_user ON expense_splits(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_created ON activities(created_at DESC)`,
}

// Migrate applies the schema. Statements are idempotent so running at every
// startup is safe.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
