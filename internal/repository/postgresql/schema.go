package postgresql

import (
	"context"
	"fmt"

	"github.com/nexografix/timesheet-bff/internal/pkg/database"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id                    TEXT PRIMARY KEY,
		user_id               TEXT NOT NULL DEFAULT '',
		username              TEXT NOT NULL,
		role                  TEXT NOT NULL,
		manager               TEXT NOT NULL DEFAULT '',
		upstream_token        TEXT NOT NULL,
		force_change_password BOOLEAN NOT NULL DEFAULT FALSE,
		last_login            TIMESTAMPTZ,
		created_at            TIMESTAMPTZ NOT NULL,
		expires_at            TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS sessions_expires_at_idx ON sessions (expires_at)`,
	`CREATE INDEX IF NOT EXISTS sessions_username_idx ON sessions (username)`,
	`CREATE TABLE IF NOT EXISTS user_preferences (
		username   TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (username, key)
	)`,
}

// Migrate creates the tables this service owns.
func Migrate(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(ctx context.Context) error {
		q := GetQuerier(ctx, db)
		for _, stmt := range schema {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
		return nil
	})
}
