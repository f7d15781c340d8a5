package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nexografix/timesheet-bff/internal/domain/preference"
	"github.com/nexografix/timesheet-bff/internal/pkg/database"
)

type preferenceRepositoryImpl struct {
	db *database.DB
}

func NewPreferenceRepository(db *database.DB) preference.PreferenceRepository {
	return &preferenceRepositoryImpl{db: db}
}

func (r *preferenceRepositoryImpl) Get(ctx context.Context, username, key string) (preference.Preference, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT username, key, value, updated_at
		FROM user_preferences
		WHERE username = $1 AND key = $2
	`

	var p preference.Preference
	err := q.QueryRow(ctx, query, username, key).Scan(&p.Username, &p.Key, &p.Value, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return preference.Preference{}, preference.ErrPreferenceNotFound
		}
		return preference.Preference{}, fmt.Errorf("failed to get preference: %w", err)
	}
	return p, nil
}

func (r *preferenceRepositoryImpl) List(ctx context.Context, username string) ([]preference.Preference, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT username, key, value, updated_at
		FROM user_preferences
		WHERE username = $1
		ORDER BY key
	`

	rows, err := q.Query(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	defer rows.Close()

	prefs := make([]preference.Preference, 0)
	for rows.Next() {
		var p preference.Preference
		if err := rows.Scan(&p.Username, &p.Key, &p.Value, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}

func (r *preferenceRepositoryImpl) Upsert(ctx context.Context, p preference.Preference) (preference.Preference, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO user_preferences (username, key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username, key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		RETURNING username, key, value, updated_at
	`

	var saved preference.Preference
	err := q.QueryRow(ctx, query, p.Username, p.Key, p.Value, p.UpdatedAt).
		Scan(&saved.Username, &saved.Key, &saved.Value, &saved.UpdatedAt)
	if err != nil {
		return preference.Preference{}, fmt.Errorf("failed to save preference: %w", err)
	}
	return saved, nil
}
