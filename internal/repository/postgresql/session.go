package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
	"github.com/nexografix/timesheet-bff/internal/pkg/database"
)

type sessionRepositoryImpl struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) session.SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

// Create stores s, dropping the user's already expired sessions in the same transaction.
func (r *sessionRepositoryImpl) Create(ctx context.Context, s session.Session) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if _, err := q.Exec(ctx,
			`DELETE FROM sessions WHERE username = $1 AND expires_at <= $2`,
			s.Username, s.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to prune sessions: %w", err)
		}

		query := `
			INSERT INTO sessions (
				id, user_id, username, role, manager, upstream_token,
				force_change_password, last_login, created_at, expires_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		_, err := q.Exec(ctx, query,
			s.ID, s.UserID, s.Username, string(s.Role), s.Manager, s.UpstreamToken,
			s.ForceChangePassword, s.LastLogin, s.CreatedAt, s.ExpiresAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		return nil
	})
}

func (r *sessionRepositoryImpl) GetByID(ctx context.Context, id string) (session.Session, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, user_id, username, role, manager, upstream_token,
			force_change_password, last_login, created_at, expires_at
		FROM sessions
		WHERE id = $1
	`

	var s session.Session
	var role string
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.Username, &role, &s.Manager, &s.UpstreamToken,
		&s.ForceChangePassword, &s.LastLogin, &s.CreatedAt, &s.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Session{}, session.ErrSessionNotFound
		}
		return session.Session{}, fmt.Errorf("failed to get session: %w", err)
	}
	s.Role = session.Role(role)
	return s, nil
}

func (r *sessionRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return session.ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `DELETE FROM sessions WHERE expires_at <= $1 RETURNING id`, now)
	if err != nil {
		return nil, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
