package session

import (
	"context"
	"time"
)

type SessionRepository interface {
	Create(ctx context.Context, s Session) error
	GetByID(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes sessions expired at now and returns their IDs.
	DeleteExpired(ctx context.Context, now time.Time) ([]string, error)
}
