package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ExpiredSessionStore deletes expired sessions and reports their IDs.
type ExpiredSessionStore interface {
	DeleteExpired(ctx context.Context, now time.Time) ([]string, error)
}

// BoardRegistry owns the live week boards.
type BoardRegistry interface {
	DropSession(sessionID string)
	ResyncAll(ctx context.Context) error
}

type SessionJobs struct {
	sessions ExpiredSessionStore
	boards   BoardRegistry
	now      func() time.Time
}

func NewSessionJobs(sessions ExpiredSessionStore, boards BoardRegistry) *SessionJobs {
	return &SessionJobs{sessions: sessions, boards: boards, now: time.Now}
}

// RegisterJobs adds expire_sessions (every minute) and resync_weeks (every
// syncInterval; disabled when zero).
func (j *SessionJobs) RegisterJobs(s *Scheduler, syncInterval time.Duration) {
	s.AddJob(Job{Name: "expire_sessions", Interval: time.Minute, Fn: j.ExpireSessions, RunAtStart: true})
	if syncInterval > 0 {
		s.AddJob(Job{Name: "resync_weeks", Interval: syncInterval, Fn: j.ResyncWeeks})
	}
}

func (j *SessionJobs) ExpireSessions(ctx context.Context) error {
	ids, err := j.sessions.DeleteExpired(ctx, j.now())
	if err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	for _, id := range ids {
		j.boards.DropSession(id)
	}
	if len(ids) > 0 {
		slog.Info("Cron: expired sessions removed", "count", len(ids))
	}
	return nil
}

func (j *SessionJobs) ResyncWeeks(ctx context.Context) error {
	return j.boards.ResyncAll(ctx)
}
