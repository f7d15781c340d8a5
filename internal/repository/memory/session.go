// Package memory holds process-local stores used when no database is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/session"
)

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
}

func NewSessionRepository() session.SessionRepository {
	return &sessionStore{sessions: make(map[string]session.Session)}
}

func (s *sessionStore) Create(_ context.Context, sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.sessions {
		if existing.Username == sess.Username && existing.Expired(sess.CreatedAt) {
			delete(s.sessions, id)
		}
	}
	s.sessions[sess.ID] = sess
	return nil
}

func (s *sessionStore) GetByID(_ context.Context, id string) (session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return session.Session{}, session.ErrSessionNotFound
	}
	return sess, nil
}

func (s *sessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return session.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *sessionStore) DeleteExpired(_ context.Context, now time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			ids = append(ids, id)
			delete(s.sessions, id)
		}
	}
	return ids, nil
}
