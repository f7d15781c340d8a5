package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/nexografix/timesheet-bff/internal/domain/preference"
)

type prefKey struct {
	username string
	key      string
}

type preferenceStore struct {
	mu    sync.RWMutex
	prefs map[prefKey]preference.Preference
}

func NewPreferenceRepository() preference.PreferenceRepository {
	return &preferenceStore{prefs: make(map[prefKey]preference.Preference)}
}

func (s *preferenceStore) Get(_ context.Context, username, key string) (preference.Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prefs[prefKey{username, key}]
	if !ok {
		return preference.Preference{}, preference.ErrPreferenceNotFound
	}
	return p, nil
}

func (s *preferenceStore) List(_ context.Context, username string) ([]preference.Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]preference.Preference, 0)
	for k, p := range s.prefs {
		if k.username == username {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *preferenceStore) Upsert(_ context.Context, p preference.Preference) (preference.Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[prefKey{p.Username, p.Key}] = p
	return p, nil
}
