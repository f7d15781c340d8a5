package memory

import (
	"context"
	"testing"
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/preference"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	old := session.Session{ID: "a", Username: "asha", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
	other := session.Session{ID: "b", Username: "ravi", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, other))

	require.NoError(t, repo.Create(ctx, session.Session{ID: "c", Username: "asha", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}))
	_, err := repo.GetByID(ctx, "a")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	ids, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)

	got, err := repo.GetByID(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "asha", got.Username)

	require.NoError(t, repo.Delete(ctx, "c"))
	assert.ErrorIs(t, repo.Delete(ctx, "c"), session.ErrSessionNotFound)
}

func TestPreferenceStore(t *testing.T) {
	ctx := context.Background()
	repo := NewPreferenceRepository()

	_, err := repo.Get(ctx, "asha", "theme")
	assert.ErrorIs(t, err, preference.ErrPreferenceNotFound)

	_, err = repo.Upsert(ctx, preference.Preference{Username: "asha", Key: "theme", Value: "dark"})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, preference.Preference{Username: "asha", Key: "a.first", Value: "1"})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, preference.Preference{Username: "ravi", Key: "theme", Value: "light"})
	require.NoError(t, err)

	list, err := repo.List(ctx, "asha")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a.first", list[0].Key)

	p, err := repo.Get(ctx, "ravi", "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", p.Value)
}
