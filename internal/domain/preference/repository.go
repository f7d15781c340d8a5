package preference

import "context"

type PreferenceRepository interface {
	Get(ctx context.Context, username, key string) (Preference, error)
	List(ctx context.Context, username string) ([]Preference, error)
	// Upsert inserts or replaces the value for (username, key)
	Upsert(ctx context.Context, p Preference) (Preference, error)
}
