package session

import "context"

type ctxKey struct{}

// WithSession attaches s to ctx. Upstream calls read the bearer token from here.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// MustFromContext returns the session or ErrSessionNotFound.
func MustFromContext(ctx context.Context) (Session, error) {
	s, ok := FromContext(ctx)
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}
