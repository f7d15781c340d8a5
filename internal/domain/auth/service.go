package auth

import (
	"context"

	"github.com/nexografix/timesheet-bff/internal/domain/session"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	// Logout ends the caller's session and revokes accessToken
	Logout(ctx context.Context, accessToken string) error
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	IssueSSEToken(ctx context.Context) (SSETokenResponse, error)

	// ResolveSession loads a live session for an authenticated request
	ResolveSession(ctx context.Context, sessionID string) (session.Session, error)
}

// Authenticator is the upstream side of login and password changes.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (UpstreamLogin, error)
	ChangePassword(ctx context.Context, newPassword string) error
}
