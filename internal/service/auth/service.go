package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nexografix/timesheet-bff/internal/domain/auth"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
	"github.com/nexografix/timesheet-bff/internal/pkg/jwt"
)

// BoardDropper forgets the in-memory state of an ended session.
type BoardDropper interface {
	DropSession(sessionID string)
}

type AuthServiceImpl struct {
	auth.Authenticator
	session.SessionRepository
	jwt.Service
	boards     BoardDropper
	sessionTTL time.Duration
	now        func() time.Time
}

func NewAuthService(authenticator auth.Authenticator, sessions session.SessionRepository, jwtService jwt.Service, boards BoardDropper, sessionTTL time.Duration) *AuthServiceImpl {
	return &AuthServiceImpl{
		Authenticator:     authenticator,
		SessionRepository: sessions,
		Service:           jwtService,
		boards:            boards,
		sessionTTL:        sessionTTL,
		now:               time.Now,
	}
}

var _ auth.AuthService = (*AuthServiceImpl)(nil)

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	up, err := a.Authenticator.Login(ctx, strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	username := strings.TrimSpace(deref(up.Username, ""))
	if username == "" {
		username = strings.TrimSpace(req.Username)
	}
	now := a.now()
	sess := session.Session{
		ID:                  uuid.NewString(),
		UserID:              deref(up.ID, ""),
		Username:            username,
		Role:                session.ParseRole(deref(up.Role, "")),
		Manager:             strings.TrimSpace(deref(up.Manager, "")),
		UpstreamToken:       up.Token,
		ForceChangePassword: deref(up.ForceChangePassword, false),
		LastLogin:           up.LastLogin,
		CreatedAt:           now,
		ExpiresAt:           now.Add(a.sessionTTL),
	}

	if err := a.SessionRepository.Create(ctx, sess); err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to save session: %w", err)
	}

	token, expiresAt, err := a.GenerateAccessToken(sess.ID, sess.Username, sess.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	if sessionEnd := sess.ExpiresAt.Unix(); expiresAt > sessionEnd {
		expiresAt = sessionEnd
	}

	slog.Info("User logged in", "username", sess.Username, "role", sess.Role, "session_id", sess.ID)
	return auth.LoginResponse{
		AccessToken:          token,
		AccessTokenExpiresAt: expiresAt,
		Username:             sess.Username,
		Role:                 string(sess.Role),
		Manager:              sess.Manager,
		ForceChangePassword:  sess.ForceChangePassword,
		LastLogin:            sess.LastLogin,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, accessToken string) error {
	sess, err := session.MustFromContext(ctx)
	if err != nil {
		return err
	}
	if accessToken != "" {
		a.RevokeToken(accessToken)
	}
	return a.end(ctx, sess)
}

func (a *AuthServiceImpl) end(ctx context.Context, sess session.Session) error {
	a.boards.DropSession(sess.ID)
	if err := a.SessionRepository.Delete(ctx, sess.ID); err != nil && !errors.Is(err, session.ErrSessionNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	slog.Info("Session ended", "username", sess.Username, "session_id", sess.ID)
	return nil
}

// ChangePassword implements auth.AuthService. The session ends on success.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	sess, err := session.MustFromContext(ctx)
	if err != nil {
		return err
	}
	if err := a.Authenticator.ChangePassword(ctx, req.NewPassword); err != nil {
		return err
	}
	return a.end(ctx, sess)
}

// IssueSSEToken implements auth.AuthService.
func (a *AuthServiceImpl) IssueSSEToken(ctx context.Context) (auth.SSETokenResponse, error) {
	sess, err := session.MustFromContext(ctx)
	if err != nil {
		return auth.SSETokenResponse{}, err
	}
	token, expiresIn, err := a.GenerateSSEToken(sess.ID, sess.Username)
	if err != nil {
		return auth.SSETokenResponse{}, fmt.Errorf("failed to create sse token: %w", err)
	}
	return auth.SSETokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}

// ResolveSession implements auth.AuthService. Expired sessions are removed.
func (a *AuthServiceImpl) ResolveSession(ctx context.Context, sessionID string) (session.Session, error) {
	sess, err := a.SessionRepository.GetByID(ctx, sessionID)
	if err != nil {
		return session.Session{}, err
	}
	if sess.Expired(a.now()) {
		if err := a.end(ctx, sess); err != nil {
			slog.Warn("Failed to remove expired session", "session_id", sess.ID, "error", err)
		}
		return session.Session{}, session.ErrSessionExpired
	}
	return sess, nil
}
