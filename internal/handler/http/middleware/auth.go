package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/nexografix/timesheet-bff/internal/domain/auth"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
	"github.com/nexografix/timesheet-bff/internal/handler/http/response"
	"github.com/nexografix/timesheet-bff/internal/pkg/jwt"
)

// SessionResolver loads the live session behind a verified token.
type SessionResolver interface {
	ResolveSession(ctx context.Context, sessionID string) (session.Session, error)
}

// AuthRequired expects jwtauth.Verifier to have run. It rejects revoked and
// non-access tokens and attaches the session to the request context.
func AuthRequired(jwtService jwt.Service, sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := jwtService.AccessClaims(token)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			sess, err := sessions.ResolveSession(r.Context(), claims.SessionID)
			if err != nil {
				slog.Debug("Session lookup failed", "session_id", claims.SessionID, "error", err)
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
		}
		return http.HandlerFunc(hfn)
	}
}

// PasswordChangeCleared blocks sessions that must change their password first.
func PasswordChangeCleared(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := session.MustFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if sess.ForceChangePassword {
			response.HandleError(w, session.ErrPasswordChangePending)
			return
		}
		next.ServeHTTP(w, r)
	})
}
