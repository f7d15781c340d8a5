package middleware

import (
	"net/http"

	"github.com/nexografix/timesheet-bff/internal/domain/session"
	"github.com/nexografix/timesheet-bff/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := session.MustFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if !sess.IsAdmin() {
			response.HandleError(w, session.ErrAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
