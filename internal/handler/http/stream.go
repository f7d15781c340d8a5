package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/auth"
	"github.com/nexografix/timesheet-bff/internal/handler/http/middleware"
	"github.com/nexografix/timesheet-bff/internal/handler/http/response"
	"github.com/nexografix/timesheet-bff/internal/pkg/jwt"
	"github.com/nexografix/timesheet-bff/internal/pkg/sse"
)

// Subscriber is the read side of the event hub.
type Subscriber interface {
	Subscribe(username string) (<-chan sse.Event, func())
}

type StreamHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type streamHandlerImpl struct {
	jwtService   jwt.Service
	sessions     middleware.SessionResolver
	hub          Subscriber
	pingInterval time.Duration
}

func NewStreamHandler(jwtService jwt.Service, sessions middleware.SessionResolver, hub Subscriber) StreamHandler {
	return &streamHandlerImpl{
		jwtService:   jwtService,
		sessions:     sessions,
		hub:          hub,
		pingInterval: 25 * time.Second,
	}
}

// Stream implements StreamHandler. EventSource cannot send headers, so the
// short-lived token comes in ?token=.
func (h *streamHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	claims, err := h.jwtService.ValidateSSEToken(r.URL.Query().Get("token"))
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	if _, err := h.sessions.ResolveSession(r.Context(), claims.SessionID); err != nil {
		response.HandleError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming unsupported")
		return
	}

	events, unsubscribe := h.hub.Subscribe(claims.Username)
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	slog.Debug("Event stream opened", "username", claims.Username)
	for {
		select {
		case <-r.Context().Done():
			slog.Debug("Event stream closed", "username", claims.Username)
			return
		case e, open := <-events:
			if !open {
				return
			}
			if err := sse.WriteEvent(w, e); err != nil {
				slog.Warn("Event stream write failed", "username", claims.Username, "error", err)
				return
			}
			flusher.Flush()
		case t := <-ticker.C:
			if err := sse.WriteEvent(w, sse.Event{Name: sse.EventPing, Data: t.Unix()}); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
