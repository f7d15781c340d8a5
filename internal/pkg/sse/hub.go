package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Event names pushed to the browser.
const (
	EventWeekUpdated    = "week.updated"
	EventReopenReviewed = "reopen.reviewed"
	EventLeaveReviewed  = "leave.reviewed"
	EventPing           = "ping"
)

// Event is one server-sent event addressed to a user.
type Event struct {
	Name string
	Data any
}

// Publisher is the write side of the hub, as seen by services.
type Publisher interface {
	Publish(username string, event Event)
	PublishToMany(usernames []string, event Event)
}

// Hub fans events out to every open stream of a user.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	buffer      int
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
		buffer:      16,
	}
}

// Subscribe opens a stream for username. The returned func unsubscribes and
// closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe(username string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.buffer)
	if h.subscribers[username] == nil {
		h.subscribers[username] = make(map[chan Event]struct{})
	}
	h.subscribers[username][ch] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[username], ch)
			close(ch)
			if len(h.subscribers[username]) == 0 {
				delete(h.subscribers, username)
			}
		})
	}
	return ch, cancel
}

// Publish never blocks; a subscriber with a full buffer misses the event.
func (h *Hub) Publish(username string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[username] {
		select {
		case ch <- event:
		default:
		}
	}
}

// PublishToMany sends one event to several users.
func (h *Hub) PublishToMany(usernames []string, event Event) {
	for _, u := range usernames {
		h.Publish(u, event)
	}
}

func (h *Hub) SubscriberCount(username string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[username])
}

// WriteEvent writes e as an SSE frame with a JSON data line.
func WriteEvent(w io.Writer, e Event) error {
	data, err := json.Marshal(e.Data)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", e.Name, err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Name, data)
	return err
}
