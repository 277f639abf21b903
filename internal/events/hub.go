package events

import (
	"sync"
	"time"
)

// Event is a committed state change broadcast to interested clients.
type Event struct {
	Name    string    `json:"name"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

// Publisher is called by the lifecycle after a transition has been durably
// committed. Publishing must never block or fail the caller.
type Publisher interface {
	Publish(name string, payload any)
}

// Hub fans events out to subscribers (the SSE endpoint). Slow subscribers
// drop events rather than block the publisher.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: map[chan Event]struct{}{}}
}

func (h *Hub) Publish(name string, payload any) {
	ev := Event{Name: name, Payload: payload, At: time.Now()}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe registers a listener; call the returned func to detach.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

// NopPublisher is used where no hub is wired (tests, CLI tooling).
type NopPublisher struct{}

func (NopPublisher) Publish(string, any) {}
