package sse

import (
	"sync"
)

// Event is one server-sent message addressed to a single user.
type Event struct {
	UserID string
	Event  string
	Data   interface{}
}

// Channels are buffered so delivery never blocks the notification worker;
// Publish drops events for connections that have fallen this far behind.
const subscriberBuffer = 10

// Hub fans notification events out to the live SSE connections of each user.
// One user may hold several connections (browser tabs), each with its own
// channel.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a connection for the user and returns its event channel.
// The cleanup func must be called when the connection ends; it unregisters the
// channel and closes it.
func (h *Hub) Subscribe(userID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan Event]struct{})
	}
	h.subs[userID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[userID], ch)
		close(ch)
		if len(h.subs[userID]) == 0 {
			delete(h.subs, userID)
		}
	}

	return ch, cleanup
}

// Publish delivers the event to every connection of the user. Users without
// an open connection still get the row persisted; they catch up through the
// notification list.
func (h *Hub) Publish(userID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[userID] {
		select {
		case ch <- event:
		default:
			// Slow connection, drop rather than block
		}
	}
}
