package webserver

import (
	"sync"

	"github.com/sentinelflow/sentinelflow/internal/eventq"
	"github.com/sentinelflow/sentinelflow/internal/history"
	"github.com/sentinelflow/sentinelflow/internal/stats"
)

// Snapshot is the dashboard state pushed to browser clients. It is a value
// copy; publishers hand over fresh slices, never live backing stores.
type Snapshot struct {
	Running bool            `json:"running"`
	Order   string          `json:"order"`
	Steps   []string        `json:"steps"`
	Output  string          `json:"output"`
	Stats   stats.Aggregate `json:"stats"`
	History []history.Entry `json:"history"`
}

// Hub fans dashboard snapshots out to websocket subscribers. Publishing never
// blocks: a subscriber that cannot keep up misses intermediate snapshots and
// catches up on the next one.
type Hub struct {
	mu     sync.Mutex
	last   Snapshot
	nextID int
	subs   map[int]chan Snapshot
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Snapshot)}
}

// Publish records s as the latest snapshot and offers it to every subscriber.
func (h *Hub) Publish(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = s
	for _, ch := range h.subs {
		eventq.Offer(ch, s)
	}
}

// Last returns the most recently published snapshot.
func (h *Hub) Last() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// Subscribe registers a new subscriber and returns its id and channel.
func (h *Hub) Subscribe() (int, <-chan Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	ch := make(chan Snapshot, 16)
	h.subs[h.nextID] = ch
	return h.nextID, ch
}

// Unsubscribe removes a subscriber.
func (h *Hub) Unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}
