package broadcast

import (
	"log"
	"sync"

	"github.com/quickpoll/api/internal/core/domain"
)

// Conn is one live client connection. *websocket.Conn satisfies it; tests
// use fakes.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Hub owns the set of live connections. All mutation happens under the
// mutex; the set is never handed out for external iteration.
type Hub struct {
	mu    sync.Mutex
	conns map[Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[Conn]struct{}),
	}
}

func (h *Hub) Register(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
}

// Unregister is idempotent; removing an absent connection is a no-op.
func (h *Hub) Unregister(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
}

// Publish sends the event to every live connection, best-effort. A failed
// send closes and evicts that connection without aborting delivery to the
// rest. No ordering or delivery guarantee across connections.
func (h *Hub) Publish(event domain.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.conns {
		if err := c.WriteJSON(event); err != nil {
			log.Printf("broadcast: dropping connection: %v", err)
			c.Close()
			delete(h.conns, c)
		}
	}
}

// Len reports the number of live connections.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
