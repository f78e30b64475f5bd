package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const writeTimeout = time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// SnapshotHub broadcasts game snapshots to websocket spectators.
type SnapshotHub struct {
	source   SnapshotSource
	interval time.Duration
	log      zerolog.Logger
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	done     chan struct{}
	once     sync.Once
}

// NewSnapshotHub creates a hub pushing rate snapshots per second (15 when
// rate is not positive) and starts its broadcast loop.
func NewSnapshotHub(source SnapshotSource, rate int, log zerolog.Logger) *SnapshotHub {
	if rate <= 0 {
		rate = 15
	}
	h := &SnapshotHub{
		source:   source,
		interval: time.Second / time.Duration(rate),
		log:      log,
		clients:  make(map[*websocket.Conn]bool),
		done:     make(chan struct{}),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *SnapshotHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer h.remove(conn)

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Clients returns the number of connected spectators.
func (h *SnapshotHub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close stops the broadcast loop and disconnects every spectator.
func (h *SnapshotHub) Close() {
	h.once.Do(func() {
		close(h.done)

		h.mu.Lock()
		defer h.mu.Unlock()
		for conn := range h.clients {
			conn.Close()
			delete(h.clients, conn)
		}
	})
}

func (h *SnapshotHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

// broadcast sends each new snapshot to all connected clients.
func (h *SnapshotHub) broadcast() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var lastTick uint64
	sent := false

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
		}

		if h.Clients() == 0 {
			continue
		}

		snap := h.source.Snapshot()
		if sent && snap.Tick == lastTick {
			continue
		}

		msg, err := json.Marshal(snap)
		if err != nil {
			h.log.Error().Err(err).Msg("encode snapshot")
			continue
		}
		lastTick, sent = snap.Tick, true

		h.mu.RLock()
		var failed []*websocket.Conn
		for conn := range h.clients {
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				failed = append(failed, conn)
			}
		}
		h.mu.RUnlock()

		for _, conn := range failed {
			h.remove(conn)
			conn.Close()
		}
	}
}
