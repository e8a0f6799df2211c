// Package live pushes availability changes to store dashboards over
// websockets. Delivery is best-effort: a slow or dead client is dropped,
// and publishing never blocks a rental operation.
package live

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// AvailabilityEvent is broadcast after every committed rent and return.
type AvailabilityEvent struct {
	Type            string    `json:"type"` // "rented" or "returned"
	FilmID          int       `json:"film_id"`
	StoreID         int       `json:"store_id"`
	AvailableCopies int       `json:"available_copies"`
	Timestamp       time.Time `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Hub struct {
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan AvailabilityEvent
}

func NewHub() *Hub {
	h := &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan AvailabilityEvent, 64),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for event := range h.broadcast {
		h.clientsMux.Lock()
		for conn := range h.clients {
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(event); err != nil {
				conn.Close()
				delete(h.clients, conn)
			}
		}
		h.clientsMux.Unlock()
	}
}

// Publish queues an event for all connected clients. Drops the event when
// the queue is full rather than stalling the caller.
func (h *Hub) Publish(event AvailabilityEvent) {
	select {
	case h.broadcast <- event:
	default:
	}
}

// HandleWS upgrades the connection and registers the client.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Live] Websocket upgrade failed: %v", err)
		return
	}

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()

	// Reader loop: we never expect client messages, but reading drains
	// control frames and detects disconnects.
	go func() {
		defer func() {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			h.clientsMux.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
