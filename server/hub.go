package server

import (
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/Swayamnakshane/amazonQ-note-app/api"
)

// hub fans change-feed events out to connected websocket clients.
type hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan api.Event
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	snapshot   func() []api.Note
	log        *slog.Logger
}

func newHub(snapshot func() []api.Note, log *slog.Logger) *hub {
	return &hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan api.Event, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		snapshot:   snapshot,
		log:        log,
	}
}

func (h *hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true
			h.log.Debug("feed client registered", "clients", len(h.clients))
			// New subscribers get the full collection up front so they
			// never start from events they missed.
			if err := conn.WriteJSON(api.Event{Type: "sync", Notes: h.snapshot()}); err != nil {
				h.log.Warn("feed sync failed", "error", err)
				conn.Close()
				delete(h.clients, conn)
			}
		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
				h.log.Debug("feed client unregistered", "clients", len(h.clients))
			}
		case event := <-h.broadcast:
			for conn := range h.clients {
				if err := conn.WriteJSON(event); err != nil {
					h.log.Warn("feed broadcast failed", "error", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
		}
	}
}

// Broadcast queues an event for all subscribers. Drops the event when
// the queue is full rather than stalling a mutation handler.
func (h *hub) Broadcast(event api.Event) {
	select {
	case h.broadcast <- event:
	default:
		h.log.Warn("feed queue full, dropping event", "type", event.Type)
	}
}
