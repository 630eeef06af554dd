package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Event is the wire envelope pushed to a user's room.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub keeps one room of live WebSocket connections per user ID and
// re-emits events into it. Pure pass-through: no ordering guarantee,
// no delivery retry, nothing buffered for absent users.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*websocket.Conn]struct{}
	log   zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		rooms: make(map[string]map[*websocket.Conn]struct{}),
		log:   log,
	}
}

func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[userID] == nil {
		h.rooms[userID] = make(map[*websocket.Conn]struct{})
	}
	h.rooms[userID][conn] = struct{}{}
}

func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room := h.rooms[userID]; room != nil {
		delete(room, conn)
		if len(room) == 0 {
			delete(h.rooms, userID)
		}
	}
}

// ConnCount reports the number of live connections for a user.
func (h *Hub) ConnCount(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[userID])
}

// Publish sends the event to every live connection of the user. Writes
// happen under the hub lock since gorilla connections do not allow
// concurrent writers. Failed connections are dropped from the room.
func (h *Hub) Publish(userID, event string, data any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[userID]
	if len(room) == 0 {
		return
	}
	msg := Event{Event: event, Data: data}
	for conn := range room {
		if err := conn.WriteJSON(msg); err != nil {
			h.log.Debug().Err(err).Str("user_id", userID).Msg("ws write failed, dropping conn")
			conn.Close()
			delete(room, conn)
		}
	}
	if len(room) == 0 {
		delete(h.rooms, userID)
	}
}
