/*
Package feed pushes newly posted room messages to live websocket subscribers.

This file defines the Hub, which tracks the connected clients of every room and fans a
published message out to them. Publish is registered as the store's post listener, so the
hub only ever sees messages the store has already accepted, in the order each room
appended them. It holds no chat state of its own.
*/
package feed

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"roomchat/internal/app/chat"
	"roomchat/internal/pkg/logx"
)

// EventTypeMessage marks an event carrying a newly posted message.
const EventTypeMessage = "message"

// Event is the JSON frame written to subscribers.
type Event struct {
	Type    string        `json:"type"`
	Room    string        `json:"room"`
	Message *chat.Message `json:"message"`
}

// Hub keeps, per room name, the set of connected clients.
type Hub struct {
	// rooms maps a room name to its connected clients.
	rooms map[string]map[*Client]struct{}

	// closed is set by Shutdown; no client can register afterwards.
	closed bool

	// mu guards rooms, closed and the closing of every client's send channel.
	mu sync.Mutex

	logger zerolog.Logger
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Client]struct{}),
		logger: logx.Logger().With().Str("component", "feed").Logger(),
	}
}

// Register adds the client to its room. It returns false once the hub is shut down.
func (h *Hub) Register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}

	clients, ok := h.rooms[c.room]
	if !ok {
		clients = make(map[*Client]struct{})
		h.rooms[c.room] = clients
	}
	clients[c] = struct{}{}

	h.logger.Debug().
		Str("room", c.room).
		Int("subscribers", len(clients)).
		Msg("Subscriber joined.")

	return true
}

// Unregister removes the client and closes its send queue. Unknown clients are ignored.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	clients, ok := h.rooms[c.room]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}

	delete(clients, c)
	close(c.send)

	if len(clients) == 0 {
		delete(h.rooms, c.room)
	}
}

// Publish queues msg for every subscriber of the room without blocking.
// A subscriber whose queue is full is dropped.
func (h *Hub) Publish(roomName string, msg *chat.Message) {
	frame, err := json.Marshal(Event{Type: EventTypeMessage, Room: roomName, Message: msg})
	if err != nil {
		h.logger.Error().Err(err).Str("room", roomName).Msg("Failed to marshal feed event.")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.rooms[roomName] {
		select {
		case c.send <- frame:
		default:
			h.logger.Warn().
				Str("room", roomName).
				Str("username", c.username).
				Msg("Subscriber queue full, dropping subscriber.")
			h.removeLocked(c)
		}
	}
}

// Subscribers returns the number of clients connected to the room.
func (h *Hub) Subscribers(roomName string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomName])
}

// Shutdown closes the queue of every client, which makes their write loops send a
// close frame and hang up. Later registrations are refused.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	count := 0
	for _, clients := range h.rooms {
		for c := range clients {
			close(c.send)
			count++
		}
	}
	h.rooms = make(map[string]map[*Client]struct{})

	h.logger.Info().Int("closed_subscribers", count).Msg("Feed hub shut down.")
}
