// Package notification pushes admin events to websocket clients grouped in
// rooms. A room is named after the entity it concerns, usually a patient id.
package notification

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Publisher is fire-and-forget: delivery is never acknowledged.
type Publisher interface {
	Emit(room, event string, payload interface{})
}

type Event struct {
	Event     string      `json:"event"`
	Room      string      `json:"room"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ClientMessage is sent by a client to change its rooms.
type ClientMessage struct {
	Action string   `json:"action"`
	Rooms  []string `json:"rooms"`
}

type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// RoomPolicy reports whether a client may join a room.
type RoomPolicy func(room string) bool

// AllRooms is the policy of callers allowed to follow any patient.
func AllRooms(string) bool { return true }

// OnlyRooms allows exactly the given rooms.
func OnlyRooms(rooms ...string) RoomPolicy {
	allowed := make(map[string]struct{}, len(rooms))
	for _, r := range rooms {
		allowed[r] = struct{}{}
	}
	return func(room string) bool {
		_, ok := allowed[room]
		return ok
	}
}

type Client struct {
	ID     string
	Send   chan []byte
	rooms  map[string]struct{}
	conn   Conn
	policy RoomPolicy
}

// NewClient builds a client that may join any room; see WithPolicy.
func NewClient(id string, conn Conn, buffer int) *Client {
	return &Client{
		ID:     id,
		Send:   make(chan []byte, buffer),
		rooms:  make(map[string]struct{}),
		conn:   conn,
		policy: AllRooms,
	}
}

func (c *Client) WithPolicy(policy RoomPolicy) *Client {
	if policy != nil {
		c.policy = policy
	}
	return c
}

func (c *Client) CanJoin(room string) bool {
	return room != "" && c.policy(room)
}

type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
	all   map[*Client]struct{}
	now   func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		all:   make(map[*Client]struct{}),
		now:   time.Now,
	}
}

func (h *Hub) Register(client *Client, rooms ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.all[client] = struct{}{}
	h.join(client, rooms)
}

// Unregister drops the client from every room and closes its Send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[client]; !ok {
		return
	}
	for room := range client.rooms {
		h.removeFromRoom(client, room)
	}
	delete(h.all, client)
	close(client.Send)
}

func (h *Hub) Join(client *Client, rooms ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.join(client, rooms)
}

func (h *Hub) Leave(client *Client, rooms ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range rooms {
		h.removeFromRoom(client, room)
	}
}

func (h *Hub) ProcessMessage(client *Client, msg ClientMessage) {
	switch msg.Action {
	case "join":
		h.Join(client, msg.Rooms...)
	case "leave":
		h.Leave(client, msg.Rooms...)
	}
}

// Emit implements Publisher. Clients with a full buffer miss the event.
func (h *Hub) Emit(room, event string, payload interface{}) {
	data, err := json.Marshal(Event{
		Event:     event,
		Room:      room,
		Payload:   payload,
		Timestamp: h.now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("Error while marshalling notification")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[room] {
		select {
		case client.Send <- data:
		default:
			log.Warn().Str("client", client.ID).Str("room", room).Msg("notification dropped, client buffer full")
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

func (h *Hub) RoomCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// callers hold h.mu
func (h *Hub) join(client *Client, rooms []string) {
	for _, room := range rooms {
		if !client.CanJoin(room) {
			if room != "" {
				log.Warn().Str("client", client.ID).Str("room", room).Msg("join refused")
			}
			continue
		}
		if h.rooms[room] == nil {
			h.rooms[room] = make(map[*Client]struct{})
		}
		h.rooms[room][client] = struct{}{}
		client.rooms[room] = struct{}{}
	}
}

func (h *Hub) removeFromRoom(client *Client, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(client.rooms, room)
}
