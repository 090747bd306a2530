package notification

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Access resolves the rooms the authenticated caller may follow.
type Access func(c *gin.Context) (RoomPolicy, error)

type Handler struct {
	hub      *Hub
	buffer   int
	access   Access
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, buffer int, allowedOrigins []string, access Access) *Handler {
	return &Handler{
		hub:    hub,
		buffer: buffer,
		access: access,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

/*
* Resolve which rooms the caller may follow
* Refuse the connection when a requested room (?room=a&room=b) is not one of them
* Upgrade, register the client and start the read and write pumps
* Later join messages are held to the same rooms
 */
func (h *Handler) Connect(c *gin.Context) {
	policy, err := h.access(c)
	if err != nil {
		log.Error().Err(err).Msg("Error while resolving websocket rooms")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	rooms := c.QueryArray("room")
	for _, room := range rooms {
		if !policy(room) {
			log.Warn().Str("room", room).Msg("websocket room refused")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("Error from websocket upgrade")
		return
	}
	client := NewClient(uuid.NewString(), ws, h.buffer).WithPolicy(policy)
	h.hub.Register(client, rooms...)
	log.Debug().Str("client", client.ID).Strs("rooms", rooms).Msg("websocket client connected")

	go h.writePump(client)
	go h.readPump(client)
}

func (h *Handler) readPump(client *Client) {
	defer func() {
		h.hub.Unregister(client)
		client.conn.Close()
	}()

	for {
		_, message, err := client.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		h.hub.ProcessMessage(client, msg)
	}
}

func (h *Handler) writePump(client *Client) {
	defer client.conn.Close()

	for message := range client.Send {
		if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
