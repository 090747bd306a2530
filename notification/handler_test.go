package notification

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_ConnectReceivesRoomEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	r := gin.New()
	r.GET("/ws", NewHandler(hub, 8, []string{"*"}, allRooms).Connect)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?room=patient-9"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.RoomCount("patient-9") == 1 }, time.Second, 10*time.Millisecond)

	hub.Emit("patient-9", "appointmentConfirmed", map[string]string{"status": "confirmed"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var evt Event
	require.NoError(t, json.Unmarshal(data, &evt))
	assert.Equal(t, "appointmentConfirmed", evt.Event)
	assert.Equal(t, "patient-9", evt.Room)

	require.NoError(t, conn.WriteJSON(ClientMessage{Action: "join", Rooms: []string{"patient-10"}}))
	require.Eventually(t, func() bool { return hub.RoomCount("patient-10") == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func allRooms(*gin.Context) (RoomPolicy, error) { return AllRooms, nil }

func ownRoomServer(t *testing.T, hub *Hub, own string) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	access := func(*gin.Context) (RoomPolicy, error) { return OnlyRooms(own), nil }
	r.GET("/ws", NewHandler(hub, 8, []string{"*"}, access).Connect)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestHandler_ForeignRoomRefused(t *testing.T) {
	hub := NewHub()
	url := ownRoomServer(t, hub, "patient-1")

	conn, resp, err := websocket.DefaultDialer.Dial(url+"?room=patient-1&room=patient-2", nil)
	if conn != nil {
		conn.Close()
	}
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHandler_JoinMessageHeldToOwnRoom(t *testing.T) {
	hub := NewHub()
	url := ownRoomServer(t, hub, "patient-1")

	conn, _, err := websocket.DefaultDialer.Dial(url+"?room=patient-1", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.RoomCount("patient-1") == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(ClientMessage{Action: "join", Rooms: []string{"patient-2", "patient-1"}}))
	require.NoError(t, conn.WriteJSON(ClientMessage{Action: "leave", Rooms: []string{"patient-1"}}))
	require.Eventually(t, func() bool { return hub.RoomCount("patient-1") == 0 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, hub.RoomCount("patient-2"))
}

func TestHandler_AccessFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	access := func(*gin.Context) (RoomPolicy, error) { return nil, assert.AnError }
	r.GET("/ws", NewHandler(NewHub(), 8, []string{"*"}, access).Connect)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?room=patient-1", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://admin.local"})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://admin.local")
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://evil.local")
	assert.False(t, check(req))
}
