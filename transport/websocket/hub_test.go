package websocket

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wricardo/mcp-training/tilegame/game/engine"
)

func newTestClient(hub *Hub, sessionID string) *Client {
	return &Client{
		id:        sessionID + "-client",
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, engine.WebSocketBufferSize),
	}
}

func testState() *engine.GameState {
	return &engine.GameState{
		Cells:   []uint32{2, 0, 0, 4},
		Width:   2,
		Height:  2,
		Moves:   3,
		MaxTile: 4,
	}
}

// waitFor polls cond until it holds or the deadline passes
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.sessions == nil {
		t.Error("Hub sessions map is nil")
	}
	if hub.broadcast == nil || hub.register == nil || hub.unregister == nil {
		t.Error("Hub channels not initialized")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "test-session")

	hub.registerClient(client)

	if !hub.sessions["test-session"][client] {
		t.Error("Client was not registered in session")
	}
	if len(hub.sessions["test-session"]) != 1 {
		t.Errorf("Expected 1 client in session, got %d", len(hub.sessions["test-session"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "test-session")

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.sessions["test-session"]; exists {
		t.Error("Session should have been cleaned up after last client unregistered")
	}
	if _, ok := <-client.send; ok {
		t.Error("Expected send channel to be closed")
	}

	// A second unregister is a no-op
	hub.unregisterClient(client)
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub()
	sessionID := "multi-client-session"

	client1 := newTestClient(hub, sessionID)
	client2 := newTestClient(hub, sessionID)

	hub.registerClient(client1)
	hub.registerClient(client2)

	if len(hub.sessions[sessionID]) != 2 {
		t.Errorf("Expected 2 clients in session, got %d", len(hub.sessions[sessionID]))
	}

	hub.unregisterClient(client1)

	if len(hub.sessions[sessionID]) != 1 {
		t.Errorf("Expected 1 client remaining in session, got %d", len(hub.sessions[sessionID]))
	}
	if !hub.sessions[sessionID][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestHubBroadcastToSession(t *testing.T) {
	hub := NewHub()
	sessionID := "broadcast-test"

	client := newTestClient(hub, sessionID)
	other := newTestClient(hub, "other-session")
	hub.registerClient(client)
	hub.registerClient(other)

	hub.BroadcastToSession(sessionID, testState())

	// Without Run the message waits in the queue
	select {
	case message := <-hub.broadcast:
		hub.broadcastMessage(message)
	default:
		t.Fatal("Expected message to be queued")
	}

	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if message.SessionID != sessionID {
			t.Errorf("Expected sessionID %s, got %s", sessionID, message.SessionID)
		}
		if message.Event != EventStateUpdate {
			t.Errorf("Expected event %q, got %s", EventStateUpdate, message.Event)
		}
		if message.GameState.MaxTile != 4 || message.GameState.Moves != 3 {
			t.Error("GameState not correctly transmitted")
		}
	default:
		t.Error("No message delivered to session client")
	}

	select {
	case <-other.send:
		t.Error("Client of another session must not receive the update")
	default:
	}
}

func TestHubSlowClientIsDropped(t *testing.T) {
	hub := NewHub()
	client := &Client{id: "slow", hub: hub, sessionID: "slow", send: make(chan []byte)}
	hub.registerClient(client)

	hub.broadcastMessage(stateMessage("slow", testState()))

	if _, exists := hub.sessions["slow"]; exists {
		t.Error("Expected blocked client to be unregistered")
	}
}

func TestHubBroadcastEvent(t *testing.T) {
	hub := NewHub()

	hub.BroadcastEvent("event-test", "custom-event", "test-data")

	select {
	case message := <-hub.broadcast:
		if message.SessionID != "event-test" {
			t.Errorf("Expected sessionID 'event-test', got %s", message.SessionID)
		}
		if message.Event != "custom-event" {
			t.Errorf("Expected event 'custom-event', got %s", message.Event)
		}
		if message.Data != "test-data" {
			t.Errorf("Expected data 'test-data', got %v", message.Data)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("No broadcast message received within timeout")
	}
}

func TestHubStop(t *testing.T) {
	hub := NewHub()
	finished := make(chan struct{})
	go func() {
		hub.Run()
		close(finished)
	}()

	hub.Stop()
	hub.Stop()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
	if hub.ClientCount("any") != 0 {
		t.Error("Stopped hub reports no clients")
	}
}

func startWSServer(t *testing.T, hub *Hub, initial *engine.GameState) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session")
		if sessionID == "" {
			sessionID = "default"
		}
		var snapshot Snapshot
		if initial != nil {
			snapshot = func() (*engine.GameState, error) { return initial, nil }
		}
		hub.ServeWS(w, r, sessionID, snapshot)
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestWebSocketUpgrade(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	wsURL := startWSServer(t, hub, nil) + "?session=ws-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}

	waitFor(t, func() bool { return hub.ClientCount("ws-test") == 1 })

	conn.Close()

	waitFor(t, func() bool { return hub.ClientCount("ws-test") == 0 })
}

func TestWebSocketMessageReceive(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	initial := testState()
	initial.Moves = 0
	wsURL := startWSServer(t, hub, initial) + "?session=msg-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	read := func() Message {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("Failed to read WebSocket message: %v", err)
		}
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		return message
	}

	if first := read(); first.GameState == nil || first.GameState.Moves != 0 {
		t.Fatalf("Expected initial state first, got %+v", first)
	}

	waitFor(t, func() bool { return hub.ClientCount("msg-test") == 1 })
	hub.BroadcastToSession("msg-test", testState())

	message := read()
	if message.SessionID != "msg-test" {
		t.Errorf("Expected sessionID 'msg-test', got %s", message.SessionID)
	}
	if message.GameState.Moves != 3 || message.GameState.Width != 2 {
		t.Errorf("GameState not correctly received: %+v", message.GameState)
	}
}

func TestHubSnapshotFollowsRegistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := newTestClient(hub, "snap")
	registered := false
	client.snapshot = func() (*engine.GameState, error) {
		// Runs on the hub loop, so the map is safe to read
		registered = hub.sessions["snap"][client]
		state := testState()
		state.Moves = 1
		return state, nil
	}
	hub.register <- client

	hub.BroadcastToSession("snap", testState())

	var moves []int
	for i := 0; i < 2; i++ {
		select {
		case data := <-client.send:
			var message Message
			if err := json.Unmarshal(data, &message); err != nil {
				t.Fatalf("Failed to unmarshal message: %v", err)
			}
			moves = append(moves, message.GameState.Moves)
		case <-time.After(time.Second):
			t.Fatalf("Expected 2 messages, got %v", moves)
		}
	}

	if !registered {
		t.Error("Snapshot must be read after the client is registered")
	}
	if moves[0] != 1 || moves[1] != 3 {
		t.Errorf("Expected snapshot before broadcast, got moves %v", moves)
	}
}

func TestHubSnapshotError(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := newTestClient(hub, "gone")
	client.snapshot = func() (*engine.GameState, error) {
		return nil, errors.New("session not found")
	}
	hub.register <- client

	if got := hub.ClientCount("gone"); got != 1 {
		t.Fatalf("Expected client to stay registered, got %d", got)
	}
	select {
	case data := <-client.send:
		t.Errorf("Expected no initial message, got %s", data)
	default:
	}
}
