// Package websocket pushes game state to browsers and other watchers.
//
// A central Hub owns every connection. Clients subscribe to one session via
// the ?session= query parameter and receive a JSON Message after each move or
// reset of that session:
//
//	{"session_id": "a1b2", "event": "state_update", "game_state": {...}}
//
// Incoming client messages are read only to keep ping/pong alive.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Stop()
//
//	hub.ServeWS(w, r, sessionID, func() (*engine.GameState, error) {
//		return svc.GetGameState(ctx, sessionID)
//	})
//	hub.BroadcastToSession(sessionID, state)
//
// Concurrency:
//
// Only the Run goroutine touches the session map. It reads a new client's
// snapshot right after registering it, so the first message a client gets is
// never older than a broadcast it missed. Broadcasts are queued and
// never block the caller; a client whose send buffer is full is dropped.
// Each client gets a random UUID used in log lines.
package websocket
