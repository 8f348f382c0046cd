// Package api provides the HTTP REST API for the tile game.
//
// Endpoints:
//
// Session Management:
//   - POST   /api/sessions            - Create a session ({"config_id": "mini"}, optional)
//   - GET    /api/sessions            - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET    /api/sessions/{id}       - Get session details
//   - DELETE /api/sessions/{id}       - Delete a session
//
// Game Operations:
//   - GET  /api/sessions/{id}/state     - Full game state as JSON
//   - GET  /api/sessions/{id}/board     - Rendered grid as text/plain
//   - POST /api/sessions/{id}/move      - {"direction": "up", "reset": false}
//   - POST /api/sessions/{id}/bulk-move - {"moves": ["up", "left"], "reset": false}
//   - POST /api/sessions/{id}/reset     - Reseed the grid from its preset
//   - GET  /api/sessions/{id}/history   - ?page=1&limit=20&order=desc
//
// Configuration:
//   - GET  /api/configs        - List presets
//   - GET  /api/configs/{name} - Get one preset
//   - POST /api/configs        - Validate and save a preset
//
// Other:
//   - GET /ws?session={id} - WebSocket state updates
//   - GET /healthz         - Liveness probe
//   - GET /metrics         - Prometheus metrics
//
// Move responses carry a "slide" object with the number of tiles spawned and
// merged and the passes the move took. A move against a finished game is
// answered with success=false and the game over message.
//
// Errors are returned as JSON:
//
//	{"error": "session not found: a1b2"}
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	srv := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", srv)
package api
