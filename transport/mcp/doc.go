// Package mcp exposes the tile game to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API, and the JSON response is rendered as text for the agent.
//
// MCP Tools:
//   - create_session, list_sessions, get_session, delete_session
//   - game_state: grid, counters and possible moves
//   - move: one slide, with an optional reset first
//   - bulk_move: a sequence of slides, stopping at game over
//   - reset_game: reseed the grid from its preset
//   - move_history: paginated cumulative history plus the current segment
//   - list_configs: available board presets
//   - describe_cell: one cell with its four neighbours
//   - game_instructions: rules and strategy notes
//
// Transport Modes:
//
// The same MCPServer is served over stdio for local clients and over
// streamable HTTP at /mcp by the main server.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
