// Package service provides the business logic layer for the tile merge game.
//
// The service package implements:
//   - Multi-session game management
//   - Board preset lookup
//   - Move processing with per-move events
//   - Bulk moves with stop reasons
//   - Paged move history
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionStore keeps live sessions and their access times.
// ConfigManager loads and lists board presets.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine; the service serialises
// moves so a state snapshot never observes a half-applied slide.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	sessionInfo, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, sessionInfo.ID, "up", false)
//
// Events:
//
// Accepted moves produce a "move" or "no_change" event, followed by "merge"
// and "spawn" events when tiles combined or appeared, and "game_over" when no
// further move can change the grid.
package service
