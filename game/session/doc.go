// Package session provides session management for the tile merge game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each service.Session owns its own engine instance together with creation
// and last access times.
//
// Session Identifiers:
//
// Generated IDs are 4 hex characters from crypto/rand. Lookups are
// case-insensitive and a generated ID never collides with a live session.
//
// Sessions live in memory only. Every lookup through the game service calls
// Touch, and CleanupExpiredSessions drops sessions idle past the cutoff.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sessionID)
//	removed := manager.CleanupExpiredSessions(24 * time.Hour)
package session
