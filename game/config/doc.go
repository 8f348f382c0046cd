// Package config provides board preset management for the tile merge game.
//
// The config package handles:
//   - Loading board presets from JSON files
//   - Preset validation through engine.ValidateGameConfig
//   - Default preset selection
//   - Preset discovery and listing
//
// Configuration Format:
//
// Presets are stored as JSON files in the configs directory. Each preset
// defines the board width and height, an optional row-major starting layout
// in "cells" (omitted means the seeded layout), and the messages shown after
// moves.
//
//	{
//	  "name": "classic",
//	  "description": "Classic 4x4 board",
//	  "width": 4,
//	  "height": 4,
//	  "messages": {"game_over": "GAME OVER"}
//	}
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("mini")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// The default preset is classic.json when present, otherwise the first valid
// preset in the directory, otherwise the built-in 4x4 board.
package config
