// Package engine provides the core game logic for the tile merge game.
//
// The engine package implements the game mechanics including:
//   - A fixed-size grid of power-of-two tiles stored row-major
//   - Directional slides that compact, merge and spawn tiles
//   - The game-over predicate (no empty cell, no equal neighbours)
//   - Game configuration loading and validation
//
// Core Types:
//
// Grid is the tile grid and owns every transformation. GameEngine wraps a
// Grid with its GameConfig and keeps move bookkeeping, and GameState is the
// snapshot handed to transports.
//
// Usage:
//
//	grid, err := engine.NewGrid(4, 4)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	grid.Up(true)
//	fmt.Print(grid.Render())
//	if grid.CheckGameOver() {
//		fmt.Println("GAME OVER")
//	}
//
// Slides:
//
// A slide repeats a single pass over the grid until the grid stops changing.
// Each pass walks every lane from the edge opposite the move toward the target
// edge. For each pair of neighbours it first moves a tile into an empty cell,
// then merges two equal tiles, and on the first pass of a move it drops a new
// 2 tile into any trailing-edge cell left empty.
package engine
