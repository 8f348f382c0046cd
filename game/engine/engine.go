package engine

import (
	"fmt"
	"time"
)

// GameEngine runs one game on a Grid. It tracks the move counter, the
// status message and the move history. A GameEngine is not safe for
// concurrent use.
type GameEngine struct {
	grid   *Grid
	config *GameConfig

	moves    int
	gameOver bool
	message  string
	last     Slide

	history []MoveHistoryEntry
	current []MoveHistoryEntry
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{
		config:  config,
		history: []MoveHistoryEntry{},
	}
	if err := e.init(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewEngineWithDefaults creates a new game engine on the classic 4x4 board
func NewEngineWithDefaults() *GameEngine {
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return e
}

// init rebuilds the grid from config and clears the current segment
func (e *GameEngine) init() error {
	grid, err := NewGridFromConfig(e.config)
	if err != nil {
		return err
	}
	e.grid = grid
	e.moves = 0
	e.last = Slide{}
	e.current = []MoveHistoryEntry{}
	e.gameOver = grid.CheckGameOver()
	e.message = messageOr(e.config.Messages.Welcome, defaultMessages().Welcome)
	if e.gameOver {
		e.message = e.gameOverMessage()
	}
	return nil
}

// Grid exposes the underlying grid
func (e *GameEngine) Grid() *Grid {
	return e.grid
}

// GetState returns a snapshot of the current game state
func (e *GameEngine) GetState() *GameState {
	history := make([]MoveHistoryEntry, len(e.history))
	copy(history, e.history)
	current := make([]MoveHistoryEntry, len(e.current))
	copy(current, e.current)

	return &GameState{
		Cells:             e.grid.Cells(),
		Width:             e.grid.Width(),
		Height:            e.grid.Height(),
		Board:             e.grid.Render(),
		Moves:             e.moves,
		MaxTile:           e.grid.MaxTile(),
		EmptyCells:        e.grid.EmptyCount(),
		Message:           e.message,
		GameOver:          e.gameOver,
		ConfigName:        e.config.Name,
		MoveHistory:       history,
		TotalMoves:        len(e.history),
		CurrentMoves:      current,
		CurrentMovesCount: len(current),
		PossibleMoves:     e.GetPossibleMoves(),
	}
}

// Reset reseeds the grid from the configuration. The cumulative history is kept.
func (e *GameEngine) Reset() *GameState {
	if err := e.init(); err != nil {
		// The config was validated when the engine was built.
		panic(fmt.Sprintf("engine: reset with validated config failed: %v", err))
	}
	return e.GetState()
}

// IsGameOver returns whether the game is over
func (e *GameEngine) IsGameOver() bool {
	return e.gameOver
}

// Moves returns how many moves were made while the game was running
func (e *GameEngine) Moves() int {
	return e.moves
}

// LastSlide returns the outcome of the most recent move
func (e *GameEngine) LastSlide() Slide {
	return e.last
}

// Render returns the text board
func (e *GameEngine) Render() string {
	return e.grid.Render()
}

// Move applies an externally triggered move and reports whether the grid changed
func (e *GameEngine) Move(direction string) bool {
	dir, err := ParseDirection(direction)
	if err != nil {
		e.message = fmt.Sprintf("Unknown direction %q", direction)
		return false
	}
	if e.gameOver {
		e.message = e.gameOverMessage()
		return false
	}

	slide, err := e.grid.Move(dir)
	if err != nil {
		e.message = err.Error()
		return false
	}
	e.last = slide

	e.gameOver = e.grid.CheckGameOver()
	switch {
	case e.gameOver:
		e.message = e.gameOverMessage()
	case slide.Changed:
		e.moves++
		e.message = e.format(e.config.Messages.Moved, defaultMessages().Moved, dir)
	default:
		e.moves++
		e.message = e.format(e.config.Messages.NoChange, defaultMessages().NoChange, dir)
	}

	e.addMoveToHistory(dir, slide)
	return slide.Changed
}

// CanMove reports whether moving in direction would change the grid
func (e *GameEngine) CanMove(direction string) bool {
	if e.gameOver {
		return false
	}
	dir, err := ParseDirection(direction)
	if err != nil {
		return false
	}
	slide, err := e.grid.Clone().Move(dir)
	return err == nil && slide.Changed
}

// GetPossibleMoves returns all directions that would change the grid
func (e *GameEngine) GetPossibleMoves() []string {
	var possible []string
	for _, dir := range Directions {
		if e.CanMove(string(dir)) {
			possible = append(possible, string(dir))
		}
	}
	return possible
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.history
}

func (e *GameEngine) addMoveToHistory(dir Direction, slide Slide) {
	entry := MoveHistoryEntry{
		Action:     string(dir),
		Changed:    slide.Changed,
		Spawned:    slide.Spawned,
		Merged:     slide.Merged,
		MaxTile:    e.grid.MaxTile(),
		GameOver:   e.gameOver,
		Timestamp:  time.Now().Unix(),
		MoveNumber: len(e.history) + 1,
	}
	e.history = append(e.history, entry)
	e.current = append(e.current, entry)
}

func (e *GameEngine) gameOverMessage() string {
	return messageOr(e.config.Messages.GameOver, defaultMessages().GameOver)
}

func (e *GameEngine) format(template, fallback string, dir Direction) string {
	msg := messageOr(template, fallback)
	if containsVerb(msg) {
		return fmt.Sprintf(msg, dir)
	}
	return msg
}
