package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ValidateGameConfig validates a game configuration for correctness
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate grid size
	if config.Width < MinGridSize || config.Width > MaxGridSize {
		return fmt.Errorf("config validation: width must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.Width)
	}
	if config.Height < MinGridSize || config.Height > MaxGridSize {
		return fmt.Errorf("config validation: height must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.Height)
	}

	if err := validateMessages(config.Messages); err != nil {
		return fmt.Errorf("config validation: %v", err)
	}

	// Validate optional starting layout
	if len(config.Cells) > 0 {
		if err := ValidateCells(config.Cells, config.Width, config.Height); err != nil {
			return fmt.Errorf("config validation: %v", err)
		}
	}

	return nil
}

// ValidateCells checks that cells fill a width x height grid with empty or
// power-of-two tiles no larger than MaxCellValue
func ValidateCells(cells []uint32, width, height int) error {
	if len(cells) != width*height {
		return fmt.Errorf("%w: expected %d cells for %dx%d grid, got %d", ErrInvalidCells, width*height, width, height, len(cells))
	}
	for i, v := range cells {
		if v != 0 && !isPowerOfTwo(v) {
			return fmt.Errorf("%w: cell %d holds %d, not a power of two", ErrInvalidCells, i, v)
		}
		if v > MaxCellValue {
			return fmt.Errorf("%w: cell %d holds %d, above %d", ErrInvalidCells, i, v, MaxCellValue)
		}
	}
	return nil
}

// validateMessages allows at most one verb per template, and only %s
func validateMessages(messages Messages) error {
	templates := []struct{ key, msg string }{
		{"welcome", messages.Welcome},
		{"moved", messages.Moved},
		{"no_change", messages.NoChange},
		{"game_over", messages.GameOver},
	}
	for _, t := range templates {
		if n := strings.Count(t.msg, "%"); n > 1 || (n == 1 && !containsVerb(t.msg)) {
			return fmt.Errorf("message %q must contain at most one %%s verb and no other verbs", t.key)
		}
	}
	return nil
}

// LoadGameConfig loads and validates a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultConfig returns the classic 4x4 configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:        "classic",
		Description: "Classic 4x4 board",
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Messages:    defaultMessages(),
	}
}

func defaultMessages() Messages {
	return Messages{
		Welcome:  "Press up, down, left or right to play",
		Moved:    "Moved %s",
		NoChange: "Nothing moved %s",
		GameOver: "GAME OVER",
	}
}

// NewGridFromConfig builds the starting grid described by config
func NewGridFromConfig(config *GameConfig) (*Grid, error) {
	grid, err := NewGrid(config.Width, config.Height)
	if err != nil {
		return nil, err
	}
	if len(config.Cells) > 0 {
		if err := grid.SetCells(config.Cells); err != nil {
			return nil, err
		}
	}
	return grid, nil
}
