package engine

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func createValidConfig() *GameConfig {
	return &GameConfig{
		Name:        "Test Config",
		Description: "Test configuration",
		Width:       4,
		Height:      4,
		Messages:    defaultMessages(),
	}
}

func TestValidateGameConfig_ValidConfig(t *testing.T) {
	if err := ValidateGameConfig(createValidConfig()); err != nil {
		t.Errorf("Expected valid config to pass, got: %v", err)
	}
}

func TestValidateGameConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *GameConfig)
		contains string
	}{
		{"missing name", func(c *GameConfig) { c.Name = "" }, "name is required"},
		{"missing description", func(c *GameConfig) { c.Description = "" }, "description is required"},
		{"zero width", func(c *GameConfig) { c.Width = 0 }, "width must be between"},
		{"height too large", func(c *GameConfig) { c.Height = MaxGridSize + 1 }, "height must be between"},
		{"cells length mismatch", func(c *GameConfig) { c.Cells = []uint32{2, 2} }, "expected 16 cells"},
		{"cells not power of two", func(c *GameConfig) {
			c.Cells = make([]uint32, 16)
			c.Cells[3] = 3
		}, "not a power of two"},
		{"cells above the largest tile", func(c *GameConfig) {
			c.Cells = make([]uint32, 16)
			c.Cells[0] = 1 << 31
		}, "above"},
		{"template with another verb", func(c *GameConfig) { c.Messages.Moved = "%d %s" }, `message "moved"`},
		{"template with two directions", func(c *GameConfig) { c.Messages.NoChange = "%s and %s" }, `message "no_change"`},
		{"template with a lone non-string verb", func(c *GameConfig) { c.Messages.Welcome = "score %d" }, `message "welcome"`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := createValidConfig()
			test.mutate(config)

			err := ValidateGameConfig(config)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), test.contains) {
				t.Errorf("Expected error containing %q, got: %v", test.contains, err)
			}
		})
	}
}

func TestValidateGameConfig_Nil(t *testing.T) {
	if err := ValidateGameConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestValidateCells(t *testing.T) {
	if err := ValidateCells([]uint32{0, 2, 4, 1 << 20}, 2, 2); err != nil {
		t.Errorf("Expected valid cells, got %v", err)
	}
	if err := ValidateCells([]uint32{0, 2, 4}, 2, 2); !errors.Is(err, ErrInvalidCells) {
		t.Errorf("Expected ErrInvalidCells, got %v", err)
	}
	if err := ValidateCells([]uint32{MaxCellValue, 0}, 2, 1); err != nil {
		t.Errorf("Expected %d to be accepted, got %v", MaxCellValue, err)
	}
	if err := ValidateCells([]uint32{1 << 31, 0}, 2, 1); !errors.Is(err, ErrInvalidCells) {
		t.Errorf("Expected ErrInvalidCells for 1<<31, got %v", err)
	}
}

func TestLoadGameConfig(t *testing.T) {
	dir := t.TempDir()

	validPath := filepath.Join(dir, "valid.json")
	valid := `{"name":"mini","description":"Mini board","width":3,"height":3,"cells":[0,2,0,0,0,0,2,0,4]}`
	if err := os.WriteFile(validPath, []byte(valid), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadGameConfig(validPath)
	if err != nil {
		t.Fatalf("Failed to load valid config: %v", err)
	}
	if config.Name != "mini" || config.Width != 3 || len(config.Cells) != 9 {
		t.Errorf("Unexpected config: %+v", config)
	}

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		os.WriteFile(path, []byte("{"), 0644)
		if _, err := LoadGameConfig(path); err == nil {
			t.Error("Expected parse error")
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		os.WriteFile(path, []byte(`{"name":"x","description":"y","width":0,"height":4}`), 0644)
		if _, err := LoadGameConfig(path); err == nil {
			t.Error("Expected validation error")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadGameConfig(filepath.Join(dir, "nope.json")); err == nil {
			t.Error("Expected error for missing file")
		}
	})
}

func TestNewGridFromConfig(t *testing.T) {
	config := createValidConfig()
	config.Width, config.Height = 2, 3
	config.Cells = []uint32{0, 2, 4, 8, 16, 0}

	grid, err := NewGridFromConfig(config)
	if err != nil {
		t.Fatalf("Failed to build grid: %v", err)
	}
	if !slices.Equal(grid.Cells(), config.Cells) {
		t.Errorf("Expected %v, got %v", config.Cells, grid.Cells())
	}

	config.Cells = nil
	grid, err = NewGridFromConfig(config)
	if err != nil {
		t.Fatalf("Failed to build seeded grid: %v", err)
	}
	if !slices.Equal(grid.Cells(), []uint32{2, 0, 0, 2, 0, 0}) {
		t.Errorf("Expected seeded 2x3 grid, got %v", grid.Cells())
	}
}
