// Command validate checks the board preset JSON files in a directory. For
// each file it checks:
//   - JSON structure, rejecting unknown fields
//   - name, description and grid dimensions through the engine's validator
//   - the optional starting layout and message templates, also through the engine
//   - whether the starting grid can move at all
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/tilegame/game/engine"
)

// errInvalidPresets is returned when at least one file fails validation
var errInvalidPresets = errors.New("some configurations have errors")

// ValidationResult captures the outcome of validating a single file.
// Errors make the file invalid; Notes are informational.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
	Notes  []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) note(format string, args ...interface{}) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single preset file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.fail("%v", err)
		return result
	}
	result.note("✓ Grid: %dx%d", config.Width, config.Height)
	noteDefaultMessages(&result, config.Messages)

	eng, err := engine.NewEngine(&config)
	if err != nil {
		result.fail("Failed to build game: %v", err)
		return result
	}

	if len(config.Cells) == 0 {
		result.note("✓ Start: seeded, max tile %d", eng.Grid().MaxTile())
	} else {
		result.note("✓ Start: custom layout, max tile %d", eng.Grid().MaxTile())
	}

	if eng.IsGameOver() {
		result.note("⚠ Starting grid is already game over")
	} else if moves := eng.GetPossibleMoves(); len(moves) > 0 {
		result.note("✓ Possible first moves: %s", strings.Join(moves, ","))
	} else {
		result.note("⚠ No first move changes the grid")
	}

	return result
}

// noteDefaultMessages notes which templates fall back to the built-in text
func noteDefaultMessages(result *ValidationResult, messages engine.Messages) {
	templates := map[string]string{
		"welcome":   messages.Welcome,
		"moved":     messages.Moved,
		"no_change": messages.NoChange,
		"game_over": messages.GameOver,
	}

	var missing []string
	for _, key := range []string{"welcome", "moved", "no_change", "game_over"} {
		if templates[key] == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		result.note("Default text used for: %s", strings.Join(missing, ", "))
	}
}

// validateDir validates every *.json file in dir and prints a report to out
func validateDir(out io.Writer, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("error finding config files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no configuration files found in %s", dir)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Fprintf(out, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(out, "✅ VALID")
			for _, info := range result.Notes {
				fmt.Fprintln(out, "  "+info)
			}
		} else {
			fmt.Fprintln(out, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(out, "  ❌ "+err)
			}
		}
	}

	fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 40))
	if !allValid {
		fmt.Fprintln(out, "❌ Some configurations have errors")
		return errInvalidPresets
	}
	fmt.Fprintln(out, "✅ All configurations are valid!")
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "validate",
		Usage: "Validate board preset JSON files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "../configs",
				Usage:   "Directory containing board presets",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return validateDir(os.Stdout, cmd.String("config-dir"))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, errInvalidPresets) {
			log.Print(err)
		}
		os.Exit(1)
	}
}
