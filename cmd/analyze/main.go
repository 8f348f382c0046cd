// Command analyze autoplays every board preset in a directory and prints a
// short report per preset: how many moves a fixed up/left/down/right rotation
// survives, the largest tile it reaches, and whether the game ended.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/tilegame/game/config"
	"github.com/wricardo/mcp-training/tilegame/game/engine"
)

// rotation is the fixed direction cycle used by the autoplayer
var rotation = []engine.Direction{engine.Up, engine.Left, engine.Down, engine.Right}

// Report summarizes one autoplayed preset
type Report struct {
	ConfigID string
	Name     string
	Width    int
	Height   int
	Attempts int // directions tried
	Moves    int // engine move counter at the end
	Changed  int // attempts that changed the grid
	MaxTile  uint32
	GameOver bool
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "Autoplay board presets and report how far a fixed rotation gets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing board presets",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.IntFlag{
				Name:  "max-moves",
				Value: 10000,
				Usage: "Stop a game after this many attempts",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(os.Stdout, cmd.String("config-dir"), int(cmd.Int("max-moves")))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// run analyzes every valid preset in configDir
func run(out io.Writer, configDir string, maxMoves int) error {
	manager, err := config.NewManager(configDir)
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	infos, err := manager.ListConfigs()
	if err != nil {
		return fmt.Errorf("failed to list presets: %w", err)
	}

	for _, info := range infos {
		preset, err := manager.LoadConfig(info.ConfigID)
		if err != nil {
			fmt.Fprintf(out, "\n=== %s ===\nError: %v\n", info.ConfigID, err)
			continue
		}

		report, err := analyzePreset(info.ConfigID, preset, maxMoves)
		if err != nil {
			fmt.Fprintf(out, "\n=== %s ===\nError: %v\n", info.ConfigID, err)
			continue
		}
		printReport(out, report)
	}
	return nil
}

// analyzePreset plays preset with the fixed rotation until the game ends or maxMoves attempts were made
func analyzePreset(configID string, preset *engine.GameConfig, maxMoves int) (Report, error) {
	eng, err := engine.NewEngine(preset)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		ConfigID: configID,
		Name:     preset.Name,
		Width:    preset.Width,
		Height:   preset.Height,
	}

	for !eng.IsGameOver() && report.Attempts < maxMoves {
		dir := rotation[report.Attempts%len(rotation)]
		if eng.Move(string(dir)) {
			report.Changed++
		}
		report.Attempts++
	}

	report.Moves = eng.Moves()
	report.MaxTile = eng.Grid().MaxTile()
	report.GameOver = eng.IsGameOver()
	return report, nil
}

func printReport(out io.Writer, r Report) {
	fmt.Fprintf(out, "\n=== %s (%s) ===\n", r.ConfigID, r.Name)
	fmt.Fprintf(out, "Grid: %dx%d\n", r.Width, r.Height)
	fmt.Fprintf(out, "Attempts: %d (changed %d)\n", r.Attempts, r.Changed)
	fmt.Fprintf(out, "Moves counted: %d\n", r.Moves)
	fmt.Fprintf(out, "Max tile: %d\n", r.MaxTile)
	if r.GameOver {
		fmt.Fprintln(out, "Result: GAME OVER")
	} else {
		fmt.Fprintln(out, "Result: still playable at the move limit")
	}
}
