package engine

import (
	"slices"
	"testing"
)

func gridFrom(t *testing.T, width, height int, cells []uint32) *Grid {
	t.Helper()
	g, err := NewGrid(width, height)
	if err != nil {
		t.Fatalf("Failed to create %dx%d grid: %v", width, height, err)
	}
	if err := g.SetCells(cells); err != nil {
		t.Fatalf("Failed to set cells: %v", err)
	}
	return g
}

func TestSlide_WithoutSpawn(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		cells         []uint32
		dir           Direction
		expected      []uint32
	}{
		{"pair merges toward low index", 2, 1, []uint32{2, 2}, Left, []uint32{4, 0}},
		{"gap compacts and merges toward high index", 3, 1, []uint32{2, 0, 2}, Right, []uint32{0, 0, 4}},
		{"column of equal tiles merges across passes", 1, 4, []uint32{2, 2, 2, 2}, Up, []uint32{8, 0, 0, 0}},
		{"single tile slides the full column", 1, 4, []uint32{2, 0, 0, 0}, Down, []uint32{0, 0, 0, 2}},
		{"gap reopened by a pass is closed by the next", 1, 4, []uint32{0, 2, 0, 4}, Up, []uint32{2, 4, 0, 0}},
		{"unequal neighbours stay", 2, 1, []uint32{2, 4}, Left, []uint32{2, 4}},
		{"non-square rows use width as stride", 3, 2, []uint32{2, 0, 2, 0, 4, 4}, Left, []uint32{4, 0, 0, 8, 0, 0}},
		{"non-square columns use width as stride", 3, 2, []uint32{0, 2, 0, 2, 2, 4}, Up, []uint32{2, 4, 4, 0, 0, 0}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := gridFrom(t, test.width, test.height, test.cells)
			switch test.dir {
			case Up:
				g.Up(false)
			case Down:
				g.Down(false)
			case Left:
				g.Left(false)
			case Right:
				g.Right(false)
			}
			if got := g.Cells(); !slices.Equal(got, test.expected) {
				t.Errorf("%s on %v: expected %v, got %v", test.dir, test.cells, test.expected, got)
			}
		})
	}
}

func TestSlide_SpawnOnFirstPass(t *testing.T) {
	t.Run("spawn enters from the trailing edge and keeps sliding", func(t *testing.T) {
		g := gridFrom(t, 3, 1, []uint32{2, 0, 2})
		g.Right(true)

		expected := []uint32{0, 2, 4}
		if got := g.Cells(); !slices.Equal(got, expected) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	})

	t.Run("empty grid fills the target row", func(t *testing.T) {
		g := gridFrom(t, 4, 4, make([]uint32, 16))
		slide, err := g.Move(Up)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}

		expected := []uint32{2, 2, 2, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
		if got := g.Cells(); !slices.Equal(got, expected) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
		if slide.Spawned != 4 {
			t.Errorf("Expected 4 spawned tiles, got %d", slide.Spawned)
		}
		if !slide.Changed {
			t.Error("Expected slide to report a change")
		}
	})

	t.Run("no spawn when nothing moves", func(t *testing.T) {
		g := gridFrom(t, 2, 2, []uint32{2, 4, 4, 2})
		slide, err := g.Move(Up)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if slide.Changed || slide.Spawned != 0 {
			t.Errorf("Expected no change and no spawn, got %+v", slide)
		}
	})

	t.Run("single row grid never spawns vertically", func(t *testing.T) {
		g := gridFrom(t, 3, 1, []uint32{0, 2, 0})
		g.Up(true)
		g.Down(true)
		expected := []uint32{0, 2, 0}
		if got := g.Cells(); !slices.Equal(got, expected) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	})
}

func TestSlide_Counts(t *testing.T) {
	g := gridFrom(t, 1, 4, []uint32{2, 2, 2, 2})
	slide, err := g.Move(Up)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	if slide.Merged != 3 {
		t.Errorf("Expected 3 merges, got %d", slide.Merged)
	}
	if slide.Spawned != 1 {
		t.Errorf("Expected 1 spawn, got %d", slide.Spawned)
	}
	if slide.Passes < 2 {
		t.Errorf("Expected at least 2 passes, got %d", slide.Passes)
	}
}

func TestSlide_FixedPointIdempotence(t *testing.T) {
	cells := []uint32{
		2, 0, 4, 4,
		0, 2, 2, 0,
		8, 0, 0, 8,
		2, 2, 2, 2,
	}

	for _, dir := range Directions {
		t.Run(string(dir), func(t *testing.T) {
			g := gridFrom(t, 4, 4, cells)
			g.slide(dir, false)
			settled := g.Cells()

			g.slide(dir, false)
			if got := g.Cells(); !slices.Equal(got, settled) {
				t.Errorf("Second %s changed the grid: %v -> %v", dir, settled, got)
			}
		})
	}
}

func TestMove_InvalidDirection(t *testing.T) {
	g := NewDefaultGrid()
	before := g.Cells()

	if _, err := g.Move(Direction("diagonal")); err == nil {
		t.Error("Expected error for invalid direction")
	}
	if !slices.Equal(g.Cells(), before) {
		t.Error("Invalid move must not change the grid")
	}
}

func TestMove_ConservesSum(t *testing.T) {
	tests := []struct {
		name  string
		dir   Direction
		cells []uint32
	}{
		{"up", Up, []uint32{2, 0, 2, 4, 2, 0, 2, 4, 0, 8, 8, 0, 2, 0, 0, 2}},
		{"down", Down, []uint32{2, 2, 2, 2, 4, 0, 4, 0, 0, 0, 0, 0, 16, 16, 0, 2}},
		{"left", Left, []uint32{0, 0, 0, 2, 2, 2, 4, 4, 8, 0, 8, 0, 0, 0, 0, 0}},
		{"right", Right, []uint32{2, 4, 8, 16, 2, 2, 0, 0, 0, 0, 0, 0, 4, 0, 4, 4}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := gridFrom(t, 4, 4, test.cells)
			beforeSum := SumCells(g.Cells())
			beforeTiles := CountTiles(g.Cells())

			slide, err := g.Move(test.dir)
			if err != nil {
				t.Fatalf("Move failed: %v", err)
			}

			after := g.Cells()
			if got, want := SumCells(after), beforeSum+2*uint64(slide.Spawned); got != want {
				t.Errorf("Expected sum %d, got %d (slide %+v)", want, got, slide)
			}
			if got := CountTiles(after); got > beforeTiles+slide.Spawned {
				t.Errorf("Tile count grew from %d to %d with %d spawns", beforeTiles, got, slide.Spawned)
			}
			if slide.Spawned > 4 {
				t.Errorf("Expected at most one spawn per lane, got %d", slide.Spawned)
			}
		})
	}
}

func TestPassLimit(t *testing.T) {
	g := gridFrom(t, 3, 5, make([]uint32, 15))

	if got := g.passLimit(Up); got != 16 {
		t.Errorf("Expected vertical limit 16, got %d", got)
	}
	if got := g.passLimit(Left); got != 7 {
		t.Errorf("Expected horizontal limit 7, got %d", got)
	}
}

func TestMove_LargestMerge(t *testing.T) {
	g := gridFrom(t, 2, 1, []uint32{MaxCellValue, MaxCellValue})
	before := SumCells(g.Cells())

	slide, err := g.Move(Left)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if got, want := g.Cells(), []uint32{2 * MaxCellValue, SpawnValue}; !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if got, want := SumCells(g.Cells()), before+2*uint64(slide.Spawned); got != want {
		t.Errorf("Expected sum %d, got %d", want, got)
	}
}

func TestSlide_OverflowingMergePanics(t *testing.T) {
	// Unreachable through SetCells, which caps tiles at MaxCellValue
	g := &Grid{cells: []uint32{1 << 31, 1 << 31}, width: 2, height: 1}

	defer func() {
		if recover() == nil {
			t.Error("Expected merging two 1<<31 tiles to panic")
		}
	}()
	g.Left(false)
}
