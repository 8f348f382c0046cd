package engine

import (
	"fmt"
	"math"
	"slices"
)

// Up slides every column toward row 0. first marks an externally triggered
// move, the only kind allowed to spawn a tile.
func (g *Grid) Up(first bool) {
	g.slide(Up, first)
}

// Down slides every column toward the last row
func (g *Grid) Down(first bool) {
	g.slide(Down, first)
}

// Left slides every row toward column 0
func (g *Grid) Left(first bool) {
	g.slide(Left, first)
}

// Right slides every row toward the last column
func (g *Grid) Right(first bool) {
	g.slide(Right, first)
}

// Move applies an externally triggered move and reports what it did
func (g *Grid) Move(dir Direction) (Slide, error) {
	switch dir {
	case Up, Down, Left, Right:
	default:
		return Slide{}, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
	return g.slide(dir, true), nil
}

// slide repeats single passes until the grid stops changing. Only the first
// pass may spawn.
func (g *Grid) slide(dir Direction, first bool) Slide {
	var s Slide
	limit := g.passLimit(dir)
	spawn := first

	for {
		next, spawned, merged := g.pass(dir, spawn)
		if slices.Equal(next, g.cells) {
			return s
		}

		s.Passes++
		if s.Passes > limit {
			panic(fmt.Sprintf("engine: %s slide did not settle after %d passes", dir, limit))
		}

		g.cells = next
		s.Changed = true
		s.Spawned += spawned
		s.Merged += merged
		spawn = false
	}
}

// passLimit bounds the passes of one slide. Every pass after the first lowers
// each unsettled lane's tile count plus summed distance to the target edge,
// which never exceeds n(n+1)/2 for a lane of n cells.
func (g *Grid) passLimit(dir Direction) int {
	n := g.height
	if dir == Left || dir == Right {
		n = g.width
	}
	return n*(n+1)/2 + 1
}

// pass computes the next state without touching the current cells
func (g *Grid) pass(dir Direction, spawn bool) (next []uint32, spawned, merged int) {
	next = g.Cells()

	g.walk(dir, func(from, to int, trailing bool) {
		if next[to] == 0 {
			next[to] = next[from]
			next[from] = 0
		}
		// Only reachable when the compaction above did not fire, so each
		// pair merges at most once per pass.
		if next[from] != 0 && next[from] == next[to] {
			if next[to] > math.MaxUint32/2 {
				panic(fmt.Sprintf("engine: merging two %d tiles overflows uint32", next[to]))
			}
			next[to] *= 2
			next[from] = 0
			merged++
		}
		if spawn && trailing && next[from] == 0 {
			next[from] = SpawnValue
			spawned++
		}
	})

	return next, spawned, merged
}

// walk visits each (from, to) neighbour pair, where to is one step toward the
// target edge, starting from the edge opposite the move. trailing is set for
// pairs whose from cell lies on that opposite edge.
func (g *Grid) walk(dir Direction, visit func(from, to int, trailing bool)) {
	switch dir {
	case Up:
		for row := g.height - 1; row >= 1; row-- {
			for col := 0; col < g.width; col++ {
				visit(g.index(row, col), g.index(row-1, col), row == g.height-1)
			}
		}
	case Down:
		for row := 0; row < g.height-1; row++ {
			for col := 0; col < g.width; col++ {
				visit(g.index(row, col), g.index(row+1, col), row == 0)
			}
		}
	case Left:
		for col := g.width - 1; col >= 1; col-- {
			for row := 0; row < g.height; row++ {
				visit(g.index(row, col), g.index(row, col-1), col == g.width-1)
			}
		}
	case Right:
		for col := 0; col < g.width-1; col++ {
			for row := 0; row < g.height; row++ {
				visit(g.index(row, col), g.index(row, col+1), col == 0)
			}
		}
	}
}
