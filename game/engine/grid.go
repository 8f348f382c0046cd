package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	ErrInvalidCells      = errors.New("invalid cells")
	ErrInvalidDirection  = errors.New("invalid direction")
)

// Grid is the tile grid. Cells are stored row-major and every cell holds 0
// (empty) or a power of two. A Grid is not safe for concurrent use.
type Grid struct {
	cells  []uint32
	width  int
	height int
}

// NewGrid allocates a width x height grid seeded with a 2 on every third cell
func NewGrid(width, height int) (*Grid, error) {
	if width < MinGridSize || height < MinGridSize {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxGridSize || height > MaxGridSize {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidDimensions, width, height, MaxGridSize)
	}

	cells := make([]uint32, width*height)
	for i := range cells {
		if i%SeedStride == 0 {
			cells[i] = SpawnValue
		}
	}

	return &Grid{cells: cells, width: width, height: height}, nil
}

// NewDefaultGrid returns the seeded 4x4 grid
func NewDefaultGrid() *Grid {
	g, err := NewGrid(DefaultWidth, DefaultHeight)
	if err != nil {
		panic(err)
	}
	return g
}

// Width returns the number of columns
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows
func (g *Grid) Height() int {
	return g.height
}

// Cells returns a copy of the cells in row-major order
func (g *Grid) Cells() []uint32 {
	out := make([]uint32, len(g.cells))
	copy(out, g.cells)
	return out
}

// At returns the value at row, col
func (g *Grid) At(row, col int) uint32 {
	return g.cells[g.index(row, col)]
}

// SetCells replaces the grid contents after checking length and tile values
func (g *Grid) SetCells(cells []uint32) error {
	if err := ValidateCells(cells, g.width, g.height); err != nil {
		return err
	}
	g.cells = make([]uint32, len(cells))
	copy(g.cells, cells)
	return nil
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	return &Grid{cells: g.Cells(), width: g.width, height: g.height}
}

// Render draws one line per row with every cell right-aligned in a fixed
// field. A tile as wide as the field gets a leading space so neighbours stay
// separable.
func (g *Grid) Render() string {
	var b strings.Builder
	b.Grow(len(g.cells)*CellFieldWidth + g.height)

	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			symbol := EmptyGlyph
			if v := g.At(row, col); v != 0 {
				symbol = strconv.FormatUint(uint64(v), 10)
			}
			if len(symbol) >= CellFieldWidth {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%*s", CellFieldWidth, symbol)
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// String implements fmt.Stringer
func (g *Grid) String() string {
	return g.Render()
}

// CheckGameOver reports whether the grid is full and no two horizontal or
// vertical neighbours are equal
func (g *Grid) CheckGameOver() bool {
	if g.EmptyCount() > 0 {
		return false
	}

	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width-1; col++ {
			if g.At(row, col) == g.At(row, col+1) {
				return false
			}
		}
	}

	for row := 0; row < g.height-1; row++ {
		for col := 0; col < g.width; col++ {
			if g.At(row, col) == g.At(row+1, col) {
				return false
			}
		}
	}

	return true
}

// EmptyCount returns the number of empty cells
func (g *Grid) EmptyCount() int {
	count := 0
	for _, v := range g.cells {
		if v == 0 {
			count++
		}
	}
	return count
}

// MaxTile returns the largest tile on the grid
func (g *Grid) MaxTile() uint32 {
	var max uint32
	for _, v := range g.cells {
		if v > max {
			max = v
		}
	}
	return max
}

// index maps row, col to a cell index; anything outside the grid is a bug
func (g *Grid) index(row, col int) int {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		panic(fmt.Sprintf("engine: cell (%d,%d) outside %dx%d grid", row, col, g.width, g.height))
	}
	return row*g.width + col
}

// ParseDirection accepts direction names and the w/a/s/d keys
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "w":
		return Up, nil
	case "down", "s":
		return Down, nil
	case "left", "a":
		return Left, nil
	case "right", "d":
		return Right, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}
