// Package t2048 implements the 2048 sliding-tile puzzle: the grid state
// machine (grid, move resolution, spawning, terminal detection, scoring) and
// a platform adapter that drives it from platform input.
package t2048

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is wrapped by the panic raised on any coordinate access
// outside [0, sides).
var ErrOutOfBounds = errors.New("t2048: coordinate out of bounds")

// Coord addresses a grid cell. I is the column, J the row.
type Coord struct {
	I, J int
}

// String returns the coordinate as "i:j".
func (c Coord) String() string {
	return fmt.Sprintf("%d:%d", c.I, c.J)
}

// Tile is a numbered piece. The zero Tile marks an empty slot.
type Tile struct {
	Value int
}

// IsEmpty reports whether the slot holds no tile.
func (t Tile) IsEmpty() bool {
	return t.Value == 0
}

// Grid is a square board of sides*sides slots addressed by i*sides + j.
// At most one tile occupies a slot.
type Grid struct {
	sides int
	slots []Tile
}

// NewGrid returns an empty grid. sides must be at least 1.
func NewGrid(sides int) *Grid {
	if sides < 1 {
		panic(fmt.Sprintf("t2048: invalid grid size %d", sides))
	}
	return &Grid{
		sides: sides,
		slots: make([]Tile, sides*sides),
	}
}

// GridFromRows builds a grid from row-major values (rows[j][i]).
// A zero value is an empty cell. The rows must form a square.
func GridFromRows(rows [][]int) *Grid {
	g := NewGrid(len(rows))
	for j, row := range rows {
		if len(row) != g.sides {
			panic(fmt.Sprintf("t2048: row %d has %d cells, want %d", j, len(row), g.sides))
		}
		for i, v := range row {
			g.slots[g.index(i, j)] = Tile{Value: v}
		}
	}
	return g
}

// Sides returns the board dimension.
func (g *Grid) Sides() int {
	return g.sides
}

// InBounds reports whether (i, j) lies on the board.
func (g *Grid) InBounds(i, j int) bool {
	return i >= 0 && i < g.sides && j >= 0 && j < g.sides
}

func (g *Grid) index(i, j int) int {
	if !g.InBounds(i, j) {
		panic(fmt.Errorf("%w: (%d,%d) on %dx%d grid", ErrOutOfBounds, i, j, g.sides, g.sides))
	}
	return i*g.sides + j
}

// Get returns the tile at (i, j) and whether the cell is occupied.
func (g *Grid) Get(i, j int) (Tile, bool) {
	t := g.slots[g.index(i, j)]
	return t, !t.IsEmpty()
}

// Value returns the tile value at (i, j), 0 when empty.
func (g *Grid) Value(i, j int) int {
	return g.slots[g.index(i, j)].Value
}

// Set places t at (i, j). Setting the zero Tile clears the cell.
func (g *Grid) Set(i, j int, t Tile) {
	g.slots[g.index(i, j)] = t
}

// Clear empties the cell at (i, j).
func (g *Grid) Clear(i, j int) {
	g.slots[g.index(i, j)] = Tile{}
}

// IsEmpty reports whether (i, j) holds no tile.
func (g *Grid) IsEmpty(i, j int) bool {
	return g.slots[g.index(i, j)].IsEmpty()
}

// ScanOrder returns every coordinate exactly once, starting from the edge
// the tiles travel toward. Resolving cells in this order lets a tile settle
// against tiles that have already finished moving.
func (g *Grid) ScanOrder(dir Direction) []Coord {
	n := g.sides
	order := make([]Coord, 0, n*n)
	for p := range n {
		for q := range n {
			var c Coord
			switch dir {
			case DirLeft:
				c = Coord{I: q, J: p}
			case DirRight:
				c = Coord{I: n - 1 - q, J: p}
			case DirUp:
				c = Coord{I: p, J: q}
			case DirDown:
				c = Coord{I: p, J: n - 1 - q}
			default:
				panic(fmt.Sprintf("t2048: invalid direction %d", dir))
			}
			order = append(order, c)
		}
	}
	return order
}

// EmptyCells returns coordinates of all empty cells in index order.
func (g *Grid) EmptyCells() []Coord {
	var cells []Coord
	for idx, t := range g.slots {
		if t.IsEmpty() {
			cells = append(cells, Coord{I: idx / g.sides, J: idx % g.sides})
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func (g *Grid) HasEmptyCell() bool {
	for _, t := range g.slots {
		if t.IsEmpty() {
			return true
		}
	}
	return false
}

// Count returns the number of tiles on the board.
func (g *Grid) Count() int {
	n := 0
	for _, t := range g.slots {
		if !t.IsEmpty() {
			n++
		}
	}
	return n
}

// MaxTile returns the maximum tile value on the board.
func (g *Grid) MaxTile() int {
	maxVal := 0
	for _, t := range g.slots {
		if t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		sides: g.sides,
		slots: make([]Tile, len(g.slots)),
	}
	copy(c.slots, g.slots)
	return c
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.sides != other.sides {
		return false
	}
	for idx := range g.slots {
		if g.slots[idx] != other.slots[idx] {
			return false
		}
	}
	return true
}

// Rows returns the values in row-major order (rows[j][i]), 0 for empty.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.sides)
	for j := range g.sides {
		rows[j] = make([]int, g.sides)
		for i := range g.sides {
			rows[j][i] = g.slots[i*g.sides+j].Value
		}
	}
	return rows
}

// String renders the grid as rows of space-separated values.
func (g *Grid) String() string {
	var out []byte
	for j, row := range g.Rows() {
		if j > 0 {
			out = append(out, '\n')
		}
		for i, v := range row {
			if i > 0 {
				out = append(out, ' ')
			}
			out = fmt.Appendf(out, "%d", v)
		}
	}
	return string(out)
}
