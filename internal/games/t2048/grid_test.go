package t2048

import (
	"errors"
	"math/rand"
	"testing"
)

func TestGridFromRows(t *testing.T) {
	rows := [][]int{
		{2, 0, 8},
		{0, 4, 0},
		{16, 0, 2},
	}
	g := GridFromRows(rows)

	if g.Sides() != 3 {
		t.Fatalf("Sides() = %d, want 3", g.Sides())
	}
	// Coordinates are (column, row).
	if v := g.Value(2, 0); v != 8 {
		t.Errorf("Value(2, 0) = %d, want 8", v)
	}
	if v := g.Value(0, 2); v != 16 {
		t.Errorf("Value(0, 2) = %d, want 16", v)
	}
	if _, ok := g.Get(1, 0); ok {
		t.Error("Get(1, 0) should report an empty cell")
	}

	got := g.Rows()
	for j := range rows {
		for i := range rows[j] {
			if got[j][i] != rows[j][i] {
				t.Fatalf("Rows() = %v, want %v", got, rows)
			}
		}
	}
}

func TestGridString(t *testing.T) {
	g := GridFromRows([][]int{{2, 0}, {0, 4}})
	if s := g.String(); s != "2 0\n0 4" {
		t.Errorf("String() = %q, want %q", s, "2 0\n0 4")
	}
}

func TestGridOutOfBoundsPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func(g *Grid)
	}{
		{"get negative column", func(g *Grid) { g.Get(-1, 0) }},
		{"get row past edge", func(g *Grid) { g.Get(0, 4) }},
		{"set column past edge", func(g *Grid) { g.Set(4, 0, Tile{Value: 2}) }},
		{"clear negative row", func(g *Grid) { g.Clear(0, -1) }},
		{"is empty far away", func(g *Grid) { g.IsEmpty(10, 10) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic")
				}
				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrOutOfBounds) {
					t.Fatalf("panic value = %v, want ErrOutOfBounds", r)
				}
			}()
			tt.fn(NewGrid(4))
		})
	}
}

func TestGridInBounds(t *testing.T) {
	g := NewGrid(3)
	if !g.InBounds(0, 0) || !g.InBounds(2, 2) {
		t.Error("corners should be in bounds")
	}
	if g.InBounds(3, 0) || g.InBounds(0, -1) {
		t.Error("cells past the edge should be out of bounds")
	}
}

func TestScanOrder(t *testing.T) {
	tests := []struct {
		dir   Direction
		first []Coord
	}{
		{DirLeft, []Coord{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {0, 1}}},
		{DirRight, []Coord{{3, 0}, {2, 0}, {1, 0}, {0, 0}, {3, 1}}},
		{DirUp, []Coord{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {1, 0}}},
		{DirDown, []Coord{{0, 3}, {0, 2}, {0, 1}, {0, 0}, {1, 3}}},
	}

	g := NewGrid(4)
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			order := g.ScanOrder(tt.dir)
			if len(order) != 16 {
				t.Fatalf("len = %d, want 16", len(order))
			}

			seen := make(map[Coord]bool)
			for _, c := range order {
				if seen[c] {
					t.Fatalf("coordinate %s visited twice", c)
				}
				seen[c] = true
			}

			for k, want := range tt.first {
				if order[k] != want {
					t.Errorf("order[%d] = %s, want %s", k, order[k], want)
				}
			}
		})
	}
}

func TestEmptyCells(t *testing.T) {
	g := GridFromRows([][]int{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	})

	cells := g.EmptyCells()
	if len(cells) != 8 {
		t.Errorf("EmptyCells count = %d, want 8", len(cells))
	}
	for _, c := range cells {
		if !g.IsEmpty(c.I, c.J) {
			t.Errorf("cell %s reported empty but holds %d", c, g.Value(c.I, c.J))
		}
	}
	if !g.HasEmptyCell() {
		t.Error("HasEmptyCell should be true")
	}
	if g.Count() != 8 {
		t.Errorf("Count = %d, want 8", g.Count())
	}
}

func TestMaxTile(t *testing.T) {
	g := GridFromRows([][]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4},
		{8, 16, 32, 64},
	})

	if m := g.MaxTile(); m != 2048 {
		t.Errorf("MaxTile = %d, want 2048", m)
	}
	if g.HasEmptyCell() {
		t.Error("full grid should have no empty cell")
	}
	if m := NewGrid(4).MaxTile(); m != 0 {
		t.Errorf("empty grid MaxTile = %d, want 0", m)
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := GridFromRows([][]int{{2, 0}, {0, 4}})
	c := g.Clone()

	if !g.Equal(c) {
		t.Fatal("clone should equal the original")
	}

	c.Set(1, 0, Tile{Value: 8})
	if g.Value(1, 0) != 0 {
		t.Error("mutating the clone changed the original")
	}
	if g.Equal(c) {
		t.Error("grids should differ after mutation")
	}
	if g.Equal(NewGrid(3)) {
		t.Error("grids of different sizes should not be equal")
	}
}

// randomGrid fills a grid with a mix of empty cells and small powers of two.
func randomGrid(rng *rand.Rand, sides int, fill float64) *Grid {
	g := NewGrid(sides)
	for i := range sides {
		for j := range sides {
			if rng.Float64() < fill {
				g.Set(i, j, Tile{Value: 1 << (1 + rng.Intn(6))})
			}
		}
	}
	return g
}

func gridSum(g *Grid) int {
	sum := 0
	for _, t := range g.slots {
		sum += t.Value
	}
	return sum
}
