package t2048

import (
	"errors"
	"math/rand"
	"testing"
)

func TestSpawnFillsOnlyEmptyCell(t *testing.T) {
	g := GridFromRows([][]int{
		{2, 4, 8},
		{16, 0, 32},
		{64, 128, 256},
	})
	rng := rand.New(rand.NewSource(1))

	cell, tile, err := Spawn(g, rng)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if cell != (Coord{I: 1, J: 1}) {
		t.Errorf("spawned at %s, want 1:1", cell)
	}
	if tile.Value != 2 && tile.Value != 4 {
		t.Errorf("spawned value %d, want 2 or 4", tile.Value)
	}
	if g.Value(1, 1) != tile.Value {
		t.Errorf("grid holds %d at 1:1, want %d", g.Value(1, 1), tile.Value)
	}
}

func TestSpawnOnFullGrid(t *testing.T) {
	g := GridFromRows([][]int{
		{2, 4},
		{4, 2},
	})
	before := g.Clone()

	_, _, err := Spawn(g, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrGridFull) {
		t.Errorf("err = %v, want ErrGridFull", err)
	}
	if !g.Equal(before) {
		t.Error("full grid should be unchanged")
	}
}

func TestSpawnDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(2048))
	const trials = 10000

	fours := 0
	cells := make(map[Coord]int)
	for range trials {
		g := NewGrid(4)
		cell, tile, err := Spawn(g, rng)
		if err != nil {
			t.Fatalf("Spawn: %v", err)
		}
		if tile.Value == 4 {
			fours++
		}
		cells[cell]++
	}

	ratio := float64(fours) / trials
	if ratio < 0.07 || ratio > 0.13 {
		t.Errorf("share of fours = %.3f, want about 0.10", ratio)
	}
	if len(cells) != 16 {
		t.Errorf("spawned into %d distinct cells, want 16", len(cells))
	}
}

func TestSpawnDeterministic(t *testing.T) {
	g1, g2 := NewGrid(4), NewGrid(4)
	r1, r2 := rand.New(rand.NewSource(99)), rand.New(rand.NewSource(99))

	for range 8 {
		c1, t1, _ := Spawn(g1, r1)
		c2, t2, _ := Spawn(g2, r2)
		if c1 != c2 || t1 != t2 {
			t.Fatalf("same seed diverged: %s=%d vs %s=%d", c1, t1.Value, c2, t2.Value)
		}
	}
}
