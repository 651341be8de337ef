package t2048

import (
	"errors"
	"math/rand"
)

// Spawn distribution: 90% twos, 10% fours.
const (
	spawnLow      = 2
	spawnHigh     = 4
	spawnHighProb = 0.10
)

// ErrGridFull is returned by Spawn when no empty cell exists.
var ErrGridFull = errors.New("t2048: no empty cell to spawn into")

// Spawn places a new tile (2 or 4) in a uniformly random empty cell.
func Spawn(g *Grid, rng *rand.Rand) (Coord, Tile, error) {
	empty := g.EmptyCells()
	if len(empty) == 0 {
		return Coord{}, Tile{}, ErrGridFull
	}

	cell := empty[rng.Intn(len(empty))]

	tile := Tile{Value: spawnLow}
	if rng.Float64() < spawnHighProb {
		tile.Value = spawnHigh
	}

	g.Set(cell.I, cell.J, tile)
	return cell, tile, nil
}
