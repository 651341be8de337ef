package t2048

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidSnapshot is wrapped by Restore when persisted state is malformed.
// Callers should fall back to a new game.
var ErrInvalidSnapshot = errors.New("t2048: invalid snapshot")

// Snapshot is the persistable part of a game: tile values by coordinate and
// the score. Nothing about animation or UI is kept.
type Snapshot struct {
	Sides int
	Tiles map[Coord]int
	Score Score
}

// Snapshot captures the board and score.
func (s *Session) Snapshot() Snapshot {
	tiles := make(map[Coord]int, s.grid.Count())
	for idx, t := range s.grid.slots {
		if t.IsEmpty() {
			continue
		}
		tiles[Coord{I: idx / s.grid.sides, J: idx % s.grid.sides}] = t.Value
	}
	return Snapshot{
		Sides: s.grid.sides,
		Tiles: tiles,
		Score: s.score,
	}
}

// Restore rebuilds a session from snap on a sides x sides board.
// A nil rng is replaced by a time-seeded one.
func Restore(snap Snapshot, sides int, rng *rand.Rand) (*Session, error) {
	if sides < MinSides {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, ErrInvalidSides)
	}
	if snap.Sides != 0 && snap.Sides != sides {
		return nil, fmt.Errorf("%w: saved for %dx%d board, want %dx%d", ErrInvalidSnapshot, snap.Sides, snap.Sides, sides, sides)
	}
	if snap.Score.Current < 0 || snap.Score.Best < 0 {
		return nil, fmt.Errorf("%w: negative score %+v", ErrInvalidSnapshot, snap.Score)
	}

	g := NewGrid(sides)
	for c, v := range snap.Tiles {
		if !g.InBounds(c.I, c.J) {
			return nil, fmt.Errorf("%w: coordinate %s outside %dx%d board", ErrInvalidSnapshot, c, sides, sides)
		}
		if !isTileValue(v) {
			return nil, fmt.Errorf("%w: value %d at %s is not a power of two", ErrInvalidSnapshot, v, c)
		}
		g.Set(c.I, c.J, Tile{Value: v})
	}

	if rng == nil {
		rng = newRand()
	}
	return &Session{
		grid:  g,
		score: Score{Current: snap.Score.Current, Best: max(snap.Score.Best, snap.Score.Current)},
		rng:   rng,
		won:   g.MaxTile() >= WinTarget,
		lost:  IsLoss(g),
	}, nil
}

// isTileValue reports whether v is a power of two no smaller than 2.
func isTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
