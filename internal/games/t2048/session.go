package t2048

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrInvalidSides is returned when a board smaller than 2x2 is requested.
var ErrInvalidSides = errors.New("t2048: board needs at least 2 sides")

// MinSides is the smallest playable board.
const MinSides = 2

// initialTiles is how many tiles a fresh board starts with.
const initialTiles = 2

// Status is the game-level state.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won" // Overlays playing; moves still allowed
	StatusLost    Status = "lost"
)

// Session owns one game's grid and score. It is not safe for concurrent use;
// callers issue one move at a time.
type Session struct {
	grid  *Grid
	score Score
	rng   *rand.Rand

	won  bool
	lost bool

	lastSpawn *Coord
}

// NewSession starts a game on an empty sides x sides board with two spawned
// tiles and a zero score. A nil rng is replaced by a time-seeded one.
func NewSession(sides int, rng *rand.Rand) (*Session, error) {
	if sides < MinSides {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSides, sides)
	}
	if rng == nil {
		rng = newRand()
	}

	s := &Session{rng: rng}
	s.start(sides)
	return s, nil
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// start installs a fresh grid with the initial tiles.
func (s *Session) start(sides int) {
	s.grid = NewGrid(sides)
	s.won = false
	s.lost = false
	s.lastSpawn = nil
	for range initialTiles {
		// A fresh board of at least 2x2 always has room.
		if _, _, err := Spawn(s.grid, s.rng); err != nil {
			panic(err)
		}
	}
}

// ApplyMove resolves dir, scores merges, spawns a tile if anything moved and
// updates the win/loss state. On a lost game it does nothing.
func (s *Session) ApplyMove(dir Direction) MoveOutcome {
	if s.lost {
		return MoveOutcome{}
	}

	outcome := Resolve(s.grid, dir, WinTarget)
	if !outcome.Changed {
		return outcome
	}

	s.score.Apply(outcome.ScoreDelta)

	s.lastSpawn = nil
	if cell, _, err := Spawn(s.grid, s.rng); err == nil {
		s.lastSpawn = &cell
	}

	if outcome.ReachedTarget {
		s.won = true
	}
	s.lost = IsLoss(s.grid)

	return outcome
}

// Restart discards the board, spawns two tiles and zeroes the current score.
// The best score is kept.
func (s *Session) Restart() {
	s.score.Reset()
	s.start(s.grid.Sides())
}

// IsLoss reports whether the session has no legal move left.
func (s *Session) IsLoss() bool {
	return s.lost
}

// Won reports whether the winning tile has been reached in this game.
func (s *Session) Won() bool {
	return s.won
}

// Status returns the game-level state. Lost takes precedence over won.
func (s *Session) Status() Status {
	switch {
	case s.lost:
		return StatusLost
	case s.won:
		return StatusWon
	default:
		return StatusPlaying
	}
}

// Grid returns a copy of the current board.
func (s *Session) Grid() *Grid {
	return s.grid.Clone()
}

// Sides returns the board dimension.
func (s *Session) Sides() int {
	return s.grid.Sides()
}

// Score returns the current and best score.
func (s *Session) Score() Score {
	return s.score
}

// SeedBest raises the best score from an external record (e.g. a stored high
// score). Lower values are ignored.
func (s *Session) SeedBest(best int) {
	s.score.Best = max(s.score.Best, best)
}

// LastSpawn returns where the most recent move spawned a tile, if any.
func (s *Session) LastSpawn() (Coord, bool) {
	if s.lastSpawn == nil {
		return Coord{}, false
	}
	return *s.lastSpawn, true
}
