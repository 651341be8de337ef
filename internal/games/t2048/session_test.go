package t2048

import (
	"errors"
	"math/rand"
	"testing"
)

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// restored builds a session from explicit tiles, failing the test on error.
func restored(t *testing.T, sides int, tiles map[Coord]int, score Score) *Session {
	t.Helper()
	s, err := Restore(Snapshot{Sides: sides, Tiles: tiles, Score: score}, sides, seeded(1))
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	return s
}

func TestNewSession(t *testing.T) {
	s, err := NewSession(4, seeded(42))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if n := s.Grid().Count(); n != 2 {
		t.Errorf("fresh board has %d tiles, want 2", n)
	}
	if s.Score() != (Score{}) {
		t.Errorf("fresh score = %+v, want zero", s.Score())
	}
	if s.Status() != StatusPlaying {
		t.Errorf("Status = %s, want playing", s.Status())
	}
}

func TestNewSessionInvalidSides(t *testing.T) {
	for _, sides := range []int{-1, 0, 1} {
		if _, err := NewSession(sides, nil); !errors.Is(err, ErrInvalidSides) {
			t.Errorf("NewSession(%d) err = %v, want ErrInvalidSides", sides, err)
		}
	}
}

func TestNewSessionDeterministic(t *testing.T) {
	s1, _ := NewSession(4, seeded(12345))
	s2, _ := NewSession(4, seeded(12345))
	if !s1.Grid().Equal(s2.Grid()) {
		t.Errorf("same seed should produce same initial board:\n%v\nvs\n%v", s1.Grid(), s2.Grid())
	}

	for _, d := range []Direction{DirLeft, DirUp, DirRight, DirDown, DirLeft} {
		s1.ApplyMove(d)
		s2.ApplyMove(d)
	}
	if !s1.Grid().Equal(s2.Grid()) {
		t.Error("same seed and moves should produce same board")
	}
}

func TestApplyMoveSpawnsAfterChange(t *testing.T) {
	s := restored(t, 4, map[Coord]int{{I: 3, J: 0}: 2}, Score{})

	out := s.ApplyMove(DirLeft)
	if !out.Changed {
		t.Fatal("move should change the board")
	}
	g := s.Grid()
	if g.Count() != 2 {
		t.Errorf("board has %d tiles, want moved tile plus spawn", g.Count())
	}
	if g.Value(0, 0) != 2 {
		t.Errorf("moved tile missing at 0:0:\n%v", g)
	}

	cell, ok := s.LastSpawn()
	if !ok {
		t.Fatal("LastSpawn should report the new tile")
	}
	if v := g.Value(cell.I, cell.J); v != 2 && v != 4 {
		t.Errorf("spawned value %d at %s", v, cell)
	}
}

func TestApplyMoveNoChangeNoSpawn(t *testing.T) {
	s := restored(t, 4, map[Coord]int{{I: 0, J: 0}: 4, {I: 1, J: 0}: 2}, Score{Current: 8, Best: 8})
	before := s.Grid()

	out := s.ApplyMove(DirLeft)
	if out.Changed {
		t.Error("left-aligned tiles should not move")
	}
	if !s.Grid().Equal(before) {
		t.Error("no-op move should not spawn")
	}
	if s.Score().Current != 8 {
		t.Errorf("score changed to %d", s.Score().Current)
	}
}

func TestApplyMoveScores(t *testing.T) {
	s := restored(t, 4, map[Coord]int{{I: 0, J: 0}: 8, {I: 1, J: 0}: 8}, Score{Current: 10, Best: 50})

	s.ApplyMove(DirLeft)
	if got := s.Score(); got.Current != 26 || got.Best != 50 {
		t.Errorf("score = %+v, want 26/50", got)
	}
}

func TestApplyMoveWins(t *testing.T) {
	s := restored(t, 4, map[Coord]int{{I: 0, J: 0}: 1024, {I: 1, J: 0}: 1024}, Score{})
	if s.Won() {
		t.Fatal("should not be won before merging")
	}

	out := s.ApplyMove(DirLeft)
	if !IsWin(out) {
		t.Error("merging to 2048 should win")
	}
	if !s.Won() || s.Status() != StatusWon {
		t.Errorf("Status = %s, want won", s.Status())
	}
	if s.Score().Current != 2048 {
		t.Errorf("score = %d, want 2048", s.Score().Current)
	}

	// Play continues after winning.
	if out := s.ApplyMove(DirRight); !out.Changed {
		t.Error("moves should still apply after a win")
	}
}

func TestApplyMoveLoses(t *testing.T) {
	// Sliding right leaves one hole at 0:0; any spawn there locks the board.
	s := restored(t, 2, map[Coord]int{
		{I: 0, J: 0}: 8,
		{I: 0, J: 1}: 16,
		{I: 1, J: 1}: 32,
	}, Score{})

	out := s.ApplyMove(DirRight)
	if !out.Changed {
		t.Fatal("move should change the board")
	}
	if !s.IsLoss() || s.Status() != StatusLost {
		t.Fatalf("Status = %s, want lost on\n%v", s.Status(), s.Grid())
	}

	before := s.Grid()
	for _, d := range Directions {
		if out := s.ApplyMove(d); out.Changed {
			t.Errorf("move %s applied on a lost game", d)
		}
	}
	if !s.Grid().Equal(before) {
		t.Error("lost board changed")
	}
}

func TestRestartKeepsBest(t *testing.T) {
	s := restored(t, 4, map[Coord]int{{I: 0, J: 0}: 2, {I: 1, J: 0}: 2}, Score{Current: 100, Best: 120})
	s.ApplyMove(DirLeft)

	s.Restart()

	if got := s.Score(); got.Current != 0 || got.Best != 120 {
		t.Errorf("score after Restart = %+v, want 0/120", got)
	}
	if n := s.Grid().Count(); n != 2 {
		t.Errorf("restarted board has %d tiles, want 2", n)
	}
	if s.Status() != StatusPlaying {
		t.Errorf("Status = %s, want playing", s.Status())
	}
	if _, ok := s.LastSpawn(); ok {
		t.Error("LastSpawn should be cleared on restart")
	}
}

func TestSeedBest(t *testing.T) {
	s, _ := NewSession(3, seeded(3))
	s.SeedBest(500)
	s.SeedBest(100)
	if s.Score().Best != 500 {
		t.Errorf("Best = %d, want 500", s.Score().Best)
	}
}

func TestGridReturnsCopy(t *testing.T) {
	s, _ := NewSession(4, seeded(5))
	g := s.Grid()
	g.Set(0, 0, Tile{Value: 1024})
	if s.Grid().Value(0, 0) == 1024 {
		t.Error("mutating Grid() result changed the session")
	}
}
