package t2048

import "testing"

func TestDurationTicks(t *testing.T) {
	if got := durationTicks(slideAnimationDuration, 60); got != 7 {
		t.Errorf("slide ticks at 60 fps = %d, want 7", got)
	}
	if got := durationTicks(popAnimationDuration, 1); got != 1 {
		t.Errorf("pop ticks at 1 fps = %d, want at least 1", got)
	}
}

func TestAnimatorPhases(t *testing.T) {
	var a animator
	a.reset(60)

	moves := []TileMove{{From: Coord{I: 3, J: 0}, To: Coord{I: 0, J: 0}, Value: 2}}
	spawn := Coord{I: 2, J: 2}
	a.start(moves, spawn, 2, true)

	if a.phase != PhaseSlide {
		t.Fatalf("phase = %d, want slide", a.phase)
	}
	if !a.hides(Coord{I: 0, J: 0}) || !a.hides(spawn) {
		t.Error("destination and spawn should be hidden while sliding")
	}
	if a.hides(Coord{I: 1, J: 1}) {
		t.Error("untouched cell should not be hidden")
	}

	for range a.slideTicks {
		a.update()
	}
	if a.phase != PhasePop {
		t.Fatalf("phase = %d after slide, want pop", a.phase)
	}
	if !a.popping(spawn) {
		t.Error("spawned cell should pop")
	}
	if a.hides(spawn) {
		t.Error("spawn should be visible while popping")
	}

	for range a.popTicks {
		a.update()
	}
	if a.active() {
		t.Errorf("animation still active in phase %d", a.phase)
	}
}

func TestAnimatorWithoutSpawn(t *testing.T) {
	var a animator
	a.reset(60)
	a.start([]TileMove{{From: Coord{I: 1, J: 0}, To: Coord{I: 0, J: 0}, Value: 2}}, Coord{}, 0, false)

	for range a.slideTicks {
		a.update()
	}
	if a.active() {
		t.Error("animation without spawn should end after the slide")
	}
}

func TestMergeTargets(t *testing.T) {
	var a animator
	a.reset(60)

	// The target tile itself stayed put.
	a.start([]TileMove{
		{From: Coord{I: 1, J: 0}, To: Coord{I: 0, J: 0}, Value: 4, Merged: true},
	}, Coord{}, 0, false)
	targets := a.mergeTargets()
	if len(targets) != 1 || targets[0].To != (Coord{I: 0, J: 0}) || targets[0].Value != 4 {
		t.Errorf("mergeTargets = %+v, want one 4 at 0:0", targets)
	}

	// The target tile slid in first and is drawn as a moving tile.
	a.start([]TileMove{
		{From: Coord{I: 1, J: 0}, To: Coord{I: 0, J: 0}, Value: 2},
		{From: Coord{I: 2, J: 0}, To: Coord{I: 0, J: 0}, Value: 2, Merged: true},
	}, Coord{}, 0, false)
	if targets := a.mergeTargets(); len(targets) != 0 {
		t.Errorf("mergeTargets = %+v, want none", targets)
	}
}

func TestTilePosition(t *testing.T) {
	ta := TileAnimation{From: Coord{I: 3, J: 1}, To: Coord{I: 1, J: 1}}

	x, y := ta.position()
	if x != 3 || y != 1 {
		t.Errorf("start position = (%v, %v), want (3, 1)", x, y)
	}

	ta.Progress = 1
	x, y = ta.position()
	if x != 1 || y != 1 {
		t.Errorf("end position = (%v, %v), want (1, 1)", x, y)
	}

	ta.Progress = 0.5
	x, _ = ta.position()
	if x <= 1 || x >= 3 {
		t.Errorf("midway x = %v, want between 1 and 3", x)
	}
}
