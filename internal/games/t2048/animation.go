package t2048

import (
	"time"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Animation timings. Converted to ticks using the runtime tick rate.
const (
	slideAnimationDuration = 130 * time.Millisecond
	popAnimationDuration   = 100 * time.Millisecond
)

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// TileAnimation represents a tile drawn between cells.
type TileAnimation struct {
	Value    int     // Value shown while animating
	From     Coord   // Start cell
	To       Coord   // End cell
	Progress float64 // 0.0 → 1.0
	Merged   bool    // Disappears into the tile at To
}

// animator replays a resolved move for display. The session is already in
// its final state; nothing here feeds back into game logic.
type animator struct {
	phase      AnimationPhase
	ticks      int
	slideTicks int
	popTicks   int

	tiles    []TileAnimation
	spawn    Coord
	spawnVal int
	hasSpawn bool
}

// reset drops any running animation and recomputes durations for tickRate.
func (a *animator) reset(tickRate int) {
	*a = animator{
		slideTicks: durationTicks(slideAnimationDuration, tickRate),
		popTicks:   durationTicks(popAnimationDuration, tickRate),
	}
}

func durationTicks(d time.Duration, tickRate int) int {
	return max(1, int(d*time.Duration(tickRate)/time.Second))
}

// start begins the slide phase for moves, followed by a pop of the spawned tile.
func (a *animator) start(moves []TileMove, spawn Coord, spawnVal int, hasSpawn bool) {
	a.tiles = a.tiles[:0]
	for _, m := range moves {
		a.tiles = append(a.tiles, TileAnimation{
			Value:  m.Value,
			From:   m.From,
			To:     m.To,
			Merged: m.Merged,
		})
	}
	a.spawn = spawn
	a.spawnVal = spawnVal
	a.hasSpawn = hasSpawn
	a.phase = PhaseSlide
	a.ticks = 0
}

// active reports whether an animation is running.
func (a *animator) active() bool {
	return a.phase != PhaseNone
}

// update advances the animation by one tick.
// Returns true if animation is still in progress.
func (a *animator) update() bool {
	var duration int
	switch a.phase {
	case PhaseSlide:
		duration = a.slideTicks
	case PhasePop:
		duration = a.popTicks
	default:
		return false
	}

	a.ticks++
	progress := core.ClampF(float64(a.ticks)/float64(duration), 0, 1)
	for i := range a.tiles {
		a.tiles[i].Progress = progress
	}

	if a.ticks >= duration {
		a.finish()
		return a.active()
	}
	return true
}

// finish completes the current phase.
func (a *animator) finish() {
	a.ticks = 0
	if a.phase == PhaseSlide && a.hasSpawn {
		a.phase = PhasePop
		a.tiles = a.tiles[:0]
		return
	}
	a.phase = PhaseNone
	a.tiles = a.tiles[:0]
	a.hasSpawn = false
}

// hides reports whether the final-state tile at c must not be drawn yet:
// destinations of sliding tiles and the freshly spawned cell.
func (a *animator) hides(c Coord) bool {
	if a.phase != PhaseSlide {
		return false
	}
	if a.hasSpawn && c == a.spawn {
		return true
	}
	for _, t := range a.tiles {
		if t.To == c {
			return true
		}
	}
	return false
}

// popping reports whether c holds the tile being popped in.
func (a *animator) popping(c Coord) bool {
	return a.phase == PhasePop && a.hasSpawn && c == a.spawn
}

// mergeTargets returns tiles that sat still and absorbed a sliding tile.
// They keep their pre-merge value until the slide ends.
func (a *animator) mergeTargets() []TileAnimation {
	var out []TileAnimation
	for _, t := range a.tiles {
		if !t.Merged || a.arrivesAt(t.To) {
			continue
		}
		out = append(out, TileAnimation{Value: t.Value, From: t.To, To: t.To, Progress: 1})
	}
	return out
}

// arrivesAt reports whether a non-merging tile slides into c.
func (a *animator) arrivesAt(c Coord) bool {
	for _, t := range a.tiles {
		if !t.Merged && t.To == c {
			return true
		}
	}
	return false
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// position calculates the current cell position during animation.
func (t *TileAnimation) position() (x, y float64) {
	p := easeOutQuad(t.Progress)
	x = float64(t.From.I) + (float64(t.To.I)-float64(t.From.I))*p
	y = float64(t.From.J) + (float64(t.To.J)-float64(t.From.J))*p
	return x, y
}
