package t2048

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Variants are the board sizes offered by the platform.
var Variants = []registry.Variant{
	{ID: "2048_3x3", Title: "2048 (3x3)", Sides: 3},
	{ID: "2048", Title: "2048", Sides: 4},
	{ID: "2048_5x5", Title: "2048 (5x5)", Sides: 5},
	{ID: "2048_6x6", Title: "2048 (6x6)", Sides: 6},
}

func init() {
	for _, v := range Variants {
		registry.Register(v, func(v registry.Variant) registry.Game {
			return New(v)
		})
	}
}

// Game adapts a Session to the platform's tick loop: it maps input frames
// to moves, keeps render-only animation state and draws the board.
type Game struct {
	variant registry.Variant
	session *Session
	rng     *rand.Rand
	tick    uint64

	tickRate int
	screenW  int
	screenH  int

	paused    bool
	tooSmall  bool
	winBanner bool // Shown once when the target tile first appears

	anim animator
}

// New creates a game for the given variant. Reset must be called before use.
func New(v registry.Variant) *Game {
	return &Game{variant: v}
}

// NewClassic creates a game on the classic 4x4 board.
func NewClassic() *Game {
	v, _ := registry.Lookup("2048")
	return New(v)
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Sides returns the board dimension.
func (g *Game) Sides() int {
	return g.variant.Sides
}

// Reset starts a fresh game. The best score of a previous session is kept.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.tick = 0
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.winBanner = false
	g.anim.reset(g.tickRate)

	best := 0
	if g.session != nil {
		best = g.session.Score().Best
	}

	s, err := NewSession(g.variant.Sides, g.rng)
	if err != nil {
		// Variants are registered with valid sizes.
		panic(fmt.Sprintf("t2048: variant %q: %v", g.variant.ID, err))
	}
	s.SeedBest(best)
	g.session = s

	g.checkScreenSize()
}

// Restore replaces the current session with a saved one.
// On error the current session is left untouched.
func (g *Game) Restore(snap Snapshot) error {
	s, err := Restore(snap, g.variant.Sides, g.rng)
	if err != nil {
		return err
	}
	if g.session != nil {
		s.SeedBest(g.session.Score().Best)
	}
	g.session = s
	g.winBanner = false
	g.anim.reset(g.tickRate)
	return nil
}

// Snapshot returns the persistable board and score.
func (g *Game) Snapshot() Snapshot {
	return g.session.Snapshot()
}

// SeedBest raises the best score from a stored high score.
func (g *Game) SeedBest(best int) {
	g.session.SeedBest(best)
}

// Session exposes the underlying state machine.
func (g *Game) Session() *Session {
	return g.session
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough for the board and HUD.
func (g *Game) checkScreenSize() {
	boardW, boardH := boardSize(g.variant.Sides)
	g.tooSmall = g.screenW < boardW+2 || g.screenH < boardH+hudHeight+2
}

// Step advances the game by one tick. Actions are applied in the order they
// arrived so fast key sequences are not lost.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.anim.update()

	var res core.StepResult

	if g.tooSmall {
		res.State = g.State()
		return res
	}

	for _, action := range in.Ordered() {
		switch action {
		case core.ActionPause:
			g.paused = !g.paused
		case core.ActionRestart:
			res.Restarted = true
			res.FinalScore = g.session.Score().Current
			g.session.Restart()
			g.paused = false
			g.winBanner = false
			g.anim.reset(g.tickRate)
			res.Changed = true
		default:
			dir, ok := actionDirection(action)
			if !ok || g.paused {
				continue
			}
			if g.winBanner {
				// The first key after winning dismisses the banner.
				g.winBanner = false
				continue
			}
			if g.processMove(dir) {
				res.Changed = true
			}
		}
	}

	res.State = g.State()
	return res
}

// processMove applies a move and starts its animation.
// Returns true if the board changed.
func (g *Game) processMove(dir Direction) bool {
	outcome := g.session.ApplyMove(dir)
	if !outcome.Changed {
		return false
	}

	spawn, hasSpawn := g.session.LastSpawn()
	var spawned Tile
	if hasSpawn {
		spawned, _ = g.session.grid.Get(spawn.I, spawn.J)
	}
	g.anim.start(outcome.Moves, spawn, spawned.Value, hasSpawn)

	if IsWin(outcome) {
		g.winBanner = true
	}
	return true
}

// actionDirection maps a platform action to a move direction.
func actionDirection(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionRight:
		return DirRight, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	default:
		return 0, false
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := g.session.Score()
	return core.GameState{
		Score:    score.Current,
		Best:     score.Best,
		GameOver: g.session.IsLoss(),
		Won:      g.session.Won(),
		Paused:   g.paused || g.tooSmall,
	}
}
