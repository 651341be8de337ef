// Package registry keeps the playable 2048 variants. Games register their
// variants in init() functions so the platform can list and build them
// without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Game is the contract between a game and the platform.
// Games contain pure logic with no Bubble Tea dependency; the platform
// handles input mapping, timing, persistence and display.
type Game interface {
	// ID returns the variant identifier (e.g. "2048", "2048_5x5").
	// Used for CLI arguments, score storage and saved games.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a fresh game for the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one tick using the collected input.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns score and status flags.
	State() core.GameState
}

// Variant describes one registered board configuration.
type Variant struct {
	ID    string
	Title string
	Sides int
}

// Factory builds a game for a variant.
type Factory func(v Variant) Game

type entry struct {
	variant Variant
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a variant. Panics if the ID is already taken or the
// variant is malformed.
func Register(v Variant, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if v.ID == "" || f == nil {
		panic("registry: variant needs an ID and a factory")
	}
	if _, exists := entries[v.ID]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", v.ID))
	}

	entries[v.ID] = entry{variant: v, factory: f}
}

// List returns all variants ordered by board size, then ID.
func List() []Variant {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Variant, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.variant)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Sides != result[j].Sides {
			return result[i].Sides < result[j].Sides
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the variant registered under id.
func Lookup(id string) (Variant, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.variant, ok
}

// Create instantiates a new game by its variant ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown variant %q", id)
	}
	return e.factory(e.variant), nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// ForSides returns the first variant for a board size.
func ForSides(sides int) (Variant, bool) {
	for _, v := range List() {
		if v.Sides == sides {
			return v, true
		}
	}
	return Variant{}, false
}
