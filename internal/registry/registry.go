// Package registry maps game variant IDs to factories. Variants register
// themselves in init() functions, so the platform can list and create them
// without hardcoded dependencies.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/wrapsnake/internal/core"
)

// Game is what the platform drives: a fixed-tick simulation that renders
// into a screen buffer. Implementations contain no terminal code.
type Game interface {
	// ID returns the variant identifier used on the CLI and in score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a fresh game. Called once at start and on every restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns the current score and flags.
	State() core.GameState
}

// Reporter is implemented by games that can describe a run beyond its
// score. The platform stores the report alongside the score.
type Reporter interface {
	Report() core.RunReport
}

// Info describes a registered variant.
type Info struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	info    Info
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a variant. Panics if the ID is empty or already taken.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" {
		panic("registry: empty game id")
	}
	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns all registered variants sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	slices.SortFunc(result, func(a, b Info) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Lookup returns the Info for an ID.
func Lookup(id string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a variant by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
