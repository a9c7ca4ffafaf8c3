package snake

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/vovakirdan/wrapsnake/internal/config"
	"github.com/vovakirdan/wrapsnake/internal/core"
	"github.com/vovakirdan/wrapsnake/internal/registry"
)

// Variant selects the rule set a Game plays with.
type Variant string

const (
	// VariantStandard ends the run on self-collision or a full board,
	// as configured by rules.terminal.
	VariantStandard Variant = "snake"
	// VariantClassic never ends: the snake passes through itself and
	// the run lasts until the player quits.
	VariantClassic Variant = "snake_classic"
)

const (
	hudHeight   = 2  // HUD line + separator
	cellWidth   = 2  // Screen columns per board cell
	maxAutoSize = 40 // Largest board chosen when fitting to the screen
)

var (
	defaultMu  sync.RWMutex
	defaultCfg = config.DefaultSnakeConfig()
)

// SetDefaultConfig sets the configuration used by registry-created games.
func SetDefaultConfig(cfg config.SnakeConfig) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultCfg = cfg
}

// DefaultConfig returns the configuration used by registry-created games.
func DefaultConfig() config.SnakeConfig {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultCfg
}

func init() {
	registry.Register(registry.Info{
		ID:          string(VariantStandard),
		Title:       "Snake",
		Description: "Wraparound board; running into yourself ends the run",
	}, func() registry.Game {
		return New(VariantStandard, DefaultConfig())
	})
	registry.Register(registry.Info{
		ID:          string(VariantClassic),
		Title:       "Snake (Classic)",
		Description: "Wraparound board with no collisions; play until you quit",
	}, func() registry.Game {
		return New(VariantClassic, DefaultConfig())
	})
}

// Game adapts a World to the platform: it paces moves, maps input actions
// to directions and draws the board. A fresh World is built on every Reset.
type Game struct {
	variant Variant
	cfg     config.SnakeConfig
	palette config.Palette

	rng        *rand.Rand
	world      *World
	tick       uint64
	moveTicker int

	screenW int
	screenH int
	boardX  int
	boardY  int

	paused   bool
	tooSmall bool
	setupErr error
}

// New creates a game of the given variant. Invalid colour names fall back
// to the default colour; the config layer rejects them earlier.
func New(variant Variant, cfg config.SnakeConfig) *Game {
	palette, _ := cfg.Palette()
	return &Game{
		variant: variant,
		cfg:     cfg,
		palette: palette,
	}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantClassic {
		return "Snake (Classic)"
	}
	return "Snake"
}

// World exposes the current world, nil before Reset or if setup failed.
func (g *Game) World() *World {
	return g.world
}

// Reset discards the current world and builds a new one sized for the screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.moveTicker = 0
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.world = nil
	g.setupErr = nil

	size := g.boardSize()
	g.tooSmall = !g.fits(size)
	g.boardX = max((g.screenW-(size*cellWidth+2))/2, 0)
	g.boardY = hudHeight

	spawn, err := g.cfg.SpawnFor(size)
	if err != nil {
		g.setupErr = err
		return
	}

	terminal := g.cfg.Rules.Terminal && g.variant != VariantClassic
	g.world = NewWorld(size, spawn, g.rng,
		WithInitialLength(max(g.cfg.Snake.InitialLength, 2)),
		WithTerminalRules(terminal),
	)
}

// boardSize picks the configured size, or the largest board that fits.
func (g *Game) boardSize() int {
	if g.cfg.Grid.Size != config.AutoSize {
		return max(g.cfg.Grid.Size, MinGridSize)
	}
	byWidth := (g.screenW - 2) / cellWidth
	byHeight := g.screenH - hudHeight - 2
	return core.Clamp(min(byWidth, byHeight), MinGridSize, maxAutoSize)
}

func (g *Game) fits(size int) bool {
	return size*cellWidth+2 <= g.screenW && size+hudHeight+2 <= g.screenH
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if g.world == nil {
		return core.StepResult{State: g.State()}
	}

	status, _ := g.world.GameStatus()

	if input.Has(core.ActionRestart) && status.Terminal() {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && status == StatusRunning {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall || status.Terminal() {
		return core.StepResult{State: g.State()}
	}

	if status == StatusNotStarted {
		if !startsGame(input) {
			return core.StepResult{State: g.State()}
		}
		// StartGame only fails on a started world, checked above.
		_ = g.world.StartGame()
		g.moveTicker = 0
	}

	g.applyDirections(input)

	ate := false
	g.moveTicker++
	if g.moveTicker >= g.cfg.Snake.MoveEveryTicks {
		g.moveTicker = 0
		before := g.world.SnakeLen()
		g.world.Step()
		ate = g.world.SnakeLen() > before
	}

	return core.StepResult{State: g.State(), Ate: ate}
}

// applyDirections feeds direction actions to the world in arrival order.
func (g *Game) applyDirections(input core.InputFrame) {
	for _, a := range input.Order {
		if dir, ok := DirectionForAction(a); ok {
			g.world.SetDirection(dir)
		}
	}
}

func startsGame(input core.InputFrame) bool {
	if input.Has(core.ActionConfirm) {
		return true
	}
	for _, a := range input.Order {
		if _, ok := DirectionForAction(a); ok {
			return true
		}
	}
	return false
}

// DirectionForAction maps a movement action to a direction.
func DirectionForAction(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	default:
		return 0, false
	}
}

// Score is the number of rewards collected.
func (g *Game) Score() int {
	if g.world == nil {
		return 0
	}
	return g.world.SnakeLen() - g.world.InitialLength()
}

// Status returns the world status, StatusNotStarted before the first move.
func (g *Game) Status() Status {
	if g.world == nil {
		return StatusNotStarted
	}
	status, _ := g.world.GameStatus()
	return status
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	status := g.Status()
	return core.GameState{
		Score:    g.Score(),
		Started:  status != StatusNotStarted,
		GameOver: status.Terminal(),
		Paused:   g.paused,
	}
}

// DebugState returns a one-line summary of the game.
func (g *Game) DebugState() string {
	if g.world == nil {
		return fmt.Sprintf("Tick: %d, no world (%v)", g.tick, g.setupErr)
	}
	return fmt.Sprintf("Tick: %d, Score: %d, Status: %s, Head: %d, Heading: %s, Reward: %d, Len: %d",
		g.tick, g.Score(), g.Status(), g.world.SnakeHeadIndex(), g.world.Heading(),
		g.world.RewardCell(), g.world.SnakeLen())
}

// Report summarises the current run for score storage.
func (g *Game) Report() core.RunReport {
	r := core.RunReport{
		Score:   g.Score(),
		Outcome: g.Status().String(),
	}
	if g.world != nil {
		r.Length = g.world.SnakeLen()
		r.GridSize = g.world.Width()
	}
	return r
}
