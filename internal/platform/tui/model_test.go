package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/wrapsnake/internal/core"
	"github.com/vovakirdan/wrapsnake/internal/storage"
)

// scriptedGame scores one point per step and ends after endAfter steps.
type scriptedGame struct {
	steps    int
	endAfter int
	resets   int
	lastIn   []core.Action
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.resets++
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.lastIn = append([]core.Action(nil), in.Order...)
	if !g.over() {
		g.steps++
	}
	return core.StepResult{State: g.State()}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) State() core.GameState {
	return core.GameState{Score: g.steps, Started: g.steps > 0, GameOver: g.over()}
}

func (g *scriptedGame) Report() core.RunReport {
	return core.RunReport{Score: g.steps, Length: g.steps + 3, GridSize: 8, Outcome: "lost"}
}

func (g *scriptedGame) over() bool {
	return g.endAfter > 0 && g.steps >= g.endAfter
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return got
}

func TestModelSavesScoreOnGameOver(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{endAfter: 3}
	m := NewModel(game, store, testConfig())
	m.Init()

	for range 5 {
		m = update(t, m, TickMsg{})
	}

	if !m.State().GameOver {
		t.Fatal("game should be over")
	}
	scores, err := store.TopScores("scripted", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, want 1", len(scores))
	}
	got := scores[0]
	if got.Score != 3 || got.Length != 6 || got.GridSize != 8 || got.Outcome != "lost" {
		t.Errorf("saved %+v", got)
	}
	if got.RunID != m.RunID() {
		t.Errorf("RunID = %q, want %q", got.RunID, m.RunID())
	}
}

func TestModelRestartStartsNewRun(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{endAfter: 2}
	m := NewModel(game, store, testConfig())
	m.Init()

	for range 3 {
		m = update(t, m, TickMsg{})
	}
	firstRun := m.RunID()

	m = update(t, m, runeKey("r"))
	m = update(t, m, TickMsg{})
	if m.State().GameOver {
		t.Fatal("restart should clear game over")
	}
	if m.RunID() == firstRun {
		t.Error("restart should assign a new run id")
	}

	for range 3 {
		m = update(t, m, TickMsg{})
	}
	scores, err := store.TopScores("scripted", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 2 {
		t.Errorf("saved %d scores, want 2", len(scores))
	}
}

func TestModelQuitSavesUnfinishedRun(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{}
	m := NewModel(game, store, testConfig())
	m.Init()

	for range 4 {
		m = update(t, m, TickMsg{})
	}
	next, cmd := m.Update(runeKey("q"))
	m = next.(Model)

	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit")
	}
	high, err := store.HighScore("scripted")
	if err != nil {
		t.Fatalf("HighScore: %v", err)
	}
	if high != 4 {
		t.Errorf("HighScore = %d, want 4", high)
	}
}

func TestModelQuitWithoutScoreSavesNothing(t *testing.T) {
	store := openStore(t)
	m := NewModel(&scriptedGame{}, store, testConfig())
	m.Init()

	m = update(t, m, runeKey("q"))

	stats, err := store.GameStats("scripted")
	if err != nil {
		t.Fatalf("GameStats: %v", err)
	}
	if stats.GamesCount != 0 {
		t.Errorf("GamesCount = %d, want 0", stats.GamesCount)
	}
}

func TestModelForwardsDirectionsInOrder(t *testing.T) {
	game := &scriptedGame{}
	m := NewModel(game, nil, testConfig())
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, TickMsg{})

	want := []core.Action{core.ActionLeft, core.ActionUp}
	if len(game.lastIn) != len(want) || game.lastIn[0] != want[0] || game.lastIn[1] != want[1] {
		t.Errorf("game saw %v, want %v", game.lastIn, want)
	}

	m = update(t, m, TickMsg{})
	if len(game.lastIn) != 0 {
		t.Errorf("input should clear after a tick, got %v", game.lastIn)
	}
}

func TestModelBackToMenuOnlyWhenAllowed(t *testing.T) {
	game := &scriptedGame{endAfter: 1}

	plain := NewModel(game, nil, testConfig())
	plain.Init()
	plain = update(t, plain, TickMsg{})
	plain = update(t, plain, tea.KeyMsg{Type: tea.KeyEscape})
	if plain.BackToMenu() {
		t.Error("back should be ignored without WithBackToMenu")
	}

	menu := NewModel(game, nil, testConfig(), WithBackToMenu())
	menu.Init()
	menu = update(t, menu, TickMsg{})
	menu = update(t, menu, tea.KeyMsg{Type: tea.KeyEscape})
	if !menu.BackToMenu() {
		t.Error("back after game over should return to the menu")
	}
}

func TestModelResizeBeforeStartResets(t *testing.T) {
	game := &scriptedGame{}
	m := NewModel(game, nil, testConfig())
	m.Init()

	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}

	m = update(t, m, TickMsg{})
	m = update(t, m, tea.WindowSizeMsg{Width: 70, Height: 20})
	if game.resets != 2 {
		t.Errorf("resize after start reset the game (resets = %d)", game.resets)
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(&scriptedGame{}, nil, testConfig())
	m.Init()

	if view := m.View(); !strings.Contains(view, "scripted") {
		t.Errorf("View() = %q, want it to contain the game output", view)
	}
}

func TestTickInterval(t *testing.T) {
	if got, want := tickInterval(0), tickInterval(DefaultTickRate); got != want {
		t.Errorf("tickInterval(0) = %v, want %v", got, want)
	}
	if got := tickInterval(10); got.Milliseconds() != 100 {
		t.Errorf("tickInterval(10) = %v, want 100ms", got)
	}
}
