package snake

// Snapshot captures the observable game state for determinism testing and
// the headless simulator.
type Snapshot struct {
	Tick     uint64
	Variant  string
	Score    int
	GridSize int
	Body     []int // Head first
	Heading  Direction
	Reward   int // NoReward when the board is full
	Status   Status
	Paused   bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:    g.tick,
		Variant: string(g.variant),
		Score:   g.Score(),
		Status:  g.Status(),
		Paused:  g.paused,
		Reward:  NoReward,
	}
	if g.world != nil {
		snap.GridSize = g.world.Width()
		snap.Body = g.world.SnakeCells()
		snap.Heading = g.world.Heading()
		snap.Reward = g.world.RewardCell()
	}
	return snap
}
