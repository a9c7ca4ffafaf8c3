package snake

// NoReward is the reward cell once the snake fills the grid and no free
// cell remains.
const NoReward = -1

// RandomSource yields integers uniformly distributed in [0, n).
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// PlaceReward draws candidates from rng over [0, capacity) and returns the
// first one not in occupied. It never returns if occupied covers every
// cell; callers check occupancy against capacity first.
func PlaceReward(rng RandomSource, capacity int, occupied []int) int {
	taken := make(map[int]struct{}, len(occupied))
	for _, c := range occupied {
		taken[c] = struct{}{}
	}
	for {
		candidate := rng.Intn(capacity)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
