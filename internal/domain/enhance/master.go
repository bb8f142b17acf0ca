package enhance

// Reachable is the master-scroll admissibility bound: it
// returns true iff applying the master scroll to every one of the state's
// remaining slots would still meet the goal. When false, the state is
// provably unreachable and the caller may skip exploring it entirely.
func Reachable(state ItemState, master ScrollKind, goal StatVector) bool {
	bound := state.Stats.Add(scale(master.Delta, state.Slots))
	return bound.GreaterOrEqual(goal)
}

// scale returns delta added to itself n times, i.e. n*delta component-wise.
func scale(delta StatVector, n uint32) StatVector {
	out := make(StatVector, len(delta))
	for i, d := range delta {
		out[i] = d * int64(n)
	}
	return out
}
