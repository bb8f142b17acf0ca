package enhance

// ItemState is the node of the scroll-usage decision tree: how many slots
// remain and what the item's current stats are. A destroyed item is a
// distinguished absorbing state carrying no stats or slots.
type ItemState struct {
	Slots     uint32
	Stats     StatVector
	Destroyed bool
}

// NewItemState constructs a live (non-destroyed) state.
func NewItemState(slots uint32, stats StatVector) ItemState {
	return ItemState{Slots: slots, Stats: stats}
}

// Boomed is the absorbing terminal state reached when a dark scroll booms.
var Boomed = ItemState{Destroyed: true}

// GoalReached reports whether s's stats meet or exceed every component of
// goal. Meaningless (and never called) on a destroyed state.
func (s ItemState) GoalReached(goal StatVector) bool {
	return s.Stats.GreaterOrEqual(goal)
}

// SuccessChild returns the state reached when k succeeds on s.
func SuccessChild(s ItemState, k ScrollKind) ItemState {
	return ItemState{Slots: s.Slots - 1, Stats: s.Stats.Add(k.Delta)}
}

// MissChild returns the state reached when k misses on s: a slot is spent
// but stats are unchanged.
func MissChild(s ItemState) ItemState {
	return ItemState{Slots: s.Slots - 1, Stats: s.Stats}
}
