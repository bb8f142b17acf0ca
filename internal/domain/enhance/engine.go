package enhance

import (
	"fmt"
	"math"
)

// InvariantViolationError is raised when the evaluator observes a
// non-finite probability or expectation. This is a programmer error, never
// an expected outcome of valid input, and is not a user-facing validation
// failure.
type InvariantViolationError struct {
	State ItemState
	Field string
	Value float64
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("enhance: invariant violation: %s=%v at slots=%d stats=%v", e.Field, e.Value, e.State.Slots, e.State.Stats)
}

// Evaluator runs the recursive value function over item states reachable
// from one query, memoizing every state it visits. An Evaluator is scoped
// to a single request: it is not safe for concurrent use, and its memo is
// discarded once the caller is done with it. Request-level parallelism is
// achieved by constructing one Evaluator per goroutine, each with its own
// memo.
type Evaluator struct {
	scrolls []ScrollKind
	goal    StatVector
	master  ScrollKind
	memo    *memo
}

// NewEvaluator builds an Evaluator for one request's catalog and goal. It
// derives the master scroll once, up front.
func NewEvaluator(scrolls []ScrollKind, goal StatVector) *Evaluator {
	return &Evaluator{
		scrolls: scrolls,
		goal:    goal,
		master:  DeriveMasterScroll(scrolls),
		memo:    newMemo(),
	}
}

// MemoSize returns the number of distinct states this Evaluator has
// computed and cached so far.
func (e *Evaluator) MemoSize() int {
	return e.memo.size()
}

// CacheStats returns the memo hit/miss counters accumulated so far.
func (e *Evaluator) CacheStats() (hits, misses int) {
	return e.memo.hits, e.memo.misses
}

// Evaluate computes the optimal value record for state, memoizing every
// state visited along the way: the base cases below, checked in order,
// then the recursive case.
func (e *Evaluator) Evaluate(state ItemState) ValueRecord {
	if rec, ok := e.memo.lookup(state); ok {
		return rec
	}

	// Base case 1: destroyed.
	if state.Destroyed {
		return e.memo.install(state, ValueRecord{PGoal: 0, ECost: 0, Choice: noChoice})
	}
	// Base case 2: goal already reached dominates "out of slots".
	if state.GoalReached(e.goal) {
		return e.memo.install(state, ValueRecord{PGoal: 1, ECost: 0, Choice: noChoice})
	}
	// Base case 3: out of slots, goal not reached.
	if state.Slots == 0 {
		return e.memo.install(state, ValueRecord{PGoal: 0, ECost: 0, Choice: noChoice})
	}
	// Base case 4: master-scroll bound proves the goal is unreachable.
	if !Reachable(state, e.master, e.goal) {
		return e.memo.install(state, ValueRecord{PGoal: 0, ECost: 0, Choice: noChoice})
	}

	best := candidate{index: -1}
	for k, scroll := range e.scrolls {
		c := e.evalScroll(state, k, scroll)
		if best.index == -1 || c.betterThan(best) {
			best = c
		}
	}

	rec := ValueRecord{PGoal: best.pGoal, ECost: best.eCost, Choice: best.index}
	e.checkFinite(state, rec)
	return e.memo.install(state, rec)
}

// candidate is one scroll's evaluated (P_k, E_k) together with its catalog
// index, used to run the argmax with its two-level tie-break.
type candidate struct {
	index int
	pGoal float64
	eCost float64
}

// betterThan implements the tie-break policy: larger P_k wins; on an exact
// (bitwise) tie in P_k, smaller E_k wins; on a further tie, the earlier
// (smaller) catalog index — which callers achieve for free by only calling
// betterThan when strictly improving — is kept, since c replaces best only
// on strict improvement.
func (c candidate) betterThan(best candidate) bool {
	if c.pGoal != best.pGoal {
		return c.pGoal > best.pGoal
	}
	return c.eCost < best.eCost
}

// evalScroll computes (P_k, E_k) for using scroll k in state. Terms are
// summed in a fixed order (success, then miss, then boom) so that two
// algebraically-equal computations produce bitwise-equal floats, which the
// tie-break in betterThan relies on.
func (e *Evaluator) evalScroll(state ItemState, k int, scroll ScrollKind) candidate {
	out := scroll.Outcome()
	slotsAfter := state.Slots - 1

	var pGoal, eCost float64

	if out.PSuccess > 0 {
		successState := SuccessChild(state, scroll)
		successRec := e.Evaluate(successState)
		pGoal += out.PSuccess * successRec.PGoal
		eCost += out.PSuccess * successRec.ECost
	}
	if out.PMiss > 0 {
		missState := ItemState{Slots: slotsAfter, Stats: state.Stats}
		missRec := e.Evaluate(missState)
		pGoal += out.PMiss * missRec.PGoal
		eCost += out.PMiss * missRec.ECost
	}
	if out.PBoom > 0 {
		// Boom contributes (0,0) to both sums; still evaluate it so the
		// destroyed state is memoized like any other reachable state.
		e.Evaluate(Boomed)
	}

	eCost += scroll.Cost

	return candidate{index: k, pGoal: pGoal, eCost: eCost}
}

// checkFinite guards against an internal-bug case. Probability is always
// finite by construction (a weighted sum of terms in [0,1]), so any NaN or
// infinity there is a bug. Expected cost, by contrast, may legitimately be
// +Inf when the chosen scroll's own cost is +Inf ("never prefer on cost
// ties" does not mean "never occurs") — only NaN indicates a bug there.
func (e *Evaluator) checkFinite(state ItemState, rec ValueRecord) {
	if math.IsNaN(rec.PGoal) || math.IsInf(rec.PGoal, 0) {
		panic(&InvariantViolationError{State: state, Field: "p_goal", Value: rec.PGoal})
	}
	if math.IsNaN(rec.ECost) {
		panic(&InvariantViolationError{State: state, Field: "e_cost", Value: rec.ECost})
	}
}
