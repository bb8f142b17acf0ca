package enhance

import "encoding/binary"

// noChoice marks a terminal state's value record: there is no scroll to
// recommend because play has already ended.
const noChoice = -1

// ValueRecord is the memoized value function result for one state: the
// optimal probability of eventually reaching the goal, the expected
// remaining scroll spend under that policy, and the chosen scroll's catalog
// index (or noChoice for a terminal state).
type ValueRecord struct {
	PGoal  float64
	ECost  float64
	Choice int
}

// Terminal reports whether this record describes a state where play has
// already ended (no scroll was chosen).
func (r ValueRecord) Terminal() bool {
	return r.Choice == noChoice
}

// memoKey packs (slots, stats) into a byte string suitable as a Go map key.
// StatVector is slice-backed and therefore not itself comparable, so states
// are hashed into an opaque key rather than compared directly; the encoding
// carries no meaning beyond uniquely identifying (slots, stats).
func memoKey(s ItemState) string {
	buf := make([]byte, 0, 4+binary.MaxVarintLen64*(1+len(s.Stats)))
	buf = binary.AppendUvarint(buf, uint64(s.Slots))
	for _, v := range s.Stats {
		buf = binary.AppendVarint(buf, v)
	}
	if s.Destroyed {
		buf = append(buf, 1)
	}
	return string(buf)
}

// memo is the per-request cache of ValueRecord keyed by state identity. It
// is owned exclusively by a single evaluator and is never shared across
// requests or goroutines.
type memo struct {
	entries map[string]ValueRecord
	hits    int
	misses  int
}

func newMemo() *memo {
	return &memo{entries: make(map[string]ValueRecord)}
}

func (m *memo) lookup(s ItemState) (ValueRecord, bool) {
	rec, ok := m.entries[memoKey(s)]
	if ok {
		m.hits++
	} else {
		m.misses++
	}
	return rec, ok
}

func (m *memo) install(s ItemState, rec ValueRecord) ValueRecord {
	m.entries[memoKey(s)] = rec
	return rec
}

func (m *memo) size() int {
	return len(m.entries)
}
