package inmemory

import "sync"

type Snapshot struct {
	EvaluateTotal    uint64 `json:"evaluate_total"`
	InvalidRequests  uint64 `json:"invalid_requests"`
	GoalUnreachable  uint64 `json:"goal_unreachable"`
	GoalGuaranteed   uint64 `json:"goal_guaranteed"`
	MemoEntriesTotal uint64 `json:"memo_entries_total"`
	CacheHitsTotal   uint64 `json:"cache_hits_total"`
	CacheMissesTotal uint64 `json:"cache_misses_total"`
}

// Recorder is an in-process EngineMetrics implementation, one counter set
// per process rather than per client.
type Recorder struct {
	mu              sync.Mutex
	evaluateTotal   uint64
	invalidRequests uint64
	goalUnreachable uint64
	goalGuaranteed  uint64
	memoEntries     uint64
	cacheHits       uint64
	cacheMisses     uint64
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordEvaluated(pGoal float64, memoSize, cacheHits, cacheMisses int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evaluateTotal++
	switch pGoal {
	case 0:
		r.goalUnreachable++
	case 1:
		r.goalGuaranteed++
	}
	r.memoEntries += uint64(memoSize)
	r.cacheHits += uint64(cacheHits)
	r.cacheMisses += uint64(cacheMisses)
}

func (r *Recorder) RecordInvalidRequest() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidRequests++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		EvaluateTotal:    r.evaluateTotal,
		InvalidRequests:  r.invalidRequests,
		GoalUnreachable:  r.goalUnreachable,
		GoalGuaranteed:   r.goalGuaranteed,
		MemoEntriesTotal: r.memoEntries,
		CacheHitsTotal:   r.cacheHits,
		CacheMissesTotal: r.cacheMisses,
	}
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
