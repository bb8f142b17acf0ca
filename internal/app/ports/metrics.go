package ports

// EngineMetrics records outcome counters for the enhance use case:
// increment-only, no read path (reads go through the recorder's own
// Snapshot method on the adapter side).
type EngineMetrics interface {
	RecordEvaluated(pGoal float64, memoSize, cacheHits, cacheMisses int)
	RecordInvalidRequest()
}
