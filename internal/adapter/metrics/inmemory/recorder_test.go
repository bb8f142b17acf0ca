package inmemory

import "testing"

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordEvaluated(0, 10, 2, 8)
	r.RecordEvaluated(1, 5, 1, 4)
	r.RecordEvaluated(0.6, 8, 3, 5)
	r.RecordInvalidRequest()

	s := r.Snapshot()
	if s.EvaluateTotal != 3 {
		t.Fatalf("expected total 3, got %d", s.EvaluateTotal)
	}
	if s.InvalidRequests != 1 {
		t.Fatalf("expected invalid 1, got %d", s.InvalidRequests)
	}
	if s.GoalUnreachable != 1 {
		t.Fatalf("expected goal_unreachable 1, got %d", s.GoalUnreachable)
	}
	if s.GoalGuaranteed != 1 {
		t.Fatalf("expected goal_guaranteed 1, got %d", s.GoalGuaranteed)
	}
	if s.MemoEntriesTotal != 23 {
		t.Fatalf("expected memo entries total 23, got %d", s.MemoEntriesTotal)
	}
	if s.CacheHitsTotal != 6 {
		t.Fatalf("expected cache hits total 6, got %d", s.CacheHitsTotal)
	}
	if s.CacheMissesTotal != 17 {
		t.Fatalf("expected cache misses total 17, got %d", s.CacheMissesTotal)
	}
}
