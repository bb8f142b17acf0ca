package enhance

import "testing"

func TestReachable(t *testing.T) {
	master := ScrollKind{P: 1, Delta: StatVector{2, 1}}
	goal := StatVector{108, 10}

	feasible := NewItemState(4, StatVector{100, 6})
	if !Reachable(feasible, master, goal) {
		t.Fatalf("expected reachable: 100+4*2=108, 6+4*1=10")
	}

	infeasible := NewItemState(1, StatVector{100, 3})
	if Reachable(infeasible, master, goal) {
		t.Fatalf("expected unreachable: 100+1*2=102 < 108")
	}
}

func TestReachableZeroSlotsRequiresAlreadyAtGoal(t *testing.T) {
	master := ScrollKind{P: 1, Delta: StatVector{2, 1}}
	goal := StatVector{108, 10}

	if Reachable(NewItemState(0, StatVector{107, 10}), master, goal) {
		t.Fatalf("expected unreachable with zero slots and stats below goal")
	}
	if !Reachable(NewItemState(0, StatVector{108, 10}), master, goal) {
		t.Fatalf("expected reachable with zero slots when already at goal")
	}
}
