package enhance

// PolicyNode is one node of the full annotated policy tree produced by
// ExtractTree: a state's value record, the scroll chosen there, and the
// child reached by each of that scroll's outcomes.
type PolicyNode struct {
	State    ItemState
	Record   ValueRecord
	Children []PolicyEdge
}

// PolicyEdge is one outgoing edge of a PolicyNode: the probability of this
// outcome and the node it leads to.
type PolicyEdge struct {
	Outcome     string // "success", "miss", or "boom"
	Probability float64
	Child       *PolicyNode
}

// ExtractChoice returns the minimal §4.6 output for state: the chosen
// scroll's catalog index (or -1 if state is terminal), the optimal
// probability of reaching the goal, and the expected remaining cost. It
// calls Evaluate, so a state that has not been evaluated yet is computed
// and installed in the evaluator's memo along with every state it reaches.
func ExtractChoice(e *Evaluator, state ItemState) (choice int, pGoal, eCost float64) {
	rec := e.Evaluate(state)
	return rec.Choice, rec.PGoal, rec.ECost
}

// ExtractTree walks the memoized value function from root, following each
// visited state's chosen scroll into its non-boom children, and returns the
// full annotated policy tree. Nodes for terminal states have no children.
func ExtractTree(e *Evaluator, root ItemState) *PolicyNode {
	rec := e.Evaluate(root)
	node := &PolicyNode{State: root, Record: rec}
	if rec.Terminal() {
		return node
	}

	scroll := e.scrolls[rec.Choice]
	out := scroll.Outcome()

	if out.PSuccess > 0 {
		child := SuccessChild(root, scroll)
		node.Children = append(node.Children, PolicyEdge{
			Outcome:     "success",
			Probability: out.PSuccess,
			Child:       ExtractTree(e, child),
		})
	}
	if out.PMiss > 0 {
		child := MissChild(root)
		node.Children = append(node.Children, PolicyEdge{
			Outcome:     "miss",
			Probability: out.PMiss,
			Child:       ExtractTree(e, child),
		})
	}
	if out.PBoom > 0 {
		node.Children = append(node.Children, PolicyEdge{
			Outcome:     "boom",
			Probability: out.PBoom,
			Child:       &PolicyNode{State: Boomed, Record: ValueRecord{Choice: noChoice}},
		})
	}
	return node
}
