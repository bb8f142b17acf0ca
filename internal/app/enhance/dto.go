package enhance

import "scrollforge/internal/domain/enhance"

// ScrollInput is the wire representation of one catalog entry:
// percent may be given as an integer 0-100 or a real in [0,1]; both are
// accepted and normalized by UseCase.validate.
type ScrollInput struct {
	Percent float64 `json:"percent" yaml:"percent"`
	Dark    bool    `json:"dark" yaml:"dark"`
	Cost    float64 `json:"cost" yaml:"cost"`
	Stats   []int64 `json:"stats" yaml:"stats"`
}

// Request is the wire representation of an evaluation request.
type Request struct {
	Slots       uint32        `json:"slots" yaml:"slots"`
	Stats       []int64       `json:"stats" yaml:"stats"`
	Scrolls     []ScrollInput `json:"scrolls" yaml:"scrolls"`
	Goal        []int64       `json:"goal" yaml:"goal"`
	IncludeTree bool          `json:"include_tree" yaml:"include_tree"`
}

// Response is the wire representation of an evaluation response.
// Choice is -1 when the query state is terminal.
type Response struct {
	Choice int     `json:"choice"`
	PGoal  float64 `json:"p_goal"`
	ECost  float64 `json:"e_cost"`
	Tree   *Tree   `json:"tree,omitempty"`
}

// Tree is the wire representation of the full annotated policy tree.
type Tree struct {
	Slots     uint32     `json:"slots"`
	Stats     []int64    `json:"stats,omitempty"`
	Destroyed bool       `json:"destroyed,omitempty"`
	PGoal     float64    `json:"p_goal"`
	ECost     float64    `json:"e_cost"`
	Choice    int        `json:"choice"`
	Children  []TreeEdge `json:"children,omitempty"`
}

// TreeEdge is one outcome edge of a Tree node.
type TreeEdge struct {
	Outcome     string  `json:"outcome"`
	Probability float64 `json:"probability"`
	Child       *Tree   `json:"child"`
}

func treeFromPolicyNode(n *enhance.PolicyNode) *Tree {
	if n == nil {
		return nil
	}
	out := &Tree{
		Slots:     n.State.Slots,
		Stats:     []int64(n.State.Stats),
		Destroyed: n.State.Destroyed,
		PGoal:     n.Record.PGoal,
		ECost:     n.Record.ECost,
		Choice:    n.Record.Choice,
	}
	for _, edge := range n.Children {
		out.Children = append(out.Children, TreeEdge{
			Outcome:     edge.Outcome,
			Probability: edge.Probability,
			Child:       treeFromPolicyNode(edge.Child),
		})
	}
	return out
}
