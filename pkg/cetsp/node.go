package cetsp

import "github.com/google/uuid"

// NodeState is the BnB node lifecycle state of §4.5:
//
//	NEW → EVALUATED → {FEASIBLE | BRANCHED | PRUNED_BY_BOUND | PRUNED_BY_RULE | TIMED_OUT}
type NodeState int

const (
	NodeNew NodeState = iota
	NodeEvaluated
	NodeFeasible
	NodeBranched
	NodePrunedByBound
	NodePrunedByRule
	NodeTimedOut
)

func (s NodeState) String() string {
	switch s {
	case NodeNew:
		return "NEW"
	case NodeEvaluated:
		return "EVALUATED"
	case NodeFeasible:
		return "FEASIBLE"
	case NodeBranched:
		return "BRANCHED"
	case NodePrunedByBound:
		return "PRUNED_BY_BOUND"
	case NodePrunedByRule:
		return "PRUNED_BY_RULE"
	case NodeTimedOut:
		return "TIMED_OUT"
	default:
		return "UNKNOWN"
	}
}

// Node owns one partial solution and its lower bound. Parent is a weak,
// non-owning back-reference used only for ancestry/diagnostics: the tree
// is owned top-down (a node's Children slice), never bottom-up, so there
// are no reference cycles to break. A Node is mutated only by the worker
// that popped it from the frontier (§4.5/§5).
type Node struct {
	ID uuid.UUID

	Partial    *PartialSolution
	LowerBound float64

	Parent   *Node
	Children []*Node

	State NodeState
	pruned bool
}

// NewNode creates a node owning partial, with lower bound equal to the
// partial solution's cached SOCP length (monotonicity, §3).
func NewNode(partial *PartialSolution, parent *Node) *Node {
	return &Node{
		ID:         uuid.New(),
		Partial:    partial,
		LowerBound: partial.Value(),
		Parent:     parent,
		State:      NodeNew,
	}
}

// Prune marks the node PRUNED_BY_RULE. Safe to call from within a
// user-supplied callback (§4.7); it takes effect after the callback
// returns.
func (n *Node) Prune() {
	n.pruned = true
}

// Depth returns the number of ancestors above this node (the root has
// depth 0).
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}
