package cetsp

import (
	"context"
	"fmt"
	"math/rand"
)

// RootStrategy produces the first partial sequence of a branch-and-bound
// run (§4.4 Root strategies).
type RootStrategy interface {
	Name() string
	SelectRoot(ctx context.Context, inst *Instance, oracle SOCPOracle, tol float64, rng *rand.Rand) (*PartialSolution, error)
}

// BranchStrategy picks which uncovered disk to insert next at a node, and
// whether newly created children should be simplified (§4.4 Branching
// strategies, §9 Open Question (a)).
type BranchStrategy interface {
	Name() string
	SelectDisk(ps *PartialSolution, inst *Instance, tol float64, rng *rand.Rand) (diskIdx int, ok bool)
	Simplifies() bool
}

// SearchStrategy defines how the frontier orders and pops live nodes
// (§4.4 Search strategies). It is implemented by the Frontier type in
// frontier.go, which each named strategy configures.
type SearchStrategy interface {
	Name() string
	NewFrontier(numWorkers int, seed int64) *Frontier
}

// PruningRule is a pure boolean filter evaluated on a candidate child
// before it is pushed to the frontier (§4.4 Pruning rules).
type PruningRule interface {
	Name() string
	Allow(inst *Instance, seq []int, candidatePos int, candidateDisk int) bool
}

// uncoveredDisks returns the instance disk indices not yet present in ps's
// order and not already incidentally hit within tol by its trajectory.
func uncoveredDisks(ps *PartialSolution, inst *Instance, tol float64) []int {
	traj := ps.Trajectory()
	var out []int
	for i, d := range inst.Disks {
		if ps.Contains(i) {
			continue
		}
		if traj.Contains(d, tol) {
			continue
		}
		out = append(out, i)
	}
	return out
}

// farthestByDistance returns the candidate index (from candidates, indexing
// into inst.Disks) whose trajectory distance is largest.
func farthestByDistance(ps *PartialSolution, inst *Instance, candidates []int) (int, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	traj := ps.Trajectory()
	best := candidates[0]
	bestDist := traj.Distance(inst.Disks[best])
	for _, c := range candidates[1:] {
		d := traj.Distance(inst.Disks[c])
		if d > bestDist {
			bestDist = d
			best = c
		}
	}
	return best, true
}

// strategyRegistry resolves the four enumerated closed sets by name, as
// used at Optimize entry (§4.4, Design Notes §9: "selected by string name").
type strategyRegistry struct {
	roots    map[string]func() RootStrategy
	branches map[string]func() BranchStrategy
	searches map[string]func() SearchStrategy
	rules    map[string]func() PruningRule
}

func newStrategyRegistry() *strategyRegistry {
	return &strategyRegistry{
		roots: map[string]func() RootStrategy{
			"ConvexHull":                   func() RootStrategy { return ConvexHullRoot{} },
			"LongestEdgePlusFarthestCircle": func() RootStrategy { return LongestEdgePlusFarthestCircleRoot{} },
			"Random":                        func() RootStrategy { return RandomRoot{} },
		},
		branches: map[string]func() BranchStrategy{
			"FarthestCircle":              func() BranchStrategy { return FarthestCircleBranch{} },
			"ChFarthestCircle":             func() BranchStrategy { return ChFarthestCircleBranch{} },
			"ChFarthestCircleSimplifying":  func() BranchStrategy { return ChFarthestCircleSimplifyingBranch{} },
			"Random":                       func() BranchStrategy { return RandomBranch{} },
		},
		searches: map[string]func() SearchStrategy{
			"DfsBfs":                 func() SearchStrategy { return DfsBfsSearch{} },
			"CheapestChildDepthFirst": func() SearchStrategy { return CheapestChildDepthFirstSearch{} },
			"CheapestBreadthFirst":    func() SearchStrategy { return CheapestBreadthFirstSearch{} },
			"Random":                 func() SearchStrategy { return RandomSearch{} },
		},
		rules: map[string]func() PruningRule{
			"GlobalConvexHullRule":  func() PruningRule { return GlobalConvexHullRule{} },
			"LayeredConvexHullRule": func() PruningRule { return LayeredConvexHullRule{} },
		},
	}
}

func (r *strategyRegistry) root(name string) (RootStrategy, error) {
	f, ok := r.roots[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown root strategy %q", ErrInvalidInstance, name)
	}
	return f(), nil
}

func (r *strategyRegistry) branch(name string) (BranchStrategy, error) {
	f, ok := r.branches[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown branching strategy %q", ErrInvalidInstance, name)
	}
	return f(), nil
}

func (r *strategyRegistry) search(name string) (SearchStrategy, error) {
	f, ok := r.searches[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown search strategy %q", ErrInvalidInstance, name)
	}
	return f(), nil
}

func (r *strategyRegistry) rule(name string) (PruningRule, error) {
	f, ok := r.rules[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown pruning rule %q", ErrInvalidInstance, name)
	}
	return f(), nil
}
