package cetsp

import (
	"context"
	"fmt"
)

// simplifyEpsilon is the slack used by PartialSolution.Simplify when
// deciding a disk is "strongly contained": distance(d) < -R(d)*simplifyEpsilon.
const simplifyEpsilon = 0.025

// PartialSolution is an ordered sub-sequence of an Instance's disk indices,
// together with its cached SOCP-optimal trajectory. PartialSolutions are
// immutable after construction: Insert and Simplify return a new value,
// never mutate the receiver, so a Node's lower bound can be read from many
// goroutines without synchronization (§5, copy-on-insert).
type PartialSolution struct {
	inst   *Instance
	oracle SOCPOracle
	tol    float64

	order  []int
	result SOCPResult

	feasibilityKnown bool
	feasible         bool
}

// NewEmptyPartialSolution returns the partial solution with no disks
// visited yet: length 0, no hit points.
func NewEmptyPartialSolution(inst *Instance, oracle SOCPOracle, tol float64) *PartialSolution {
	return &PartialSolution{inst: inst, oracle: oracle, tol: tol}
}

// Order returns a copy of the disk indices in visitation order.
func (ps *PartialSolution) Order() []int {
	return append([]int(nil), ps.order...)
}

// Len returns the number of disks currently in the partial solution.
func (ps *PartialSolution) Len() int {
	return len(ps.order)
}

// Value returns the cached SOCP-optimal length for the current order.
func (ps *PartialSolution) Value() float64 {
	return ps.result.Length
}

// Trajectory returns the cached hit-point trajectory.
func (ps *PartialSolution) Trajectory() Trajectory {
	if ps.inst.IsPath() {
		full := make([]Point, 0, len(ps.result.HitPoints)+2)
		full = append(full, *ps.inst.Start)
		full = append(full, ps.result.HitPoints...)
		full = append(full, *ps.inst.End)
		return Trajectory{Points: full, Closed: false}
	}
	return Trajectory{Points: ps.result.HitPoints, Closed: true}
}

// Contains reports whether the disk is already in the visitation order.
func (ps *PartialSolution) Contains(diskIdx int) bool {
	for _, idx := range ps.order {
		if idx == diskIdx {
			return true
		}
	}
	return false
}

// Distance returns the trajectory's signed distance to the given disk.
func (ps *PartialSolution) Distance(d Disk) float64 {
	return ps.Trajectory().Distance(d)
}

// IsFeasible reports whether every disk of the instance lies within
// ps.tol of the trajectory. The result is cached after the first call.
func (ps *PartialSolution) IsFeasible() bool {
	if ps.feasibilityKnown {
		return ps.feasible
	}
	traj := ps.Trajectory()
	ok := true
	for _, d := range ps.inst.Disks {
		if !traj.Contains(d, ps.tol) {
			ok = false
			break
		}
	}
	ps.feasibilityKnown = true
	ps.feasible = ok
	return ok
}

// Insert returns a new PartialSolution with diskIdx inserted at position
// pos (0 <= pos <= ps.Len()) and its SOCP result recomputed. It returns
// ErrDuplicate if diskIdx is already present.
func (ps *PartialSolution) Insert(ctx context.Context, pos int, diskIdx int) (*PartialSolution, error) {
	if ps.Contains(diskIdx) {
		return nil, fmt.Errorf("%w: disk %d already in partial solution", ErrDuplicate, diskIdx)
	}
	if pos < 0 || pos > len(ps.order) {
		return nil, fmt.Errorf("%w: insert position %d out of range [0,%d]", ErrInternalInvariant, pos, len(ps.order))
	}

	newOrder := make([]int, 0, len(ps.order)+1)
	newOrder = append(newOrder, ps.order[:pos]...)
	newOrder = append(newOrder, diskIdx)
	newOrder = append(newOrder, ps.order[pos:]...)

	return ps.withOrder(ctx, newOrder)
}

// Simplify removes disks from the sequence that are strongly contained by
// the current trajectory (distance < -R*simplifyEpsilon) and re-solves the
// SOCP for the reduced order. Such disks are redundant: the trajectory
// already covers them comfortably, so dropping them from the combinatorial
// order tightens branching without weakening the bound.
func (ps *PartialSolution) Simplify(ctx context.Context) (*PartialSolution, error) {
	if len(ps.order) == 0 {
		return ps, nil
	}
	traj := ps.Trajectory()
	kept := make([]int, 0, len(ps.order))
	for i, diskIdx := range ps.order {
		d := ps.inst.Disks[diskIdx]
		dist := traj.Distance(d)
		_ = i
		if dist < -d.R*simplifyEpsilon {
			continue // strongly contained: drop from the combinatorial order
		}
		kept = append(kept, diskIdx)
	}
	if len(kept) == len(ps.order) {
		return ps, nil
	}
	return ps.withOrder(ctx, kept)
}

func (ps *PartialSolution) withOrder(ctx context.Context, order []int) (*PartialSolution, error) {
	next := &PartialSolution{inst: ps.inst, oracle: ps.oracle, tol: ps.tol, order: order}

	if len(order) == 0 {
		next.result = SOCPResult{}
		return next, nil
	}

	req := SOCPRequest{
		Sequence: orderedDisks(ps.inst.Disks, order),
		Mode:     modeOf(ps.inst),
		Start:    ps.inst.Start,
		End:      ps.inst.End,
		Tol:      ps.tol,
	}
	result, err := ps.oracle.Solve(ctx, req)
	if err != nil {
		return nil, err
	}
	next.result = result
	return next, nil
}
