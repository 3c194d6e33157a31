package cetsp

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// referenceSOCPOracle is an in-process stand-in for a commercial second-
// order cone solver. It is not a general SOCP solver: it exploits the
// specific structure of this problem (each hit point is constrained to a
// single disk, and the objective is the sum of consecutive segment
// lengths) with a block-coordinate projection scheme, which is the exact
// KKT stationarity condition for one point with its neighbors held fixed.
// The core loops against this interface, never a commercial backend
// (Design Notes §9).
type referenceSOCPOracle struct {
	maxIters int
}

// NewReferenceSOCPOracle returns the default in-process SOCP oracle.
func NewReferenceSOCPOracle() SOCPOracle {
	return &referenceSOCPOracle{maxIters: 500}
}

func (o *referenceSOCPOracle) Solve(ctx context.Context, req SOCPRequest) (SOCPResult, error) {
	k := len(req.Sequence)

	if req.Mode == ModeTour {
		if k == 0 {
			return SOCPResult{}, fmt.Errorf("%w: tour oracle called with zero disks", ErrInvalidInstance)
		}
		if k == 1 {
			return SOCPResult{Length: 0, HitPoints: []Point{req.Sequence[0].Center}}, nil
		}
	} else {
		if req.Start == nil || req.End == nil {
			return SOCPResult{}, fmt.Errorf("%w: path oracle requires both Start and End", ErrInvalidInstance)
		}
		if k == 0 {
			return SOCPResult{Length: req.Start.Dist(*req.End), HitPoints: nil}, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return SOCPResult{}, err
	}

	points := make([]Point, k)
	for i, d := range req.Sequence {
		points[i] = d.Center
	}

	prev := mat.NewDense(k, 2, nil)
	fillMat(prev, points)

	tol := req.Tol
	if tol <= 0 {
		tol = 1e-4
	}

	converged := false
	for iter := 0; iter < o.maxIters; iter++ {
		if err := ctx.Err(); err != nil {
			return SOCPResult{}, err
		}

		for i := 0; i < k; i++ {
			before := o.neighborBefore(points, req, i)
			after := o.neighborAfter(points, req, i)
			seg := Segment{A: before, B: after}
			target, _ := seg.ClosestPoint(req.Sequence[i].Center)
			if req.Sequence[i].Contains(target) {
				points[i] = target
			} else {
				points[i] = req.Sequence[i].Clamp(target)
			}
		}

		cur := mat.NewDense(k, 2, nil)
		fillMat(cur, points)

		var diff mat.Dense
		diff.Sub(cur, prev)
		delta := mat.Norm(&diff, 2)
		prev = cur

		if delta < tol {
			converged = true
			break
		}
	}

	traj := o.trajectory(points, req)
	length := traj.Length()

	if !converged {
		// Final sanity check: the support-function lower bound must not
		// exceed the converged length by more than tolerance, otherwise
		// the iteration genuinely failed to converge rather than simply
		// needing one more sweep.
		lb := supportFunctionLowerBound(req)
		if length < lb-tol {
			return SOCPResult{}, fmt.Errorf("%w: failed to converge after %d iterations (length=%g, lower bound=%g)", ErrNumeric, o.maxIters, length, lb)
		}
	}

	return SOCPResult{Length: length, HitPoints: points}, nil
}

func (o *referenceSOCPOracle) neighborBefore(points []Point, req SOCPRequest, i int) Point {
	if i > 0 {
		return points[i-1]
	}
	if req.Mode == ModePath {
		return *req.Start
	}
	return points[len(points)-1]
}

func (o *referenceSOCPOracle) neighborAfter(points []Point, req SOCPRequest, i int) Point {
	if i < len(points)-1 {
		return points[i+1]
	}
	if req.Mode == ModePath {
		return *req.End
	}
	return points[0]
}

func (o *referenceSOCPOracle) trajectory(points []Point, req SOCPRequest) Trajectory {
	if req.Mode == ModeTour {
		return Trajectory{Points: points, Closed: true}
	}
	full := make([]Point, 0, len(points)+2)
	full = append(full, *req.Start)
	full = append(full, points...)
	full = append(full, *req.End)
	return Trajectory{Points: full, Closed: false}
}

func fillMat(m *mat.Dense, points []Point) {
	for i, p := range points {
		m.Set(i, 0, p.X)
		m.Set(i, 1, p.Y)
	}
}

// supportFunctionLowerBound computes a cheap, monotone-nondecreasing lower
// bound on the tour/path length by applying the reverse triangle
// inequality edge by edge: the segment connecting disk i and disk i+1 can
// never be shorter than the distance between their centers minus both
// radii (clamped at zero). Summing over all edges in sequence order (plus
// the wrap edge for a tour, or the start/end legs for a path) is a valid
// relaxation because it ignores the joint feasibility of all hit points
// simultaneously lying on a single connected polyline — exactly the
// direction-sampled/support-function idea, specialized to the coordinate
// axis implied by each edge's own center-to-center direction instead of a
// shared global direction.
func supportFunctionLowerBound(req SOCPRequest) float64 {
	k := len(req.Sequence)
	edge := func(a, b Point, ra, rb float64) float64 {
		d := a.Dist(b) - ra - rb
		if d < 0 {
			return 0
		}
		return d
	}

	var edges []float64
	if req.Mode == ModePath {
		if k == 0 {
			return req.Start.Dist(*req.End)
		}
		edges = append(edges, edge(*req.Start, req.Sequence[0].Center, 0, req.Sequence[0].R))
		for i := 0; i+1 < k; i++ {
			edges = append(edges, edge(req.Sequence[i].Center, req.Sequence[i+1].Center, req.Sequence[i].R, req.Sequence[i+1].R))
		}
		edges = append(edges, edge(req.Sequence[k-1].Center, *req.End, req.Sequence[k-1].R, 0))
		return floats.Sum(edges)
	}

	for i := 0; i < k; i++ {
		j := (i + 1) % k
		edges = append(edges, edge(req.Sequence[i].Center, req.Sequence[j].Center, req.Sequence[i].R, req.Sequence[j].R))
	}
	return floats.Sum(edges)
}
