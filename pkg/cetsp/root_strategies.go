package cetsp

import (
	"context"
	"math/rand"
)

// ConvexHullRoot initializes the search with the disks on the convex hull
// of disk centers, in hull order. Any tour must visit hull disks in their
// cyclic hull order (or its reverse); seeding the root with exactly that
// order gives a strong starting bound (§4.4).
type ConvexHullRoot struct{}

func (ConvexHullRoot) Name() string { return "ConvexHull" }

func (ConvexHullRoot) SelectRoot(ctx context.Context, inst *Instance, oracle SOCPOracle, tol float64, rng *rand.Rand) (*PartialSolution, error) {
	centers := centersOf(inst.Disks)
	hull := ConvexHull(centers)
	return buildRoot(ctx, inst, oracle, tol, hull)
}

// LongestEdgePlusFarthestCircleRoot starts with the two disks whose
// centers are farthest apart, then adds the disk farthest (by center
// distance) from that segment, for an initial k=3 sequence.
type LongestEdgePlusFarthestCircleRoot struct{}

func (LongestEdgePlusFarthestCircleRoot) Name() string { return "LongestEdgePlusFarthestCircle" }

func (LongestEdgePlusFarthestCircleRoot) SelectRoot(ctx context.Context, inst *Instance, oracle SOCPOracle, tol float64, rng *rand.Rand) (*PartialSolution, error) {
	n := len(inst.Disks)
	if n == 0 {
		return buildRoot(ctx, inst, oracle, tol, nil)
	}
	if n == 1 {
		return buildRoot(ctx, inst, oracle, tol, []int{0})
	}

	a, b := 0, 1
	best := inst.Disks[0].Center.Dist(inst.Disks[1].Center)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := inst.Disks[i].Center.Dist(inst.Disks[j].Center)
			if d > best {
				best = d
				a, b = i, j
			}
		}
	}

	seq := []int{a, b}
	if n == 2 {
		return buildRoot(ctx, inst, oracle, tol, seq)
	}

	seg := Segment{A: inst.Disks[a].Center, B: inst.Disks[b].Center}
	farthest := -1
	farthestDist := -1.0
	for i := 0; i < n; i++ {
		if i == a || i == b {
			continue
		}
		_, dist := seg.ClosestPoint(inst.Disks[i].Center)
		if dist > farthestDist {
			farthestDist = dist
			farthest = i
		}
	}
	seq = append(seq, farthest)
	return buildRoot(ctx, inst, oracle, tol, seq)
}

// RandomRoot starts from a uniformly random triple of disks (or fewer, if
// the instance has fewer than three).
type RandomRoot struct{}

func (RandomRoot) Name() string { return "Random" }

func (RandomRoot) SelectRoot(ctx context.Context, inst *Instance, oracle SOCPOracle, tol float64, rng *rand.Rand) (*PartialSolution, error) {
	n := len(inst.Disks)
	k := 3
	if n < k {
		k = n
	}
	perm := rng.Perm(n)
	return buildRoot(ctx, inst, oracle, tol, perm[:k])
}

func centersOf(disks []Disk) []Point {
	out := make([]Point, len(disks))
	for i, d := range disks {
		out[i] = d.Center
	}
	return out
}

func buildRoot(ctx context.Context, inst *Instance, oracle SOCPOracle, tol float64, order []int) (*PartialSolution, error) {
	ps := NewEmptyPartialSolution(inst, oracle, tol)
	for i, diskIdx := range order {
		next, err := ps.Insert(ctx, i, diskIdx)
		if err != nil {
			return nil, err
		}
		ps = next
	}
	return ps, nil
}
