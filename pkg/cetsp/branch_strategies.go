package cetsp

import "math/rand"

// FarthestCircleBranch selects the uncovered disk with maximum
// trajectory.distance(·) (§4.4).
type FarthestCircleBranch struct{}

func (FarthestCircleBranch) Name() string      { return "FarthestCircle" }
func (FarthestCircleBranch) Simplifies() bool  { return false }

func (FarthestCircleBranch) SelectDisk(ps *PartialSolution, inst *Instance, tol float64, rng *rand.Rand) (int, bool) {
	return farthestByDistance(ps, inst, uncoveredDisks(ps, inst, tol))
}

// ChFarthestCircleBranch restricts FarthestCircle's candidate pool to the
// convex hull of the still-uncovered disk centers, falling back to the
// full uncovered set when that hull is empty.
type ChFarthestCircleBranch struct{}

func (ChFarthestCircleBranch) Name() string     { return "ChFarthestCircle" }
func (ChFarthestCircleBranch) Simplifies() bool { return false }

func (ChFarthestCircleBranch) SelectDisk(ps *PartialSolution, inst *Instance, tol float64, rng *rand.Rand) (int, bool) {
	return chFarthestCircle(ps, inst, tol)
}

// ChFarthestCircleSimplifyingBranch is ChFarthestCircle, but additionally
// requests that children created from this branching step be passed
// through PartialSolution.Simplify (§9 Open Question (a): simplify() is
// scoped to this one branching strategy and nowhere else).
type ChFarthestCircleSimplifyingBranch struct{}

func (ChFarthestCircleSimplifyingBranch) Name() string     { return "ChFarthestCircleSimplifying" }
func (ChFarthestCircleSimplifyingBranch) Simplifies() bool { return true }

func (ChFarthestCircleSimplifyingBranch) SelectDisk(ps *PartialSolution, inst *Instance, tol float64, rng *rand.Rand) (int, bool) {
	return chFarthestCircle(ps, inst, tol)
}

func chFarthestCircle(ps *PartialSolution, inst *Instance, tol float64) (int, bool) {
	uncovered := uncoveredDisks(ps, inst, tol)
	if len(uncovered) == 0 {
		return 0, false
	}

	centers := make([]Point, len(uncovered))
	for i, idx := range uncovered {
		centers[i] = inst.Disks[idx].Center
	}
	hull := ConvexHull(centers)
	if len(hull) == 0 {
		return farthestByDistance(ps, inst, uncovered)
	}

	candidates := make([]int, len(hull))
	for i, local := range hull {
		candidates[i] = uncovered[local]
	}
	return farthestByDistance(ps, inst, candidates)
}

// RandomBranch selects uniformly among uncovered disks.
type RandomBranch struct{}

func (RandomBranch) Name() string     { return "Random" }
func (RandomBranch) Simplifies() bool { return false }

func (RandomBranch) SelectDisk(ps *PartialSolution, inst *Instance, tol float64, rng *rand.Rand) (int, bool) {
	uncovered := uncoveredDisks(ps, inst, tol)
	if len(uncovered) == 0 {
		return 0, false
	}
	return uncovered[rng.Intn(len(uncovered))], true
}
