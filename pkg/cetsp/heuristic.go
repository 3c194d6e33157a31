package cetsp

import (
	"context"
	"errors"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// Solution is a complete disk ordering together with its SOCP-optimal
// trajectory. It is the unit returned by the adaptive heuristic and used
// to seed the engine's initial incumbent.
type Solution struct {
	// Order lists instance disk indices in visitation order.
	Order      []int
	Trajectory Trajectory
	Length     float64
}

// HeuristicOptions configures the adaptive TSP primal heuristic.
type HeuristicOptions struct {
	// Iterations caps the number of TSP-then-SOCP refinement rounds.
	Iterations int

	// ImprovementTol is the minimum length improvement per round below
	// which the loop stops.
	ImprovementTol float64

	// Restarts is the number of independent randomized restarts run
	// concurrently; the best of the batch is returned.
	Restarts int

	// RandomizeRatio perturbs this fraction of hit points within their
	// disk before each restart after the first.
	RandomizeRatio float64

	// FallbackIfNoTSPBackend falls back to the in-process 2-opt TSP
	// solver when the configured TSP oracle reports ErrBackendUnavailable.
	FallbackIfNoTSPBackend bool
}

// DefaultHeuristicOptions returns the heuristic defaults: 10 refinement
// rounds, 1e-6 improvement tolerance, a single restart, and fallback
// enabled.
func DefaultHeuristicOptions() HeuristicOptions {
	return HeuristicOptions{
		Iterations:             10,
		ImprovementTol:         1e-6,
		Restarts:               1,
		RandomizeRatio:         0.3,
		FallbackIfNoTSPBackend: true,
	}
}

// AdaptiveHeuristic implements the primal heuristic of §4.2: alternate an
// external Euclidean TSP over the current hit points with an SOCP
// refinement of the resulting disk order, until the improvement stalls.
type AdaptiveHeuristic struct {
	SOCP    SOCPOracle
	TSP     TSPOracle
	Options HeuristicOptions
}

// NewAdaptiveHeuristic returns a heuristic wired to the given oracles with
// default options.
func NewAdaptiveHeuristic(socp SOCPOracle, tsp TSPOracle) *AdaptiveHeuristic {
	return &AdaptiveHeuristic{SOCP: socp, TSP: tsp, Options: DefaultHeuristicOptions()}
}

// Run produces the initial incumbent Solution for inst. Independent
// randomized restarts are issued concurrently through an errgroup so that
// Restarts > 1 exploits multiple cores for a better first incumbent before
// the branch-and-bound search even starts.
func (h *AdaptiveHeuristic) Run(ctx context.Context, inst *Instance) (Solution, error) {
	restarts := h.Options.Restarts
	if restarts <= 0 {
		restarts = 1
	}

	results := make([]Solution, restarts)
	errs := make([]error, restarts)

	g, gctx := errgroup.WithContext(ctx)
	for r := 0; r < restarts; r++ {
		r := r
		g.Go(func() error {
			seed := int64(r*2654435761 + 1)
			sol, err := h.runOnce(gctx, inst, rand.New(rand.NewSource(seed)), r > 0)
			results[r] = sol
			errs[r] = err
			return nil
		})
	}
	_ = g.Wait()

	best := Solution{Length: math.Inf(1)}
	var lastErr error
	found := false
	for i, sol := range results {
		if errs[i] != nil {
			lastErr = errs[i]
			continue
		}
		found = true
		if sol.Length < best.Length {
			best = sol
		}
	}
	if !found {
		return Solution{}, lastErr
	}
	return best, nil
}

func (h *AdaptiveHeuristic) runOnce(ctx context.Context, inst *Instance, rng *rand.Rand, randomize bool) (Solution, error) {
	n := len(inst.Disks)
	order := make([]int, n)
	hitPoints := make([]Point, n)
	for i, d := range inst.Disks {
		order[i] = i
		hitPoints[i] = d.Center
	}

	if randomize && n > 0 {
		hitPoints = RandomizeHittingPoints(hitPoints, orderedDisks(inst.Disks, order), h.Options.RandomizeRatio, rng)
	}

	iterations := h.Options.Iterations
	if iterations <= 0 {
		iterations = 10
	}
	tol := h.Options.ImprovementTol
	if tol <= 0 {
		tol = 1e-6
	}

	prevLength := math.Inf(1)
	var lastResult SOCPResult

	for iter := 0; iter < iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return Solution{}, err
		}

		perm, err := h.solveTSP(ctx, hitPoints)
		if err != nil {
			return Solution{}, err
		}

		newOrder := make([]int, n)
		for i, p := range perm {
			newOrder[i] = order[p]
		}

		seq := orderedDisks(inst.Disks, newOrder)
		req := SOCPRequest{Sequence: seq, Mode: modeOf(inst), Start: inst.Start, End: inst.End, Tol: 1e-4}
		result, err := h.SOCP.Solve(ctx, req)
		if err != nil {
			return Solution{}, err
		}

		order = newOrder
		hitPoints = result.HitPoints
		lastResult = result

		if prevLength-result.Length < tol {
			prevLength = result.Length
			break
		}
		prevLength = result.Length
	}

	return Solution{
		Order:      order,
		Trajectory: buildTrajectory(lastResult.HitPoints, inst),
		Length:     prevLength,
	}, nil
}

func (h *AdaptiveHeuristic) solveTSP(ctx context.Context, points []Point) ([]int, error) {
	if len(points) == 0 {
		return nil, nil
	}
	perm, err := h.TSP.Solve(ctx, TSPRequest{Points: points})
	if err == nil {
		return perm, nil
	}
	if h.Options.FallbackIfNoTSPBackend && errors.Is(err, ErrBackendUnavailable) {
		return NewTwoOptTSPOracle().Solve(ctx, TSPRequest{Points: points})
	}
	return nil, err
}

// RandomizeHittingPoints perturbs a ratio fraction of the given hit points
// uniformly within their corresponding disk, to help the heuristic escape
// local optima between restarts.
func RandomizeHittingPoints(points []Point, disks []Disk, ratio float64, rng *rand.Rand) []Point {
	if ratio <= 0 || len(points) == 0 {
		return points
	}
	out := append([]Point(nil), points...)
	for i := range out {
		if rng.Float64() >= ratio {
			continue
		}
		d := disks[i]
		if d.R == 0 {
			continue
		}
		theta := rng.Float64() * 2 * math.Pi
		radius := d.R * math.Sqrt(rng.Float64())
		out[i] = Point{
			X: d.Center.X + radius*math.Cos(theta),
			Y: d.Center.Y + radius*math.Sin(theta),
		}
	}
	return out
}

func orderedDisks(disks []Disk, order []int) []Disk {
	out := make([]Disk, len(order))
	for i, idx := range order {
		out[i] = disks[idx]
	}
	return out
}

func modeOf(inst *Instance) Mode {
	if inst.IsPath() {
		return ModePath
	}
	return ModeTour
}

func buildTrajectory(hitPoints []Point, inst *Instance) Trajectory {
	if inst.IsPath() {
		full := make([]Point, 0, len(hitPoints)+2)
		full = append(full, *inst.Start)
		full = append(full, hitPoints...)
		full = append(full, *inst.End)
		return Trajectory{Points: full, Closed: false}
	}
	return Trajectory{Points: hitPoints, Closed: true}
}
