package cetsp

import (
	"context"
	"math"
)

// twoOptTSPOracle is the fallback Euclidean TSP solver used when no
// external TSP backend is configured. It builds a nearest-neighbor tour and
// then improves it with 2-opt segment reversals until no improving move
// remains — the same reverse-a-subsequence move used by order-preserving
// permutation operators (grounded on the reversal helper in
// cbarrick-evo's perm package).
type twoOptTSPOracle struct{}

// NewTwoOptTSPOracle returns the in-process fallback TSP oracle.
func NewTwoOptTSPOracle() TSPOracle {
	return &twoOptTSPOracle{}
}

func (twoOptTSPOracle) Solve(ctx context.Context, req TSPRequest) ([]int, error) {
	n := len(req.Points)
	if n == 0 {
		return nil, nil
	}
	if n <= 2 {
		perm := make([]int, n)
		for i := range perm {
			perm[i] = i
		}
		return perm, nil
	}

	perm := nearestNeighborTour(req.Points)

	improved := true
	for improved {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		improved = false
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				if twoOptGain(req.Points, perm, i, j) > 1e-9 {
					reverseTourSegment(perm, i+1, j)
					improved = true
				}
			}
		}
	}
	return perm, nil
}

func nearestNeighborTour(points []Point) []int {
	n := len(points)
	visited := make([]bool, n)
	tour := make([]int, 0, n)
	cur := 0
	visited[0] = true
	tour = append(tour, 0)
	for len(tour) < n {
		best := -1
		bestDist := math.Inf(1)
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			d := points[cur].Dist(points[j])
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		visited[best] = true
		tour = append(tour, best)
		cur = best
	}
	return tour
}

// twoOptGain returns the length reduction from reversing tour[i+1:j+1],
// i.e. replacing edges (i,i+1) and (j,j+1) with (i,j) and (i+1,j+1).
func twoOptGain(points []Point, tour []int, i, j int) float64 {
	n := len(tour)
	a, b := points[tour[i]], points[tour[(i+1)%n]]
	c, d := points[tour[j]], points[tour[(j+1)%n]]
	before := a.Dist(b) + c.Dist(d)
	after := a.Dist(c) + b.Dist(d)
	return before - after
}

// reverseTourSegment reverses tour[i:j+1] in place.
func reverseTourSegment(tour []int, i, j int) {
	for i < j {
		tour[i], tour[j] = tour[j], tour[i]
		i++
		j--
	}
}
