// Package main demonstrates the cetsp branch-and-bound solver on the
// small fixed instances used as its own regression scenarios.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gitrdm/gokando-cetsp/pkg/cetsp"
)

func main() {
	fmt.Println("=== CETSP Branch-and-Bound Examples ===")
	fmt.Println()

	twoDisks()
	collinearTriple()
	square()
	squarePlusCentre()
	grid(4, 4)
	pathMode()
}

// twoDisks demonstrates the simplest closed tour: two disks of radius 1,
// ten units apart.
func twoDisks() {
	fmt.Println("1. Two disks:")
	disks := []cetsp.Disk{
		{Center: cetsp.Point{X: 0, Y: 0}, R: 1},
		{Center: cetsp.Point{X: 10, Y: 0}, R: 1},
	}
	runScenario(disks, nil, nil)
}

// collinearTriple adds a zero-radius disk between the two endpoints; it
// sits on the segment already joining them, so it costs nothing extra.
func collinearTriple() {
	fmt.Println("2. Collinear triple:")
	disks := []cetsp.Disk{
		{Center: cetsp.Point{X: 0, Y: 0}, R: 1},
		{Center: cetsp.Point{X: 10, Y: 0}, R: 1},
		{Center: cetsp.Point{X: 5, Y: 0}, R: 0},
	}
	runScenario(disks, nil, nil)
}

// square is four point-disks at the corners of a 10x10 square.
func square() {
	fmt.Println("3. Square:")
	disks := []cetsp.Disk{
		{Center: cetsp.Point{X: 0, Y: 0}, R: 0},
		{Center: cetsp.Point{X: 10, Y: 0}, R: 0},
		{Center: cetsp.Point{X: 0, Y: 10}, R: 0},
		{Center: cetsp.Point{X: 10, Y: 10}, R: 0},
	}
	runScenario(disks, nil, nil)
}

// squarePlusCentre adds a fifth point-disk at the square's centre, forcing
// a detour off the perimeter.
func squarePlusCentre() {
	fmt.Println("4. Square + centre:")
	disks := []cetsp.Disk{
		{Center: cetsp.Point{X: 0, Y: 0}, R: 0},
		{Center: cetsp.Point{X: 10, Y: 0}, R: 0},
		{Center: cetsp.Point{X: 0, Y: 10}, R: 0},
		{Center: cetsp.Point{X: 10, Y: 10}, R: 0},
		{Center: cetsp.Point{X: 5, Y: 5}, R: 0},
	}
	runScenario(disks, nil, nil)
}

// grid is an n x m grid of unit-spaced point-disks.
func grid(n, m int) {
	fmt.Printf("5. %dx%d grid:\n", n, m)
	var disks []cetsp.Disk
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			disks = append(disks, cetsp.Disk{Center: cetsp.Point{X: float64(i), Y: float64(j)}, R: 0})
		}
	}
	runScenario(disks, nil, nil)
}

// pathMode fixes both endpoints at the origin, so the disk radii at the
// endpoints are not deducted from the tour length.
func pathMode() {
	fmt.Println("6. Path mode:")
	disks := []cetsp.Disk{
		{Center: cetsp.Point{X: 0, Y: 0}, R: 1},
		{Center: cetsp.Point{X: 10, Y: 0}, R: 1},
	}
	start := cetsp.Point{X: 0, Y: 0}
	end := cetsp.Point{X: 0, Y: 0}
	runScenario(disks, &start, &end)
}

func runScenario(disks []cetsp.Disk, start, end *cetsp.Point) {
	var inst *cetsp.Instance
	var err error
	if start != nil {
		inst, err = cetsp.NewPathInstance(disks, *start, *end)
	} else {
		inst, err = cetsp.NewTourInstance(disks)
	}
	if err != nil {
		fmt.Printf("   invalid instance: %v\n", err)
		fmt.Println()
		return
	}

	opts := cetsp.DefaultOptions()
	opts.Timelimit = 5 * time.Second
	opts.NumThreads = 4

	startedAt := time.Now()
	sol, lb, stats, err := cetsp.Optimize(context.Background(), inst, opts)
	elapsed := time.Since(startedAt)
	if err != nil {
		fmt.Printf("   optimize failed: %v\n", err)
		fmt.Println()
		return
	}

	fmt.Printf("   length=%.6f  lower_bound=%.6f  reason=%s\n", sol.Length, lb, stats.Reason)
	fmt.Printf("   nodes_explored=%d  branches_created=%d  elapsed=%v\n", stats.NodesExplored, stats.BranchesCreated, elapsed)
	fmt.Println()
}
