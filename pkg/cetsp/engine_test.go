package cetsp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// optimizeScenario runs Optimize with a short timelimit suitable for the
// small fixed instances used throughout this file.
func optimizeScenario(t *testing.T, inst *Instance, configure func(*Options)) (Solution, float64, *Stats) {
	t.Helper()
	opts := DefaultOptions()
	opts.Timelimit = 5 * time.Second
	opts.NumThreads = 4
	if configure != nil {
		configure(&opts)
	}

	sol, lb, stats, err := Optimize(context.Background(), inst, opts)
	require.NoError(t, err)
	return sol, lb, stats
}

func TestOptimizeTwoDisks(t *testing.T) {
	disks := []Disk{
		{Center: Point{0, 0}, R: 1},
		{Center: Point{10, 0}, R: 1},
	}
	inst, err := NewTourInstance(disks)
	require.NoError(t, err)

	sol, _, _ := optimizeScenario(t, inst, nil)
	assert.InDelta(t, 16.0, sol.Length, 1e-3)
}

func TestOptimizeCollinearTriple(t *testing.T) {
	disks := []Disk{
		{Center: Point{0, 0}, R: 1},
		{Center: Point{10, 0}, R: 1},
		{Center: Point{5, 0}, R: 0},
	}
	inst, err := NewTourInstance(disks)
	require.NoError(t, err)

	sol, _, _ := optimizeScenario(t, inst, nil)
	assert.InDelta(t, 16.0, sol.Length, 1e-3)
}

func TestOptimizeSquare(t *testing.T) {
	disks := []Disk{
		{Center: Point{0, 0}, R: 0},
		{Center: Point{10, 0}, R: 0},
		{Center: Point{0, 10}, R: 0},
		{Center: Point{10, 10}, R: 0},
	}
	inst, err := NewTourInstance(disks)
	require.NoError(t, err)

	sol, _, _ := optimizeScenario(t, inst, nil)
	assert.InDelta(t, 40.0, sol.Length, 1e-3)
}

func TestOptimizeSquarePlusCentre(t *testing.T) {
	disks := []Disk{
		{Center: Point{0, 0}, R: 0},
		{Center: Point{10, 0}, R: 0},
		{Center: Point{0, 10}, R: 0},
		{Center: Point{10, 10}, R: 0},
		{Center: Point{5, 5}, R: 0},
	}
	inst, err := NewTourInstance(disks)
	require.NoError(t, err)

	sol, _, _ := optimizeScenario(t, inst, nil)
	assert.InDelta(t, 44.14213093474119, sol.Length, 1e-3)
}

func TestOptimizeGrid4x4(t *testing.T) {
	var disks []Disk
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			disks = append(disks, Disk{Center: Point{float64(i), float64(j)}, R: 0})
		}
	}
	inst, err := NewTourInstance(disks)
	require.NoError(t, err)

	sol, _, _ := optimizeScenario(t, inst, nil)
	assert.InDelta(t, 16.0, sol.Length, 1e-3)
}

func TestOptimizeGrid4x5(t *testing.T) {
	var disks []Disk
	for i := 0; i < 4; i++ {
		for j := 0; j < 5; j++ {
			disks = append(disks, Disk{Center: Point{float64(i), float64(j)}, R: 0})
		}
	}
	inst, err := NewTourInstance(disks)
	require.NoError(t, err)

	sol, _, _ := optimizeScenario(t, inst, nil)
	assert.InDelta(t, 20.0, sol.Length, 1e-3)
}

func TestOptimizePathMode(t *testing.T) {
	disks := []Disk{
		{Center: Point{0, 0}, R: 1},
		{Center: Point{10, 0}, R: 1},
	}
	inst, err := NewPathInstance(disks, Point{0, 0}, Point{0, 0})
	require.NoError(t, err)

	sol, _, _ := optimizeScenario(t, inst, nil)
	assert.InDelta(t, 18.0, sol.Length, 1e-3)
}

// TestOptimizeDeterministicAtSingleThread checks that, with num_threads=1
// and a fixed seed, repeated runs agree exactly on upper bound, lower
// bound, and nodes explored (§8 determinism requirement).
func TestOptimizeDeterministicAtSingleThread(t *testing.T) {
	disks := []Disk{
		{Center: Point{0, 0}, R: 0},
		{Center: Point{10, 0}, R: 0},
		{Center: Point{0, 10}, R: 0},
		{Center: Point{10, 10}, R: 0},
		{Center: Point{5, 5}, R: 0},
	}
	inst, err := NewTourInstance(disks)
	require.NoError(t, err)

	configure := func(o *Options) {
		o.NumThreads = 1
		o.Seed = 99
		o.SearchStrategy = "Random"
		o.BranchStrategy = "Random"
		o.RootStrategy = "Random"
	}

	first, firstLB, firstStats := optimizeScenario(t, inst, configure)
	second, secondLB, secondStats := optimizeScenario(t, inst, configure)

	assert.Equal(t, first.Length, second.Length)
	assert.Equal(t, firstLB, secondLB)
	assert.Equal(t, firstStats.NodesExplored, secondStats.NodesExplored)
}

func TestOptimizeRejectsUnknownStrategy(t *testing.T) {
	inst := squareInstance(t)
	opts := DefaultOptions()
	opts.RootStrategy = "NoSuchStrategy"

	_, _, _, err := Optimize(context.Background(), inst, opts)
	assert.Error(t, err)
}

func TestOptimizeRejectsInvalidInstance(t *testing.T) {
	inst := &Instance{}
	opts := DefaultOptions()

	_, _, _, err := Optimize(context.Background(), inst, opts)
	assert.Error(t, err)
}
