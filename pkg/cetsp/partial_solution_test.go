package cetsp

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareInstance(t *testing.T) *Instance {
	t.Helper()
	disks := []Disk{
		{Center: Point{0, 0}, R: 1},
		{Center: Point{10, 0}, R: 1},
		{Center: Point{10, 10}, R: 1},
		{Center: Point{0, 10}, R: 1},
	}
	inst, err := NewTourInstance(disks)
	require.NoError(t, err)
	return inst
}

func TestPartialSolutionEmpty(t *testing.T) {
	inst := squareInstance(t)
	oracle := NewReferenceSOCPOracle()
	ps := NewEmptyPartialSolution(inst, oracle, 0.001)

	assert.Equal(t, 0, ps.Len())
	assert.Equal(t, 0.0, ps.Value())
	assert.False(t, ps.Contains(0))
}

func TestPartialSolutionInsertRejectsDuplicate(t *testing.T) {
	inst := squareInstance(t)
	oracle := NewReferenceSOCPOracle()
	ps := NewEmptyPartialSolution(inst, oracle, 0.001)

	ps, err := ps.Insert(context.Background(), 0, 0)
	require.NoError(t, err)

	_, err = ps.Insert(context.Background(), 0, 0)
	assert.True(t, errors.Is(err, ErrDuplicate))
}

func TestPartialSolutionInsertRejectsOutOfRangePosition(t *testing.T) {
	inst := squareInstance(t)
	oracle := NewReferenceSOCPOracle()
	ps := NewEmptyPartialSolution(inst, oracle, 0.001)

	_, err := ps.Insert(context.Background(), 1, 0)
	assert.True(t, errors.Is(err, ErrInternalInvariant))
}

// TestPartialSolutionInsertMonotonicity checks the §8 invariant: inserting
// any disk at any position into any partial sequence never decreases the
// SOCP-optimal length.
func TestPartialSolutionInsertMonotonicity(t *testing.T) {
	inst := squareInstance(t)
	oracle := NewReferenceSOCPOracle()
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 20; trial++ {
		ps := NewEmptyPartialSolution(inst, oracle, 0.001)
		remaining := []int{0, 1, 2, 3}
		rng.Shuffle(len(remaining), func(i, j int) { remaining[i], remaining[j] = remaining[j], remaining[i] })

		for len(remaining) > 0 {
			diskIdx := remaining[0]
			remaining = remaining[1:]
			pos := rng.Intn(ps.Len() + 1)

			before := ps.Value()
			next, err := ps.Insert(context.Background(), pos, diskIdx)
			require.NoError(t, err)

			assert.GreaterOrEqualf(t, next.Value(), before-1e-6,
				"trial %d: inserting disk %d at %d shrank length from %g to %g", trial, diskIdx, pos, before, next.Value())
			ps = next
		}
	}
}

func TestPartialSolutionIsFeasibleCached(t *testing.T) {
	inst := squareInstance(t)
	oracle := NewReferenceSOCPOracle()
	ps := NewEmptyPartialSolution(inst, oracle, 0.001)

	for _, diskIdx := range []int{0, 1, 2, 3} {
		var err error
		ps, err = ps.Insert(context.Background(), ps.Len(), diskIdx)
		require.NoError(t, err)
	}

	first := ps.IsFeasible()
	second := ps.IsFeasible()
	assert.Equal(t, first, second, "IsFeasible must be stable once cached")
	assert.True(t, first, "visiting all four disks in order should be feasible")
}

func TestPartialSolutionSimplifyDropsContainedDisk(t *testing.T) {
	disks := []Disk{
		{Center: Point{0, 0}, R: 1},
		{Center: Point{10, 0}, R: 1},
		// A disk dead-centre on the 0->10 segment with a huge radius is
		// strongly contained by any trajectory passing near that segment.
		{Center: Point{5, 0}, R: 8},
	}
	inst, err := NewTourInstance(disks)
	require.NoError(t, err)

	oracle := NewReferenceSOCPOracle()
	ps := NewEmptyPartialSolution(inst, oracle, 0.001)
	for _, diskIdx := range []int{0, 2, 1} {
		ps, err = ps.Insert(context.Background(), ps.Len(), diskIdx)
		require.NoError(t, err)
	}

	simplified, err := ps.Simplify(context.Background())
	require.NoError(t, err)

	assert.False(t, simplified.Contains(2), "the strongly-contained disk should be dropped")
	assert.True(t, simplified.Contains(0))
	assert.True(t, simplified.Contains(1))
}

func TestPartialSolutionSimplifyNoOpWhenNothingContained(t *testing.T) {
	inst := squareInstance(t)
	oracle := NewReferenceSOCPOracle()
	ps := NewEmptyPartialSolution(inst, oracle, 0.001)
	var err error
	for _, diskIdx := range []int{0, 1} {
		ps, err = ps.Insert(context.Background(), ps.Len(), diskIdx)
		require.NoError(t, err)
	}

	simplified, err := ps.Simplify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ps.Order(), simplified.Order())
}
