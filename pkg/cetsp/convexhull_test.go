package cetsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvexHullSquareWithInteriorPoint(t *testing.T) {
	points := []Point{
		{0, 0}, {10, 0}, {10, 10}, {0, 10}, {5, 5},
	}
	hull := ConvexHull(points)

	assert.Len(t, hull, 4, "the interior centre point should not appear on the hull")
	assert.NotContains(t, hull, 4)
}

func TestConvexHullFewerThanThreePoints(t *testing.T) {
	assert.Equal(t, []int{}, ConvexHull(nil))
	assert.Equal(t, []int{0}, ConvexHull([]Point{{1, 1}}))
	assert.Equal(t, []int{0, 1}, ConvexHull([]Point{{0, 0}, {1, 1}}))
}

func TestOnionPeelPartitionsAllPoints(t *testing.T) {
	points := []Point{
		{0, 0}, {10, 0}, {10, 10}, {0, 10}, // outer square
		{4, 4}, {6, 4}, {6, 6}, {4, 6}, // inner square
		{5, 5}, // centre
	}
	layers := OnionPeel(points)

	seen := make(map[int]bool)
	for _, layer := range layers {
		for _, idx := range layer {
			assert.False(t, seen[idx], "index %d should appear in exactly one layer", idx)
			seen[idx] = true
		}
	}
	assert.Len(t, seen, len(points), "every point must be assigned to some layer")
	assert.GreaterOrEqual(t, len(layers), 2, "nested squares should produce at least two layers")
}

func TestRespectsCyclicOrder(t *testing.T) {
	ring := []int{0, 1, 2, 3}

	assert.True(t, respectsCyclicOrder(ring, []int{0, 1, 2, 3}), "forward order")
	assert.True(t, respectsCyclicOrder(ring, []int{3, 2, 1, 0}), "reverse order")
	assert.True(t, respectsCyclicOrder(ring, []int{1, 2, 3, 0}), "rotation")
	assert.False(t, respectsCyclicOrder(ring, []int{0, 2, 1, 3}), "swapped adjacent pair breaks cyclic order")
}

func TestRespectsCyclicOrderEmptyRing(t *testing.T) {
	assert.True(t, respectsCyclicOrder(nil, []int{0, 1, 2}))
}
