package cetsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrajectoryLengthOpenVsClosed(t *testing.T) {
	traj := Trajectory{Points: []Point{{0, 0}, {10, 0}, {10, 10}}}
	assert.InDelta(t, 20.0, traj.Length(), 1e-9, "open path length")

	traj.Closed = true
	assert.InDelta(t, 20.0+math.Sqrt(200), traj.Length(), 1e-9, "closed tour length")
}

func TestTrajectoryLengthDegenerate(t *testing.T) {
	assert.Equal(t, 0.0, Trajectory{}.Length())
	assert.Equal(t, 0.0, Trajectory{Points: []Point{{1, 1}}}.Length())
}

func TestTrajectoryDistanceAndContains(t *testing.T) {
	traj := Trajectory{Points: []Point{{0, 0}, {10, 0}}}
	d := Disk{Center: Point{X: 5, Y: 3}, R: 1}

	assert.InDelta(t, 2.0, traj.Distance(d), 1e-9)
	assert.False(t, traj.Contains(d, 0.001))
	assert.True(t, traj.Contains(d, 2.5))
}

func TestTrajectoryDistanceNegativeWhenStrictlyInside(t *testing.T) {
	traj := Trajectory{Points: []Point{{0, 0}, {10, 0}}}
	d := Disk{Center: Point{X: 5, Y: 0}, R: 2}

	assert.Less(t, traj.Distance(d), 0.0)
	assert.True(t, traj.Contains(d, 0))
}
