package cetsp

import "math"

// Trajectory is an ordered polyline of hit points. Closed reports whether
// the polyline wraps (a tour) or stops at its last point (a path).
type Trajectory struct {
	Points []Point
	Closed bool
}

// Length returns the sum of consecutive segment lengths, wrapping the last
// point back to the first when the trajectory is Closed.
func (t Trajectory) Length() float64 {
	n := len(t.Points)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < n; i++ {
		total += t.Points[i-1].Dist(t.Points[i])
	}
	if t.Closed {
		total += t.Points[n-1].Dist(t.Points[0])
	}
	return total
}

// segments returns the consecutive segments of the trajectory, including the
// wrap-around segment when Closed.
func (t Trajectory) segments() []Segment {
	n := len(t.Points)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []Segment{{A: t.Points[0], B: t.Points[0]}}
	}
	segs := make([]Segment, 0, n)
	for i := 1; i < n; i++ {
		segs = append(segs, Segment{A: t.Points[i-1], B: t.Points[i]})
	}
	if t.Closed {
		segs = append(segs, Segment{A: t.Points[n-1], B: t.Points[0]})
	}
	return segs
}

// Distance returns the signed distance from the disk to the trajectory: the
// Euclidean distance from the disk center to the nearest point on the
// polyline, minus the disk radius. A negative value means the polyline
// already passes strictly inside the disk.
func (t Trajectory) Distance(d Disk) float64 {
	segs := t.segments()
	if len(segs) == 0 {
		return math.Inf(1)
	}
	best := math.Inf(1)
	for _, s := range segs {
		_, dist := s.ClosestPoint(d.Center)
		if dist < best {
			best = dist
		}
	}
	return best - d.R
}

// Contains reports whether the disk is hit within tol (Distance(d) <= tol).
func (t Trajectory) Contains(d Disk, tol float64) bool {
	return t.Distance(d) <= tol
}
