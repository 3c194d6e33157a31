// Package cetsp solves the Close-Enough Traveling Salesman Problem: given a
// set of disks in the plane and an optional fixed start/end, find the
// shortest closed tour (or path) whose polyline intersects every disk.
//
// The package is organized leaves-first: geometry, the SOCP/TSP oracles, the
// partial-solution and node model, the pluggable strategies, and finally the
// branch-and-bound engine and its parallel executor.
package cetsp

import "math"

// Point is a location in the plane.
type Point struct {
	X, Y float64
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// Norm returns the Euclidean norm of p treated as a vector.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return p.Sub(q).Norm()
}

// Disk is a circular visitation constraint: the tour must pass within R of
// Center. R == 0 degenerates to a point constraint.
type Disk struct {
	Center Point
	R      float64
}

// Contains reports whether p lies within the disk (inclusive of the boundary).
func (d Disk) Contains(p Point) bool {
	return d.Center.Dist(p) <= d.R
}

// Clamp projects p onto the disk: if p already lies within the disk it is
// returned unchanged, otherwise the point on the boundary closest to p.
func (d Disk) Clamp(p Point) Point {
	dist := d.Center.Dist(p)
	if dist <= d.R || dist == 0 {
		return p
	}
	dir := p.Sub(d.Center).Scale(1.0 / dist)
	return d.Center.Add(dir.Scale(d.R))
}

// Segment is a directed line segment between two points.
type Segment struct {
	A, B Point
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return s.A.Dist(s.B)
}

// ClosestPoint returns the point on the segment closest to p and the
// distance to it.
func (s Segment) ClosestPoint(p Point) (Point, float64) {
	ab := s.B.Sub(s.A)
	abLen2 := ab.X*ab.X + ab.Y*ab.Y
	if abLen2 == 0 {
		return s.A, s.A.Dist(p)
	}
	ap := p.Sub(s.A)
	t := (ap.X*ab.X + ap.Y*ab.Y) / abLen2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := s.A.Add(ab.Scale(t))
	return closest, closest.Dist(p)
}
