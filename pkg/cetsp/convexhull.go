package cetsp

import "sort"

// cross returns the z-component of (a-o) x (b-o): positive when o,a,b turn
// counterclockwise, negative when clockwise, zero when collinear.
func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// ConvexHull returns the indices into points lying on the convex hull, in
// counterclockwise order, computed via Andrew's monotone chain. Points
// strictly inside the hull are omitted; collinear hull-edge points are
// also omitted so each returned index is a genuine vertex. Any tour must
// visit hull disks in this cyclic order or its reverse (the Hull Order
// Rule, §4.4/§9).
func ConvexHull(points []Point) []int {
	n := len(points)
	if n < 3 {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		pi, pj := points[order[i]], points[order[j]]
		if pi.X != pj.X {
			return pi.X < pj.X
		}
		return pi.Y < pj.Y
	})

	build := func(seq []int) []int {
		hull := make([]int, 0, len(seq))
		for _, idx := range seq {
			for len(hull) >= 2 && cross(points[hull[len(hull)-2]], points[hull[len(hull)-1]], points[idx]) <= 0 {
				hull = hull[:len(hull)-1]
			}
			hull = append(hull, idx)
		}
		return hull
	}

	lower := build(order)

	rev := make([]int, len(order))
	for i, idx := range order {
		rev[len(order)-1-i] = idx
	}
	upper := build(rev)

	hull := append(lower[:len(lower)-1:len(lower)-1], upper[:len(upper)-1]...)
	if len(hull) == 0 {
		return order
	}
	return hull
}

// OnionPeel repeatedly computes the convex hull of the remaining points
// and removes it, returning the sequence of hull layers as original
// indices. The last layer may have fewer than 3 points. Per Design Notes
// §9 Open Question (b), layers are peeled until the point set is empty;
// each layer contributes an independent cyclic-order constraint, and
// layers interact only through shared disks — there are none, since
// OnionPeel partitions the index set.
func OnionPeel(points []Point) [][]int {
	remaining := make([]int, len(points))
	for i := range remaining {
		remaining[i] = i
	}

	var layers [][]int
	for len(remaining) > 0 {
		sub := make([]Point, len(remaining))
		for i, idx := range remaining {
			sub[i] = points[idx]
		}
		hullLocal := ConvexHull(sub)
		if len(hullLocal) == 0 {
			break
		}

		layer := make([]int, len(hullLocal))
		onHull := make(map[int]bool, len(hullLocal))
		for i, local := range hullLocal {
			layer[i] = remaining[local]
			onHull[local] = true
		}
		layers = append(layers, layer)

		next := make([]int, 0, len(remaining)-len(hullLocal))
		for i, idx := range remaining {
			if !onHull[i] {
				next = append(next, idx)
			}
		}
		if len(next) == len(remaining) {
			// Degenerate (e.g. all collinear): avoid an infinite loop.
			break
		}
		remaining = next
	}
	return layers
}

// respectsCyclicOrder reports whether seq, filtered to the elements that
// also appear in ring, preserves ring's cyclic order either forward or
// reversed. An empty filtered sequence trivially respects the order.
func respectsCyclicOrder(ring []int, seq []int) bool {
	if len(ring) == 0 {
		return true
	}
	position := make(map[int]int, len(ring))
	for i, v := range ring {
		position[v] = i
	}

	filtered := make([]int, 0, len(seq))
	for _, v := range seq {
		if _, ok := position[v]; ok {
			filtered = append(filtered, v)
		}
	}
	if len(filtered) <= 1 {
		return true
	}

	forwardOK := isRotationOfIncreasing(ring, filtered, position, false)
	backwardOK := isRotationOfIncreasing(ring, filtered, position, true)
	return forwardOK || backwardOK
}

// isRotationOfIncreasing checks that, walking filtered in order, the
// corresponding ring positions advance monotonically around the cycle
// (optionally reversed), i.e. no element is ever "passed" out of order.
func isRotationOfIncreasing(ring []int, filtered []int, position map[int]int, reversed bool) bool {
	n := len(ring)
	step := func(p int) int {
		if reversed {
			return (p - 1 + n) % n
		}
		return (p + 1) % n
	}

	start := position[filtered[0]]
	cursor := start
	travelled := 0
	for i := 1; i < len(filtered); i++ {
		target := position[filtered[i]]
		advanced := false
		for steps := 0; steps < n; steps++ {
			cursor = step(cursor)
			travelled++
			if cursor == target {
				advanced = true
				break
			}
		}
		// More than one lap around the ring means some element was passed.
		if !advanced || travelled >= n {
			return false
		}
	}
	return true
}
