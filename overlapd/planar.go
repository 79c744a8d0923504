package overlapd

import "math"

// planar is the shared footing of the bounded in-plane shapes
// (triangles and convex polygons): an ordered vertex loop on a plane
// with derived edges. The pairwise overlap and distance engines below
// work on this footing so triangle/triangle, triangle/polygon, and
// polygon/polygon all flow through one implementation.
type planar interface {
	Shape
	vertList() []Vector
	edgeList() []*LineSegment
	planeOf() *Plane
	Aligned(x Vector, eps float64) bool
	Contains(x Vector, eps float64) bool
	IntersectLine(l *Line, eps float64) Shape
	IntersectSegment(s *LineSegment, eps float64) Shape
	IntersectPlane(p *Plane, eps float64) Shape
	DistanceSquaredToPoint(x Vector, eps float64) float64
}

// planarIntersect intersects two bounded in-plane shapes, splitting
// on whether they share a plane.
func planarIntersect(a, b planar, eps float64) Shape {
	if a.planeOf().Coincident(b.planeOf(), eps) {
		return coplanarOverlap(a, b, eps)
	}
	return crossingOverlap(a, b, eps)
}

// coplanarOverlap computes the overlap of two shapes on one plane.
// Full containment is decided up front: with a shared or nearly
// shared edge, the general walk collects noise points that could
// misshape the result. Otherwise the overlap's vertices are exactly
// the edge crossings plus each shape's vertices inside the other, and
// the walk collects both by cutting every edge of each shape against
// the other.
func coplanarOverlap(a, b planar, eps float64) Shape {
	if !a.Bounds().Intersects(b.Bounds(), eps) {
		return nil
	}

	if allAligned(b, a.vertList(), eps) {
		return a
	}
	if allAligned(a, b.vertList(), eps) {
		return b
	}

	var pts []Vector
	for _, e := range a.edgeList() {
		pts = append(pts, shapePoints(b.IntersectSegment(e, eps))...)
	}
	for _, e := range b.edgeList() {
		pts = append(pts, shapePoints(a.IntersectSegment(e, eps))...)
	}
	return shapeFromPoints(a.envOf(), pts, a.planeOf().Normal(), eps)
}

func allAligned(container planar, pts []Vector, eps float64) bool {
	for _, p := range pts {
		if !container.Aligned(p, eps) {
			return false
		}
	}
	return true
}

// crossingOverlap computes the overlap of two in-plane shapes whose
// planes cross. Each shape is cut by the other's plane; the cuts are
// collinear on the planes' common line, so the overlap is their
// one-dimensional intersection.
func crossingOverlap(a, b planar, eps float64) Shape {
	switch v1 := a.IntersectPlane(b.planeOf(), eps).(type) {
	case nil:
		return nil
	case *Point:
		if b.Aligned(v1.Abs(), eps) {
			return v1
		}
		return nil
	case *LineSegment:
		switch v2 := b.IntersectPlane(a.planeOf(), eps).(type) {
		case nil:
			return nil
		case *Point:
			if a.Aligned(v2.Abs(), eps) {
				return v2
			}
			return nil
		case *LineSegment:
			return v1.overlapCollinear(v2, eps)
		default:
			panic("plane cut of a bounded shape must be nothing, a point, or a segment")
		}
	default:
		panic("plane cut of a bounded shape must be nothing, a point, or a segment")
	}
}

// planarDistToLine measures a line against a bounded in-plane shape
// that it misses. The nearest pair either involves an edge, or the
// line runs parallel over the interior and the gap is the plane
// offset. The latter holds exactly when the line's projection into
// the plane hits the shape.
func planarDistToLine(a planar, l *Line, eps float64) float64 {
	min := math.Inf(1)
	for _, e := range a.edgeList() {
		if d := e.DistanceSquaredToLine(l, eps); d < min {
			min = d
		}
	}
	pl := a.planeOf()
	if math.Abs(pl.Normal().Dot(l.Dir().Normalize())) <= eps {
		signed := pl.SignedDistance(l.Base())
		base := l.Base().Sub(pl.Normal().Scale(signed))
		proj := newLine(a.envOf(), &Offset{}, base, l.Dir(), true)
		if a.IntersectLine(proj, eps) != nil {
			min = math.Min(min, signed*signed)
		}
	}
	return min
}

// planarDistToSegment measures a segment against a bounded in-plane
// shape that it misses: the nearest of the segment's endpoints to the
// shape and of the segment to each edge.
func planarDistToSegment(a planar, s *LineSegment, eps float64) float64 {
	min := a.DistanceSquaredToPoint(s.A(), eps)
	if d := a.DistanceSquaredToPoint(s.B(), eps); d < min {
		min = d
	}
	for _, e := range a.edgeList() {
		if d := e.DistanceSquaredToSegment(s); d < min {
			min = d
		}
	}
	return min
}

// planarDistSquared measures two bounded in-plane shapes that do not
// intersect. The nearest pair is realized vertex against shape or
// edge against edge.
func planarDistSquared(a, b planar, eps float64) float64 {
	min := math.Inf(1)
	for _, v := range a.vertList() {
		if d := b.DistanceSquaredToPoint(v, eps); d < min {
			min = d
		}
	}
	for _, v := range b.vertList() {
		if d := a.DistanceSquaredToPoint(v, eps); d < min {
			min = d
		}
	}
	for _, e1 := range a.edgeList() {
		for _, e2 := range b.edgeList() {
			if d := e1.DistanceSquaredToSegment(e2); d < min {
				min = d
			}
		}
	}
	return min
}
