package overlapd

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerate is wrapped by every constructor error for inputs that
// fail to pin down a shape: coincident points, collinear triangle
// vertices, zero direction vectors, and the like.
var ErrDegenerate = errors.New("degenerate shape")

// A Shape is any geometric object the package can relate to another:
// a point, line, plane, segment, triangle, convex polygon, or
// tetrahedron. Shapes are created through an Env and carry an
// identifier from it. Dependent geometry is derived eagerly at
// construction, so queries never mutate a shape beyond the lazily
// cached values forced by Warm.
type Shape interface {
	// ID returns the creation identifier, unique within the Env.
	ID() int64

	// Bounds returns an axis-aligned box around the shape, or nil
	// for shapes of infinite extent.
	Bounds() *AABB

	// Translate moves the shape and all of its derived geometry.
	Translate(v Vector)

	// Warm forces lazily cached fields so the shape can be shared
	// across goroutines for reading.
	Warm()

	// String renders the shape for logs and errors.
	String() string

	envOf() *Env
}

func kindRank(s Shape) int {
	switch s.(type) {
	case *Point:
		return 0
	case *Line:
		return 1
	case *Plane:
		return 2
	case *LineSegment:
		return 3
	case *Triangle:
		return 4
	case *ConvexArea:
		return 5
	case *Tetrahedron:
		return 6
	default:
		panic(fmt.Sprintf("unsupported shape %T", s))
	}
}

// orderPair puts a pair of shapes into a canonical order so that each
// unordered pair is served by exactly one implementation. Ties between
// shapes of the same kind break on the creation identifier.
func orderPair(a, b Shape) (Shape, Shape) {
	if ra, rb := kindRank(a), kindRank(b); ra > rb || (ra == rb && a.ID() > b.ID()) {
		return b, a
	}
	return a, b
}

// Intersect returns the shape shared by a and b, or nil when they are
// disjoint. Containment can return one of the operands itself. The
// result is the same regardless of argument order.
//
// For a pair of tetrahedra whose interiors partially overlap, the
// shared volume has no Shape representation; Intersect panics there,
// and Tetrahedron.IntersectTetrahedron provides the boundary pieces
// instead. Intersects answers the boolean question without the panic.
func Intersect(a, b Shape, eps float64) Shape {
	a, b = orderPair(a, b)
	switch v := a.(type) {
	case *Point:
		return intersectPoint(v, b, eps)
	case *Line:
		return intersectLine(v, b, eps)
	case *Plane:
		return intersectPlane(v, b, eps)
	case *LineSegment:
		return intersectSegment(v, b, eps)
	case *Triangle:
		return intersectTriangle(v, b, eps)
	case *ConvexArea:
		return intersectArea(v, b, eps)
	case *Tetrahedron:
		return intersectTetraPair(v, b.(*Tetrahedron), eps)
	default:
		panic(fmt.Sprintf("unsupported shape %T", a))
	}
}

func intersectPoint(p *Point, b Shape, eps float64) Shape {
	x := p.Abs()
	switch v := b.(type) {
	case *Point:
		if x.ApproxEqual(v.Abs(), eps) {
			return NewPoint(p.env, x.Mid(v.Abs()))
		}
		return nil
	case *Line:
		if v.Contains(x, eps) {
			return p
		}
		return nil
	case *Plane:
		if v.Contains(x, eps) {
			return p
		}
		return nil
	case *LineSegment:
		if v.Contains(x, eps) {
			return p
		}
		return nil
	case *Triangle:
		if v.Contains(x, eps) {
			return p
		}
		return nil
	case *ConvexArea:
		if v.Contains(x, eps) {
			return p
		}
		return nil
	case *Tetrahedron:
		if v.ContainsPoint(x, eps) {
			return p
		}
		return nil
	default:
		panic(fmt.Sprintf("unsupported shape %T", b))
	}
}

func intersectLine(l *Line, b Shape, eps float64) Shape {
	switch v := b.(type) {
	case *Line:
		return l.IntersectLine(v, eps)
	case *Plane:
		return v.IntersectLine(l, eps)
	case *LineSegment:
		return v.IntersectLine(l, eps)
	case *Triangle:
		return v.IntersectLine(l, eps)
	case *ConvexArea:
		return v.IntersectLine(l, eps)
	case *Tetrahedron:
		return v.IntersectLine(l, eps)
	default:
		panic(fmt.Sprintf("unsupported shape %T", b))
	}
}

func intersectPlane(pl *Plane, b Shape, eps float64) Shape {
	switch v := b.(type) {
	case *Plane:
		return pl.IntersectPlane(v, eps)
	case *LineSegment:
		return pl.IntersectSegment(v, eps)
	case *Triangle:
		return v.IntersectPlane(pl, eps)
	case *ConvexArea:
		return v.IntersectPlane(pl, eps)
	case *Tetrahedron:
		return v.IntersectPlane(pl, eps)
	default:
		panic(fmt.Sprintf("unsupported shape %T", b))
	}
}

func intersectSegment(s *LineSegment, b Shape, eps float64) Shape {
	switch v := b.(type) {
	case *LineSegment:
		return s.IntersectSegment(v, eps)
	case *Triangle:
		return v.IntersectSegment(s, eps)
	case *ConvexArea:
		return v.IntersectSegment(s, eps)
	case *Tetrahedron:
		return v.IntersectSegment(s, eps)
	default:
		panic(fmt.Sprintf("unsupported shape %T", b))
	}
}

func intersectTriangle(t *Triangle, b Shape, eps float64) Shape {
	switch v := b.(type) {
	case *Triangle:
		return t.IntersectTriangle(v, eps)
	case *ConvexArea:
		return t.IntersectArea(v, eps)
	case *Tetrahedron:
		return v.IntersectTriangle(t, eps)
	default:
		panic(fmt.Sprintf("unsupported shape %T", b))
	}
}

func intersectArea(a *ConvexArea, b Shape, eps float64) Shape {
	switch v := b.(type) {
	case *ConvexArea:
		return a.IntersectArea(v, eps)
	case *Tetrahedron:
		return v.IntersectArea(a, eps)
	default:
		panic(fmt.Sprintf("unsupported shape %T", b))
	}
}

// Intersects reports whether the shapes share at least one point. It
// never panics: the tetrahedron pair whose overlap Intersect cannot
// express as a single shape still answers here.
func Intersects(a, b Shape, eps float64) bool {
	if ba, bb := a.Bounds(), b.Bounds(); ba != nil && bb != nil && !ba.Intersects(bb, eps) {
		return false
	}
	if ta, ok := a.(*Tetrahedron); ok {
		if tb, ok := b.(*Tetrahedron); ok {
			return ta.IntersectsTetrahedron(tb, eps)
		}
	}
	return Intersect(a, b, eps) != nil
}

// DistanceSquared returns the squared distance between the closest
// points of a and b. Intersecting shapes are at distance zero.
func DistanceSquared(a, b Shape, eps float64) float64 {
	if Intersects(a, b, eps) {
		return 0
	}
	a, b = orderPair(a, b)
	switch v := a.(type) {
	case *Point:
		return distPointSquared(v.Abs(), b, eps)
	case *Line:
		return distLineSquared(v, b, eps)
	case *Plane:
		return distPlaneSquared(v, b, eps)
	case *LineSegment:
		return distSegmentSquared(v, b, eps)
	case *Triangle:
		return distPlanarSquared(v, b, eps)
	case *ConvexArea:
		return distPlanarSquared(v, b, eps)
	case *Tetrahedron:
		return distToTetraSquared(v, b, eps)
	default:
		panic(fmt.Sprintf("unsupported shape %T", a))
	}
}

// Distance is the square root of DistanceSquared.
func Distance(a, b Shape, eps float64) float64 {
	return math.Sqrt(DistanceSquared(a, b, eps))
}

// Translate moves the shape in place.
func Translate(s Shape, v Vector) {
	s.Translate(v)
}

func distPointSquared(x Vector, b Shape, eps float64) float64 {
	switch v := b.(type) {
	case *Point:
		return x.DistSquared(v.Abs())
	case *Line:
		return v.DistanceSquaredToPoint(x)
	case *Plane:
		d := v.SignedDistance(x)
		return d * d
	case *LineSegment:
		return v.DistanceSquaredToPoint(x)
	case *Triangle:
		return v.DistanceSquaredToPoint(x, eps)
	case *ConvexArea:
		return v.DistanceSquaredToPoint(x, eps)
	case *Tetrahedron:
		return v.DistanceSquaredToPoint(x, eps)
	default:
		panic(fmt.Sprintf("unsupported shape %T", b))
	}
}

func distLineSquared(l *Line, b Shape, eps float64) float64 {
	switch v := b.(type) {
	case *Line:
		return l.DistanceSquaredToLine(v, eps)
	case *Plane:
		if math.Abs(v.Normal().Dot(l.Dir().Normalize())) > eps {
			return 0
		}
		d := v.SignedDistance(l.Base())
		return d * d
	case *LineSegment:
		return v.DistanceSquaredToLine(l, eps)
	case *Triangle:
		return planarDistToLine(v, l, eps)
	case *ConvexArea:
		return planarDistToLine(v, l, eps)
	case *Tetrahedron:
		return distToTetraSquared(v, l, eps)
	default:
		panic(fmt.Sprintf("unsupported shape %T", b))
	}
}

func distPlaneSquared(pl *Plane, b Shape, eps float64) float64 {
	switch v := b.(type) {
	case *Plane:
		if !pl.Normal().IsScalarMultiple(v.Normal(), eps) {
			return 0
		}
		d := pl.SignedDistance(v.Base())
		return d * d
	case *LineSegment:
		if !pl.SameSide(v.A(), v.B(), eps) {
			return 0
		}
		return planeToVertsSquared(pl, []Vector{v.A(), v.B()}, eps)
	case *Triangle:
		return planeToVertsSquared(pl, v.vertList(), eps)
	case *ConvexArea:
		return planeToVertsSquared(pl, v.vertList(), eps)
	case *Tetrahedron:
		return planeToVertsSquared(pl, v.vertList(), eps)
	default:
		panic(fmt.Sprintf("unsupported shape %T", b))
	}
}

// planeToVertsSquared is the squared distance from a plane to the
// convex span of verts: zero when the plane passes through the span,
// otherwise the nearest vertex distance.
func planeToVertsSquared(pl *Plane, verts []Vector, eps float64) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range verts {
		d := pl.SignedDistance(v)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	if lo <= eps && hi >= -eps {
		return 0
	}
	m := math.Min(math.Abs(lo), math.Abs(hi))
	return m * m
}

func distSegmentSquared(s *LineSegment, b Shape, eps float64) float64 {
	switch v := b.(type) {
	case *LineSegment:
		return s.DistanceSquaredToSegment(v)
	case *Triangle:
		return planarDistToSegment(v, s, eps)
	case *ConvexArea:
		return planarDistToSegment(v, s, eps)
	case *Tetrahedron:
		return distToTetraSquared(v, s, eps)
	default:
		panic(fmt.Sprintf("unsupported shape %T", b))
	}
}

func distPlanarSquared(a planar, b Shape, eps float64) float64 {
	switch v := b.(type) {
	case *Triangle:
		return planarDistSquared(a, v, eps)
	case *ConvexArea:
		return planarDistSquared(a, v, eps)
	case *Tetrahedron:
		return distToTetraSquared(v, a, eps)
	default:
		panic(fmt.Sprintf("unsupported shape %T", b))
	}
}

// distToTetraSquared reduces distance to a tetrahedron to distances
// against its faces; a shape outside the volume is closest to the
// boundary. Degenerate tetrahedra are measured as their flat hull.
func distToTetraSquared(te *Tetrahedron, o Shape, eps float64) float64 {
	if te.Degenerate() {
		return DistanceSquared(te.hull(), o, eps)
	}
	min := math.Inf(1)
	for _, f := range te.Faces() {
		if d := DistanceSquared(f, o, eps); d < min {
			min = d
		}
	}
	return min
}

// sameShape reports whether two shapes are the same kind of object in
// the same place, within eps. Winding and vertex order are ignored.
func sameShape(a, b Shape, eps float64) bool {
	switch v := a.(type) {
	case nil:
		return b == nil
	case *Point:
		o, ok := b.(*Point)
		return ok && v.Abs().ApproxEqual(o.Abs(), eps)
	case *Line:
		o, ok := b.(*Line)
		return ok && v.Dir().IsScalarMultiple(o.Dir(), eps) &&
			v.Contains(o.Base(), eps) && o.Contains(v.Base(), eps)
	case *Plane:
		o, ok := b.(*Plane)
		return ok && v.Coincident(o, eps)
	case *LineSegment:
		o, ok := b.(*LineSegment)
		return ok && matchedPoints(shapePoints(v), shapePoints(o), eps)
	case *Triangle:
		o, ok := b.(*Triangle)
		return ok && matchedPoints(shapePoints(v), shapePoints(o), eps)
	case *ConvexArea:
		o, ok := b.(*ConvexArea)
		return ok && matchedPoints(shapePoints(v), shapePoints(o), eps)
	case *Tetrahedron:
		o, ok := b.(*Tetrahedron)
		return ok && matchedPoints(v.vertList(), o.vertList(), eps)
	default:
		panic(fmt.Sprintf("unsupported shape %T", a))
	}
}

// matchedPoints pairs every point of a with a distinct point of b
// within eps.
func matchedPoints(a, b []Vector, eps float64) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, p := range a {
		found := false
		for i, q := range b {
			if !used[i] && p.ApproxEqual(q, eps) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
