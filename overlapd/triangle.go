package overlapd

import (
	"fmt"
	"math"
)

// A Triangle is the closed planar region between three non-collinear
// vertices. Its plane, edges, and the perpendicular plane through
// each edge are derived at construction and share the triangle's
// offset. The edge planes make containment a chain of three same-side
// tests: a point on the triangle's plane is inside exactly when every
// edge plane puts it with the centroid.
type Triangle struct {
	env *Env
	id  int64
	off *Offset
	p   Vector
	q   Vector
	r   Vector

	plane      *Plane
	edges      [3]*LineSegment
	edgePlanes [3]*Plane

	bounds *AABB
}

// NewTriangle creates the triangle with vertices p, q, r. It fails if
// any two vertices are within eps of each other or the three are
// collinear within eps.
func NewTriangle(env *Env, p, q, r Vector, eps float64) (*Triangle, error) {
	if p.ApproxEqual(q, eps) || q.ApproxEqual(r, eps) || p.ApproxEqual(r, eps) {
		return nil, fmt.Errorf("%w: triangle with coincident vertices %v, %v, %v", ErrDegenerate, p, q, r)
	}
	if q.Sub(p).IsScalarMultiple(r.Sub(p), eps) {
		return nil, fmt.Errorf("%w: triangle with collinear vertices %v, %v, %v", ErrDegenerate, p, q, r)
	}
	return newTriangleAbs(env, p, q, r), nil
}

// newTriangleAbs expects vertices that are strictly distinct and not
// collinear.
func newTriangleAbs(env *Env, p, q, r Vector) *Triangle {
	return newTriangle(env, &Offset{}, p, q, r)
}

// newTriangle builds a triangle whose derived geometry shares the
// given offset, so enclosing shapes can translate their faces along
// with themselves.
func newTriangle(env *Env, off *Offset, p, q, r Vector) *Triangle {
	normal := q.Sub(p).Cross(r.Sub(p)).Normalize()
	t := &Triangle{
		env:   env,
		id:    env.nextID(),
		off:   off,
		p:     p,
		q:     q,
		r:     r,
		plane: newPlane(env, off, p, normal),
	}
	verts := [3]Vector{p, q, r}
	for i := range verts {
		a, b := verts[i], verts[(i+1)%3]
		t.edges[i] = newSegment(env, off, a, b)
		t.edgePlanes[i] = newPlane(env, off, a, b.Sub(a).Cross(normal).Normalize())
	}
	return t
}

func (t *Triangle) ID() int64 {
	return t.id
}

// Vertices returns the absolute vertex positions in construction
// order.
func (t *Triangle) Vertices() [3]Vector {
	return [3]Vector{t.off.at(t.p), t.off.at(t.q), t.off.at(t.r)}
}

// Plane returns the plane the triangle lies on. Its normal is
// (q-p) x (r-p), normalized.
func (t *Triangle) Plane() *Plane {
	return t.plane
}

// Edges returns the segments pq, qr, and rp.
func (t *Triangle) Edges() [3]*LineSegment {
	return t.edges
}

func (t *Triangle) vertList() []Vector {
	v := t.Vertices()
	return v[:]
}

func (t *Triangle) edgeList() []*LineSegment {
	return t.edges[:]
}

func (t *Triangle) planeOf() *Plane {
	return t.plane
}

func (t *Triangle) Normal() Vector {
	return t.plane.Normal()
}

func (t *Triangle) Centroid() Vector {
	v := t.Vertices()
	return v[0].Add(v[1]).Add(v[2]).Scale(1.0 / 3)
}

func (t *Triangle) Area() float64 {
	v := t.Vertices()
	return v[1].Sub(v[0]).Cross(v[2].Sub(v[0])).Norm() / 2
}

// Aligned checks that a point already known to lie on the triangle's
// plane falls inside its area, edges included.
func (t *Triangle) Aligned(x Vector, eps float64) bool {
	centroid := t.Centroid()
	for _, ep := range t.edgePlanes {
		if !ep.SameSide(x, centroid, eps) {
			return false
		}
	}
	return true
}

// AlignedStrict is Aligned excluding points within eps of an edge.
func (t *Triangle) AlignedStrict(x Vector, eps float64) bool {
	centroid := t.Centroid()
	for _, ep := range t.edgePlanes {
		if !ep.SameSideStrict(x, centroid, eps) {
			return false
		}
	}
	return true
}

// Contains checks full containment of a point: on the triangle's
// plane and inside its area.
func (t *Triangle) Contains(x Vector, eps float64) bool {
	if !t.Bounds().Contains(x, eps) {
		return false
	}
	return t.plane.Contains(x, eps) && t.Aligned(x, eps)
}

// IntersectLine intersects the triangle with an infinite line. A line
// crossing the plane yields its crossing point when that point is
// inside the triangle; a line in the plane yields whatever its edge
// crossings span.
func (t *Triangle) IntersectLine(l *Line, eps float64) Shape {
	switch v := t.plane.IntersectLine(l, eps).(type) {
	case nil:
		return nil
	case *Point:
		if t.Aligned(v.Abs(), eps) {
			return v
		}
		return nil
	case *Line:
		var pts []Vector
		for _, e := range t.edges {
			pts = append(pts, shapePoints(e.IntersectLine(l, eps))...)
		}
		return mergeOnLine(t.env, pts, eps)
	default:
		panic("plane intersection must be nothing, a point, or the line")
	}
}

// IntersectSegment intersects the triangle with a segment.
func (t *Triangle) IntersectSegment(s *LineSegment, eps float64) Shape {
	switch v := t.plane.IntersectSegment(s, eps).(type) {
	case nil:
		return nil
	case *Point:
		if t.Aligned(v.Abs(), eps) {
			return v
		}
		return nil
	case *LineSegment:
		switch w := t.IntersectLine(s.Line(), eps).(type) {
		case nil:
			return nil
		case *Point:
			if s.WithinBounds(w.Abs(), eps) {
				return w
			}
			return nil
		case *LineSegment:
			return w.overlapCollinear(s, eps)
		default:
			panic("in-plane line intersection must be nothing, a point, or a segment")
		}
	default:
		panic("plane intersection must be nothing, a point, or the segment")
	}
}

// IntersectPlane intersects the triangle with a plane: the triangle
// itself when coplanar, otherwise whatever its edge crossings span on
// the planes' common line.
func (t *Triangle) IntersectPlane(pl *Plane, eps float64) Shape {
	if t.plane.Coincident(pl, eps) {
		return t
	}
	var pts []Vector
	for _, e := range t.edges {
		pts = append(pts, shapePoints(pl.IntersectSegment(e, eps))...)
	}
	return mergeOnLine(t.env, pts, eps)
}

// IntersectTriangle intersects two triangles. Coplanar triangles
// reduce to an area overlap in their shared plane; any other pair
// reduces to the overlap of two collinear segments on the line where
// their planes cross.
func (t *Triangle) IntersectTriangle(o *Triangle, eps float64) Shape {
	return planarIntersect(t, o, eps)
}

// IntersectArea intersects the triangle with a convex polygon.
func (t *Triangle) IntersectArea(o *ConvexArea, eps float64) Shape {
	return planarIntersect(t, o, eps)
}

// DistanceSquaredToPoint is zero for contained points, the plane
// distance when the point projects inside the triangle, and the
// nearest edge distance otherwise.
func (t *Triangle) DistanceSquaredToPoint(x Vector, eps float64) float64 {
	signed := t.plane.SignedDistance(x)
	proj := x.Sub(t.Normal().Scale(signed))
	if t.Aligned(proj, eps) {
		if math.Abs(signed) <= eps {
			return 0
		}
		return signed * signed
	}
	min := math.Inf(1)
	for _, e := range t.edges {
		if d := e.DistanceSquaredToPoint(x); d < min {
			min = d
		}
	}
	return min
}

func (t *Triangle) Translate(v Vector) {
	t.off.add(v)
}

func (t *Triangle) Bounds() *AABB {
	if t.bounds == nil {
		t.bounds = BoundsOf(t.p, t.q, t.r)
	}
	return t.bounds.shift(t.off.Value())
}

// Warm forces lazily computed fields so the triangle can be shared
// across goroutines for reading.
func (t *Triangle) Warm() {
	t.Bounds()
}

func (t *Triangle) String() string {
	v := t.Vertices()
	return fmt.Sprintf("triangle %v %v %v", v[0], v[1], v[2])
}

func (t *Triangle) envOf() *Env {
	return t.env
}
