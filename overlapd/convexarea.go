package overlapd

import (
	"fmt"
	"math"
	"strings"
)

// A ConvexArea is the closed planar region bounded by four or more
// vertices in convex position. Vertices are kept in counterclockwise
// order around the normal, and like a triangle the area derives its
// plane, edges, and perpendicular edge planes at construction.
// Intersections involving triangles produce these when the overlap
// has more than three corners.
type ConvexArea struct {
	env *Env
	id  int64
	off *Offset
	rel []Vector

	plane      *Plane
	edges      []*LineSegment
	edgePlanes []*Plane

	bounds *AABB
}

// NewConvexArea creates the convex polygon spanned by pts. The points
// may be listed in any order; they must be coplanar within eps and at
// least four of them must survive as corners of their convex hull.
func NewConvexArea(env *Env, pts []Vector, eps float64) (*ConvexArea, error) {
	deduped := dedupePoints(pts, eps)
	if len(deduped) < 4 {
		return nil, fmt.Errorf("%w: convex area with %d distinct vertices", ErrDegenerate, len(deduped))
	}
	if collinearSpread(deduped, eps) {
		return nil, fmt.Errorf("%w: convex area with collinear vertices", ErrDegenerate)
	}
	normal, ok := coplanarNormal(deduped, eps)
	if !ok {
		return nil, fmt.Errorf("%w: convex area vertices are not coplanar", ErrDegenerate)
	}
	ordered := dropFoldedVertices(orderByAngle(deduped, normal), normal, eps)
	if len(ordered) < 4 {
		return nil, fmt.Errorf("%w: fewer than four vertices in convex position", ErrDegenerate)
	}
	return newArea(env, ordered, normal), nil
}

// newArea expects at least four distinct vertices already in
// counterclockwise convex order around the unit normal.
func newArea(env *Env, verts []Vector, normal Vector) *ConvexArea {
	if len(verts) < 4 {
		panic("convex area requires at least four vertices")
	}
	off := &Offset{}
	a := &ConvexArea{
		env:   env,
		id:    env.nextID(),
		off:   off,
		rel:   append([]Vector{}, verts...),
		plane: newPlane(env, off, verts[0], normal),
	}
	a.edges = make([]*LineSegment, len(verts))
	a.edgePlanes = make([]*Plane, len(verts))
	for i := range verts {
		p, q := verts[i], verts[(i+1)%len(verts)]
		a.edges[i] = newSegment(env, off, p, q)
		a.edgePlanes[i] = newPlane(env, off, p, q.Sub(p).Cross(normal).Normalize())
	}
	return a
}

func (a *ConvexArea) ID() int64 {
	return a.id
}

// Vertices returns the absolute vertex positions in boundary order.
func (a *ConvexArea) Vertices() []Vector {
	res := make([]Vector, len(a.rel))
	for i, v := range a.rel {
		res[i] = a.off.at(v)
	}
	return res
}

// Plane returns the plane the area lies on.
func (a *ConvexArea) Plane() *Plane {
	return a.plane
}

// Edges returns the boundary segments in order, each from one vertex
// to the next.
func (a *ConvexArea) Edges() []*LineSegment {
	return a.edges
}

func (a *ConvexArea) vertList() []Vector {
	return a.Vertices()
}

func (a *ConvexArea) edgeList() []*LineSegment {
	return a.edges
}

func (a *ConvexArea) planeOf() *Plane {
	return a.plane
}

func (a *ConvexArea) Normal() Vector {
	return a.plane.Normal()
}

// Centroid returns the vertex average, an interior point of the area.
func (a *ConvexArea) Centroid() Vector {
	sum := Origin
	for _, v := range a.Vertices() {
		sum = sum.Add(v)
	}
	return sum.Scale(1 / float64(len(a.rel)))
}

func (a *ConvexArea) Area() float64 {
	v := a.Vertices()
	sum := Origin
	for i := 1; i < len(v)-1; i++ {
		sum = sum.Add(v[i].Sub(v[0]).Cross(v[i+1].Sub(v[0])))
	}
	return sum.Norm() / 2
}

// Aligned checks that a point already known to lie on the area's
// plane falls inside its boundary, edges included.
func (a *ConvexArea) Aligned(x Vector, eps float64) bool {
	centroid := a.Centroid()
	for _, ep := range a.edgePlanes {
		if !ep.SameSide(x, centroid, eps) {
			return false
		}
	}
	return true
}

// AlignedStrict is Aligned excluding points within eps of an edge.
func (a *ConvexArea) AlignedStrict(x Vector, eps float64) bool {
	centroid := a.Centroid()
	for _, ep := range a.edgePlanes {
		if !ep.SameSideStrict(x, centroid, eps) {
			return false
		}
	}
	return true
}

// Contains checks full containment of a point: on the area's plane
// and inside its boundary.
func (a *ConvexArea) Contains(x Vector, eps float64) bool {
	if !a.Bounds().Contains(x, eps) {
		return false
	}
	return a.plane.Contains(x, eps) && a.Aligned(x, eps)
}

// IntersectLine intersects the area with an infinite line.
func (a *ConvexArea) IntersectLine(l *Line, eps float64) Shape {
	switch v := a.plane.IntersectLine(l, eps).(type) {
	case nil:
		return nil
	case *Point:
		if a.Aligned(v.Abs(), eps) {
			return v
		}
		return nil
	case *Line:
		var pts []Vector
		for _, e := range a.edges {
			pts = append(pts, shapePoints(e.IntersectLine(l, eps))...)
		}
		return mergeOnLine(a.env, pts, eps)
	default:
		panic("plane intersection must be nothing, a point, or the line")
	}
}

// IntersectSegment intersects the area with a segment.
func (a *ConvexArea) IntersectSegment(s *LineSegment, eps float64) Shape {
	switch v := a.plane.IntersectSegment(s, eps).(type) {
	case nil:
		return nil
	case *Point:
		if a.Aligned(v.Abs(), eps) {
			return v
		}
		return nil
	case *LineSegment:
		switch w := a.IntersectLine(s.Line(), eps).(type) {
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

// IntersectPlane intersects the area with a plane: the area itself
// when coplanar, otherwise whatever its edge crossings span on the
// planes' common line.
func (a *ConvexArea) IntersectPlane(pl *Plane, eps float64) Shape {
	if a.plane.Coincident(pl, eps) {
		return a
	}
	var pts []Vector
	for _, e := range a.edges {
		pts = append(pts, shapePoints(pl.IntersectSegment(e, eps))...)
	}
	return mergeOnLine(a.env, pts, eps)
}

// IntersectTriangle intersects the area with a triangle.
func (a *ConvexArea) IntersectTriangle(o *Triangle, eps float64) Shape {
	return planarIntersect(a, o, eps)
}

// IntersectArea intersects two convex polygons.
func (a *ConvexArea) IntersectArea(o *ConvexArea, eps float64) Shape {
	return planarIntersect(a, o, eps)
}

// DistanceSquaredToPoint is zero for contained points, the plane
// distance when the point projects inside the area, and the nearest
// edge distance otherwise.
func (a *ConvexArea) DistanceSquaredToPoint(x Vector, eps float64) float64 {
	signed := a.plane.SignedDistance(x)
	proj := x.Sub(a.Normal().Scale(signed))
	if a.Aligned(proj, eps) {
		if math.Abs(signed) <= eps {
			return 0
		}
		return signed * signed
	}
	min := math.Inf(1)
	for _, e := range a.edges {
		if d := e.DistanceSquaredToPoint(x); d < min {
			min = d
		}
	}
	return min
}

func (a *ConvexArea) Translate(v Vector) {
	a.off.add(v)
}

func (a *ConvexArea) Bounds() *AABB {
	if a.bounds == nil {
		a.bounds = BoundsOf(a.rel...)
	}
	return a.bounds.shift(a.off.Value())
}

// Warm forces lazily computed fields so the area can be shared across
// goroutines for reading.
func (a *ConvexArea) Warm() {
	a.Bounds()
}

func (a *ConvexArea) String() string {
	verts := a.Vertices()
	parts := make([]string, len(verts))
	for i, v := range verts {
		parts[i] = v.String()
	}
	return "convex area " + strings.Join(parts, " ")
}

func (a *ConvexArea) envOf() *Env {
	return a.env
}
