package overlapd

import (
	"fmt"
	"math"
)

// A LineSegment is the part of a line between two endpoints. The
// perpendicular planes through the endpoints are derived at
// construction; membership in the segment's extent is a same-side
// test against those two planes.
type LineSegment struct {
	env *Env
	id  int64
	off *Offset
	a   Vector
	b   Vector

	line *Line
	capA *Plane
	capB *Plane

	bounds *AABB
}

// NewLineSegment creates the segment between two points. It fails if
// the points are within eps of each other.
func NewLineSegment(env *Env, a, b Vector, eps float64) (*LineSegment, error) {
	if a.ApproxEqual(b, eps) {
		return nil, fmt.Errorf("%w: segment with coincident endpoints %v and %v", ErrDegenerate, a, b)
	}
	return newSegment(env, &Offset{}, a, b), nil
}

// newSegment expects endpoints that are strictly distinct. The line
// and endpoint planes share the segment's offset, so translating any
// of them moves the whole group.
func newSegment(env *Env, off *Offset, a, b Vector) *LineSegment {
	dir := b.Sub(a)
	return &LineSegment{
		env:  env,
		id:   env.nextID(),
		off:  off,
		a:    a,
		b:    b,
		line: newLine(env, off, a, dir, false),
		capA: newPlane(env, off, a, dir.Normalize()),
		capB: newPlane(env, off, b, dir.Normalize()),
	}
}

func newSegmentAbs(env *Env, a, b Vector) *LineSegment {
	return newSegment(env, &Offset{}, a, b)
}

func (s *LineSegment) ID() int64 {
	return s.id
}

// A returns the absolute position of the first endpoint.
func (s *LineSegment) A() Vector {
	return s.off.at(s.a)
}

// B returns the absolute position of the second endpoint.
func (s *LineSegment) B() Vector {
	return s.off.at(s.b)
}

func (s *LineSegment) Dir() Vector {
	return s.b.Sub(s.a)
}

// Line returns the infinite line the segment lies on. At(0) is the
// first endpoint and At(1) is the second.
func (s *LineSegment) Line() *Line {
	return s.line
}

func (s *LineSegment) Length() float64 {
	return s.Dir().Norm()
}

func (s *LineSegment) LengthSquared() float64 {
	return s.Dir().NormSquared()
}

func (s *LineSegment) Mid() Vector {
	return s.A().Mid(s.B())
}

// WithinBounds checks that x lies between the two endpoint planes,
// without requiring it to be on the segment's line.
func (s *LineSegment) WithinBounds(x Vector, eps float64) bool {
	return s.capA.SameSide(x, s.B(), eps) && s.capB.SameSide(x, s.A(), eps)
}

func (s *LineSegment) Contains(x Vector, eps float64) bool {
	return s.line.Contains(x, eps) && s.WithinBounds(x, eps)
}

// IntersectLine intersects the segment with an infinite line: the
// whole segment when the line is coincident, the crossing point when
// it falls within the segment, and nothing otherwise.
func (s *LineSegment) IntersectLine(l *Line, eps float64) Shape {
	switch v := s.line.IntersectLine(l, eps).(type) {
	case nil:
		return nil
	case *Line:
		return s
	case *Point:
		if s.WithinBounds(v.Abs(), eps) {
			return v
		}
		return nil
	default:
		panic("line intersection must be nothing, a point, or the line")
	}
}

// IntersectSegment intersects two segments. Collinear segments reduce
// to a one-dimensional overlap; crossing segments to a point inside
// both extents; anything else to nothing.
func (s *LineSegment) IntersectSegment(o *LineSegment, eps float64) Shape {
	switch v := s.line.IntersectLine(o.line, eps).(type) {
	case nil:
		return nil
	case *Line:
		return s.overlapCollinear(o, eps)
	case *Point:
		if s.WithinBounds(v.Abs(), eps) && o.WithinBounds(v.Abs(), eps) {
			return v
		}
		return nil
	default:
		panic("line intersection must be nothing, a point, or the line")
	}
}

// IntersectPlane intersects the segment with a plane.
func (s *LineSegment) IntersectPlane(p *Plane, eps float64) Shape {
	return p.IntersectSegment(s, eps)
}

// overlapCollinear selects the shared sub-range of two segments
// already known to lie on one line: every endpoint inside the other
// segment's extent is part of the overlap, and the surviving unique
// points span it.
func (s *LineSegment) overlapCollinear(o *LineSegment, eps float64) Shape {
	var pts []Vector
	for _, x := range [2]Vector{s.A(), s.B()} {
		if o.WithinBounds(x, eps) {
			pts = append(pts, x)
		}
	}
	for _, x := range [2]Vector{o.A(), o.B()} {
		if s.WithinBounds(x, eps) {
			pts = append(pts, x)
		}
	}
	pts = dedupePoints(pts, eps)
	switch len(pts) {
	case 0:
		return nil
	case 1:
		return NewPoint(s.env, pts[0])
	case 2:
		return newSegmentAbs(s.env, pts[0], pts[1])
	default:
		a, b := farthestPair(pts)
		return newSegmentAbs(s.env, a, b)
	}
}

func (s *LineSegment) DistanceSquaredToPoint(x Vector) float64 {
	t := clamp(s.line.closestParam(x), 0, 1)
	return x.DistSquared(s.line.At(t))
}

func (s *LineSegment) DistanceToPoint(x Vector) float64 {
	return math.Sqrt(s.DistanceSquaredToPoint(x))
}

// DistanceSquaredToSegment computes the minimum distance between two
// segments by clamping the closest approach of their lines to both
// extents.
func (s *LineSegment) DistanceSquaredToSegment(o *LineSegment) float64 {
	d1 := s.Dir()
	d2 := o.Dir()
	r := s.A().Sub(o.A())
	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)
	c := d1.Dot(r)
	b := d1.Dot(d2)
	denom := a*e - b*b

	var t float64
	if denom != 0 {
		t = clamp((b*f-c*e)/denom, 0, 1)
	}
	u := (b*t + f) / e
	if u < 0 {
		u = 0
		t = clamp(-c/a, 0, 1)
	} else if u > 1 {
		u = 1
		t = clamp((b-c)/a, 0, 1)
	}
	p1 := s.A().Add(d1.Scale(t))
	p2 := o.A().Add(d2.Scale(u))
	return p1.DistSquared(p2)
}

// DistanceSquaredToLine computes the minimum distance from the
// segment to an infinite line.
func (s *LineSegment) DistanceSquaredToLine(l *Line, eps float64) float64 {
	d1 := s.Dir()
	d2 := l.Dir()
	denom := d1.Dot(d1)*d2.Dot(d2) - d1.Dot(d2)*d1.Dot(d2)
	if denom == 0 || d1.IsScalarMultiple(d2, eps) {
		return l.DistanceSquaredToPoint(s.A())
	}
	w0 := s.A().Sub(l.Base())
	b := d1.Dot(d2)
	d := d1.Dot(w0)
	e := d2.Dot(w0)
	t := clamp((b*e-d2.Dot(d2)*d)/denom, 0, 1)
	return l.DistanceSquaredToPoint(s.line.At(t))
}

func (s *LineSegment) Translate(v Vector) {
	s.off.add(v)
}

func (s *LineSegment) Bounds() *AABB {
	if s.bounds == nil {
		s.bounds = BoundsOf(s.a, s.b)
	}
	return s.bounds.shift(s.off.Value())
}

// Warm forces lazily computed fields so the segment can be shared
// across goroutines for reading.
func (s *LineSegment) Warm() {
	s.Bounds()
}

func (s *LineSegment) String() string {
	return fmt.Sprintf("segment %v to %v", s.A(), s.B())
}

func (s *LineSegment) envOf() *Env {
	return s.env
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	} else if x > hi {
		return hi
	}
	return x
}
