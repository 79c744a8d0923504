package overlapd

import (
	"fmt"
	"math"
)

// A Plane is an infinite locus through a point with a normal. The
// normal is stored unit-length, so signed distances computed against
// it are true distances and eps applies to them directly. The normal
// direction fixes which side of the plane is positive.
type Plane struct {
	env    *Env
	id     int64
	off    *Offset
	p      Vector
	normal Vector
}

// NewPlane creates the plane through a point with the given normal.
// It fails if the normal magnitude is at most eps.
func NewPlane(env *Env, p, normal Vector, eps float64) (*Plane, error) {
	if normal.IsZero(eps) {
		return nil, fmt.Errorf("%w: plane with zero normal at %v", ErrDegenerate, p)
	}
	return newPlane(env, &Offset{}, p, normal.Normalize()), nil
}

// NewPlaneFromPoints creates the plane through three points, with the
// normal along (b-a) x (c-a). It fails if any two points coincide or
// the three are collinear within eps.
func NewPlaneFromPoints(env *Env, a, b, c Vector, eps float64) (*Plane, error) {
	if a.ApproxEqual(b, eps) || b.ApproxEqual(c, eps) || a.ApproxEqual(c, eps) {
		return nil, fmt.Errorf("%w: plane defined by coincident points", ErrDegenerate)
	}
	ab, ac := b.Sub(a), c.Sub(a)
	if ab.IsScalarMultiple(ac, eps) {
		return nil, fmt.Errorf("%w: plane defined by collinear points %v, %v, %v", ErrDegenerate, a, b, c)
	}
	return newPlane(env, &Offset{}, a, ab.Cross(ac).Normalize()), nil
}

// newPlane expects a unit-length normal.
func newPlane(env *Env, off *Offset, p, normal Vector) *Plane {
	return &Plane{env: env, id: env.nextID(), off: off, p: p, normal: normal}
}

func (p *Plane) ID() int64 {
	return p.id
}

// Base returns the absolute position of the defining point.
func (p *Plane) Base() Vector {
	return p.off.at(p.p)
}

func (p *Plane) Normal() Vector {
	return p.normal
}

// SignedDistance returns the distance from x to the plane, positive
// on the side the normal points toward.
func (p *Plane) SignedDistance(x Vector) float64 {
	return p.normal.Dot(x.Sub(p.Base()))
}

func (p *Plane) Distance(x Vector) float64 {
	return math.Abs(p.SignedDistance(x))
}

func (p *Plane) Contains(x Vector, eps float64) bool {
	return p.Distance(x) <= eps
}

// SameSide checks that a and b are on the same side of the plane.
// A point within eps of the plane counts as being on both sides, so
// the test only fails when the points are strictly and separately
// off-plane. This is the predicate underlying every containment and
// clipping decision in the package.
func (p *Plane) SameSide(a, b Vector, eps float64) bool {
	da := p.SignedDistance(a)
	db := p.SignedDistance(b)
	if math.Abs(da) <= eps || math.Abs(db) <= eps {
		return true
	}
	return (da > 0) == (db > 0)
}

// SameSideStrict is SameSide excluding the on-plane band: both points
// must be strictly beyond eps of the plane, on the same side.
func (p *Plane) SameSideStrict(a, b Vector, eps float64) bool {
	da := p.SignedDistance(a)
	db := p.SignedDistance(b)
	if math.Abs(da) <= eps || math.Abs(db) <= eps {
		return false
	}
	return (da > 0) == (db > 0)
}

// Coincident checks that o describes the same plane, ignoring normal
// orientation.
func (p *Plane) Coincident(o *Plane, eps float64) bool {
	return p.normal.IsScalarMultiple(o.normal, eps) && p.Contains(o.Base(), eps)
}

// IntersectLine intersects the plane with an infinite line. A line
// parallel within eps yields the line itself when it lies on the
// plane and nothing otherwise; any other line yields its crossing
// point.
func (p *Plane) IntersectLine(l *Line, eps float64) Shape {
	dirUnit := l.Dir().Normalize()
	if math.Abs(p.normal.Dot(dirUnit)) <= eps {
		if p.Contains(l.Base(), eps) {
			return l
		}
		return nil
	}
	t := p.normal.Dot(p.Base().Sub(l.Base())) / p.normal.Dot(l.Dir())
	return NewPoint(p.env, l.At(t))
}

// IntersectPlane intersects two planes: a line unless they are
// parallel, in which case the receiver when coincident and nothing
// otherwise.
func (p *Plane) IntersectPlane(o *Plane, eps float64) Shape {
	if p.normal.IsScalarMultiple(o.normal, eps) {
		if p.Contains(o.Base(), eps) {
			return p
		}
		return nil
	}
	u := p.normal.Cross(o.normal)
	h1 := p.normal.Dot(p.Base())
	h2 := o.normal.Dot(o.Base())
	x0 := o.normal.Scale(h1).Sub(p.normal.Scale(h2)).Cross(u).Scale(1 / u.NormSquared())
	return newLine(p.env, &Offset{}, x0, u, true)
}

// IntersectSegment restricts IntersectLine to the segment's bounds.
func (p *Plane) IntersectSegment(s *LineSegment, eps float64) Shape {
	switch v := p.IntersectLine(s.Line(), eps).(type) {
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

func (p *Plane) Translate(v Vector) {
	p.off.add(v)
}

// Bounds returns nil since a plane is unbounded.
func (p *Plane) Bounds() *AABB {
	return nil
}

func (p *Plane) Warm() {}

func (p *Plane) String() string {
	return fmt.Sprintf("plane through %v normal %v", p.Base(), p.normal)
}

func (p *Plane) envOf() *Env {
	return p.env
}
