package overlapd

import (
	"fmt"
	"math"
)

// A Line is an infinite locus through a base point along a direction.
// The direction is kept exactly as supplied and is not normalized.
type Line struct {
	env *Env
	id  int64
	off *Offset
	p   Vector
	dir Vector

	// definedByVector records whether the caller supplied a direction
	// or a second point, since the derived quantity carries rounding
	// error the supplied one does not.
	definedByVector bool
}

// NewLine creates the line through two points. It fails if the points
// are within eps of each other.
func NewLine(env *Env, p, q Vector, eps float64) (*Line, error) {
	if p.ApproxEqual(q, eps) {
		return nil, fmt.Errorf("%w: line defined by coincident points %v and %v", ErrDegenerate, p, q)
	}
	return newLine(env, &Offset{}, p, q.Sub(p), false), nil
}

// NewLineDir creates the line through a point along a direction. It
// fails if the direction magnitude is at most eps.
func NewLineDir(env *Env, p, dir Vector, eps float64) (*Line, error) {
	if dir.IsZero(eps) {
		return nil, fmt.Errorf("%w: line with zero direction at %v", ErrDegenerate, p)
	}
	return newLine(env, &Offset{}, p, dir, true), nil
}

func newLine(env *Env, off *Offset, p, dir Vector, definedByVector bool) *Line {
	return &Line{
		env:             env,
		id:              env.nextID(),
		off:             off,
		p:               p,
		dir:             dir,
		definedByVector: definedByVector,
	}
}

func (l *Line) ID() int64 {
	return l.id
}

// Base returns the absolute position of the defining point.
func (l *Line) Base() Vector {
	return l.off.at(l.p)
}

func (l *Line) Dir() Vector {
	return l.dir
}

func (l *Line) DefinedByVector() bool {
	return l.definedByVector
}

// At returns the point base + t*direction.
func (l *Line) At(t float64) Vector {
	return l.Base().Add(l.dir.Scale(t))
}

// closestParam solves for the t minimizing the distance from At(t)
// to x.
func (l *Line) closestParam(x Vector) float64 {
	return l.dir.Dot(x.Sub(l.Base())) / l.dir.NormSquared()
}

// Closest returns the point on the line nearest to x.
func (l *Line) Closest(x Vector) Vector {
	return l.At(l.closestParam(x))
}

func (l *Line) Contains(x Vector, eps float64) bool {
	return l.DistanceToPoint(x) <= eps
}

func (l *Line) DistanceSquaredToPoint(x Vector) float64 {
	d := l.dir
	return d.Cross(x.Sub(l.Base())).NormSquared() / d.NormSquared()
}

func (l *Line) DistanceToPoint(x Vector) float64 {
	d := l.dir
	return d.Cross(x.Sub(l.Base())).Norm() / d.Norm()
}

// DistanceToLine computes the minimum distance between two infinite
// lines, falling back to point-to-line distance when they are
// parallel within eps.
func (l *Line) DistanceToLine(o *Line, eps float64) float64 {
	cross := l.dir.Cross(o.dir)
	if l.dir.IsScalarMultiple(o.dir, eps) || cross.NormSquared() == 0 {
		return l.DistanceToPoint(o.Base())
	}
	sep := o.Base().Sub(l.Base())
	return math.Abs(sep.Dot(cross)) / cross.Norm()
}

func (l *Line) DistanceSquaredToLine(o *Line, eps float64) float64 {
	d := l.DistanceToLine(o, eps)
	return d * d
}

// IntersectLine intersects two infinite lines. Parallel lines yield
// the receiver when coincident within eps and nothing otherwise.
// Non-parallel lines yield the crossing point when their nearest
// points coincide within eps, and nothing when the lines are skew.
func (l *Line) IntersectLine(o *Line, eps float64) Shape {
	d1, d2 := l.dir, o.dir
	denom := d1.Dot(d1)*d2.Dot(d2) - d1.Dot(d2)*d1.Dot(d2)
	if d1.IsScalarMultiple(d2, eps) || denom == 0 {
		if l.Contains(o.Base(), eps) {
			return l
		}
		return nil
	}
	w0 := l.Base().Sub(o.Base())
	b := d1.Dot(d2)
	d := d1.Dot(w0)
	e := d2.Dot(w0)
	s := (b*e - d2.Dot(d2)*d) / denom
	t := (d1.Dot(d1)*e - b*d) / denom
	p1 := l.At(s)
	p2 := o.At(t)
	if p1.Dist(p2) <= eps {
		return NewPoint(l.env, p1.Mid(p2))
	}
	return nil
}

func (l *Line) Translate(v Vector) {
	l.off.add(v)
}

// Bounds returns nil since a line is unbounded.
func (l *Line) Bounds() *AABB {
	return nil
}

func (l *Line) Warm() {}

func (l *Line) String() string {
	return fmt.Sprintf("line through %v along %v", l.Base(), l.dir)
}

func (l *Line) envOf() *Env {
	return l.env
}
