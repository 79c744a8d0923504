package overlapd

import "fmt"

// An Offset is a translation shared by a shape and all of the geometry
// derived from it. Adding to the offset moves every shape that points
// at it in one step, without rewriting their stored coordinates.
type Offset struct {
	v Vector
}

func (o *Offset) Value() Vector {
	return o.v
}

func (o *Offset) at(rel Vector) Vector {
	return o.v.Add(rel)
}

func (o *Offset) add(v Vector) {
	o.v = o.v.Add(v)
}

// A Point is a position split into a shared offset and a position
// relative to it. The absolute position is the sum of the two; all
// comparisons go through the absolute position, so how a position is
// split never affects results.
type Point struct {
	env *Env
	id  int64
	off *Offset
	rel Vector
}

func NewPoint(env *Env, position Vector) *Point {
	return newPoint(env, &Offset{}, position)
}

func newPoint(env *Env, off *Offset, rel Vector) *Point {
	return &Point{env: env, id: env.nextID(), off: off, rel: rel}
}

func (p *Point) ID() int64 {
	return p.id
}

// Abs returns the absolute position, offset plus relative.
func (p *Point) Abs() Vector {
	return p.off.at(p.rel)
}

// ApproxEqual checks that the absolute positions of p and o are within
// eps of each other.
func (p *Point) ApproxEqual(o *Point, eps float64) bool {
	return p.Abs().ApproxEqual(o.Abs(), eps)
}

func (p *Point) Translate(v Vector) {
	p.off.add(v)
}

func (p *Point) Bounds() *AABB {
	a := p.Abs()
	return NewAABB(a, a)
}

func (p *Point) Warm() {}

func (p *Point) String() string {
	return fmt.Sprintf("point %v", p.Abs())
}

func (p *Point) envOf() *Env {
	return p.env
}
