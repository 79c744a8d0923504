package overlapd

import (
	"fmt"
	"math"
)

// A Tetrahedron is the solid volume between four vertices. Its four
// faces are triangles wound so that each face normal points out of
// the volume, and a point is inside exactly when every face plane
// puts it with the centroid.
//
// Four coplanar vertices are accepted but flagged Degenerate. A
// degenerate tetrahedron encloses no volume; every query treats it as
// the flat convex hull of its vertices.
type Tetrahedron struct {
	env *Env
	id  int64
	off *Offset
	p   Vector
	q   Vector
	r   Vector
	s   Vector

	faces      [4]*Triangle
	degenerate bool

	// eps is the construction tolerance, kept to derive the flat
	// hull of a degenerate tetrahedron.
	eps  float64
	flat planar

	bounds *AABB
}

// NewTetrahedron creates the tetrahedron with vertices p, q, r, s. It
// fails if any two vertices are within eps of each other or any three
// are collinear within eps, since either would leave a face without a
// triangle. Four coplanar vertices succeed with Degenerate set.
func NewTetrahedron(env *Env, p, q, r, s Vector, eps float64) (*Tetrahedron, error) {
	verts := []Vector{p, q, r, s}
	for i, a := range verts {
		for _, b := range verts[i+1:] {
			if a.ApproxEqual(b, eps) {
				return nil, fmt.Errorf("%w: tetrahedron with coincident vertices %v and %v", ErrDegenerate, a, b)
			}
		}
	}
	for _, tr := range faceTriples(p, q, r, s) {
		if tr[1].Sub(tr[0]).IsScalarMultiple(tr[2].Sub(tr[0]), eps) {
			return nil, fmt.Errorf("%w: tetrahedron with collinear vertices %v, %v, %v", ErrDegenerate, tr[0], tr[1], tr[2])
		}
	}

	normal := q.Sub(p).Cross(r.Sub(p)).Normalize()
	degenerate := math.Abs(normal.Dot(s.Sub(p))) <= eps

	off := &Offset{}
	t := &Tetrahedron{
		env:        env,
		id:         env.nextID(),
		off:        off,
		p:          p,
		q:          q,
		r:          r,
		s:          s,
		degenerate: degenerate,
		eps:        eps,
	}
	centroid := p.Add(q).Add(r).Add(s).Scale(0.25)
	for i, tr := range faceTriples(p, q, r, s) {
		a, b, c := tr[0], tr[1], tr[2]
		if b.Sub(a).Cross(c.Sub(a)).Dot(centroid.Sub(a)) > 0 {
			b, c = c, b
		}
		t.faces[i] = newTriangle(env, off, a, b, c)
	}
	return t, nil
}

// faceTriples lists the vertex triple of each face: pqr, qsr, spr,
// and psq.
func faceTriples(p, q, r, s Vector) [4][3]Vector {
	return [4][3]Vector{
		{p, q, r},
		{q, s, r},
		{s, p, r},
		{p, s, q},
	}
}

func (t *Tetrahedron) ID() int64 {
	return t.id
}

// Vertices returns the absolute vertex positions in construction
// order.
func (t *Tetrahedron) Vertices() [4]Vector {
	return [4]Vector{t.off.at(t.p), t.off.at(t.q), t.off.at(t.r), t.off.at(t.s)}
}

func (t *Tetrahedron) vertList() []Vector {
	v := t.Vertices()
	return v[:]
}

// Faces returns the four boundary triangles, wound outward.
func (t *Tetrahedron) Faces() [4]*Triangle {
	return t.faces
}

// Degenerate reports whether the vertices were coplanar at
// construction, leaving the tetrahedron without volume.
func (t *Tetrahedron) Degenerate() bool {
	return t.degenerate
}

func (t *Tetrahedron) Centroid() Vector {
	v := t.Vertices()
	return v[0].Add(v[1]).Add(v[2]).Add(v[3]).Scale(0.25)
}

func (t *Tetrahedron) Volume() float64 {
	v := t.Vertices()
	return math.Abs(v[1].Sub(v[0]).Cross(v[2].Sub(v[0])).Dot(v[3].Sub(v[0]))) / 6
}

// hull is the flat shape a degenerate tetrahedron collapses to: the
// convex span of its four coplanar vertices.
func (t *Tetrahedron) hull() planar {
	if t.flat == nil {
		h, ok := shapeFromPoints(t.env, t.vertList(), t.faces[0].Normal(), t.eps).(planar)
		if !ok {
			panic("flat tetrahedron hull must span an area")
		}
		t.flat = h
	}
	return t.flat
}

// ContainsPoint checks whether a point lies inside the volume, faces
// included.
func (t *Tetrahedron) ContainsPoint(x Vector, eps float64) bool {
	if t.degenerate {
		return t.hull().Contains(x, eps)
	}
	if !t.Bounds().Contains(x, eps) {
		return false
	}
	centroid := t.Centroid()
	for _, f := range t.faces {
		if !f.Plane().SameSide(x, centroid, eps) {
			return false
		}
	}
	return true
}

// IntersectLine intersects the volume with an infinite line: the
// chord between the outermost boundary crossings.
func (t *Tetrahedron) IntersectLine(l *Line, eps float64) Shape {
	if t.degenerate {
		return t.hull().IntersectLine(l, eps)
	}
	var pts []Vector
	for _, f := range t.faces {
		pts = append(pts, shapePoints(f.IntersectLine(l, eps))...)
	}
	return mergeOnLine(t.env, pts, eps)
}

// IntersectSegment intersects the volume with a segment. Boundary
// crossings and contained endpoints together span the clipped
// segment, so a segment buried entirely inside comes back whole.
func (t *Tetrahedron) IntersectSegment(s *LineSegment, eps float64) Shape {
	if t.degenerate {
		return t.hull().IntersectSegment(s, eps)
	}
	var pts []Vector
	for _, f := range t.faces {
		pts = append(pts, shapePoints(f.IntersectSegment(s, eps))...)
	}
	for _, end := range []Vector{s.A(), s.B()} {
		if t.ContainsPoint(end, eps) {
			pts = append(pts, end)
		}
	}
	return mergeOnLine(t.env, pts, eps)
}

// IntersectPlane intersects the volume with a plane: the cross
// section spanned by the per-face cuts, at most a quadrilateral.
func (t *Tetrahedron) IntersectPlane(pl *Plane, eps float64) Shape {
	if t.degenerate {
		return t.hull().IntersectPlane(pl, eps)
	}
	var pts []Vector
	for _, f := range t.faces {
		pts = append(pts, shapePoints(f.IntersectPlane(pl, eps))...)
	}
	return shapeFromPoints(t.env, pts, pl.Normal(), eps)
}

// IntersectTriangle clips a triangle to the volume by cutting it
// against each face plane in turn, keeping the centroid side.
func (t *Tetrahedron) IntersectTriangle(tri *Triangle, eps float64) Shape {
	if t.degenerate {
		return planarIntersect(t.hull(), tri, eps)
	}
	return t.clipToVolume(tri, eps)
}

// IntersectArea clips a convex polygon to the volume.
func (t *Tetrahedron) IntersectArea(a *ConvexArea, eps float64) Shape {
	if t.degenerate {
		return planarIntersect(t.hull(), a, eps)
	}
	return t.clipToVolume(a, eps)
}

func (t *Tetrahedron) clipToVolume(s Shape, eps float64) Shape {
	centroid := t.Centroid()
	for _, f := range t.faces {
		s = Clip(s, f.Plane(), centroid, eps)
		if s == nil {
			return nil
		}
	}
	return s
}

// IntersectsTetrahedron reports whether two tetrahedra share at least
// one point: one contains a vertex of the other, or some pair of
// faces crosses.
func (t *Tetrahedron) IntersectsTetrahedron(o *Tetrahedron, eps float64) bool {
	if !t.Bounds().Intersects(o.Bounds(), eps) {
		return false
	}
	if t.degenerate {
		return Intersects(t.hull(), o, eps)
	}
	if o.degenerate {
		return Intersects(t, o.hull(), eps)
	}
	for _, v := range o.vertList() {
		if t.ContainsPoint(v, eps) {
			return true
		}
	}
	for _, v := range t.vertList() {
		if o.ContainsPoint(v, eps) {
			return true
		}
	}
	for _, f1 := range t.faces {
		for _, f2 := range o.faces {
			if f1.IntersectTriangle(f2, eps) != nil {
				return true
			}
		}
	}
	return false
}

// IntersectTetrahedron returns the boundary of the shared region of
// two tetrahedra as pieces: each face of one clipped to the other,
// with coincident pieces dropped. No pieces means the volumes are
// disjoint. Unlike Intersect, this handles partial volume overlap,
// whose boundary is the full description of the shared region.
func (t *Tetrahedron) IntersectTetrahedron(o *Tetrahedron, eps float64) []Shape {
	if t.degenerate {
		if piece := Intersect(t.hull(), o, eps); piece != nil {
			return []Shape{piece}
		}
		return nil
	}
	if o.degenerate {
		if piece := Intersect(t, o.hull(), eps); piece != nil {
			return []Shape{piece}
		}
		return nil
	}
	var pieces []Shape
	for _, f := range t.faces {
		if p := o.IntersectTriangle(f, eps); p != nil {
			pieces = appendPiece(pieces, p, eps)
		}
	}
	for _, f := range o.faces {
		if p := t.IntersectTriangle(f, eps); p != nil {
			pieces = appendPiece(pieces, p, eps)
		}
	}
	return pieces
}

func appendPiece(pieces []Shape, p Shape, eps float64) []Shape {
	for _, q := range pieces {
		if sameShape(q, p, eps) {
			return pieces
		}
	}
	return append(pieces, p)
}

// intersectTetraPair is the single-shape tetrahedron pair case behind
// Intersect. Containment yields the contained tetrahedron and flat
// contact yields the shared face, edge, or corner. A partial volume
// overlap has no single-shape description, so it panics; callers that
// can meet one use IntersectTetrahedron or Intersects instead.
func intersectTetraPair(a, b *Tetrahedron, eps float64) Shape {
	if a.degenerate {
		return Intersect(a.hull(), b, eps)
	}
	if b.degenerate {
		return Intersect(a, b.hull(), eps)
	}
	if containsAll(a, b.vertList(), eps) {
		return b
	}
	if containsAll(b, a.vertList(), eps) {
		return a
	}
	pieces := a.IntersectTetrahedron(b, eps)
	if len(pieces) == 0 {
		return nil
	}
	var pts []Vector
	for _, p := range pieces {
		pts = append(pts, shapePoints(p)...)
	}
	normal, ok := coplanarNormal(pts, eps)
	if !ok {
		panic("tetrahedra with partial volume overlap have no single intersection shape; use IntersectTetrahedron")
	}
	return shapeFromPoints(a.env, pts, normal, eps)
}

func containsAll(t *Tetrahedron, pts []Vector, eps float64) bool {
	for _, p := range pts {
		if !t.ContainsPoint(p, eps) {
			return false
		}
	}
	return true
}

// DistanceSquaredToPoint is zero for contained points and the nearest
// face distance otherwise.
func (t *Tetrahedron) DistanceSquaredToPoint(x Vector, eps float64) float64 {
	if t.degenerate {
		return t.hull().DistanceSquaredToPoint(x, eps)
	}
	if t.ContainsPoint(x, eps) {
		return 0
	}
	min := math.Inf(1)
	for _, f := range t.faces {
		if d := f.DistanceSquaredToPoint(x, eps); d < min {
			min = d
		}
	}
	return min
}

func (t *Tetrahedron) Translate(v Vector) {
	t.off.add(v)
	// The hull is built at absolute positions; moving the
	// tetrahedron out from under it would leave it behind.
	t.flat = nil
}

func (t *Tetrahedron) Bounds() *AABB {
	if t.bounds == nil {
		t.bounds = BoundsOf(t.p, t.q, t.r, t.s)
	}
	return t.bounds.shift(t.off.Value())
}

// Warm forces lazily computed fields, including the flat hull of a
// degenerate tetrahedron, so the shape can be shared across
// goroutines for reading.
func (t *Tetrahedron) Warm() {
	t.Bounds()
	for _, f := range t.faces {
		f.Warm()
	}
	if t.degenerate {
		t.hull().Warm()
	}
}

func (t *Tetrahedron) String() string {
	v := t.Vertices()
	return fmt.Sprintf("tetrahedron %v %v %v %v", v[0], v[1], v[2], v[3])
}

func (t *Tetrahedron) envOf() *Env {
	return t.env
}
