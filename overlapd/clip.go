package overlapd

import "fmt"

// Clip cuts a shape by a plane and keeps the part on the reference
// point's side, boundary included. Points within eps of the plane are
// always kept, and a reference within eps of the plane keeps both
// sides. Shapes of infinite extent and solid volumes have no clipped
// Shape, so they panic.
func Clip(s Shape, p *Plane, ref Vector, eps float64) Shape {
	switch v := s.(type) {
	case nil:
		return nil
	case *Point:
		if p.SameSide(v.Abs(), ref, eps) {
			return v
		}
		return nil
	case *LineSegment:
		return clipSegment(v, p, ref, eps)
	case *Triangle:
		return v.Clip(p, ref, eps)
	case *ConvexArea:
		return v.Clip(p, ref, eps)
	default:
		panic(fmt.Sprintf("cannot clip %T to a shape", s))
	}
}

// Clip cuts the triangle by a plane, keeping the part on the
// reference point's side: nothing, a corner, an edge piece, a smaller
// triangle, or a quadrilateral.
func (t *Triangle) Clip(p *Plane, ref Vector, eps float64) Shape {
	return planarClip(t, p, ref, eps)
}

// Clip cuts the polygon by a plane, keeping the part on the reference
// point's side.
func (a *ConvexArea) Clip(p *Plane, ref Vector, eps float64) Shape {
	return planarClip(a, p, ref, eps)
}

// planarClip keeps the reference side of a bounded in-plane shape.
// The kept region is convex, and its corners are exactly the kept
// vertices plus the endpoints of the cut, so rebuilding from those
// points recovers it.
func planarClip(a planar, p *Plane, ref Vector, eps float64) Shape {
	if a.planeOf().Coincident(p, eps) {
		return a
	}

	verts := a.vertList()
	var kept []Vector
	for _, v := range verts {
		if p.SameSide(v, ref, eps) {
			kept = append(kept, v)
		}
	}

	switch v := a.IntersectPlane(p, eps).(type) {
	case nil:
		if len(kept) == len(verts) {
			return a
		}
		return nil
	case *Point:
		// The plane grazes a single corner.
		if len(kept) >= 2 {
			return a
		}
		return v
	case *LineSegment:
		if len(kept) == len(verts) {
			return a
		}
		if len(kept) == 0 {
			return v
		}
		pts := append([]Vector{v.A(), v.B()}, kept...)
		return shapeFromPoints(a.envOf(), pts, a.planeOf().Normal(), eps)
	default:
		panic("plane cut of a bounded shape must be nothing, a point, or a segment")
	}
}

// clipSegment keeps the reference side of a segment: the whole
// segment, nothing, or the piece between the plane crossing and the
// kept endpoint.
func clipSegment(s *LineSegment, p *Plane, ref Vector, eps float64) Shape {
	var kept []Vector
	for _, end := range []Vector{s.A(), s.B()} {
		if p.SameSide(end, ref, eps) {
			kept = append(kept, end)
		}
	}

	switch v := p.IntersectSegment(s, eps).(type) {
	case nil:
		if len(kept) == 2 {
			return s
		}
		return nil
	case *LineSegment:
		return s
	case *Point:
		switch len(kept) {
		case 2:
			return s
		case 0:
			return v
		default:
			if v.Abs().ApproxEqual(kept[0], eps) {
				return v
			}
			return newSegmentAbs(s.env, v.Abs(), kept[0])
		}
	default:
		panic("plane cut of a segment must be nothing, a point, or the segment")
	}
}
