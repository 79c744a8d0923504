package overlapd

import (
	"math"

	"golang.org/x/exp/slices"
)

// dedupePoints drops points within eps of an earlier point, keeping
// first occurrences in order.
func dedupePoints(pts []Vector, eps float64) []Vector {
	res := make([]Vector, 0, len(pts))
	for _, p := range pts {
		dup := false
		for _, q := range res {
			if p.ApproxEqual(q, eps) {
				dup = true
				break
			}
		}
		if !dup {
			res = append(res, p)
		}
	}
	return res
}

// farthestPair returns the two points with the largest separation.
func farthestPair(pts []Vector) (Vector, Vector) {
	best := -1.0
	var a, b Vector
	for i, p := range pts {
		for _, q := range pts[i+1:] {
			if d := p.DistSquared(q); d > best {
				best = d
				a, b = p, q
			}
		}
	}
	return a, b
}

// collinearSpread checks that every point lies within eps of the line
// through the two farthest-apart points.
func collinearSpread(pts []Vector, eps float64) bool {
	a, b := farthestPair(pts)
	dir := b.Sub(a)
	if dir.IsZero(eps) {
		return true
	}
	for _, p := range pts {
		if dir.Cross(p.Sub(a)).Norm()/dir.Norm() > eps {
			return false
		}
	}
	return true
}

// mergeOnLine reduces points known to lie on one line to the shape
// they span: nothing, a point, or the segment between the extremes.
func mergeOnLine(env *Env, pts []Vector, eps float64) Shape {
	pts = dedupePoints(pts, eps)
	switch len(pts) {
	case 0:
		return nil
	case 1:
		return NewPoint(env, pts[0])
	default:
		a, b := farthestPair(pts)
		return newSegmentAbs(env, a, b)
	}
}

// shapeFromPoints reduces coplanar points to the minimal shape that
// spans them: nothing, a point, a segment between extremes, a
// triangle, or a convex polygon ordered by angle about the centroid.
// The supplied normal orients the winding of planar results. This one
// classifier stands in for the per-count case analysis that every
// multi-part intersection would otherwise need.
func shapeFromPoints(env *Env, pts []Vector, normal Vector, eps float64) Shape {
	pts = dedupePoints(pts, eps)
	switch len(pts) {
	case 0:
		return nil
	case 1:
		return NewPoint(env, pts[0])
	case 2:
		return newSegmentAbs(env, pts[0], pts[1])
	}
	if collinearSpread(pts, eps) {
		a, b := farthestPair(pts)
		return newSegmentAbs(env, a, b)
	}
	if len(pts) == 3 {
		return newTriangleOriented(env, pts[0], pts[1], pts[2], normal)
	}
	ordered := orderByAngle(pts, normal)
	ordered = dropFoldedVertices(ordered, normal, eps)
	switch len(ordered) {
	case 2:
		return newSegmentAbs(env, ordered[0], ordered[1])
	case 3:
		return newTriangleOriented(env, ordered[0], ordered[1], ordered[2], normal)
	default:
		return newArea(env, ordered, normal)
	}
}

// newTriangleOriented builds a triangle from distinct, non-collinear
// vertices, swapping two of them if needed so the face normal points
// along the given normal.
func newTriangleOriented(env *Env, a, b, c, normal Vector) *Triangle {
	if b.Sub(a).Cross(c.Sub(a)).Dot(normal) < 0 {
		b, c = c, b
	}
	return newTriangleAbs(env, a, b, c)
}

// orderByAngle sorts points counterclockwise (seen from the normal
// side) by angle about their centroid, which recovers the boundary
// order of a convex vertex set.
func orderByAngle(pts []Vector, normal Vector) []Vector {
	centroid := Origin
	for _, p := range pts {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Scale(1 / float64(len(pts)))

	n := normal.Normalize()
	u := pts[0].Sub(centroid).Normalize()
	w := n.Cross(u)

	type angled struct {
		v     Vector
		angle float64
	}
	keyed := make([]angled, len(pts))
	for i, p := range pts {
		rel := p.Sub(centroid)
		keyed[i] = angled{v: p, angle: math.Atan2(rel.Dot(w), rel.Dot(u))}
	}
	slices.SortFunc(keyed, func(x, y angled) bool {
		return x.angle < y.angle
	})

	res := make([]Vector, len(keyed))
	for i, k := range keyed {
		res[i] = k.v
	}
	return res
}

// dropFoldedVertices removes vertices that sit on or inside the edge
// through their neighbors, so consecutive edges always turn the same
// way. Points produced by intersection can land within eps of an edge
// and must not survive as extra corners.
func dropFoldedVertices(ordered []Vector, normal Vector, eps float64) []Vector {
	for len(ordered) > 2 {
		dropped := false
		for i := 0; i < len(ordered); i++ {
			prev := ordered[(i+len(ordered)-1)%len(ordered)]
			cur := ordered[i]
			next := ordered[(i+1)%len(ordered)]
			e1 := cur.Sub(prev)
			e2 := next.Sub(cur)
			turn := e1.Cross(e2)
			if e1.IsScalarMultiple(e2, eps) || turn.Dot(normal) < 0 {
				ordered = append(ordered[:i], ordered[i+1:]...)
				dropped = true
				break
			}
		}
		if !dropped {
			return ordered
		}
	}
	return ordered
}

// shapePoints lists the defining points of a bounded planar result.
func shapePoints(s Shape) []Vector {
	switch v := s.(type) {
	case nil:
		return nil
	case *Point:
		return []Vector{v.Abs()}
	case *LineSegment:
		return []Vector{v.A(), v.B()}
	case *Triangle:
		verts := v.Vertices()
		return verts[:]
	case *ConvexArea:
		return v.Vertices()
	default:
		panic("shape has no finite vertex list")
	}
}

// coplanarNormal fits a plane through the points, reporting its unit
// normal and whether every point lies within eps of it. Fewer than
// four points, or a collinear spread, are trivially coplanar with a
// zero normal.
func coplanarNormal(pts []Vector, eps float64) (Vector, bool) {
	if len(pts) < 3 || collinearSpread(pts, eps) {
		return Origin, true
	}
	a, b := farthestPair(pts)
	dir := b.Sub(a)
	var normal Vector
	for _, p := range pts {
		cross := dir.Cross(p.Sub(a))
		if cross.Norm() > dir.Norm()*eps {
			normal = cross.Normalize()
			break
		}
	}
	for _, p := range pts {
		if math.Abs(normal.Dot(p.Sub(a))) > eps {
			return Origin, false
		}
	}
	return normal, true
}
