package overlapd

import (
	"fmt"
	"math"
)

// RotateVector rotates v by theta radians about the axis through
// axisPoint along axisDir, following the right-hand rule. The axis
// direction need not be unit length.
func RotateVector(v, axisPoint, axisDir Vector, theta float64) Vector {
	k := axisDir.Normalize()
	u := v.Sub(axisPoint)
	cos, sin := math.Cos(theta), math.Sin(theta)
	rot := u.Scale(cos).Add(k.Cross(u).Scale(sin)).Add(k.Scale(k.Dot(u) * (1 - cos)))
	return axisPoint.Add(rot)
}

// Rotate returns a copy of the shape rotated by theta radians about
// the axis line, leaving the original in place. The copy is rebuilt
// through the shape's constructor with the same Env and a fresh
// identifier. Rotation preserves distances, so reconstruction only
// fails if the input shape was already out of tolerance for eps.
func Rotate(s Shape, axis *Line, theta, eps float64) (Shape, error) {
	base, dir := axis.Base(), axis.Dir()
	rot := func(v Vector) Vector {
		return RotateVector(v, base, dir, theta)
	}
	rotDir := func(d Vector) Vector {
		return RotateVector(d, Origin, dir, theta)
	}

	switch v := s.(type) {
	case *Point:
		return NewPoint(v.env, rot(v.Abs())), nil
	case *Line:
		if v.DefinedByVector() {
			r, err := NewLineDir(v.env, rot(v.Base()), rotDir(v.Dir()), eps)
			if err != nil {
				return nil, err
			}
			return r, nil
		}
		r, err := NewLine(v.env, rot(v.Base()), rot(v.Base().Add(v.Dir())), eps)
		if err != nil {
			return nil, err
		}
		return r, nil
	case *Plane:
		r, err := NewPlane(v.env, rot(v.Base()), rotDir(v.Normal()), eps)
		if err != nil {
			return nil, err
		}
		return r, nil
	case *LineSegment:
		r, err := NewLineSegment(v.env, rot(v.A()), rot(v.B()), eps)
		if err != nil {
			return nil, err
		}
		return r, nil
	case *Triangle:
		verts := v.Vertices()
		r, err := NewTriangle(v.env, rot(verts[0]), rot(verts[1]), rot(verts[2]), eps)
		if err != nil {
			return nil, err
		}
		return r, nil
	case *ConvexArea:
		verts := v.Vertices()
		rotated := make([]Vector, len(verts))
		for i, p := range verts {
			rotated[i] = rot(p)
		}
		r, err := NewConvexArea(v.env, rotated, eps)
		if err != nil {
			return nil, err
		}
		return r, nil
	case *Tetrahedron:
		verts := v.Vertices()
		r, err := NewTetrahedron(v.env, rot(verts[0]), rot(verts[1]), rot(verts[2]), rot(verts[3]), eps)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		panic(fmt.Sprintf("unsupported shape %T", s))
	}
}
