package overlapd

import "fmt"

// An AABB is an axis-aligned box described by its minimum and maximum
// corners. Boxes are only ever used to rule intersection out cheaply;
// every exact query must produce the same answer with box checks
// skipped. Degenerate boxes (a plane, line, or point) are permitted.
type AABB struct {
	Min Vector
	Max Vector
}

// NewAABB creates a box from two opposite corners, swapping
// coordinates as needed so that Min <= Max on each axis.
func NewAABB(a, b Vector) *AABB {
	min := a.Array()
	max := b.Array()
	for i := range min {
		if min[i] > max[i] {
			min[i], max[i] = max[i], min[i]
		}
	}
	return &AABB{
		Min: XYZ(min[0], min[1], min[2]),
		Max: XYZ(max[0], max[1], max[2]),
	}
}

// BoundsOf computes the smallest box containing every point.
// It panics if no points are given.
func BoundsOf(points ...Vector) *AABB {
	if len(points) == 0 {
		panic("bounds of empty point set")
	}
	min := points[0].Array()
	max := points[0].Array()
	for _, p := range points[1:] {
		arr := p.Array()
		for i, x := range arr {
			if x < min[i] {
				min[i] = x
			}
			if x > max[i] {
				max[i] = x
			}
		}
	}
	return &AABB{
		Min: XYZ(min[0], min[1], min[2]),
		Max: XYZ(max[0], max[1], max[2]),
	}
}

// Intersects checks per-axis interval overlap, expanding each box by
// eps so that near-touching boxes count as overlapping.
func (a *AABB) Intersects(o *AABB, eps float64) bool {
	amin, amax := a.Min.Array(), a.Max.Array()
	omin, omax := o.Min.Array(), o.Max.Array()
	for i := range amin {
		if amin[i] > omax[i]+eps || omin[i] > amax[i]+eps {
			return false
		}
	}
	return true
}

// Contains checks that v is inside the box expanded by eps.
func (a *AABB) Contains(v Vector, eps float64) bool {
	min, max := a.Min.Array(), a.Max.Array()
	arr := v.Array()
	for i, x := range arr {
		if x < min[i]-eps || x > max[i]+eps {
			return false
		}
	}
	return true
}

// Union returns the smallest box containing both a and o.
func (a *AABB) Union(o *AABB) *AABB {
	return BoundsOf(a.Min, a.Max, o.Min, o.Max)
}

func (a *AABB) Center() Vector {
	return a.Min.Mid(a.Max)
}

func (a *AABB) Size() Vector {
	return a.Max.Sub(a.Min)
}

// Corners lists the eight corners of the box. Degenerate boxes repeat
// corners.
func (a *AABB) Corners() [8]Vector {
	min, max := a.Min, a.Max
	return [8]Vector{
		XYZ(min.X, min.Y, min.Z),
		XYZ(max.X, min.Y, min.Z),
		XYZ(min.X, max.Y, min.Z),
		XYZ(max.X, max.Y, min.Z),
		XYZ(min.X, min.Y, max.Z),
		XYZ(max.X, min.Y, max.Z),
		XYZ(min.X, max.Y, max.Z),
		XYZ(max.X, max.Y, max.Z),
	}
}

// SlabPlanes builds the six axis-aligned planes bounding the box, in
// min/max pairs per axis, each normal pointing along its positive
// axis.
func (a *AABB) SlabPlanes(env *Env) [6]*Plane {
	var res [6]*Plane
	axes := [3]Vector{X(1), Y(1), Z(1)}
	minArr, maxArr := a.Min.Array(), a.Max.Array()
	for i, axis := range axes {
		res[i*2] = newPlane(env, &Offset{}, axis.Scale(minArr[i]), axis)
		res[i*2+1] = newPlane(env, &Offset{}, axis.Scale(maxArr[i]), axis)
	}
	return res
}

func (a *AABB) shift(v Vector) *AABB {
	return &AABB{Min: a.Min.Add(v), Max: a.Max.Add(v)}
}

func (a *AABB) String() string {
	return fmt.Sprintf("box %v to %v", a.Min, a.Max)
}
