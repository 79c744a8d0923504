package overlapd

import (
	"fmt"
	"math"
)

// A Vector is a displacement or position in 3-space.
// All arithmetic is pure; methods never modify the receiver.
type Vector struct {
	X float64
	Y float64
	Z float64
}

// Origin is the zero vector.
var Origin = Vector{}

func XYZ(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// X creates a vector with the given x value and a zero y and z value.
func X(x float64) Vector {
	return Vector{X: x}
}

// Y creates a vector with the given y value and a zero x and z value.
func Y(y float64) Vector {
	return Vector{Y: y}
}

// Z creates a vector with the given z value and a zero x and y value.
func Z(z float64) Vector {
	return Vector{Z: z}
}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector) Cross(o Vector) Vector {
	return Vector{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vector) NormSquared() float64 {
	return v.Dot(v)
}

func (v Vector) Dist(o Vector) float64 {
	return v.Sub(o).Norm()
}

func (v Vector) DistSquared(o Vector) float64 {
	return v.Sub(o).NormSquared()
}

// Normalize returns a unit vector in the direction of v.
// The caller must ensure v is not the zero vector.
func (v Vector) Normalize() Vector {
	return v.Scale(1 / v.Norm())
}

// Mid returns the point halfway between v and o.
func (v Vector) Mid(o Vector) Vector {
	return v.Add(o).Scale(0.5)
}

func (v Vector) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// ApproxEqual checks that v is within eps of o.
func (v Vector) ApproxEqual(o Vector, eps float64) bool {
	return v.Dist(o) <= eps
}

// IsZero checks that the magnitude of v is at most eps.
func (v Vector) IsZero(eps float64) bool {
	return v.Norm() <= eps
}

// IsScalarMultiple checks that v and o point along the same axis,
// in either direction. The tolerance eps bounds the sine of the angle
// between them, so the test is independent of magnitude. The zero
// vector is a scalar multiple of everything.
func (v Vector) IsScalarMultiple(o Vector, eps float64) bool {
	return v.Cross(o).Norm() <= eps*v.Norm()*o.Norm()
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
