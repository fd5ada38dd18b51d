package geom

import "math"

// Vector3 is a displacement in 3-space. Unlike Point3 it has no fixed
// origin: Vector3 + Vector3 = Vector3, and it is the only 3D type (besides
// Normal3) that Normalize is defined for.
type Vector3 struct {
	X, Y, Z Real
}

// NewVector3 constructs a vector, asserting none of its components is NaN.
func NewVector3(x, y, z Real) Vector3 {
	v := Vector3{x, y, z}
	assertNoNaN3(v.X, v.Y, v.Z)
	return v
}

func assertNoNaN3(x, y, z Real) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(z) {
		panic("geom: NaN component in vector/point/normal construction")
	}
}

func (v Vector3) HasNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

func (v Vector3) Add(o Vector3) Vector3      { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector3) Sub(o Vector3) Vector3      { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vector3) Scale(s Real) Vector3       { return Vector3{v.X * s, v.Y * s, v.Z * s} }
func (v Vector3) Negate() Vector3            { return Vector3{-v.X, -v.Y, -v.Z} }
func (v Vector3) Dot(o Vector3) Real         { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vector3) AbsDot(o Vector3) Real      { return math.Abs(v.Dot(o)) }
func (v Vector3) LengthSquared() Real        { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }
func (v Vector3) Length() Real               { return math.Sqrt(v.LengthSquared()) }
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Normalize returns a unit vector in the same direction. Zero-length input
// is a programming contract violation (division by zero is silently
// produced in release builds, matching the source's undefined-in-release
// policy for this class of error).
func (v Vector3) Normalize() Vector3 {
	return v.Scale(1 / v.Length())
}

func (v Vector3) Abs() Vector3 {
	return Vector3{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)}
}

// MaxComponent, MinComponent and MaxDimension support bounds/BVH axis math.
func (v Vector3) MaxComponent() Real { return maxReal(v.X, maxReal(v.Y, v.Z)) }
func (v Vector3) MinComponent() Real { return minReal(v.X, minReal(v.Y, v.Z)) }

func (v Vector3) MaxDimension() int {
	if v.X > v.Y {
		if v.X > v.Z {
			return 0
		}
		return 2
	}
	if v.Y > v.Z {
		return 1
	}
	return 2
}

func (v Vector3) Component(axis int) Real {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// FaceForward flips v so that it lies in the same hemisphere as ref.
func (v Vector3) FaceForward(ref Vector3) Vector3 {
	if v.Dot(ref) < 0 {
		return v.Negate()
	}
	return v
}

// CoordinateSystem builds an orthonormal basis {v1, v2, v3} from a unit
// vector v1, following Duff et al.'s branchless construction.
func CoordinateSystem(v1 Vector3) (v2, v3 Vector3) {
	sign := Real(1)
	if v1.Z < 0 {
		sign = -1
	}
	a := -1 / (sign + v1.Z)
	b := v1.X * v1.Y * a
	v2 = Vector3{1 + sign*v1.X*v1.X*a, sign * b, -sign * v1.X}
	v3 = Vector3{b, sign + v1.Y*v1.Y*a, -v1.Y}
	return v2, v3
}

// Vector2 is the 2D analogue, used for film/filter/sample coordinates.
type Vector2 struct {
	X, Y Real
}

func (v Vector2) Add(o Vector2) Vector2 { return Vector2{v.X + o.X, v.Y + o.Y} }
func (v Vector2) Sub(o Vector2) Vector2 { return Vector2{v.X - o.X, v.Y - o.Y} }
func (v Vector2) Scale(s Real) Vector2  { return Vector2{v.X * s, v.Y * s} }
func (v Vector2) Length() Real          { return math.Sqrt(v.X*v.X + v.Y*v.Y) }
