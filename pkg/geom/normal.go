package geom

import "math"

// Normal3 is a surface normal. It transforms by the inverse-transpose of
// the matrix used for Vector3, so it is kept as a distinct type even though
// its component storage is identical.
type Normal3 struct {
	X, Y, Z Real
}

func NewNormal3(x, y, z Real) Normal3 {
	assertNoNaN3(x, y, z)
	return Normal3{x, y, z}
}

func NormalFromVector(v Vector3) Normal3 { return Normal3{v.X, v.Y, v.Z} }
func (n Normal3) Vector() Vector3        { return Vector3{n.X, n.Y, n.Z} }

func (n Normal3) Add(o Normal3) Normal3 { return Normal3{n.X + o.X, n.Y + o.Y, n.Z + o.Z} }
func (n Normal3) Negate() Normal3       { return Normal3{-n.X, -n.Y, -n.Z} }
func (n Normal3) Scale(s Real) Normal3  { return Normal3{n.X * s, n.Y * s, n.Z * s} }
func (n Normal3) LengthSquared() Real   { return n.X*n.X + n.Y*n.Y + n.Z*n.Z }
func (n Normal3) Length() Real          { return math.Sqrt(n.LengthSquared()) }
func (n Normal3) Normalize() Normal3    { return n.Scale(1 / n.Length()) }

func (n Normal3) Dot(v Vector3) Real    { return n.X*v.X + n.Y*v.Y + n.Z*v.Z }
func (n Normal3) DotNormal(o Normal3) Real { return n.X*o.X + n.Y*o.Y + n.Z*o.Z }
func (n Normal3) AbsDot(v Vector3) Real { return math.Abs(n.Dot(v)) }

// FaceForward flips n so it lies in the same hemisphere as v.
func (n Normal3) FaceForward(v Vector3) Normal3 {
	if n.Dot(v) < 0 {
		return n.Negate()
	}
	return n
}

func (n Normal3) FaceForwardNormal(ref Normal3) Normal3 {
	if n.DotNormal(ref) < 0 {
		return n.Negate()
	}
	return n
}
