package geom

import "math"

// Transform is a pair of mutually-inverse 4x4 matrices kept coherent by
// construction: every constructor computes both M and MInv so callers never
// invert a Transform themselves.
type Transform struct {
	M, MInv Matrix4x4
}

func NewTransform(m Matrix4x4) Transform {
	return Transform{M: m, MInv: m.Inverse()}
}

func NewTransformWithInverse(m, mInv Matrix4x4) Transform {
	return Transform{M: m, MInv: mInv}
}

func IdentityTransform() Transform {
	return Transform{M: Identity4x4(), MInv: Identity4x4()}
}

// Inverse swaps M and MInv; Inverse(Inverse(t)) == t by construction.
func (t Transform) Inverse() Transform {
	return Transform{M: t.MInv, MInv: t.M}
}

func (t Transform) IsIdentity() bool {
	return t.M == Identity4x4()
}

func Translate(delta Vector3) Transform {
	m := Identity4x4()
	m.M[0][3], m.M[1][3], m.M[2][3] = delta.X, delta.Y, delta.Z
	mInv := Identity4x4()
	mInv.M[0][3], mInv.M[1][3], mInv.M[2][3] = -delta.X, -delta.Y, -delta.Z
	return Transform{M: m, MInv: mInv}
}

func Scale(x, y, z Real) Transform {
	m := Identity4x4()
	m.M[0][0], m.M[1][1], m.M[2][2] = x, y, z
	mInv := Identity4x4()
	mInv.M[0][0], mInv.M[1][1], mInv.M[2][2] = 1/x, 1/y, 1/z
	return Transform{M: m, MInv: mInv}
}

func RotateX(deg Real) Transform {
	sinT, cosT := math.Sincos(radians(deg))
	m := Identity4x4()
	m.M[1][1], m.M[1][2] = cosT, -sinT
	m.M[2][1], m.M[2][2] = sinT, cosT
	return Transform{M: m, MInv: m.Transpose()}
}

func RotateY(deg Real) Transform {
	sinT, cosT := math.Sincos(radians(deg))
	m := Identity4x4()
	m.M[0][0], m.M[0][2] = cosT, sinT
	m.M[2][0], m.M[2][2] = -sinT, cosT
	return Transform{M: m, MInv: m.Transpose()}
}

func RotateZ(deg Real) Transform {
	sinT, cosT := math.Sincos(radians(deg))
	m := Identity4x4()
	m.M[0][0], m.M[0][1] = cosT, -sinT
	m.M[1][0], m.M[1][1] = sinT, cosT
	return Transform{M: m, MInv: m.Transpose()}
}

// RotateAxis rotates by deg degrees around an arbitrary normalized axis.
func RotateAxis(deg Real, axis Vector3) Transform {
	a := axis.Normalize()
	sinT, cosT := math.Sincos(radians(deg))
	var m Matrix4x4
	m.M[0][0] = a.X*a.X + (1-a.X*a.X)*cosT
	m.M[0][1] = a.X*a.Y*(1-cosT) - a.Z*sinT
	m.M[0][2] = a.X*a.Z*(1-cosT) + a.Y*sinT
	m.M[1][0] = a.X*a.Y*(1-cosT) + a.Z*sinT
	m.M[1][1] = a.Y*a.Y + (1-a.Y*a.Y)*cosT
	m.M[1][2] = a.Y*a.Z*(1-cosT) - a.X*sinT
	m.M[2][0] = a.X*a.Z*(1-cosT) - a.Y*sinT
	m.M[2][1] = a.Y*a.Z*(1-cosT) + a.X*sinT
	m.M[2][2] = a.Z*a.Z + (1-a.Z*a.Z)*cosT
	m.M[3][3] = 1
	return Transform{M: m, MInv: m.Transpose()}
}

func radians(deg Real) Real { return deg * math.Pi / 180 }

// LookAt builds a camera-to-world transform from an eye point, a look-at
// point and an up vector.
func LookAt(eye Point3, look Point3, up Vector3) Transform {
	dir := look.Sub(eye).Normalize()
	right := up.Normalize().Cross(dir).Normalize()
	newUp := dir.Cross(right)

	var camToWorld Matrix4x4
	camToWorld.M[0][0], camToWorld.M[1][0], camToWorld.M[2][0] = right.X, right.Y, right.Z
	camToWorld.M[0][1], camToWorld.M[1][1], camToWorld.M[2][1] = newUp.X, newUp.Y, newUp.Z
	camToWorld.M[0][2], camToWorld.M[1][2], camToWorld.M[2][2] = dir.X, dir.Y, dir.Z
	camToWorld.M[0][3], camToWorld.M[1][3], camToWorld.M[2][3] = eye.X, eye.Y, eye.Z
	camToWorld.M[3][3] = 1

	return Transform{M: camToWorld, MInv: camToWorld.Inverse()}
}

// Point applies the transform to a point (translation included).
func (t Transform) Point(p Point3) Point3 {
	m := t.M
	x := m.M[0][0]*p.X + m.M[0][1]*p.Y + m.M[0][2]*p.Z + m.M[0][3]
	y := m.M[1][0]*p.X + m.M[1][1]*p.Y + m.M[1][2]*p.Z + m.M[1][3]
	z := m.M[2][0]*p.X + m.M[2][1]*p.Y + m.M[2][2]*p.Z + m.M[2][3]
	w := m.M[3][0]*p.X + m.M[3][1]*p.Y + m.M[3][2]*p.Z + m.M[3][3]
	if w == 1 {
		return Point3{x, y, z}
	}
	return Point3{x / w, y / w, z / w}
}

// Vector applies the transform to a vector (no translation).
func (t Transform) Vector(v Vector3) Vector3 {
	m := t.M
	return Vector3{
		m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z,
		m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z,
		m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z,
	}
}

// Normal applies the transform to a normal via the inverse-transpose of M.
func (t Transform) Normal(n Normal3) Normal3 {
	mInv := t.MInv
	return Normal3{
		mInv.M[0][0]*n.X + mInv.M[1][0]*n.Y + mInv.M[2][0]*n.Z,
		mInv.M[0][1]*n.X + mInv.M[1][1]*n.Y + mInv.M[2][1]*n.Z,
		mInv.M[0][2]*n.X + mInv.M[1][2]*n.Y + mInv.M[2][2]*n.Z,
	}
}

func (t Transform) Ray(r Ray) Ray {
	return Ray{Origin: t.Point(r.Origin), Direction: t.Vector(r.Direction), TMax: r.TMax}
}

// Bounds transforms each of the box's 8 corners and takes their union —
// the general (non-axis-preserving) case needed once rotations are in play.
func (t Transform) Bounds(b Bounds3) Bounds3 {
	ret := Bounds3Empty()
	for i := 0; i < 8; i++ {
		corner := Point3{
			pick(i&1 != 0, b.PMax.X, b.PMin.X),
			pick(i&2 != 0, b.PMax.Y, b.PMin.Y),
			pick(i&4 != 0, b.PMax.Z, b.PMin.Z),
		}
		ret = ret.UnionPoint(t.Point(corner))
	}
	return ret
}

func pick(cond bool, a, b Real) Real {
	if cond {
		return a
	}
	return b
}

// Perspective builds a projective camera-to-screen transform with the given
// vertical field of view (degrees) that maps the view frustum between near
// and far onto z in [0,1] (z/w after the divide), x and y remaining in
// camera-space units — ProjectiveCamera composes this with a screen-to-
// raster transform derived from the film resolution and screen window.
func Perspective(fovDeg, near, far Real) Transform {
	persp := Matrix4x4{M: [4][4]Real{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, far / (far - near), -far * near / (far - near)},
		{0, 0, 1, 0},
	}}
	invTanAng := 1 / math.Tan(radians(fovDeg)/2)
	return Scale(invTanAng, invTanAng, 1).Compose(NewTransform(persp))
}

// Compose returns the transform equivalent to applying t2 then t.
func (t Transform) Compose(t2 Transform) Transform {
	return Transform{M: t.M.Mul(t2.M), MInv: t2.MInv.Mul(t.MInv)}
}

// SwapsHandedness reports whether this transform flips orientation — true
// iff the determinant of the upper-left 3x3 is negative. Used to decide
// whether a shape's shading normals need to be flipped after transform.
func (t Transform) SwapsHandedness() bool {
	m := t.M.M
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	return det < 0
}
