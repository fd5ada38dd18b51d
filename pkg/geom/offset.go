package geom

import "math"

// OffsetRayOrigin nudges a ray origin off the surface it was spawned from,
// preventing self-intersection artifacts from floating point round-off in
// the intersection computation. p is the computed hit point, n the
// geometric normal, pError the component-wise absolute error bound on p,
// and w the direction the new ray will travel (incident or scattered).
//
// p is first moved along n by |n| . pError (towards the side of the surface
// w points into), which carries it past the error box around the true
// intersection point; each component is then rounded one more ulp away
// from p in the direction of that offset, so round-off in the addition
// cannot pull it back inside.
func OffsetRayOrigin(p Point3, n Normal3, pError Vector3, w Vector3) Point3 {
	d := n.Vector().Abs().Dot(pError)
	offset := n.Scale(d).Vector()
	if w.Dot(n.Vector()) < 0 {
		offset = offset.Negate()
	}
	po := p.AddVector(offset)

	for i, comp := range [3]Real{po.X, po.Y, po.Z} {
		off := offset.Component(i)
		if off > 0 {
			comp = nextFloatUp(comp)
		} else if off < 0 {
			comp = nextFloatDown(comp)
		}
		switch i {
		case 0:
			po.X = comp
		case 1:
			po.Y = comp
		case 2:
			po.Z = comp
		}
	}
	return po
}

func nextFloatUp(v Real) Real {
	if math.IsInf(v, 1) {
		return v
	}
	if v == 0 {
		v = 0
	}
	bits := math.Float64bits(v)
	if v >= 0 {
		bits++
	} else {
		bits--
	}
	return math.Float64frombits(bits)
}

func nextFloatDown(v Real) Real {
	if math.IsInf(v, -1) {
		return v
	}
	if v == 0 {
		v = math.Copysign(0, -1)
	}
	bits := math.Float64bits(v)
	if v > 0 {
		bits--
	} else {
		bits++
	}
	return math.Float64frombits(bits)
}
