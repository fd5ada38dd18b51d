// Package shape implements parametric surfaces (sphere, disk), their ray
// intersection and area-sampling operations, and the Interaction /
// SurfaceInteraction records produced by a hit.
package shape

import "github.com/methusael13/phyray-go/pkg/geom"

// Interaction is a minimal record of a point the renderer queried or hit:
// used both for true ray-shape hits and for points sampled directly on a
// light's surface (which never go through a full SurfaceInteraction).
type Interaction struct {
	P       geom.Point3
	N       geom.Normal3
	Wo      geom.Vector3
	PError  geom.Vector3 // component-wise absolute error bound on P
}

func (it Interaction) IsSurfaceInteraction() bool {
	return it.N != geom.Normal3{}
}

// SpawnRay creates a ray leaving this interaction toward direction d,
// offset off the surface to avoid self-intersection.
func (it Interaction) SpawnRay(d geom.Vector3) geom.Ray {
	o := geom.OffsetRayOrigin(it.P, it.N, it.PError, d)
	return geom.NewRay(o, d)
}

// SpawnRayTo creates a shadow-ray-like ray from this interaction toward a
// target point, with TMax just short of reaching it (1-epsilon in
// parametric distance) so the target point itself isn't re-intersected.
func (it Interaction) SpawnRayTo(target geom.Point3) geom.Ray {
	d := target.Sub(it.P)
	o := geom.OffsetRayOrigin(it.P, it.N, it.PError, d)
	r := geom.NewRay(o, d)
	r.TMax = 1 - 1e-3
	return r
}

// ShadingGeometry overrides the true geometric normal and partials when a
// shape provides shading-specific geometry (bump mapping, interpolated
// mesh normals, ...). OverridesOrientation decides whether the shading or
// the true geometric normal has authority when they disagree in sign.
type ShadingGeometry struct {
	N                  geom.Normal3
	Dpdu, Dpdv         geom.Vector3
	Dndu, Dndv         geom.Normal3
	OverridesOrientation bool
}

// SurfaceInteraction extends Interaction with surface parameterization and
// a back-reference to the Shape it was produced from (a weak reference:
// neither owns the other; Shape values are never copied out of the scene's
// ownership).
type SurfaceInteraction struct {
	Interaction

	UV         geom.Point2
	Dpdu, Dpdv geom.Vector3
	Dndu, Dndv geom.Normal3

	Shape       Shape
	Primitive   interface{} // set by the primitive package; avoids an import cycle
	ShadingGeom ShadingGeometry

	BSDF interface{} // *reflect.BSDF, attached during scattering-function computation
}

// NewSurfaceInteraction builds a SurfaceInteraction from a hit's local
// parameterization, deriving the geometric normal from dpdu x dpdv and
// applying the shape's reverse-normals / transform-handedness flip rule.
func NewSurfaceInteraction(p geom.Point3, pError geom.Vector3, wo geom.Vector3, uv geom.Point2,
	dpdu, dpdv geom.Vector3, dndu, dndv geom.Normal3, s Shape) SurfaceInteraction {

	n := geom.NormalFromVector(dpdu.Cross(dpdv)).Normalize()
	if s != nil && (s.ReverseNormals() != s.TransformChangesCoordSys()) {
		n = n.Negate()
	}

	si := SurfaceInteraction{
		Interaction: Interaction{P: p, N: n, Wo: wo, PError: pError},
		UV:          uv,
		Dpdu:        dpdu, Dpdv: dpdv, Dndu: dndu, Dndv: dndv,
		Shape: s,
	}
	si.ShadingGeom = ShadingGeometry{N: n, Dpdu: dpdu, Dpdv: dpdv, Dndu: dndu, Dndv: dndv}
	return si
}

// SetShadingGeometry installs a shading-frame override (e.g. interpolated
// vertex normals), resolving the true-vs-shading normal authority rule.
func (si *SurfaceInteraction) SetShadingGeometry(dpdus, dpdvs geom.Vector3, dndus, dndvs geom.Normal3, overridesOrientation bool) {
	shadingN := geom.NormalFromVector(dpdus.Cross(dpdvs)).Normalize()
	if si.Shape != nil && (si.Shape.ReverseNormals() != si.Shape.TransformChangesCoordSys()) {
		shadingN = shadingN.Negate()
	}

	if overridesOrientation {
		si.N = si.N.FaceForwardNormal(shadingN)
	} else {
		shadingN = shadingN.FaceForwardNormal(si.N)
	}

	si.ShadingGeom = ShadingGeometry{N: shadingN, Dpdu: dpdus, Dpdv: dpdvs, Dndu: dndus, Dndv: dndvs, OverridesOrientation: overridesOrientation}
}
