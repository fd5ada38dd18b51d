package shape

import "github.com/methusael13/phyray-go/pkg/geom"

// Shape is the common interface for parametric surfaces. Implementations
// hold their own local<->world transforms; all ray/point arguments passed
// in are in world space.
type Shape interface {
	ObjectBounds() geom.Bounds3
	WorldBounds() geom.Bounds3
	SurfaceArea() geom.Real

	// Intersect returns the parametric distance and filled-in
	// SurfaceInteraction of the closest hit within (0, ray.TMax], or ok=false.
	Intersect(ray geom.Ray) (t geom.Real, si SurfaceInteraction, ok bool)
	// IntersectP is the boolean-only form, used for shadow rays.
	IntersectP(ray geom.Ray) bool

	// Sample picks a point uniformly over the shape's area.
	Sample(u geom.Point2) (Interaction, geom.Real)
	// SampleFrom picks a point as seen from a reference point, sampling
	// solid angle where the shape supports it (e.g. a cone over a sphere);
	// falls back to area sampling converted to a solid-angle PDF otherwise.
	SampleFrom(ref Interaction, u geom.Point2) (Interaction, geom.Real)
	// PDFFrom is the default solid-angle PDF for a direction wi from ref,
	// computed by shooting a ray and converting the area PDF via d^2/|cos|.
	PDFFrom(ref Interaction, wi geom.Vector3) geom.Real

	ReverseNormals() bool
	TransformChangesCoordSys() bool
}

// shapeBase factors the transform/reverseNormals bookkeeping shared by
// every concrete shape.
type shapeBase struct {
	ObjectToWorld, WorldToObject geom.Transform
	Reverse                      bool
	changesCoordSys              bool
}

func newShapeBase(o2w geom.Transform, reverse bool) shapeBase {
	return shapeBase{
		ObjectToWorld:   o2w,
		WorldToObject:   o2w.Inverse(),
		Reverse:         reverse,
		changesCoordSys: o2w.SwapsHandedness(),
	}
}

func (b shapeBase) ReverseNormals() bool            { return b.Reverse }
func (b shapeBase) TransformChangesCoordSys() bool  { return b.changesCoordSys }

// pdfFrom implements the shared default Shape.PDFFrom: cast a ray at the
// shape and convert its area PDF to solid angle via d^2 / |n . -wi|.
func pdfFrom(s Shape, ref Interaction, wi geom.Vector3) geom.Real {
	ray := ref.SpawnRay(wi)
	t, si, ok := s.Intersect(ray)
	if !ok {
		return 0
	}
	hit := ray.At(t)
	distSq := ref.P.DistanceSquared(hit)
	denom := si.N.AbsDot(wi.Negate())
	if denom == 0 {
		return 0
	}
	return distSq / (denom * s.SurfaceArea())
}
