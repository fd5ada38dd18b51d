// Package primitive binds a Shape to a Material and (optionally) an
// emission profile, and provides the instancing wrapper that lets one
// Shape+Material pair be reused at multiple world-space transforms without
// duplicating geometry.
package primitive

import (
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/memory"
	"github.com/methusael13/phyray-go/pkg/shape"
)

// Primitive is the scene-graph leaf the accelerator stores: something with
// world-space bounds that can be intersected and (if it's also a light)
// queried for its emission.
type Primitive interface {
	WorldBounds() geom.Bounds3
	// Intersect tests ray against this primitive, shrinking ray.TMax on a
	// hit so a caller walking many primitives in sequence (the accelerator)
	// never has to test beyond the closest hit found so far.
	Intersect(ray *geom.Ray) (shape.SurfaceInteraction, bool)
	IntersectP(ray *geom.Ray) bool

	// ComputeScatteringFunctions attaches a BSDF to si, allocated out of
	// arena, for the material this primitive was built with.
	ComputeScatteringFunctions(si *shape.SurfaceInteraction, arena *memory.Arena)
	// AreaLight returns the light this primitive emits as, or nil.
	AreaLight() interface{}
}

// Material is the minimal contract primitive.go depends on; pkg/material
// implements it. Declared here (rather than imported) to avoid a cycle,
// since pkg/material's BSDF construction takes a *shape.SurfaceInteraction.
type Material interface {
	ComputeScatteringFunctions(si *shape.SurfaceInteraction, arena *memory.Arena)
}

// GeometricPrimitive is a Shape bound to a Material and, optionally, the
// light it's the emissive geometry for.
type GeometricPrimitive struct {
	Shape    shape.Shape
	Mat      Material
	AreaLgt  interface{}
}

func NewGeometricPrimitive(s shape.Shape, mat Material, areaLight interface{}) *GeometricPrimitive {
	return &GeometricPrimitive{Shape: s, Mat: mat, AreaLgt: areaLight}
}

func (p *GeometricPrimitive) WorldBounds() geom.Bounds3 { return p.Shape.WorldBounds() }

func (p *GeometricPrimitive) Intersect(ray *geom.Ray) (shape.SurfaceInteraction, bool) {
	t, si, ok := p.Shape.Intersect(*ray)
	if !ok {
		return shape.SurfaceInteraction{}, false
	}
	ray.ShrinkTo(t)
	si.Primitive = p
	return si, true
}

func (p *GeometricPrimitive) IntersectP(ray *geom.Ray) bool { return p.Shape.IntersectP(*ray) }

func (p *GeometricPrimitive) ComputeScatteringFunctions(si *shape.SurfaceInteraction, arena *memory.Arena) {
	if p.Mat != nil {
		p.Mat.ComputeScatteringFunctions(si, arena)
	}
}

func (p *GeometricPrimitive) AreaLight() interface{} { return p.AreaLgt }

// InstancedPrimitive repeats a shared Primitive subtree at a different
// world-space placement. The ray is carried into instance-local space,
// intersected against the shared subtree, and the resulting interaction is
// carried back out — the subtree itself is never copied.
type InstancedPrimitive struct {
	Instance               Primitive
	InstanceToWorld        geom.Transform
	worldToInstance        geom.Transform
}

func NewInstancedPrimitive(instance Primitive, instanceToWorld geom.Transform) *InstancedPrimitive {
	return &InstancedPrimitive{
		Instance:        instance,
		InstanceToWorld: instanceToWorld,
		worldToInstance: instanceToWorld.Inverse(),
	}
}

func (ip *InstancedPrimitive) WorldBounds() geom.Bounds3 {
	return ip.InstanceToWorld.Bounds(ip.Instance.WorldBounds())
}

func (ip *InstancedPrimitive) Intersect(ray *geom.Ray) (shape.SurfaceInteraction, bool) {
	localRay := ip.worldToInstance.Ray(*ray)
	si, ok := ip.Instance.Intersect(&localRay)
	if !ok {
		return shape.SurfaceInteraction{}, false
	}
	ray.ShrinkTo(localRay.TMax)

	si.P = ip.InstanceToWorld.Point(si.P)
	si.N = ip.InstanceToWorld.Normal(si.N).Normalize()
	si.Wo = ip.InstanceToWorld.Vector(si.Wo).Normalize()
	si.Dpdu = ip.InstanceToWorld.Vector(si.Dpdu)
	si.Dpdv = ip.InstanceToWorld.Vector(si.Dpdv)
	si.Dndu = ip.InstanceToWorld.Normal(si.Dndu)
	si.Dndv = ip.InstanceToWorld.Normal(si.Dndv)
	si.ShadingGeom.N = ip.InstanceToWorld.Normal(si.ShadingGeom.N).Normalize()
	si.ShadingGeom.Dpdu = ip.InstanceToWorld.Vector(si.ShadingGeom.Dpdu)
	si.ShadingGeom.Dpdv = ip.InstanceToWorld.Vector(si.ShadingGeom.Dpdv)
	si.Primitive = ip
	return si, true
}

func (ip *InstancedPrimitive) IntersectP(ray *geom.Ray) bool {
	localRay := ip.worldToInstance.Ray(*ray)
	return ip.Instance.IntersectP(&localRay)
}

func (ip *InstancedPrimitive) ComputeScatteringFunctions(si *shape.SurfaceInteraction, arena *memory.Arena) {
	ip.Instance.ComputeScatteringFunctions(si, arena)
}

func (ip *InstancedPrimitive) AreaLight() interface{} { return nil }
