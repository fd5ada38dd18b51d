// Package integrator walks camera rays through the scene, gathering
// emitted and reflected radiance via path tracing. It ties together every
// other package: sampler-driven camera rays, the accelerator for
// intersection, materials for BSDF construction, and the light
// distribution for direct-lighting importance sampling.
package integrator

import (
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/light"
	"github.com/methusael13/phyray-go/pkg/shape"
)

// Aggregate is the narrow dependency Scene needs from the scene's
// acceleration structure; an *accel.BVH satisfies it structurally.
type Aggregate interface {
	WorldBounds() geom.Bounds3
	Intersect(ray *geom.Ray) (shape.SurfaceInteraction, bool)
	IntersectP(ray *geom.Ray) bool
}

// Scene bundles the acceleration structure with the lights that illuminate
// it, separating out infinite (environment) lights since a ray that
// escapes the scene only ever queries those.
type Scene struct {
	Aggregate      Aggregate
	Lights         []light.Light
	InfiniteLights []light.Light
	WorldBound     geom.Bounds3
}

// NewScene partitions lights into the full list and the infinite-only
// subset, and preprocesses every light against the aggregate's world
// bounds (distant lights need it to place their virtual emitting disk).
func NewScene(aggregate Aggregate, lights []light.Light) *Scene {
	bounds := aggregate.WorldBounds()

	s := &Scene{Aggregate: aggregate, Lights: lights, WorldBound: bounds}
	for _, l := range lights {
		if p, ok := l.(interface{ Preprocess(geom.Bounds3) }); ok {
			p.Preprocess(bounds)
		}
		if l.Flags()&light.Infinite != 0 {
			s.InfiniteLights = append(s.InfiniteLights, l)
		}
	}
	return s
}

// Intersect finds the closest primitive hit along ray, shrinking its TMax.
func (s *Scene) Intersect(ray *geom.Ray) (shape.SurfaceInteraction, bool) {
	return s.Aggregate.Intersect(ray)
}

// IntersectP is a cheaper any-hit query, also satisfying light.Occluder so
// a VisibilityTester can take a *Scene directly.
func (s *Scene) IntersectP(ray *geom.Ray) bool {
	return s.Aggregate.IntersectP(ray)
}
