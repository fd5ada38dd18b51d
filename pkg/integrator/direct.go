package integrator

import (
	"github.com/methusael13/phyray-go/pkg/camera"
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/memory"
	"github.com/methusael13/phyray-go/pkg/primitive"
	"github.com/methusael13/phyray-go/pkg/sampler"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

// DirectLighting estimates radiance from a single scattering event: emitted
// light from the first hit plus one light-sampling pass via sampleOneLight,
// with no recursive indirect-bounce term. It reuses the exact estimator Path
// calls at every vertex, just without the surrounding bounce loop.
type DirectLighting struct {
	SamplerIntegrator
}

// NewDirectLighting builds a direct-lighting-only integrator.
func NewDirectLighting(cam camera.Camera, samp sampler.Sampler, pixelBounds geom.Bounds2i) *DirectLighting {
	d := &DirectLighting{}
	d.SamplerIntegrator = newSamplerIntegrator(d, cam, samp, pixelBounds)
	return d
}

// Preprocess is a no-op: direct lighting always picks its one light
// uniformly, it has no light distribution to build.
func (d *DirectLighting) Preprocess(scene *Scene) {}

// Li returns emitted light at the first hit plus its direct-lighting
// estimate. depth is unused; DirectLighting never recurses.
func (d *DirectLighting) Li(r geom.Ray, scene *Scene, samp sampler.Sampler, arena *memory.Arena, depth int) spectrum.SampledSpectrum {
	si, foundIntersection := scene.Intersect(&r)
	if !foundIntersection {
		l := spectrum.Black
		for _, inf := range scene.InfiniteLights {
			l = l.Add(inf.Le(r))
		}
		return l
	}

	l := emittedLight(&si, r)

	if prim, ok := si.Primitive.(primitive.Primitive); ok {
		prim.ComputeScatteringFunctions(&si, arena)
	}
	bsdf := bsdfAt(&si)
	if bsdf == nil {
		return l
	}

	if bsdf.NumComponents(nonSpecular) > 0 {
		l = l.Add(sampleOneLight(si.Interaction, bsdf, scene, samp, nil))
	}
	return l
}
