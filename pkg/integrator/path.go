package integrator

import (
	"math"

	"github.com/methusael13/phyray-go/pkg/camera"
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/light"
	"github.com/methusael13/phyray-go/pkg/lightdistrib"
	"github.com/methusael13/phyray-go/pkg/memory"
	"github.com/methusael13/phyray-go/pkg/primitive"
	"github.com/methusael13/phyray-go/pkg/reflect"
	"github.com/methusael13/phyray-go/pkg/sampler"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

// Path implements unidirectional path tracing with next-event estimation:
// at every non-specular bounce it samples one light via the scene's light
// distribution in addition to sampling the BSDF, combining the two with
// the power heuristic.
type Path struct {
	SamplerIntegrator

	MaxDepth          int
	RRThreshold       geom.Real
	LightDistribution string // name passed to lightdistrib.New: "uniform", "power", or "spatial"

	lightDistrib lightdistrib.Distribution
}

// NewPath builds a path tracer. lightSampleStrategy selects the light
// distribution ("uniform", "power" or "spatial"; any other value falls back
// to "spatial").
func NewPath(maxDepth int, cam camera.Camera, samp sampler.Sampler, pixelBounds geom.Bounds2i, rrThreshold geom.Real, lightSampleStrategy string) *Path {
	p := &Path{MaxDepth: maxDepth, RRThreshold: rrThreshold, LightDistribution: lightSampleStrategy}
	p.SamplerIntegrator = newSamplerIntegrator(p, cam, samp, pixelBounds)
	return p
}

// Preprocess builds the configured light distribution against the scene's
// lights and world bounds.
func (p *Path) Preprocess(scene *Scene) {
	p.lightDistrib = lightdistrib.New(p.LightDistribution, scene.Lights, scene.WorldBound)
}

// Li implements the bounce loop: at each vertex, add emitted light from a
// first-bounce or post-specular hit (or from an escaped ray's infinite
// lights), estimate direct lighting via the light distribution, sample the
// BSDF for the next direction, and apply Russian roulette once the path is
// long enough to make the variance it trades for speed worthwhile. eta
// scaling from refractive bounces is tracked separately so a ray about to
// refract back out isn't terminated just because it passed through a
// medium that temporarily boosted its throughput.
func (p *Path) Li(r geom.Ray, scene *Scene, samp sampler.Sampler, arena *memory.Arena, depth int) spectrum.SampledSpectrum {
	l := spectrum.Black
	beta := spectrum.New(1)
	ray := r
	specularBounce := false
	etaScale := geom.Real(1)

	for bounces := 0; ; bounces++ {
		si, foundIntersection := scene.Intersect(&ray)

		if bounces == 0 || specularBounce {
			if foundIntersection {
				l = l.Add(beta.Mul(emittedLight(&si, ray)))
			} else {
				for _, inf := range scene.InfiniteLights {
					l = l.Add(beta.Mul(inf.Le(ray)))
				}
			}
		}

		if !foundIntersection || bounces >= p.MaxDepth {
			break
		}

		if prim, ok := si.Primitive.(primitive.Primitive); ok {
			prim.ComputeScatteringFunctions(&si, arena)
		}
		bsdf := bsdfAt(&si)
		if bsdf == nil {
			ray = si.SpawnRay(ray.Direction)
			bounces--
			continue
		}

		distrib := p.lightDistrib.Lookup(si.P)

		if bsdf.NumComponents(nonSpecular) > 0 {
			l = l.Add(beta.Mul(sampleOneLight(si.Interaction, bsdf, scene, samp, distrib)))
		}

		wo := ray.Direction.Negate()
		f, wi, pdf, sampledType := bsdf.SampleF(wo, samp.GetNextSample2D(), samp.GetNextSample1D(), reflect.AllTypes)
		if f.IsBlack() || pdf == 0 {
			break
		}
		beta = beta.Mul(f).Scale(float64(si.ShadingGeom.N.AbsDot(wi)) / float64(pdf))

		specularBounce = sampledType&reflect.Specular != 0
		if sampledType&reflect.Specular != 0 && sampledType&reflect.Transmission != 0 {
			eta := bsdf.Eta
			if wo.Dot(si.N.Vector()) > 0 {
				etaScale *= eta * eta
			} else {
				etaScale /= eta * eta
			}
		}
		ray = si.SpawnRay(wi)

		rrBeta := beta.Scale(float64(etaScale))
		if rrBeta.MaxComponent() < float64(p.RRThreshold) && bounces > 3 {
			q := math.Max(0.05, 1-rrBeta.MaxComponent())
			if float64(samp.GetNextSample1D()) < q {
				break
			}
			beta = beta.Scale(1 / (1 - q))
		}
	}

	return l
}

// emittedLight returns the radiance an area-light-emitting hit contributes
// back toward the ray that found it, or black for a non-emissive hit.
func emittedLight(si *shape.SurfaceInteraction, ray geom.Ray) spectrum.SampledSpectrum {
	al := primitiveAreaLight(si)
	if al == nil {
		return spectrum.Black
	}
	areaLight, ok := al.(light.AreaLight)
	if !ok {
		return spectrum.Black
	}
	return areaLight.L(si.Interaction, ray.Direction.Negate())
}
