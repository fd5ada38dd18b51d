package integrator

import (
	"math"

	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/light"
	"github.com/methusael13/phyray-go/pkg/lightdistrib"
	"github.com/methusael13/phyray-go/pkg/primitive"
	"github.com/methusael13/phyray-go/pkg/reflect"
	"github.com/methusael13/phyray-go/pkg/sampler"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

// nonSpecular is every BSDF lobe flag except the delta ones, which can
// never be hit by sampling a light direction (their f/pdf are zero almost
// everywhere) and so are excluded from the direct-lighting estimate.
const nonSpecular = reflect.AllTypes &^ reflect.Specular

// bsdfAt returns the BSDF NewBSDF attached to si during
// ComputeScatteringFunctions, or nil if the hit has no scattering
// functions (a transparent "continue through" material).
func bsdfAt(si *shape.SurfaceInteraction) *reflect.BSDF {
	bsdf, _ := si.BSDF.(*reflect.BSDF)
	return bsdf
}

// primitiveAreaLight returns the light a surface interaction's primitive
// emits as, or nil.
func primitiveAreaLight(si *shape.SurfaceInteraction) light.Light {
	p, ok := si.Primitive.(primitive.Primitive)
	if !ok {
		return nil
	}
	l, _ := p.AreaLight().(light.Light)
	return l
}

// sampleOneLight picks a single light — either uniformly, or (when
// distrib is non-nil) proportional to the spatial light distribution's
// weight at the interaction's point — and returns its direct-lighting
// estimate divided by the probability of having picked it, the standard
// unbiased reduction of "sample every light" to "sample one light".
func sampleOneLight(it shape.Interaction, bsdf *reflect.BSDF, scene *Scene, samp sampler.Sampler, distrib *lightdistrib.Distribution1D) spectrum.SampledSpectrum {
	nLights := len(scene.Lights)
	if nLights == 0 {
		return spectrum.Black
	}

	var lightNum int
	var lightPdf geom.Real
	if distrib != nil {
		var pdf geom.Real
		lightNum, pdf, _ = distrib.SampleDiscrete(samp.GetNextSample1D())
		if pdf == 0 {
			return spectrum.Black
		}
		lightPdf = pdf
	} else {
		lightNum = int(math.Min(float64(samp.GetNextSample1D())*float64(nLights), float64(nLights-1)))
		lightPdf = 1 / geom.Real(nLights)
	}

	chosen := scene.Lights[lightNum]
	uLight := samp.GetNextSample2D()
	uScattering := samp.GetNextSample2D()

	return estimateDirect(it, bsdf, uScattering, chosen, uLight, scene).Scale(1 / float64(lightPdf))
}

// estimateDirect computes the direct-lighting contribution of one light at
// one interaction via multiple importance sampling: one sample drawn from
// the light's own distribution, one drawn from the BSDF, each weighted by
// the power heuristic so neither strategy's high-variance tails dominate.
func estimateDirect(it shape.Interaction, bsdf *reflect.BSDF, uScattering geom.Point2, l light.Light, uLight geom.Point2, scene *Scene) spectrum.SampledSpectrum {
	ld := spectrum.Black

	li, wi, lightPdf, vis := l.SampleLi(it, uLight)
	if lightPdf > 0 && !li.IsBlack() {
		f := bsdf.F(it.Wo, wi, nonSpecular).Scale(float64(it.N.AbsDot(wi)))
		scatteringPdf := bsdf.Pdf(it.Wo, wi, nonSpecular)

		if !f.IsBlack() {
			if !vis.Unoccluded(scene) {
				li = spectrum.Black
			}
			if !li.IsBlack() {
				if l.Flags().IsDelta() {
					ld = ld.Add(f.Mul(li).Scale(1 / float64(lightPdf)))
				} else {
					weight := sampler.PowerHeuristic(1, lightPdf, 1, scatteringPdf)
					ld = ld.Add(f.Mul(li).Scale(float64(weight) / float64(lightPdf)))
				}
			}
		}
	}

	if l.Flags().IsDelta() {
		return ld
	}

	f, wi, scatteringPdf, sampledType := bsdf.SampleF(it.Wo, uScattering, 0.5, nonSpecular)
	f = f.Scale(float64(it.N.AbsDot(wi)))
	sampledSpecular := sampledType&reflect.Specular != 0

	if f.IsBlack() || scatteringPdf <= 0 {
		return ld
	}

	weight := geom.Real(1)
	if !sampledSpecular {
		lPdf := l.PdfLi(it, wi)
		if lPdf == 0 {
			return ld
		}
		weight = sampler.PowerHeuristic(1, scatteringPdf, 1, lPdf)
	}

	ray := it.SpawnRay(wi)
	lightIsect, foundIntersection := scene.Intersect(&ray)

	lightLi := spectrum.Black
	if foundIntersection {
		if hitLight := primitiveAreaLight(&lightIsect); hitLight == l {
			if al, ok := hitLight.(light.AreaLight); ok {
				lightLi = al.L(lightIsect.Interaction, wi.Negate())
			}
		}
	} else {
		lightLi = l.Le(ray)
	}

	if !lightLi.IsBlack() {
		ld = ld.Add(f.Mul(lightLi).Scale(float64(weight) / float64(scatteringPdf)))
	}
	return ld
}
