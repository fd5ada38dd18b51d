package light

import (
	"math"

	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/sampler"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

// DiffuseArea emits a constant radiance Lemit uniformly over a shape's
// surface, toward the shape's normal (or both sides, if TwoSided).
type DiffuseArea struct {
	Lemit    spectrum.SampledSpectrum
	Shape    shape.Shape
	TwoSided bool
	area     geom.Real
}

func NewDiffuseArea(lemit spectrum.SampledSpectrum, s shape.Shape, twoSided bool) *DiffuseArea {
	return &DiffuseArea{Lemit: lemit, Shape: s, TwoSided: twoSided, area: s.SurfaceArea()}
}

func (l *DiffuseArea) Flags() Flags { return Area }

// L is the radiance emitted from a point on the light's surface toward w.
func (l *DiffuseArea) L(intr shape.Interaction, w geom.Vector3) spectrum.SampledSpectrum {
	if l.TwoSided || intr.N.Dot(w) > 0 {
		return l.Lemit
	}
	return spectrum.Black
}

func (l *DiffuseArea) Power() spectrum.SampledSpectrum {
	scale := l.area * math.Pi
	if l.TwoSided {
		scale *= 2
	}
	return l.Lemit.Scale(scale)
}

func (l *DiffuseArea) SampleLi(ref shape.Interaction, u geom.Point2) (spectrum.SampledSpectrum, geom.Vector3, geom.Real, VisibilityTester) {
	pShape, pdf := l.Shape.SampleFrom(ref, u)
	if pdf == 0 || pShape.P.DistanceSquared(ref.P) == 0 {
		return spectrum.Black, geom.Vector3{}, 0, VisibilityTester{}
	}
	wi := pShape.P.Sub(ref.P).Normalize()
	vis := VisibilityTester{P0: ref, P1: pShape}
	return l.L(pShape, wi.Negate()), wi, pdf, vis
}

func (l *DiffuseArea) PdfLi(ref shape.Interaction, wi geom.Vector3) geom.Real {
	return l.Shape.PDFFrom(ref, wi)
}

func (l *DiffuseArea) SampleLe(u1, u2 geom.Point2) (spectrum.SampledSpectrum, geom.Ray, geom.Normal3, geom.Real, geom.Real) {
	pShape, pdfPos := l.Shape.Sample(u1)
	nLight := pShape.N

	var w geom.Vector3
	var pdfDir geom.Real
	if l.TwoSided {
		uu := u2
		if uu.X < 0.5 {
			uu.X = math.Min(uu.X*2, oneMinusEpsilon)
			w = sampler.CosineSampleHemisphere(uu)
		} else {
			uu.X = math.Min((uu.X-0.5)*2, oneMinusEpsilon)
			w = sampler.CosineSampleHemisphere(uu)
			w.Z *= -1
		}
		pdfDir = 0.5 * sampler.CosineHemispherePdf(math.Abs(w.Z))
	} else {
		w = sampler.CosineSampleHemisphere(u2)
		pdfDir = sampler.CosineHemispherePdf(w.Z)
	}

	v1, v2 := geom.CoordinateSystem(nLight.Vector())
	wWorld := v1.Scale(w.X).Add(v2.Scale(w.Y)).Add(nLight.Vector().Scale(w.Z))
	ray := pShape.SpawnRay(wWorld)
	return l.L(pShape, wWorld), ray, nLight, pdfPos, pdfDir
}

func (l *DiffuseArea) PdfLe(ray geom.Ray, n geom.Normal3) (geom.Real, geom.Real) {
	pdfPos := 1 / l.area
	if l.TwoSided {
		return pdfPos, 0.5 * sampler.CosineHemispherePdf(n.AbsDot(ray.Direction))
	}
	return pdfPos, sampler.CosineHemispherePdf(n.Dot(ray.Direction))
}

func (l *DiffuseArea) Le(geom.Ray) spectrum.SampledSpectrum { return spectrum.Black }

const oneMinusEpsilon = 1 - 1e-7
