package light

import (
	"math"

	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/sampler"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

// Point is an isotropic point emitter with no solid-angle extent: every
// sample_li call returns the same, fully-determined direction.
type Point struct {
	P geom.Point3
	I spectrum.SampledSpectrum
}

func NewPoint(lightToWorld geom.Transform, intensity spectrum.SampledSpectrum) *Point {
	return &Point{P: lightToWorld.Point(geom.Point3{}), I: intensity}
}

func (l *Point) Flags() Flags { return DeltaPosition }

func (l *Point) Power() spectrum.SampledSpectrum {
	return l.I.Scale(4 * math.Pi)
}

func (l *Point) SampleLi(ref shape.Interaction, u geom.Point2) (spectrum.SampledSpectrum, geom.Vector3, geom.Real, VisibilityTester) {
	wi := l.P.Sub(ref.P).Normalize()
	distSq := l.P.DistanceSquared(ref.P)
	vis := VisibilityTester{P0: ref, P1: shape.Interaction{P: l.P}}
	return l.I.Scale(1 / distSq), wi, 1, vis
}

func (l *Point) PdfLi(shape.Interaction, geom.Vector3) geom.Real { return 0 }

func (l *Point) SampleLe(u1, u2 geom.Point2) (spectrum.SampledSpectrum, geom.Ray, geom.Normal3, geom.Real, geom.Real) {
	d := sampler.UniformSampleSphere(u1)
	ray := geom.NewRay(l.P, d)
	return l.I, ray, geom.NormalFromVector(d), 1, sampler.UniformSpherePdf()
}

func (l *Point) PdfLe(geom.Ray, geom.Normal3) (geom.Real, geom.Real) {
	return 0, sampler.UniformSpherePdf()
}

func (l *Point) Le(geom.Ray) spectrum.SampledSpectrum { return spectrum.Black }
