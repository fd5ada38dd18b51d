package reflect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

func TestLambertianReflectionIsConstant(t *testing.T) {
	l := NewLambertianReflection(spectrum.New(0.5))
	wo := geom.Vector3{X: 0, Y: 0, Z: 1}
	wi := geom.Vector3{X: 0.1, Y: 0.2, Z: math.Sqrt(1 - 0.05)}
	require.InDelta(t, 0.5*invPi, l.F(wo, wi).At(0), 1e-9)
}

func TestLambertianSampleFPdfMatchesPdf(t *testing.T) {
	l := NewLambertianReflection(spectrum.New(1))
	wo := geom.Vector3{X: 0, Y: 0, Z: 1}
	_, wi, pdf := l.SampleF(wo, geom.Point2{X: 0.3, Y: 0.7})
	require.InDelta(t, l.Pdf(wo, wi), pdf, 1e-9)
	require.Greater(t, pdf, 0.0)
}

func TestOrenNayarReducesToLambertianWhenSigmaZero(t *testing.T) {
	o := NewOrenNayar(spectrum.New(0.6), 0)
	l := NewLambertianReflection(spectrum.New(0.6))
	wo := geom.Vector3{X: 0.2, Y: 0.1, Z: math.Sqrt(1 - 0.05)}
	wi := geom.Vector3{X: -0.1, Y: 0.3, Z: math.Sqrt(1 - 0.1)}
	require.InDelta(t, l.F(wo, wi).At(0), o.F(wo, wi).At(0), 1e-6)
}

func TestSpecularReflectionMirrorsDirection(t *testing.T) {
	s := NewSpecularReflection(spectrum.New(1), FresnelPureReflect{})
	wo := geom.Vector3{X: 0.3, Y: -0.4, Z: 0.866}
	f, wi, pdf := s.SampleF(wo, geom.Point2{})

	require.InDelta(t, -wo.X, wi.X, 1e-9)
	require.InDelta(t, -wo.Y, wi.Y, 1e-9)
	require.InDelta(t, wo.Z, wi.Z, 1e-9)
	require.InDelta(t, 1.0, pdf, 1e-9)
	require.Greater(t, f.At(0), 0.0)
}

func TestSpecularReflectionFIsZeroDelta(t *testing.T) {
	s := NewSpecularReflection(spectrum.New(1), FresnelPureReflect{})
	wo := geom.Vector3{X: 0, Y: 0, Z: 1}
	wi := geom.Vector3{X: 0, Y: 0, Z: 1}
	require.True(t, s.F(wo, wi).IsBlack())
	require.Equal(t, geom.Real(0), s.Pdf(wo, wi))
}

func TestSpecularTransmissionEnteringDenserMedium(t *testing.T) {
	st := NewSpecularTransmission(spectrum.New(1), 1.0, 1.5, Radiance)
	wo := geom.Vector3{X: 0, Y: 0, Z: 1}
	f, wi, pdf := st.SampleF(wo, geom.Point2{})

	require.InDelta(t, 1.0, pdf, 1e-9)
	require.Less(t, wi.Z, 0.0) // transmitted ray continues into the surface
	require.False(t, f.IsBlack())
}

func TestFresnelSpecularChoosesReflectionOrTransmissionByUSample(t *testing.T) {
	fs := NewFresnelSpecular(spectrum.New(1), spectrum.New(1), 1.0, 1.5, Radiance)
	wo := geom.Vector3{X: 0, Y: 0, Z: 1}

	_, wiReflect, _ := fs.SampleF(wo, geom.Point2{X: 0, Y: 0})
	require.InDelta(t, wo.Z, wiReflect.Z, 1e-9)

	_, wiTransmit, _ := fs.SampleF(wo, geom.Point2{X: 0.999, Y: 0})
	require.Less(t, wiTransmit.Z, 0.0)
}

func TestMicrofacetReflectionSampleFPdfMatchesPdf(t *testing.T) {
	d := NewTrowbridgeReitzDistribution(0.3, 0.3, true)
	fresnel := FresnelDielectric{EtaI: 1, EtaT: 1.5}
	m := NewMicrofacetReflection(spectrum.New(1), d, fresnel)

	wo := geom.Vector3{X: 0, Y: 0, Z: 1}
	_, wi, pdf := m.SampleF(wo, geom.Point2{X: 0.4, Y: 0.6})
	if pdf == 0 {
		return
	}
	require.InDelta(t, m.Pdf(wo, wi), pdf, 1e-6)
}

func TestScaledBxDFScalesFAndSampleF(t *testing.T) {
	inner := NewLambertianReflection(spectrum.New(1))
	scaled := NewScaledBxDF(inner, spectrum.New(0.25))

	wo := geom.Vector3{X: 0, Y: 0, Z: 1}
	wi := geom.Vector3{X: 0, Y: 0, Z: 1}
	require.InDelta(t, inner.F(wo, wi).At(0)*0.25, scaled.F(wo, wi).At(0), 1e-9)
}
