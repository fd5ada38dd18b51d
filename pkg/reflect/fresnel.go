package reflect

import (
	"math"

	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

// Fresnel computes the fraction of light reflected at a dielectric or
// conductor interface as a function of the cosine of the incident angle.
type Fresnel interface {
	Evaluate(cosThetaI geom.Real) spectrum.SampledSpectrum
}

// FrDielectric is the unpolarized Fresnel reflectance of a dielectric
// interface, including total-internal-reflection handling.
func FrDielectric(cosThetaI, etaI, etaT geom.Real) geom.Real {
	cosThetaI = clamp(cosThetaI, -1, 1)

	if cosThetaI <= 0 {
		etaI, etaT = etaT, etaI
		cosThetaI = math.Abs(cosThetaI)
	}

	sinThetaI := math.Sqrt(math.Max(0, 1-cosThetaI*cosThetaI))
	sinThetaT := etaI * sinThetaI / etaT
	if sinThetaT >= 1 {
		return 1
	}
	cosThetaT := math.Sqrt(math.Max(0, 1-sinThetaT*sinThetaT))

	rParl := ((etaT * cosThetaI) - (etaI * cosThetaT)) / ((etaT * cosThetaI) + (etaI * cosThetaT))
	rPerp := ((etaI * cosThetaI) - (etaT * cosThetaT)) / ((etaI * cosThetaI) + (etaT * cosThetaT))
	return (rParl*rParl + rPerp*rPerp) * 0.5
}

// FrConductor is the unpolarized Fresnel reflectance of a conductor
// interface with complex index of refraction eta + i*k.
func FrConductor(cosThetaI geom.Real, etaI, etaT, k spectrum.SampledSpectrum) spectrum.SampledSpectrum {
	cosThetaI = clamp(cosThetaI, -1, 1)
	eta := etaT.Div(etaI)
	etaK := k.Div(etaI)

	cosThetaISq := cosThetaI * cosThetaI
	sinThetaISq := 1 - cosThetaISq
	etaSq := eta.Mul(eta)
	etaKSq := etaK.Mul(etaK)

	t0 := etaSq.Sub(etaKSq).Sub(spectrum.New(sinThetaISq))
	aSqPlusBSq := t0.Mul(t0).Add(etaSq.Mul(etaKSq).Scale(4)).Sqrt()
	t1 := aSqPlusBSq.Add(spectrum.New(cosThetaISq))
	a := aSqPlusBSq.Add(t0).Scale(0.5).Sqrt()
	t2 := a.Scale(2 * cosThetaI)
	rs := t1.Sub(t2).Div(t1.Add(t2))

	t3 := aSqPlusBSq.Scale(cosThetaISq).Add(spectrum.New(sinThetaISq * sinThetaISq))
	t4 := t2.Scale(sinThetaISq)
	rp := rs.Mul(t3.Sub(t4)).Div(t3.Add(t4))

	return rs.Add(rp).Scale(0.5)
}

type FresnelDielectric struct{ EtaI, EtaT geom.Real }

func (f FresnelDielectric) Evaluate(cosThetaI geom.Real) spectrum.SampledSpectrum {
	return spectrum.New(FrDielectric(cosThetaI, f.EtaI, f.EtaT))
}

type FresnelConductor struct{ EtaI, EtaT, K spectrum.SampledSpectrum }

func (f FresnelConductor) Evaluate(cosThetaI geom.Real) spectrum.SampledSpectrum {
	return FrConductor(math.Abs(cosThetaI), f.EtaI, f.EtaT, f.K)
}

// FresnelPureReflect always reflects 100% of incident light; used by
// perfect-mirror materials that bypass physical Fresnel weighting.
type FresnelPureReflect struct{}

func (FresnelPureReflect) Evaluate(geom.Real) spectrum.SampledSpectrum { return spectrum.New(1) }
