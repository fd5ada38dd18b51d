package reflect

import (
	"math"

	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

const invPi = 1 / math.Pi

// TransportMode distinguishes a path traced from the camera from one traced
// from a light, which matters for the non-symmetric scaling term applied by
// specular transmission under radiance transport.
type TransportMode int

const (
	Radiance TransportMode = iota
	Importance
)

// Type is a bitset classifying a BxDF lobe along two independent axes:
// reflection vs. transmission, and diffuse/glossy/specular.
type Type int

const (
	Reflection Type = 1 << iota
	Transmission
	Diffuse
	Glossy
	Specular
	AllTypes = Reflection | Transmission | Diffuse | Glossy | Specular
)

// BxDF is a single scattering lobe evaluated in the local shading frame,
// where the surface normal is always +z.
type BxDF interface {
	Type() Type
	MatchesFlags(t Type) bool

	// F is the distribution function value for a pair of directions; zero
	// for lobes with a delta distribution (use SampleF exclusively there).
	F(wo, wi geom.Vector3) spectrum.SampledSpectrum

	// SampleF picks wi given wo and a [0,1)^2 sample, returning the BxDF
	// value, the sampled direction, and its pdf.
	SampleF(wo geom.Vector3, u geom.Point2) (f spectrum.SampledSpectrum, wi geom.Vector3, pdf geom.Real)

	Pdf(wo, wi geom.Vector3) geom.Real
}

func (t Type) Has(flag Type) bool { return t&flag != 0 }

func matchesFlags(lobe, query Type) bool { return lobe&query == lobe }

// defaultSampleF is the cosine-weighted-hemisphere sampling shared by every
// non-delta BxDF that does not need a specialized importance sampler.
func defaultSampleF(b BxDF, wo geom.Vector3, u geom.Point2) (spectrum.SampledSpectrum, geom.Vector3, geom.Real) {
	wi := cosineSampleHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	pdf := defaultPdf(wo, wi)
	return b.F(wo, wi), wi, pdf
}

// defaultPdf is the cosine-weighted-hemisphere pdf shared by every
// non-delta, non-specialized BxDF.
func defaultPdf(wo, wi geom.Vector3) geom.Real {
	if !sameHemisphere(wo, wi) {
		return 0
	}
	return absCosTheta(wi) * invPi
}

// LambertianReflection is a perfectly diffuse reflecting surface.
type LambertianReflection struct{ R spectrum.SampledSpectrum }

func NewLambertianReflection(r spectrum.SampledSpectrum) *LambertianReflection {
	return &LambertianReflection{R: r}
}

func (l *LambertianReflection) Type() Type             { return Reflection | Diffuse }
func (l *LambertianReflection) MatchesFlags(t Type) bool { return matchesFlags(l.Type(), t) }
func (l *LambertianReflection) F(wo, wi geom.Vector3) spectrum.SampledSpectrum {
	return l.R.Scale(invPi)
}
func (l *LambertianReflection) SampleF(wo geom.Vector3, u geom.Point2) (spectrum.SampledSpectrum, geom.Vector3, geom.Real) {
	return defaultSampleF(l, wo, u)
}
func (l *LambertianReflection) Pdf(wo, wi geom.Vector3) geom.Real { return defaultPdf(wo, wi) }

// OrenNayar is a rough diffuse reflectance model parameterized by the
// surface's microfacet slope standard deviation sigma, in degrees.
type OrenNayar struct {
	R    spectrum.SampledSpectrum
	A, B geom.Real
}

func NewOrenNayar(r spectrum.SampledSpectrum, sigmaDeg geom.Real) *OrenNayar {
	sigma := radians(sigmaDeg)
	sigma2 := sigma * sigma
	return &OrenNayar{
		R: r,
		A: 1 - sigma2/(2*(sigma2+0.33)),
		B: 0.45 * sigma2 / (sigma2 + 0.09),
	}
}

func (o *OrenNayar) Type() Type               { return Reflection | Diffuse }
func (o *OrenNayar) MatchesFlags(t Type) bool { return matchesFlags(o.Type(), t) }

func (o *OrenNayar) F(wo, wi geom.Vector3) spectrum.SampledSpectrum {
	sinThetaI := sinTheta(wi)
	sinThetaO := sinTheta(wo)

	maxCos := geom.Real(0)
	if sinThetaI > 1e-4 && sinThetaO > 1e-4 {
		maxCos = math.Max(0, cosDeltaPhi(wi, wo))
	}

	var sinAlpha, tanBeta geom.Real
	if absCosTheta(wi) > absCosTheta(wo) {
		sinAlpha = sinThetaO
		tanBeta = sinThetaI / absCosTheta(wi)
	} else {
		sinAlpha = sinThetaI
		tanBeta = sinThetaO / absCosTheta(wo)
	}

	return o.R.Scale(invPi * (o.A + o.B*maxCos*sinAlpha*tanBeta))
}

func (o *OrenNayar) SampleF(wo geom.Vector3, u geom.Point2) (spectrum.SampledSpectrum, geom.Vector3, geom.Real) {
	return defaultSampleF(o, wo, u)
}
func (o *OrenNayar) Pdf(wo, wi geom.Vector3) geom.Real { return defaultPdf(wo, wi) }

// SpecularReflection is a perfect-mirror delta BRDF weighted by a Fresnel
// term.
type SpecularReflection struct {
	R       spectrum.SampledSpectrum
	Fresnel Fresnel
}

func NewSpecularReflection(r spectrum.SampledSpectrum, fresnel Fresnel) *SpecularReflection {
	return &SpecularReflection{R: r, Fresnel: fresnel}
}

func (s *SpecularReflection) Type() Type               { return Reflection | Specular }
func (s *SpecularReflection) MatchesFlags(t Type) bool { return matchesFlags(s.Type(), t) }
func (s *SpecularReflection) F(wo, wi geom.Vector3) spectrum.SampledSpectrum {
	return spectrum.Black
}
func (s *SpecularReflection) Pdf(wo, wi geom.Vector3) geom.Real { return 0 }

func (s *SpecularReflection) SampleF(wo geom.Vector3, u geom.Point2) (spectrum.SampledSpectrum, geom.Vector3, geom.Real) {
	wi := geom.Vector3{X: -wo.X, Y: -wo.Y, Z: wo.Z}
	f := s.Fresnel.Evaluate(cosTheta(wi)).Mul(s.R).Scale(1 / absCosTheta(wi))
	return f, wi, 1
}

// SpecularTransmission is a perfect dielectric delta BTDF, scaling radiance
// by (etaI/etaT)^2 when transporting camera-side radiance (non-symmetric
// scaling, since radiance is not invariant under refraction).
type SpecularTransmission struct {
	T          spectrum.SampledSpectrum
	EtaA, EtaB geom.Real // EtaA: outside (incident) side, EtaB: inside
	Mode       TransportMode
}

func NewSpecularTransmission(t spectrum.SampledSpectrum, etaA, etaB geom.Real, mode TransportMode) *SpecularTransmission {
	return &SpecularTransmission{T: t, EtaA: etaA, EtaB: etaB, Mode: mode}
}

func (s *SpecularTransmission) Type() Type               { return Transmission | Specular }
func (s *SpecularTransmission) MatchesFlags(t Type) bool { return matchesFlags(s.Type(), t) }
func (s *SpecularTransmission) F(wo, wi geom.Vector3) spectrum.SampledSpectrum {
	return spectrum.Black
}
func (s *SpecularTransmission) Pdf(wo, wi geom.Vector3) geom.Real { return 0 }

func (s *SpecularTransmission) SampleF(wo geom.Vector3, u geom.Point2) (spectrum.SampledSpectrum, geom.Vector3, geom.Real) {
	entering := cosTheta(wo) > 0
	etaI, etaT := s.EtaA, s.EtaB
	if !entering {
		etaI, etaT = s.EtaB, s.EtaA
	}

	n := geom.Normal3{X: 0, Y: 0, Z: 1}
	if !entering {
		n = n.Negate()
	}
	wt, ok := refractShading(wo, n, etaI/etaT)
	if !ok {
		return spectrum.Black, geom.Vector3{}, 0
	}

	ft := s.T.Scale(1 - FrDielectric(cosTheta(wt), etaI, etaT))
	if s.Mode == Radiance {
		ft = ft.Scale((etaI * etaI) / (etaT * etaT))
	}
	pdf := geom.Real(1)
	return ft.Scale(1 / absCosTheta(wt)), wt, pdf
}

// FresnelSpecular is a single delta lobe combining specular reflection and
// transmission, choosing between them per-sample by a Fresnel-weighted coin
// flip; this avoids needing two separate shadow-ray-incompatible delta
// lobes for a glass surface.
type FresnelSpecular struct {
	R, T       spectrum.SampledSpectrum
	EtaA, EtaB geom.Real
	Mode       TransportMode
}

func NewFresnelSpecular(r, t spectrum.SampledSpectrum, etaA, etaB geom.Real, mode TransportMode) *FresnelSpecular {
	return &FresnelSpecular{R: r, T: t, EtaA: etaA, EtaB: etaB, Mode: mode}
}

func (f *FresnelSpecular) Type() Type               { return Reflection | Transmission | Specular }
func (f *FresnelSpecular) MatchesFlags(t Type) bool { return matchesFlags(f.Type(), t) }
func (f *FresnelSpecular) F(wo, wi geom.Vector3) spectrum.SampledSpectrum {
	return spectrum.Black
}
func (f *FresnelSpecular) Pdf(wo, wi geom.Vector3) geom.Real { return 0 }

func (f *FresnelSpecular) SampleF(wo geom.Vector3, u geom.Point2) (spectrum.SampledSpectrum, geom.Vector3, geom.Real) {
	fr := FrDielectric(cosTheta(wo), f.EtaA, f.EtaB)

	if u.X < fr {
		wi := geom.Vector3{X: -wo.X, Y: -wo.Y, Z: wo.Z}
		pdf := fr
		return f.R.Scale(fr / absCosTheta(wi)), wi, pdf
	}

	entering := cosTheta(wo) > 0
	etaI, etaT := f.EtaA, f.EtaB
	if !entering {
		etaI, etaT = f.EtaB, f.EtaA
	}
	n := geom.Normal3{X: 0, Y: 0, Z: 1}
	if !entering {
		n = n.Negate()
	}
	wt, ok := refractShading(wo, n, etaI/etaT)
	if !ok {
		return spectrum.Black, geom.Vector3{}, 0
	}

	ft := f.T.Scale(1 - fr)
	if f.Mode == Radiance {
		ft = ft.Scale((etaI * etaI) / (etaT * etaT))
	}
	pdf := 1 - fr
	return ft.Scale(1 / absCosTheta(wt)), wt, pdf
}

// MicrofacetReflection is a rough-conductor/rough-dielectric BRDF following
// the Torrance-Sparrow microfacet model.
type MicrofacetReflection struct {
	R            spectrum.SampledSpectrum
	Distribution Distribution
	Fresnel      Fresnel
}

func NewMicrofacetReflection(r spectrum.SampledSpectrum, d Distribution, fresnel Fresnel) *MicrofacetReflection {
	return &MicrofacetReflection{R: r, Distribution: d, Fresnel: fresnel}
}

func (m *MicrofacetReflection) Type() Type               { return Reflection | Glossy }
func (m *MicrofacetReflection) MatchesFlags(t Type) bool { return matchesFlags(m.Type(), t) }

func (m *MicrofacetReflection) F(wo, wi geom.Vector3) spectrum.SampledSpectrum {
	cosThetaO := absCosTheta(wo)
	cosThetaI := absCosTheta(wi)
	wh := wi.Add(wo)
	if cosThetaI == 0 || cosThetaO == 0 || (wh == geom.Vector3{}) {
		return spectrum.Black
	}
	wh = wh.Normalize()
	if wh.Z < 0 {
		wh = wh.Negate()
	}

	fr := m.Fresnel.Evaluate(wi.Dot(wh))
	d := m.Distribution.D(wh)
	g := m.Distribution.G(wo, wi)
	return m.R.Mul(fr).Scale(d * g / (4 * cosThetaI * cosThetaO))
}

func (m *MicrofacetReflection) SampleF(wo geom.Vector3, u geom.Point2) (spectrum.SampledSpectrum, geom.Vector3, geom.Real) {
	if wo.Z == 0 {
		return spectrum.Black, geom.Vector3{}, 0
	}
	wh := m.Distribution.SampleWh(wo, u)
	wi := reflectAbout(wo, wh)
	if !sameHemisphere(wo, wi) {
		return spectrum.Black, geom.Vector3{}, 0
	}
	pdf := m.Distribution.Pdf(wo, wh) / (4 * wo.Dot(wh))
	return m.F(wo, wi), wi, pdf
}

func (m *MicrofacetReflection) Pdf(wo, wi geom.Vector3) geom.Real {
	if !sameHemisphere(wo, wi) {
		return 0
	}
	wh := wo.Add(wi).Normalize()
	return m.Distribution.Pdf(wo, wh) / (4 * wo.Dot(wh))
}

// MicrofacetTransmission is a rough-dielectric BTDF following Walter et
// al.'s generalization of the Torrance-Sparrow model to refraction.
type MicrofacetTransmission struct {
	T              spectrum.SampledSpectrum
	Distribution   Distribution
	EtaA, EtaB     geom.Real
	fresnel        FresnelDielectric
	Mode           TransportMode
}

func NewMicrofacetTransmission(t spectrum.SampledSpectrum, d Distribution, etaA, etaB geom.Real, mode TransportMode) *MicrofacetTransmission {
	return &MicrofacetTransmission{T: t, Distribution: d, EtaA: etaA, EtaB: etaB, fresnel: FresnelDielectric{EtaI: etaA, EtaT: etaB}, Mode: mode}
}

func (m *MicrofacetTransmission) Type() Type               { return Transmission | Glossy }
func (m *MicrofacetTransmission) MatchesFlags(t Type) bool { return matchesFlags(m.Type(), t) }

func (m *MicrofacetTransmission) F(wo, wi geom.Vector3) spectrum.SampledSpectrum {
	if sameHemisphere(wo, wi) {
		return spectrum.Black
	}

	cosThetaO := cosTheta(wo)
	cosThetaI := cosTheta(wi)
	if cosThetaI == 0 || cosThetaO == 0 {
		return spectrum.Black
	}

	eta := geom.Real(1)
	if cosThetaO > 0 {
		eta = m.EtaB / m.EtaA
	} else {
		eta = m.EtaA / m.EtaB
	}

	wh := wo.Add(wi.Scale(eta)).Normalize()
	if wh.Z < 0 {
		wh = wh.Negate()
	}
	if wo.Dot(wh)*wi.Dot(wh) > 0 {
		return spectrum.Black
	}

	fr := m.fresnel.Evaluate(wo.Dot(wh))
	sqrtDenom := wo.Dot(wh) + eta*wi.Dot(wh)
	factor := geom.Real(1)
	if m.Mode == Radiance {
		factor = 1 / eta
	}

	d := m.Distribution.D(wh)
	g := m.Distribution.G(wo, wi)
	numerator := d * g * eta * eta * wi.AbsDot(wh) * wo.AbsDot(wh) * factor * factor
	denom := cosThetaI * cosThetaO * sqrtDenom * sqrtDenom

	oneMinusFr := spectrum.New(1).Sub(fr)
	return oneMinusFr.Mul(m.T).Scale(math.Abs(numerator / denom))
}

func (m *MicrofacetTransmission) SampleF(wo geom.Vector3, u geom.Point2) (spectrum.SampledSpectrum, geom.Vector3, geom.Real) {
	if wo.Z == 0 {
		return spectrum.Black, geom.Vector3{}, 0
	}
	wh := m.Distribution.SampleWh(wo, u)
	if wo.Dot(wh) < 0 {
		return spectrum.Black, geom.Vector3{}, 0
	}

	eta := geom.Real(1)
	if cosTheta(wo) > 0 {
		eta = m.EtaA / m.EtaB
	} else {
		eta = m.EtaB / m.EtaA
	}

	whN := geom.NormalFromVector(wh)
	wi, ok := refractShading(wo, whN, eta)
	if !ok {
		return spectrum.Black, geom.Vector3{}, 0
	}
	return m.F(wo, wi), wi, m.Pdf(wo, wi)
}

func (m *MicrofacetTransmission) Pdf(wo, wi geom.Vector3) geom.Real {
	if sameHemisphere(wo, wi) {
		return 0
	}
	eta := geom.Real(1)
	if cosTheta(wo) > 0 {
		eta = m.EtaB / m.EtaA
	} else {
		eta = m.EtaA / m.EtaB
	}
	wh := wo.Add(wi.Scale(eta)).Normalize()
	if wh.Z < 0 {
		wh = wh.Negate()
	}
	if wo.Dot(wh)*wi.Dot(wh) > 0 {
		return 0
	}
	sqrtDenom := wo.Dot(wh) + eta*wi.Dot(wh)
	dwhDwi := math.Abs((eta * eta * wi.Dot(wh)) / (sqrtDenom * sqrtDenom))
	return m.Distribution.Pdf(wo, wh) * dwhDwi
}

// ScaledBxDF wraps another lobe and scales its contribution by a spectrum,
// used to build a weighted mixture of two materials' BSDFs.
type ScaledBxDF struct {
	Inner BxDF
	Scale spectrum.SampledSpectrum
}

func NewScaledBxDF(inner BxDF, scale spectrum.SampledSpectrum) *ScaledBxDF {
	return &ScaledBxDF{Inner: inner, Scale: scale}
}

func (s *ScaledBxDF) Type() Type               { return s.Inner.Type() }
func (s *ScaledBxDF) MatchesFlags(t Type) bool { return s.Inner.MatchesFlags(t) }
func (s *ScaledBxDF) F(wo, wi geom.Vector3) spectrum.SampledSpectrum {
	return s.Inner.F(wo, wi).Mul(s.Scale)
}
func (s *ScaledBxDF) Pdf(wo, wi geom.Vector3) geom.Real { return s.Inner.Pdf(wo, wi) }
func (s *ScaledBxDF) SampleF(wo geom.Vector3, u geom.Point2) (spectrum.SampledSpectrum, geom.Vector3, geom.Real) {
	f, wi, pdf := s.Inner.SampleF(wo, u)
	return f.Mul(s.Scale), wi, pdf
}

func radians(deg geom.Real) geom.Real { return deg * math.Pi / 180 }
