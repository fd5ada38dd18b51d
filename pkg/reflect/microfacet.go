package reflect

import (
	"math"

	"github.com/methusael13/phyray-go/pkg/geom"
)

// Distribution is a microfacet normal distribution function: it describes
// the differential area of microfacets oriented along a given half-vector,
// and can importance-sample either its full normal distribution or the
// visible (projected, unmasked) subset of it.
type Distribution interface {
	D(wh geom.Vector3) geom.Real
	Lambda(w geom.Vector3) geom.Real
	G1(w geom.Vector3) geom.Real
	G(wo, wi geom.Vector3) geom.Real
	SampleWh(wo geom.Vector3, u geom.Point2) geom.Vector3
	Pdf(wo, wh geom.Vector3) geom.Real
	SamplesVisibleArea() bool
}

func g1(d Distribution, w geom.Vector3) geom.Real { return 1 / (1 + d.Lambda(w)) }
func g(d Distribution, wo, wi geom.Vector3) geom.Real {
	return 1 / (1 + d.Lambda(wo) + d.Lambda(wi))
}

func distributionPdf(d Distribution, wo, wh geom.Vector3) geom.Real {
	if d.SamplesVisibleArea() {
		return d.D(wh) * d.G1(wo) * wo.AbsDot(wh) / absCosTheta(wo)
	}
	return d.D(wh) * absCosTheta(wh)
}

// BeckmannDistribution is the Gaussian-slope microfacet model of Beckmann
// and Spizzichino (1963).
type BeckmannDistribution struct {
	AlphaX, AlphaY geom.Real
	SampleVisible  bool
}

func NewBeckmannDistribution(alphaX, alphaY geom.Real, sampleVisible bool) *BeckmannDistribution {
	return &BeckmannDistribution{AlphaX: alphaX, AlphaY: alphaY, SampleVisible: sampleVisible}
}

// BeckmannRoughnessToAlpha is an empirical polynomial fit mapping a
// perceptually-linear [0,1] roughness to the distribution's alpha
// parameter.
func BeckmannRoughnessToAlpha(roughness geom.Real) geom.Real {
	roughness = math.Max(roughness, 1e-3)
	x := math.Log(roughness)
	return 1.62142 + 0.819955*x + 0.1734*x*x + 0.0171201*x*x*x + 0.000640711*x*x*x*x
}

func (b *BeckmannDistribution) SamplesVisibleArea() bool { return b.SampleVisible }

func (b *BeckmannDistribution) D(wh geom.Vector3) geom.Real {
	tan2Theta := tanSqTheta(wh)
	if math.IsInf(tan2Theta, 1) {
		return 0
	}
	cos4Theta := cosSqTheta(wh) * cosSqTheta(wh)
	return math.Exp(-tan2Theta*(cosSqPhi(wh)/(b.AlphaX*b.AlphaX)+sinSqPhi(wh)/(b.AlphaY*b.AlphaY))) /
		(math.Pi * b.AlphaX * b.AlphaY * cos4Theta)
}

func (b *BeckmannDistribution) Lambda(w geom.Vector3) geom.Real {
	absTanTheta := math.Abs(tanTheta(w))
	if math.IsInf(absTanTheta, 1) {
		return 0
	}
	alpha := math.Sqrt(cosSqPhi(w)*b.AlphaX*b.AlphaX + sinSqPhi(w)*b.AlphaY*b.AlphaY)
	a := 1 / (alpha * absTanTheta)
	if a >= 1.6 {
		return 0
	}
	return (1 - 1.259*a + 0.396*a*a) / (3.535*a + 2.181*a*a)
}

func (b *BeckmannDistribution) G1(w geom.Vector3) geom.Real      { return g1(b, w) }
func (b *BeckmannDistribution) G(wo, wi geom.Vector3) geom.Real  { return g(b, wo, wi) }
func (b *BeckmannDistribution) Pdf(wo, wh geom.Vector3) geom.Real { return distributionPdf(b, wo, wh) }

func (b *BeckmannDistribution) SampleWh(wo geom.Vector3, u geom.Point2) geom.Vector3 {
	if !b.SampleVisible {
		var tan2Theta, phi geom.Real
		if b.AlphaX == b.AlphaY {
			logSample := math.Log(1 - u.X)
			tan2Theta = -b.AlphaX * b.AlphaX * logSample
			phi = u.Y * 2 * math.Pi
		} else {
			logSample := math.Log(1 - u.X)
			phi = math.Atan(b.AlphaY / b.AlphaX * math.Tan(2*math.Pi*u.Y+0.5*math.Pi))
			if u.Y > 0.5 {
				phi += math.Pi
			}
			sp, cp := math.Sin(phi), math.Cos(phi)
			ax2, ay2 := b.AlphaX*b.AlphaX, b.AlphaY*b.AlphaY
			tan2Theta = -logSample / (cp*cp/ax2 + sp*sp/ay2)
		}
		cosT := 1 / math.Sqrt(1+tan2Theta)
		sinT := math.Sqrt(math.Max(0, 1-cosT*cosT))
		wh := sphericalDirection(sinT, cosT, phi)
		if !sameHemisphere(wo, wh) {
			wh = wh.Negate()
		}
		return wh
	}

	flip := wo.Z < 0
	woS := wo
	if flip {
		woS = wo.Negate()
	}
	wh := beckmannSampleVisible(woS, b.AlphaX, b.AlphaY, u.X, u.Y)
	if flip {
		wh = wh.Negate()
	}
	return wh
}

// TrowbridgeReitzDistribution is the GGX microfacet model, which has
// heavier tails than Beckmann and better matches measured highlights.
type TrowbridgeReitzDistribution struct {
	AlphaX, AlphaY geom.Real
	SampleVisible  bool
}

func NewTrowbridgeReitzDistribution(alphaX, alphaY geom.Real, sampleVisible bool) *TrowbridgeReitzDistribution {
	return &TrowbridgeReitzDistribution{AlphaX: alphaX, AlphaY: alphaY, SampleVisible: sampleVisible}
}

func TrowbridgeReitzRoughnessToAlpha(roughness geom.Real) geom.Real {
	return BeckmannRoughnessToAlpha(roughness)
}

func (t *TrowbridgeReitzDistribution) SamplesVisibleArea() bool { return t.SampleVisible }

func (t *TrowbridgeReitzDistribution) D(wh geom.Vector3) geom.Real {
	tan2Theta := tanSqTheta(wh)
	if math.IsInf(tan2Theta, 1) {
		return 0
	}
	cos4Theta := cosSqTheta(wh) * cosSqTheta(wh)
	e := (cosSqPhi(wh)/(t.AlphaX*t.AlphaX) + sinSqPhi(wh)/(t.AlphaY*t.AlphaY)) * tan2Theta
	return 1 / (math.Pi * t.AlphaX * t.AlphaY * cos4Theta * (1 + e) * (1 + e))
}

func (t *TrowbridgeReitzDistribution) Lambda(w geom.Vector3) geom.Real {
	absTanTheta := math.Abs(tanTheta(w))
	if math.IsInf(absTanTheta, 1) {
		return 0
	}
	alpha := math.Sqrt(cosSqPhi(w)*t.AlphaX*t.AlphaX + sinSqPhi(w)*t.AlphaY*t.AlphaY)
	alpha2Tan2Theta := (alpha * absTanTheta) * (alpha * absTanTheta)
	return (-1 + math.Sqrt(1+alpha2Tan2Theta)) / 2
}

func (t *TrowbridgeReitzDistribution) G1(w geom.Vector3) geom.Real      { return g1(t, w) }
func (t *TrowbridgeReitzDistribution) G(wo, wi geom.Vector3) geom.Real  { return g(t, wo, wi) }
func (t *TrowbridgeReitzDistribution) Pdf(wo, wh geom.Vector3) geom.Real { return distributionPdf(t, wo, wh) }

func (t *TrowbridgeReitzDistribution) SampleWh(wo geom.Vector3, u geom.Point2) geom.Vector3 {
	if !t.SampleVisible {
		var cosT, phi geom.Real
		phi = 2 * math.Pi * u.Y
		if t.AlphaX == t.AlphaY {
			tanTheta2 := t.AlphaX * t.AlphaX * u.X / (1 - u.X)
			cosT = 1 / math.Sqrt(1+tanTheta2)
		} else {
			phi = math.Atan(t.AlphaY / t.AlphaX * math.Tan(2*math.Pi*u.Y+0.5*math.Pi))
			if u.Y > 0.5 {
				phi += math.Pi
			}
			sp, cp := math.Sin(phi), math.Cos(phi)
			ax2, ay2 := t.AlphaX*t.AlphaX, t.AlphaY*t.AlphaY
			alpha2 := 1 / (cp*cp/ax2 + sp*sp/ay2)
			tanTheta2 := alpha2 * u.X / (1 - u.X)
			cosT = 1 / math.Sqrt(1+tanTheta2)
		}
		sinT := math.Sqrt(math.Max(0, 1-cosT*cosT))
		wh := sphericalDirection(sinT, cosT, phi)
		if !sameHemisphere(wo, wh) {
			wh = wh.Negate()
		}
		return wh
	}

	flip := wo.Z < 0
	woS := wo
	if flip {
		woS = wo.Negate()
	}
	wh := trowbridgeReitzSampleVisible(woS, t.AlphaX, t.AlphaY, u.X, u.Y)
	if flip {
		wh = wh.Negate()
	}
	return wh
}

// beckmannSampleVisible draws a normal from the distribution of visible
// (projected) microfacet normals for incident direction wi, following
// Heitz & d'Eon's visible-normal sampling scheme.
func beckmannSampleVisible(wi geom.Vector3, alphaX, alphaY, u1, u2 geom.Real) geom.Vector3 {
	wiStretched := geom.Vector3{X: alphaX * wi.X, Y: alphaY * wi.Y, Z: wi.Z}.Normalize()

	slopeX, slopeY := beckmannSample11(cosTheta(wiStretched), u1, u2)

	tmp := cosPhi(wiStretched)*slopeX - sinPhi(wiStretched)*slopeY
	slopeY = sinPhi(wiStretched)*slopeX + cosPhi(wiStretched)*slopeY
	slopeX = tmp

	slopeX *= alphaX
	slopeY *= alphaY

	return geom.Vector3{X: -slopeX, Y: -slopeY, Z: 1}.Normalize()
}

func beckmannSample11(cosThetaI, u1, u2 geom.Real) (slopeX, slopeY geom.Real) {
	if cosThetaI > 0.9999 {
		r := math.Sqrt(-math.Log(1 - u1))
		sp, cp := math.Sin(2*math.Pi*u2), math.Cos(2*math.Pi*u2)
		return r * cp, r * sp
	}

	sinThetaI := math.Sqrt(math.Max(0, 1-cosThetaI*cosThetaI))
	tanThetaI := sinThetaI / cosThetaI
	cotThetaI := 1 / tanThetaI

	a := geom.Real(-1)
	c := math.Erf(cotThetaI)
	sampleX := math.Max(u1, 1e-6)

	thetaI := math.Acos(cosThetaI)
	fit := 1 + thetaI*(-0.876+thetaI*(0.4265-0.0594*thetaI))
	b := c - (1+c)*math.Pow(1-sampleX, fit)

	const sqrtPiInv = 1 / 1.7724538509055159
	normalization := 1 / (1 + c + sqrtPiInv*tanThetaI*math.Exp(-cotThetaI*cotThetaI))

	for it := 0; it < 10; it++ {
		if !(b >= a && b <= c) {
			b = 0.5 * (a + c)
		}
		invErf := erfinv(b)
		value := normalization*(1+b+sqrtPiInv*tanThetaI*math.Exp(-invErf*invErf)) - sampleX
		derivative := normalization * (1 - invErf*tanThetaI)

		if math.Abs(value) < 1e-5 {
			break
		}
		if value > 0 {
			c = b
		} else {
			a = b
		}
		b -= value / derivative
	}

	slopeX = erfinv(b)
	slopeY = erfinv(2*math.Max(u2, 1e-6) - 1)
	return slopeX, slopeY
}

// erfinv is the inverse error function, evaluated via Giles' two-branch
// polynomial approximation in w = -ln(1-x^2) followed by two
// Newton-Raphson refinement steps; the
// standard library does not expose one.
func erfinv(x geom.Real) geom.Real {
	x = clamp(x, -0.99999, 0.99999)
	w := -math.Log((1 - x) * (1 + x))
	var p geom.Real
	if w < 5 {
		w -= 2.5
		p = 2.81022636e-08
		p = 3.43273939e-07 + p*w
		p = -3.5233877e-06 + p*w
		p = -4.39150654e-06 + p*w
		p = 0.00021858087 + p*w
		p = -0.00125372503 + p*w
		p = -0.00417768164 + p*w
		p = 0.246640727 + p*w
		p = 1.50140941 + p*w
	} else {
		w = math.Sqrt(w) - 3
		p = -0.000200214257
		p = 0.000100950558 + p*w
		p = 0.00134934322 + p*w
		p = -0.00367342844 + p*w
		p = 0.00573950773 + p*w
		p = -0.0076224613 + p*w
		p = 0.00943887047 + p*w
		p = 1.00167406 + p*w
		p = 2.83297682 + p*w
	}
	r := p * x
	for i := 0; i < 2; i++ {
		r -= (math.Erf(r) - x) / (2 / math.Sqrt(math.Pi) * math.Exp(-r*r))
	}
	return r
}

func trowbridgeReitzSampleVisible(wi geom.Vector3, alphaX, alphaY, u1, u2 geom.Real) geom.Vector3 {
	wiStretched := geom.Vector3{X: alphaX * wi.X, Y: alphaY * wi.Y, Z: wi.Z}.Normalize()

	slopeX, slopeY := trowbridgeReitzSample11(cosTheta(wiStretched), u1, u2)

	tmp := cosPhi(wiStretched)*slopeX - sinPhi(wiStretched)*slopeY
	slopeY = sinPhi(wiStretched)*slopeX + cosPhi(wiStretched)*slopeY
	slopeX = tmp

	slopeX *= alphaX
	slopeY *= alphaY

	return geom.Vector3{X: -slopeX, Y: -slopeY, Z: 1}.Normalize()
}

func trowbridgeReitzSample11(cosThetaV, u1, u2 geom.Real) (slopeX, slopeY geom.Real) {
	if cosThetaV > 0.9999 {
		r := math.Sqrt(u1 / (1 - u1))
		phi := 2 * math.Pi * u2
		return r * math.Cos(phi), r * math.Sin(phi)
	}

	sinThetaV := math.Sqrt(math.Max(0, 1-cosThetaV*cosThetaV))
	tanThetaV := sinThetaV / cosThetaV
	a := 1 / tanThetaV
	g1 := 2 / (1 + math.Sqrt(1+1/(a*a)))

	A := 2*u1/g1 - 1
	tmp := 1 / (A*A - 1)
	if tmp > 1e10 {
		tmp = 1e10
	}
	B := tanThetaV
	d := math.Sqrt(math.Max(B*B*tmp*tmp-(A*A-B*B)*tmp, 0))
	slopeX1 := B*tmp - d
	slopeX2 := B*tmp + d
	if A < 0 || slopeX2 > 1/tanThetaV {
		slopeX = slopeX1
	} else {
		slopeX = slopeX2
	}

	var s geom.Real
	if u2 > 0.5 {
		s = 1
		u2 = 2 * (u2 - 0.5)
	} else {
		s = -1
		u2 = 2 * (0.5 - u2)
	}
	z := (u2 * (u2*(u2*0.27385-0.73369) + 0.46341)) /
		(u2*(u2*(u2*0.093073+0.309420)-1.0) + 0.597999)
	slopeY = s * z * math.Sqrt(1+slopeX*slopeX)
	return slopeX, slopeY
}
