// Package reflect implements BxDF lobes, Fresnel terms, microfacet
// distributions, and the BSDF container that composes several lobes into
// one scattering function evaluated in a shading-local frame where the
// normal is always +z.
package reflect

import (
	"math"

	"github.com/methusael13/phyray-go/pkg/geom"
)

func cosTheta(w geom.Vector3) geom.Real    { return w.Z }
func cosSqTheta(w geom.Vector3) geom.Real  { return w.Z * w.Z }
func absCosTheta(w geom.Vector3) geom.Real { return math.Abs(w.Z) }

func sinSqTheta(w geom.Vector3) geom.Real { return math.Max(0, 1-cosSqTheta(w)) }
func sinTheta(w geom.Vector3) geom.Real   { return math.Sqrt(sinSqTheta(w)) }

func tanTheta(w geom.Vector3) geom.Real   { return sinTheta(w) / cosTheta(w) }
func tanSqTheta(w geom.Vector3) geom.Real { return sinSqTheta(w) / cosSqTheta(w) }

func cosPhi(w geom.Vector3) geom.Real {
	st := sinTheta(w)
	if st == 0 {
		return 1
	}
	return clamp(w.X/st, -1, 1)
}

func sinPhi(w geom.Vector3) geom.Real {
	st := sinTheta(w)
	if st == 0 {
		return 0
	}
	return clamp(w.Y/st, -1, 1)
}

func cosSqPhi(w geom.Vector3) geom.Real { c := cosPhi(w); return c * c }
func sinSqPhi(w geom.Vector3) geom.Real { s := sinPhi(w); return s * s }

func cosDeltaPhi(wa, wb geom.Vector3) geom.Real {
	dotp := wa.X*wb.X + wa.Y*wb.Y
	waLen := wa.X*wa.X + wa.Y*wa.Y
	wbLen := wb.X*wb.X + wb.Y*wb.Y
	return clamp(dotp/math.Sqrt(waLen*wbLen), -1, 1)
}

func sameHemisphere(a, b geom.Vector3) bool { return a.Z*b.Z > 0 }

func clamp(v, lo, hi geom.Real) geom.Real {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// reflectAbout mirrors wo about n (MicrofacetReflection reflects about the
// sampled half vector with it).
func reflectAbout(wo, n geom.Vector3) geom.Vector3 {
	return wo.Negate().Add(n.Scale(2 * wo.Dot(n)))
}

// refractShading computes the refracted direction of wi across a surface
// with normal n and relative index of refraction eta = etaI/etaT, per
// Snell's law; returns ok=false on total internal reflection.
func refractShading(wi geom.Vector3, n geom.Normal3, eta geom.Real) (geom.Vector3, bool) {
	cosThetaI := n.Dot(wi)
	sinSqThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sinSqThetaT := eta * eta * sinSqThetaI
	if sinSqThetaT >= 1 {
		return geom.Vector3{}, false
	}
	cosThetaT := math.Sqrt(math.Max(0, 1-sinSqThetaT))
	wt := wi.Negate().Scale(eta).Add(n.Scale(eta*cosThetaI - cosThetaT).Vector())
	return wt, true
}

// cosineSampleHemisphere maps a unit-square sample to a cosine-weighted
// direction over the +z hemisphere via Shirley's concentric disk mapping.
func cosineSampleHemisphere(u geom.Point2) geom.Vector3 {
	d := concentricSampleDisk(u)
	z := math.Sqrt(math.Max(0, 1-d.X*d.X-d.Y*d.Y))
	return geom.Vector3{X: d.X, Y: d.Y, Z: z}
}

func concentricSampleDisk(u geom.Point2) geom.Point2 {
	ox := 2*u.X - 1
	oy := 2*u.Y - 1
	if ox == 0 && oy == 0 {
		return geom.Point2{}
	}
	var r, theta geom.Real
	if math.Abs(ox) > math.Abs(oy) {
		r = ox
		theta = (math.Pi / 4) * (oy / ox)
	} else {
		r = oy
		theta = (math.Pi / 2) - (math.Pi/4)*(ox/oy)
	}
	return geom.Point2{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

func sphericalDirection(sinTheta, cosTheta, phi geom.Real) geom.Vector3 {
	return geom.Vector3{X: sinTheta * math.Cos(phi), Y: sinTheta * math.Sin(phi), Z: cosTheta}
}
