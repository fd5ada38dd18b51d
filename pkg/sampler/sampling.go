// Package sampler provides the per-pixel sample generators used by the
// integrator, plus the small Monte Carlo mapping functions (disk, hemisphere,
// sphere) shared by lights, cameras and BxDFs.
package sampler

import (
	"math"

	"github.com/methusael13/phyray-go/pkg/geom"
)

// UniformSampleDisk maps a unit square sample to a unit disk without
// preserving sample spacing.
func UniformSampleDisk(u geom.Point2) geom.Point2 {
	r := math.Sqrt(u.X)
	theta := 2 * math.Pi * u.Y
	return geom.Point2{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// ConcentricSampleDisk maps a unit square sample to a unit disk via Shirley's
// concentric mapping, which keeps nearby input samples nearby in the output
// (unlike the polar UniformSampleDisk), important for stratified samplers.
func ConcentricSampleDisk(u geom.Point2) geom.Point2 {
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

// CosineSampleHemisphere samples a direction over the +z hemisphere with
// density proportional to cos(theta), via Malley's method: a concentric disk
// sample lifted onto the hemisphere.
func CosineSampleHemisphere(u geom.Point2) geom.Vector3 {
	d := ConcentricSampleDisk(u)
	z := math.Sqrt(math.Max(0, 1-d.X*d.X-d.Y*d.Y))
	return geom.Vector3{X: d.X, Y: d.Y, Z: z}
}

// CosineHemispherePdf is the solid-angle pdf of CosineSampleHemisphere for a
// direction whose cosine with the hemisphere's axis is cosTheta.
func CosineHemispherePdf(cosTheta geom.Real) geom.Real {
	return cosTheta / math.Pi
}

// UniformSampleSphere samples a direction uniformly over the full sphere.
func UniformSampleSphere(u geom.Point2) geom.Vector3 {
	z := 1 - 2*u.X
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u.Y
	return geom.Vector3{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

// UniformSpherePdf is the constant solid-angle pdf of UniformSampleSphere.
func UniformSpherePdf() geom.Real {
	return 1 / (4 * math.Pi)
}

// UniformConePdf is the constant solid-angle pdf of sampling uniformly
// within a cone of half-angle whose cosine is cosThetaMax.
func UniformConePdf(cosThetaMax geom.Real) geom.Real {
	return 1 / (2 * math.Pi * (1 - cosThetaMax))
}

// PowerHeuristic applies Veach's two-strategy power heuristic (beta=2) used
// to weight samples from a light- and a BSDF-sampling strategy in a
// multiple-importance-sampling estimator.
func PowerHeuristic(nf int, fPdf geom.Real, ng int, gPdf geom.Real) geom.Real {
	f := geom.Real(nf) * fPdf
	g := geom.Real(ng) * gPdf
	if f+g == 0 {
		return 0
	}
	return (f * f) / (f*f + g*g)
}
