// Package light implements emitters: delta-position and delta-direction
// point/distant lights plus area lights bound to a shape, the shared
// VisibilityTester shadow-ray check, and the SampleLi/SampleLe/PdfLi/PdfLe
// interface. The integrators here call SampleLi and PdfLi; no integrator
// calls SampleLe or PdfLe.
package light

import (
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

// Flags classifies a light's fundamental sampling behavior; the integrator
// uses this to decide whether a BSDF sample can ever hit it via MIS.
type Flags int

const (
	DeltaPosition Flags = 1 << iota
	DeltaDirection
	Area
	Infinite
)

// IsDelta reports whether sampling this light's incident direction from a
// point always yields the same direction (no density to compare against a
// BSDF sample, so MIS weighting against it is skipped).
func (f Flags) IsDelta() bool {
	return f&(DeltaPosition|DeltaDirection) != 0
}

// Occluder is the narrow scene dependency a VisibilityTester needs; an
// *accel.BVH satisfies it structurally.
type Occluder interface {
	IntersectP(ray *geom.Ray) bool
}

// Light is the common interface for emitters. SampleLi/PdfLi serve the
// direct-lighting estimator (importance sampling incident radiance at a
// reference point); SampleLe/PdfLe serve light-tracing style integrators
// that need to emit particles from the light itself.
type Light interface {
	Flags() Flags

	// Power is the light's total emitted power, used by the power-weighted
	// light distribution.
	Power() spectrum.SampledSpectrum

	// SampleLi samples an incident direction wi at ref and returns the
	// radiance arriving along it, its pdf, and a VisibilityTester for the
	// shadow ray connecting ref to the sampled point on the light.
	SampleLi(ref shape.Interaction, u geom.Point2) (li spectrum.SampledSpectrum, wi geom.Vector3, pdf geom.Real, vis VisibilityTester)
	PdfLi(ref shape.Interaction, wi geom.Vector3) geom.Real

	// SampleLe samples a ray leaving the light along with the pdfs of its
	// origin and direction, and the light-space normal at the origin.
	SampleLe(u1, u2 geom.Point2) (le spectrum.SampledSpectrum, ray geom.Ray, nLight geom.Normal3, pdfPos, pdfDir geom.Real)
	PdfLe(ray geom.Ray, nLight geom.Normal3) (pdfPos, pdfDir geom.Real)

	// Le is the radiance an infinite (environment) light contributes along a
	// ray that escaped the scene; every light here has finite extent, so it
	// defaults to black the way the base light class does when a light
	// doesn't override it.
	Le(ray geom.Ray) spectrum.SampledSpectrum
}

// AreaLight additionally reports emitted radiance toward a direction from a
// point on its surface, used when a path-traced ray happens to hit the
// light's shape directly.
type AreaLight interface {
	Light
	L(intr shape.Interaction, w geom.Vector3) spectrum.SampledSpectrum
}

// VisibilityTester defers the occlusion test between two interactions until
// the integrator is ready to trace the shadow ray, so a light can be sampled
// without forcing an intersection the caller may decide to skip.
type VisibilityTester struct {
	P0, P1 shape.Interaction
}

// Unoccluded reports whether the segment between P0 and P1 is unobstructed.
func (v VisibilityTester) Unoccluded(scene Occluder) bool {
	ray := v.P0.SpawnRayTo(v.P1.P)
	return !scene.IntersectP(&ray)
}
