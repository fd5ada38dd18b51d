// Package material builds BSDFs at a surface hit: each material takes its
// constant (untextured) parameters and assembles one or
// more reflect.BxDF lobes into a reflect.BSDF allocated from the frame
// arena, satisfying the primitive package's Material contract structurally
// (no import back to primitive, which would cycle through shape).
package material

import (
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/memory"
	"github.com/methusael13/phyray-go/pkg/reflect"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

func clampSpectrum(s spectrum.SampledSpectrum) spectrum.SampledSpectrum {
	return s.Clamp(0, 1)
}

// allocBSDF allocates the BSDF from the frame arena rather than the Go heap,
// matching the per-sample arena-reset lifetime every other scattering
// allocation in the renderer follows.
func allocBSDF(arena *memory.Arena, si *shape.SurfaceInteraction, eta geom.Real) *reflect.BSDF {
	bsdf := memory.Alloc[reflect.BSDF](arena)
	*bsdf = *reflect.NewBSDF(si.ShadingGeom.N, si.N, si.ShadingGeom.Dpdu, eta)
	si.BSDF = bsdf
	return bsdf
}
