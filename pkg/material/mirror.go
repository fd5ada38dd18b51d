package material

import (
	"github.com/methusael13/phyray-go/pkg/memory"
	"github.com/methusael13/phyray-go/pkg/reflect"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

// Mirror is a perfect specular reflector.
type Mirror struct {
	Kr spectrum.SampledSpectrum
}

func NewMirror(kr spectrum.SampledSpectrum) *Mirror { return &Mirror{Kr: kr} }

func (m *Mirror) ComputeScatteringFunctions(si *shape.SurfaceInteraction, arena *memory.Arena) {
	bsdf := allocBSDF(arena, si, 1)
	r := clampSpectrum(m.Kr)
	if r.IsBlack() {
		return
	}
	bsdf.Add(reflect.NewSpecularReflection(r, reflect.FresnelPureReflect{}))
}
