package material

import (
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/memory"
	"github.com/methusael13/phyray-go/pkg/reflect"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

// materialInterface is the narrow contract every material in this package
// satisfies; declared locally so Mix can hold a heterogeneous pair without
// importing the primitive package (which would cycle back through shape).
type materialInterface interface {
	ComputeScatteringFunctions(si *shape.SurfaceInteraction, arena *memory.Arena)
}

// Mix blends two materials' BSDFs by computing both into scratch
// interactions and re-adding each lobe scaled by its weight, rather than
// probabilistically picking one material per hit — this keeps a single
// deterministic BSDF per shading point instead of adding sampling noise
// from the material choice itself.
type Mix struct {
	M1, M2 materialInterface
	Amount geom.Real // 0 = all M1, 1 = all M2
}

func NewMix(m1, m2 materialInterface, amount geom.Real) *Mix {
	return &Mix{M1: m1, M2: m2, Amount: clamp(amount, 0, 1)}
}

func (m *Mix) ComputeScatteringFunctions(si *shape.SurfaceInteraction, arena *memory.Arena) {
	scratch1 := *si
	scratch1.BSDF = nil
	m.M1.ComputeScatteringFunctions(&scratch1, arena)

	scratch2 := *si
	scratch2.BSDF = nil
	m.M2.ComputeScatteringFunctions(&scratch2, arena)

	bsdf := allocBSDF(arena, si, 1)
	if b1, ok := scratch1.BSDF.(*reflect.BSDF); ok {
		addScaledLobes(bsdf, b1, 1-m.Amount)
	}
	if b2, ok := scratch2.BSDF.(*reflect.BSDF); ok {
		addScaledLobes(bsdf, b2, m.Amount)
	}
}

func addScaledLobes(dst *reflect.BSDF, src *reflect.BSDF, weight geom.Real) {
	scale := spectrum.New(float64(weight))
	for _, lobe := range src.Lobes() {
		dst.Add(reflect.NewScaledBxDF(lobe, scale))
	}
}
