package material

import (
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/memory"
	"github.com/methusael13/phyray-go/pkg/reflect"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

// Matte is a purely diffuse material: Lambertian when Sigma is zero,
// Oren-Nayar rough-diffuse otherwise.
type Matte struct {
	Kd    spectrum.SampledSpectrum
	Sigma geom.Real // roughness, in degrees; 0 selects Lambertian
}

// NewMatte creates a matte material with the given diffuse reflectance.
func NewMatte(kd spectrum.SampledSpectrum, sigmaDeg geom.Real) *Matte {
	return &Matte{Kd: kd, Sigma: clamp(sigmaDeg, 0, 90)}
}

func (m *Matte) ComputeScatteringFunctions(si *shape.SurfaceInteraction, arena *memory.Arena) {
	bsdf := allocBSDF(arena, si, 1)
	r := clampSpectrum(m.Kd)
	if r.IsBlack() {
		return
	}
	if m.Sigma == 0 {
		bsdf.Add(reflect.NewLambertianReflection(r))
	} else {
		bsdf.Add(reflect.NewOrenNayar(r, m.Sigma))
	}
}

func clamp(v, lo, hi geom.Real) geom.Real {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
