package material

import (
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/memory"
	"github.com/methusael13/phyray-go/pkg/reflect"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

// Plastic layers a Lambertian diffuse base under a dielectric microfacet
// specular coat.
type Plastic struct {
	Kd, Ks         spectrum.SampledSpectrum
	Roughness      geom.Real
	RemapRoughness bool
}

func NewPlastic(kd, ks spectrum.SampledSpectrum, roughness geom.Real, remapRoughness bool) *Plastic {
	return &Plastic{Kd: kd, Ks: ks, Roughness: roughness, RemapRoughness: remapRoughness}
}

func (p *Plastic) ComputeScatteringFunctions(si *shape.SurfaceInteraction, arena *memory.Arena) {
	bsdf := allocBSDF(arena, si, 1)

	kd := clampSpectrum(p.Kd)
	if !kd.IsBlack() {
		bsdf.Add(reflect.NewLambertianReflection(kd))
	}

	ks := clampSpectrum(p.Ks)
	if !ks.IsBlack() {
		fresnel := reflect.FresnelDielectric{EtaI: 1.5, EtaT: 1}
		rough := p.Roughness
		if p.RemapRoughness {
			rough = reflect.TrowbridgeReitzRoughnessToAlpha(rough)
		}
		distrib := reflect.NewTrowbridgeReitzDistribution(rough, rough, true)
		bsdf.Add(reflect.NewMicrofacetReflection(ks, distrib, fresnel))
	}
}
