package material

import (
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/memory"
	"github.com/methusael13/phyray-go/pkg/reflect"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

// Glass is a dielectric material: a smooth surface produces a single
// Fresnel-weighted reflection/transmission lobe, a rough one splits into
// separate microfacet reflection and transmission lobes.
type Glass struct {
	Kr, Kt           spectrum.SampledSpectrum
	Eta              geom.Real
	URough, VRough   geom.Real
	RemapRoughness   bool
}

// NewGlass creates a smooth dielectric with the given index of refraction.
func NewGlass(kr, kt spectrum.SampledSpectrum, eta geom.Real) *Glass {
	return &Glass{Kr: kr, Kt: kt, Eta: eta}
}

// NewRoughGlass creates a rough dielectric with isotropic roughness.
func NewRoughGlass(kr, kt spectrum.SampledSpectrum, eta, roughness geom.Real, remapRoughness bool) *Glass {
	return &Glass{Kr: kr, Kt: kt, Eta: eta, URough: roughness, VRough: roughness, RemapRoughness: remapRoughness}
}

func (g *Glass) ComputeScatteringFunctions(si *shape.SurfaceInteraction, arena *memory.Arena) {
	bsdf := allocBSDF(arena, si, g.Eta)

	r := clampSpectrum(g.Kr)
	t := clampSpectrum(g.Kt)
	if r.IsBlack() && t.IsBlack() {
		return
	}

	isSpecular := g.URough == 0 && g.VRough == 0
	if isSpecular {
		bsdf.Add(reflect.NewFresnelSpecular(r, t, 1, g.Eta, reflect.Radiance))
		return
	}

	uRough, vRough := g.URough, g.VRough
	if g.RemapRoughness {
		uRough = reflect.TrowbridgeReitzRoughnessToAlpha(uRough)
		vRough = reflect.TrowbridgeReitzRoughnessToAlpha(vRough)
	}
	distrib := reflect.NewTrowbridgeReitzDistribution(uRough, vRough, true)

	if !r.IsBlack() {
		fresnel := reflect.FresnelDielectric{EtaI: 1, EtaT: g.Eta}
		bsdf.Add(reflect.NewMicrofacetReflection(r, distrib, fresnel))
	}
	if !t.IsBlack() {
		bsdf.Add(reflect.NewMicrofacetTransmission(t, distrib, 1, g.Eta, reflect.Radiance))
	}
}
