package material

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/memory"
	"github.com/methusael13/phyray-go/pkg/reflect"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

func flatSurfaceInteraction() shape.SurfaceInteraction {
	n := geom.Normal3{X: 0, Y: 0, Z: 1}
	dpdu := geom.Vector3{X: 1, Y: 0, Z: 0}
	return shape.SurfaceInteraction{
		Interaction: shape.Interaction{N: n, Wo: geom.Vector3{X: 0, Y: 0, Z: 1}},
		Dpdu:        dpdu,
		ShadingGeom: shape.ShadingGeometry{N: n, Dpdu: dpdu},
	}
}

func TestMatteProducesLambertianLobeWhenSigmaZero(t *testing.T) {
	si := flatSurfaceInteraction()
	arena := memory.New(4096)
	m := NewMatte(spectrum.New(0.5), 0)
	m.ComputeScatteringFunctions(&si, arena)

	bsdf, ok := si.BSDF.(*reflect.BSDF)
	require.True(t, ok)
	require.Equal(t, 1, bsdf.NumComponents(reflect.AllTypes))
}

func TestMatteProducesOrenNayarLobeWhenSigmaNonzero(t *testing.T) {
	si := flatSurfaceInteraction()
	arena := memory.New(4096)
	m := NewMatte(spectrum.New(0.5), 30)
	m.ComputeScatteringFunctions(&si, arena)

	bsdf := si.BSDF.(*reflect.BSDF)
	require.Equal(t, 1, bsdf.NumComponents(reflect.Diffuse))
}

func TestMatteBlackReflectanceAddsNoLobe(t *testing.T) {
	si := flatSurfaceInteraction()
	arena := memory.New(4096)
	m := NewMatte(spectrum.New(0), 0)
	m.ComputeScatteringFunctions(&si, arena)

	bsdf := si.BSDF.(*reflect.BSDF)
	require.Equal(t, 0, bsdf.NumComponents(reflect.AllTypes))
}

func TestMirrorAddsSpecularReflectionLobe(t *testing.T) {
	si := flatSurfaceInteraction()
	arena := memory.New(4096)
	m := NewMirror(spectrum.New(0.9))
	m.ComputeScatteringFunctions(&si, arena)

	bsdf := si.BSDF.(*reflect.BSDF)
	require.Equal(t, 1, bsdf.NumComponents(reflect.Specular))
}

func TestGlassSmoothAddsFresnelSpecularLobe(t *testing.T) {
	si := flatSurfaceInteraction()
	arena := memory.New(4096)
	g := NewGlass(spectrum.New(1), spectrum.New(1), 1.5)
	g.ComputeScatteringFunctions(&si, arena)

	bsdf := si.BSDF.(*reflect.BSDF)
	require.Equal(t, 1, bsdf.NumComponents(reflect.Specular))
	require.InDelta(t, 1.5, bsdf.Eta, 1e-9)
}

func TestGlassRoughAddsSeparateReflectionAndTransmissionLobes(t *testing.T) {
	si := flatSurfaceInteraction()
	arena := memory.New(4096)
	g := NewRoughGlass(spectrum.New(1), spectrum.New(1), 1.5, 0.1, true)
	g.ComputeScatteringFunctions(&si, arena)

	bsdf := si.BSDF.(*reflect.BSDF)
	require.Equal(t, 1, bsdf.NumComponents(reflect.Reflection|reflect.Glossy))
	require.Equal(t, 1, bsdf.NumComponents(reflect.Transmission|reflect.Glossy))
}

func TestPlasticAddsDiffuseAndSpecularLobes(t *testing.T) {
	si := flatSurfaceInteraction()
	arena := memory.New(4096)
	p := NewPlastic(spectrum.New(0.5), spectrum.New(0.3), 0.1, true)
	p.ComputeScatteringFunctions(&si, arena)

	bsdf := si.BSDF.(*reflect.BSDF)
	require.Equal(t, 2, bsdf.NumComponents(reflect.AllTypes))
}

func TestMetalAddsMicrofacetReflectionLobe(t *testing.T) {
	si := flatSurfaceInteraction()
	arena := memory.New(4096)
	m := NewMetal(CopperEta, CopperK, 0.05, true)
	m.ComputeScatteringFunctions(&si, arena)

	bsdf := si.BSDF.(*reflect.BSDF)
	require.Equal(t, 1, bsdf.NumComponents(reflect.Glossy))
}

func TestMixCombinesLobesFromBothMaterials(t *testing.T) {
	si := flatSurfaceInteraction()
	arena := memory.New(4096)

	matte := NewMatte(spectrum.New(0.5), 0)
	mirror := NewMirror(spectrum.New(0.9))
	mix := NewMix(matte, mirror, 0.5)
	mix.ComputeScatteringFunctions(&si, arena)

	bsdf := si.BSDF.(*reflect.BSDF)
	require.Equal(t, 2, bsdf.NumComponents(reflect.AllTypes))
}
