package integrator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/methusael13/phyray-go/pkg/accel"
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/light"
	"github.com/methusael13/phyray-go/pkg/primitive"
	"github.com/methusael13/phyray-go/pkg/reflect"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

// lambertianInteraction builds a matte surface interaction facing a point
// light with its BSDF already attached, matching what ComputeScatteringFunctions
// would have produced.
func lambertianInteraction(p geom.Point3, n geom.Normal3, kd spectrum.SampledSpectrum) (shape.Interaction, *reflect.BSDF) {
	it := shape.Interaction{P: p, N: n, Wo: n.Vector()}
	bsdf := reflect.NewBSDF(n, n, geom.Vector3{X: 1}, 1)
	bsdf.Add(reflect.NewLambertianReflection(kd))
	return it, bsdf
}

func emptyAggregateScene(lights []light.Light) *Scene {
	bvh := accel.Build(nil)
	return NewScene(bvh, lights)
}

func TestEstimateDirectIsBlackWhenLightBehindSurface(t *testing.T) {
	scene := emptyAggregateScene(nil)
	it, bsdf := lambertianInteraction(geom.Point3{}, geom.Normal3{X: 0, Y: 0, Z: 1}, spectrum.New(0.8))

	behind := light.NewPoint(geom.Translate(geom.Vector3{Z: -5}), spectrum.New(10))
	ld := estimateDirect(it, bsdf, geom.Point2{}, behind, geom.Point2{}, scene)
	require.True(t, ld.IsBlack())
}

func TestEstimateDirectIsPositiveWhenLightInFront(t *testing.T) {
	scene := emptyAggregateScene(nil)
	it, bsdf := lambertianInteraction(geom.Point3{}, geom.Normal3{X: 0, Y: 0, Z: 1}, spectrum.New(0.8))

	front := light.NewPoint(geom.Translate(geom.Vector3{Z: 5}), spectrum.New(10))
	ld := estimateDirect(it, bsdf, geom.Point2{}, front, geom.Point2{}, scene)

	require.False(t, ld.IsBlack())
	require.Greater(t, ld.Y(), 0.0)
	require.False(t, ld.HasNaN())
}

func TestEstimateDirectShadowedByOccluderIsBlack(t *testing.T) {
	occluder := shape.NewSphere(geom.Translate(geom.Vector3{Z: 2.5}), 1, false)
	bvh := accel.Build([]primitive.Primitive{primitive.NewGeometricPrimitive(occluder, nil, nil)})

	front := light.NewPoint(geom.Translate(geom.Vector3{Z: 5}), spectrum.New(10))
	scene := NewScene(bvh, []light.Light{front})

	it, bsdf := lambertianInteraction(geom.Point3{}, geom.Normal3{X: 0, Y: 0, Z: 1}, spectrum.New(0.8))
	ld := estimateDirect(it, bsdf, geom.Point2{}, front, geom.Point2{}, scene)
	require.True(t, ld.IsBlack(), "a sphere sitting directly between the surface and the light should fully occlude it")
}

func TestSampleOneLightUniformAcrossManyLightsHasNoNaN(t *testing.T) {
	lights := []light.Light{
		light.NewPoint(geom.Translate(geom.Vector3{Z: 5}), spectrum.New(10)),
		light.NewPoint(geom.Translate(geom.Vector3{X: 5}), spectrum.New(10)),
	}
	scene := emptyAggregateScene(lights)
	it, bsdf := lambertianInteraction(geom.Point3{}, geom.Normal3{X: 0, Y: 0, Z: 1}, spectrum.New(0.8))

	samp := fixedStubSampler{u1D: 0.25, u2D: geom.Point2{X: 0.5, Y: 0.5}}
	ld := sampleOneLight(it, bsdf, scene, samp, nil)
	require.False(t, ld.HasNaN())
}

func TestSampleOneLightReturnsBlackWithNoLights(t *testing.T) {
	scene := emptyAggregateScene(nil)
	it, bsdf := lambertianInteraction(geom.Point3{}, geom.Normal3{X: 0, Y: 0, Z: 1}, spectrum.New(0.8))
	samp := fixedStubSampler{}
	ld := sampleOneLight(it, bsdf, scene, samp, nil)
	require.True(t, ld.IsBlack())
}
