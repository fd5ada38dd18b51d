package integrator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/methusael13/phyray-go/pkg/accel"
	"github.com/methusael13/phyray-go/pkg/camera"
	"github.com/methusael13/phyray-go/pkg/film"
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/light"
	"github.com/methusael13/phyray-go/pkg/material"
	"github.com/methusael13/phyray-go/pkg/memory"
	"github.com/methusael13/phyray-go/pkg/primitive"
	"github.com/methusael13/phyray-go/pkg/sampler"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

func testFilm() *film.Film {
	return film.NewFilm(
		geom.Point2i{X: 16, Y: 16},
		geom.NewBounds2(geom.Point2{}, geom.Point2{X: 1, Y: 1}),
		film.NewBox(geom.Vector2{X: 0.5, Y: 0.5}),
		1,
	)
}

func testCamera(f *film.Film) camera.Camera {
	screen := geom.NewBounds2(geom.Point2{X: -1, Y: -1}, geom.Point2{X: 1, Y: 1})
	return camera.NewPerspective(geom.IdentityTransform(), screen, 0, 1e6, 90, f)
}

func testPath(maxDepth int, cam camera.Camera) *Path {
	samp := sampler.NewStratified(1, 1, false, 4, 1)
	return NewPath(maxDepth, cam, samp, cam.Film().GetSampleBounds(), 0, "uniform")
}

// emissiveSphereScene is a single emissive sphere large enough to fill the
// frame, so a camera ray through its center hits only emitted radiance.
func emissiveSphereScene(t *testing.T) *Scene {
	t.Helper()
	s := shape.NewSphere(geom.Translate(geom.Vector3{Z: 5}), 1, false)
	al := light.NewDiffuseArea(spectrum.New(2), s, false)
	prim := primitive.NewGeometricPrimitive(s, nil, al)
	bvh := accel.Build([]primitive.Primitive{prim})
	return NewScene(bvh, []light.Light{al})
}

func TestPathLiReturnsEmissionOnDirectHit(t *testing.T) {
	f := testFilm()
	cam := testCamera(f)
	p := testPath(5, cam)
	scene := emissiveSphereScene(t)
	p.Preprocess(scene)

	ray := geom.NewRay(geom.Point3{}, geom.Vector3{X: 0, Y: 0, Z: 1})
	samp := sampler.NewStratified(1, 1, false, 4, 7)
	samp.StartPixel(geom.Point2i{})
	arena := memory.New(0)

	l := p.Li(ray, scene, samp, arena, 0)
	require.False(t, l.IsBlack())
	require.False(t, l.HasNaN())
}

func TestPathLiIsBlackWhenRayMissesEverything(t *testing.T) {
	f := testFilm()
	cam := testCamera(f)
	p := testPath(5, cam)
	scene := emissiveSphereScene(t)
	p.Preprocess(scene)

	ray := geom.NewRay(geom.Point3{}, geom.Vector3{X: 1, Y: 0, Z: 0})
	samp := sampler.NewStratified(1, 1, false, 4, 7)
	samp.StartPixel(geom.Point2i{})
	arena := memory.New(0)

	l := p.Li(ray, scene, samp, arena, 0)
	require.True(t, l.IsBlack(), "no infinite lights and no hit means zero radiance")
}

// matteAndDistantScene is a matte disk-sized sphere lit by a single distant
// light, its Preprocess already run so the light's world radius is set.
func matteAndDistantScene() *Scene {
	mat := material.NewMatte(spectrum.New(0.5), 0)
	s := shape.NewSphere(geom.Translate(geom.Vector3{Z: 5}), 1, false)
	prim := primitive.NewGeometricPrimitive(s, mat, nil)
	bvh := accel.Build([]primitive.Primitive{prim})

	distant := light.NewDistant(geom.IdentityTransform(), spectrum.New(3), geom.Vector3{X: 0, Y: 0, Z: -1})
	return NewScene(bvh, []light.Light{distant})
}

func TestPathLiAccumulatesDirectLightingOffMatteSurface(t *testing.T) {
	f := testFilm()
	cam := testCamera(f)
	p := testPath(5, cam)
	scene := matteAndDistantScene()
	p.Preprocess(scene)

	ray := geom.NewRay(geom.Point3{}, geom.Vector3{X: 0, Y: 0, Z: 1})
	samp := sampler.NewStratified(1, 1, false, 4, 3)
	samp.StartPixel(geom.Point2i{})
	arena := memory.New(0)

	l := p.Li(ray, scene, samp, arena, 0)
	require.Greater(t, l.Y(), 0.0, "a matte sphere facing a distant light behind the camera should reflect some of it back")
	require.False(t, l.HasNaN())
}

func TestPathLiTerminatesWithinMaxDepthOnSpecularChain(t *testing.T) {
	mirror := material.NewMirror(spectrum.New(0.9))
	outer := shape.NewSphere(geom.Translate(geom.Vector3{Z: 5}), 1, false)
	prim := primitive.NewGeometricPrimitive(outer, mirror, nil)
	bvh := accel.Build([]primitive.Primitive{prim})
	scene := NewScene(bvh, nil)

	f := testFilm()
	cam := testCamera(f)
	p := testPath(3, cam)
	p.Preprocess(scene)

	ray := geom.NewRay(geom.Point3{}, geom.Vector3{X: 0, Y: 0, Z: 1})
	samp := sampler.NewStratified(1, 1, false, 4, 9)
	samp.StartPixel(geom.Point2i{})
	arena := memory.New(0)

	l := p.Li(ray, scene, samp, arena, 0)
	require.False(t, l.HasNaN())
	require.True(t, l.IsBlack(), "a pure mirror with no emitter anywhere in the reflected chain contributes nothing")
}
