package integrator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/methusael13/phyray-go/pkg/accel"
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/light"
	"github.com/methusael13/phyray-go/pkg/primitive"
	"github.com/methusael13/phyray-go/pkg/sampler"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

func TestRenderMergesEveryTileIntoTheFilm(t *testing.T) {
	f := testFilm()
	cam := testCamera(f)
	samp := sampler.NewStratified(1, 1, false, 4, 11)
	p := NewPath(3, cam, samp, f.GetSampleBounds(), 0, "uniform")

	s := shape.NewSphere(geom.Translate(geom.Vector3{Z: 5}), 1.5, false)
	al := light.NewDiffuseArea(spectrum.New(4), s, false)
	prim := primitive.NewGeometricPrimitive(s, nil, al)
	bvh := accel.Build([]primitive.Primitive{prim})
	scene := NewScene(bvh, []light.Light{al})

	p.Render(scene)

	img := f.WriteImage()
	require.NotNil(t, img)

	lit, total := 0, 0
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			total++
			r, g, b, _ := img.At(x, y).RGBA()
			if r != 0 || g != 0 || b != 0 {
				lit++
			}
		}
	}
	require.Greater(t, total, 0)
	require.Greater(t, lit, 0, "a large emissive sphere filling most of the frame should light at least some pixels")
}

func TestValidateRadianceReplacesNaNWithBlack(t *testing.T) {
	nan := spectrum.New(1)
	nan.Set(0, math.NaN())
	got := validateRadiance(nan, geom.Point2i{}, 0)
	require.True(t, got.IsBlack())
}

func TestValidateRadianceReplacesNegativeLuminanceWithBlack(t *testing.T) {
	neg := spectrum.New(-1)
	got := validateRadiance(neg, geom.Point2i{}, 0)
	require.True(t, got.IsBlack())
}

func TestValidateRadiancePassesThroughFiniteNonNegative(t *testing.T) {
	finite := spectrum.New(0.5)
	got := validateRadiance(finite, geom.Point2i{}, 0)
	require.Equal(t, finite, got)
}
