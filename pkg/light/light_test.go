package light

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

type alwaysVisible struct{}

func (alwaysVisible) IntersectP(ray *geom.Ray) bool { return false }

type alwaysOccluded struct{}

func (alwaysOccluded) IntersectP(ray *geom.Ray) bool { return true }

func TestPointLightSampleLiInverseSquareFalloff(t *testing.T) {
	l := NewPoint(geom.IdentityTransform(), spectrum.New(4))
	ref := shape.Interaction{P: geom.Point3{X: 2, Y: 0, Z: 0}}

	li, wi, pdf, vis := l.SampleLi(ref, geom.Point2{})
	require.InDelta(t, 1, pdf, 1e-12)
	require.InDelta(t, 1, li.At(0), 1e-9) // 4 / 2^2
	require.InDelta(t, -1, wi.X, 1e-9)
	require.True(t, vis.Unoccluded(alwaysVisible{}))
	require.False(t, vis.Unoccluded(alwaysOccluded{}))
}

func TestPointLightPowerIsFourPiIntensity(t *testing.T) {
	l := NewPoint(geom.IdentityTransform(), spectrum.New(1))
	require.InDelta(t, 4*math.Pi, l.Power().At(0), 1e-9)
}

func TestPointLightIsDelta(t *testing.T) {
	l := NewPoint(geom.IdentityTransform(), spectrum.New(1))
	require.True(t, l.Flags().IsDelta())
	require.Equal(t, 0.0, l.PdfLi(shape.Interaction{}, geom.Vector3{}))
}

func TestDistantLightSampleLiReturnsFixedDirection(t *testing.T) {
	l := NewDistant(geom.IdentityTransform(), spectrum.New(2), geom.Vector3{X: 0, Y: 0, Z: 1})
	l.Preprocess(geom.NewBounds3(geom.Point3{X: -1, Y: -1, Z: -1}, geom.Point3{X: 1, Y: 1, Z: 1}))

	ref := shape.Interaction{P: geom.Point3{}}
	li, wi, pdf, _ := l.SampleLi(ref, geom.Point2{})
	require.InDelta(t, 1, pdf, 1e-12)
	require.InDelta(t, 2, li.At(0), 1e-9)
	require.InDelta(t, 1, wi.Z, 1e-9)
}

func TestDiffuseAreaLightOneSidedEmitsOnlyTowardNormal(t *testing.T) {
	disk := shape.NewDisk(geom.IdentityTransform(), 0, 1, false)
	l := NewDiffuseArea(spectrum.New(3), disk, false)

	front := shape.Interaction{P: geom.Point3{X: 0, Y: 0, Z: 1}, N: geom.Normal3{X: 0, Y: 0, Z: 1}}
	back := shape.Interaction{P: geom.Point3{X: 0, Y: 0, Z: 1}, N: geom.Normal3{X: 0, Y: 0, Z: 1}}

	lFront := l.L(front, geom.Vector3{X: 0, Y: 0, Z: 1})
	lBack := l.L(back, geom.Vector3{X: 0, Y: 0, Z: -1})
	require.InDelta(t, 3, lFront.At(0), 1e-9)
	require.True(t, lBack.IsBlack())
}

func TestDiffuseAreaLightTwoSidedEmitsBothWays(t *testing.T) {
	disk := shape.NewDisk(geom.IdentityTransform(), 0, 1, false)
	l := NewDiffuseArea(spectrum.New(3), disk, true)

	intr := shape.Interaction{N: geom.Normal3{X: 0, Y: 0, Z: 1}}
	require.False(t, l.L(intr, geom.Vector3{X: 0, Y: 0, Z: -1}).IsBlack())
}

func TestDiffuseAreaLightPowerDoublesWhenTwoSided(t *testing.T) {
	disk := shape.NewDisk(geom.IdentityTransform(), 0, 1, false)
	one := NewDiffuseArea(spectrum.New(1), disk, false)
	two := NewDiffuseArea(spectrum.New(1), disk, true)
	require.InDelta(t, 2*one.Power().At(0), two.Power().At(0), 1e-9)
}

func TestDiffuseAreaLightSampleLiConnectsToShapeSurface(t *testing.T) {
	disk := shape.NewDisk(geom.IdentityTransform(), 0, 1, false)
	l := NewDiffuseArea(spectrum.New(1), disk, true)

	ref := shape.Interaction{P: geom.Point3{X: 0, Y: 0, Z: 2}}
	li, _, pdf, _ := l.SampleLi(ref, geom.Point2{X: 0.3, Y: 0.6})
	require.Greater(t, pdf, 0.0)
	require.False(t, li.IsBlack())
}
