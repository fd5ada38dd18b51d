package shape

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/methusael13/phyray-go/pkg/geom"
)

func TestDiskIntersectStraightOn(t *testing.T) {
	d := NewDisk(geom.IdentityTransform(), 0, 2, false)
	ray := geom.NewRay(geom.Point3{X: 0.5, Y: 0.5, Z: -3}, geom.Vector3{X: 0, Y: 0, Z: 1})

	tHit, si, ok := d.Intersect(ray)
	require.True(t, ok)
	require.InDelta(t, 3.0, tHit, 1e-9)
	require.InDelta(t, 0.0, si.P.Z, 1e-9)
}

func TestDiskIntersectOutsideRadiusMisses(t *testing.T) {
	d := NewDisk(geom.IdentityTransform(), 0, 2, false)
	ray := geom.NewRay(geom.Point3{X: 3, Y: 3, Z: -1}, geom.Vector3{X: 0, Y: 0, Z: 1})

	_, _, ok := d.Intersect(ray)
	require.False(t, ok)
}

func TestDiskIntersectParallelToPlaneMisses(t *testing.T) {
	d := NewDisk(geom.IdentityTransform(), 0, 2, false)
	ray := geom.NewRay(geom.Point3{X: 0, Y: 0, Z: 1}, geom.Vector3{X: 1, Y: 0, Z: 0})

	_, _, ok := d.Intersect(ray)
	require.False(t, ok)
}

func TestAnnulusRejectsInnerRadiusHole(t *testing.T) {
	d := NewAnnulus(geom.IdentityTransform(), 0, 2, 1, 360, false)
	ray := geom.NewRay(geom.Point3{X: 0.2, Y: 0, Z: -1}, geom.Vector3{X: 0, Y: 0, Z: 1})

	_, _, ok := d.Intersect(ray)
	require.False(t, ok, "hit point at radius 0.2 is inside the inner radius hole")
}

func TestDiskSurfaceArea(t *testing.T) {
	d := NewDisk(geom.IdentityTransform(), 0, 2, false)
	require.InDelta(t, 3.14159265358979*4, d.SurfaceArea(), 1e-6)
}

func TestDiskSampleLiesInPlane(t *testing.T) {
	d := NewDisk(geom.Translate(geom.Vector3{X: 0, Y: 0, Z: 5}), 0, 3, false)
	it, pdf := d.Sample(geom.Point2{X: 0.4, Y: 0.2})

	require.InDelta(t, 5.0, it.P.Z, 1e-9)
	require.InDelta(t, 1.0/d.SurfaceArea(), pdf, 1e-12)
}
