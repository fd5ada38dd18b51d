package shape

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/methusael13/phyray-go/pkg/geom"
)

func TestSphereIntersectFromOutside(t *testing.T) {
	s := NewSphere(geom.IdentityTransform(), 1, false)
	ray := geom.NewRay(geom.Point3{X: 0, Y: 0, Z: -5}, geom.Vector3{X: 0, Y: 0, Z: 1})

	tHit, si, ok := s.Intersect(ray)
	require.True(t, ok)
	require.InDelta(t, 4.0, tHit, 1e-9)
	require.InDelta(t, -1.0, si.P.Z, 1e-9)
	require.InDelta(t, 1.0, si.N.Length(), 1e-9)
}

// A ray originating inside the sphere must reject the nearer (behind-origin)
// root and report the farther intersection.
func TestSphereIntersectFromInsideRejectsNearerRoot(t *testing.T) {
	s := NewSphere(geom.IdentityTransform(), 1, false)
	ray := geom.NewRay(geom.Point3{X: 0, Y: 0, Z: 0}, geom.Vector3{X: 0, Y: 0, Z: 1})

	tHit, si, ok := s.Intersect(ray)
	require.True(t, ok)
	require.InDelta(t, 1.0, tHit, 1e-9)
	require.InDelta(t, 1.0, si.P.Z, 1e-9)
}

func TestSphereIntersectPMatchesIntersect(t *testing.T) {
	s := NewSphere(geom.IdentityTransform(), 2, false)
	hit := geom.NewRay(geom.Point3{X: -10, Y: 0, Z: 0}, geom.Vector3{X: 1, Y: 0, Z: 0})
	miss := geom.NewRay(geom.Point3{X: -10, Y: 5, Z: 0}, geom.Vector3{X: 1, Y: 0, Z: 0})

	_, _, ok := s.Intersect(hit)
	require.True(t, ok)
	require.True(t, s.IntersectP(hit))

	_, _, ok = s.Intersect(miss)
	require.False(t, ok)
	require.False(t, s.IntersectP(miss))
}

func TestSphereIntersectBeyondTMaxMisses(t *testing.T) {
	s := NewSphere(geom.IdentityTransform(), 1, false)
	ray := geom.NewRayTMax(geom.Point3{X: 0, Y: 0, Z: -5}, geom.Vector3{X: 0, Y: 0, Z: 1}, 2)

	_, _, ok := s.Intersect(ray)
	require.False(t, ok, "hit at t=4 should be rejected when ray.TMax=2")
}

func TestSphereSampleLiesOnSurface(t *testing.T) {
	s := NewSphere(geom.Translate(geom.Vector3{X: 1, Y: 2, Z: 3}), 5, false)
	it, pdf := s.Sample(geom.Point2{X: 0.3, Y: 0.7})

	center := geom.Point3{X: 1, Y: 2, Z: 3}
	require.InDelta(t, 5.0, it.P.Distance(center), 1e-9)
	require.InDelta(t, 1.0/s.SurfaceArea(), pdf, 1e-12)
}

func TestSphereSurfaceArea(t *testing.T) {
	s := NewSphere(geom.IdentityTransform(), 3, false)
	require.InDelta(t, 4*3.14159265358979*9, s.SurfaceArea(), 1e-6)
}
