package integrator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/methusael13/phyray-go/pkg/accel"
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/light"
	"github.com/methusael13/phyray-go/pkg/primitive"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

func unitSpherePrimitive() primitive.Primitive {
	s := shape.NewSphere(geom.IdentityTransform(), 1, false)
	return primitive.NewGeometricPrimitive(s, nil, nil)
}

func TestNewScenePartitionsInfiniteLights(t *testing.T) {
	bvh := accel.Build([]primitive.Primitive{unitSpherePrimitive()})

	point := light.NewPoint(geom.IdentityTransform(), spectrum.New(1))
	distant := light.NewDistant(geom.IdentityTransform(), spectrum.New(1), geom.Vector3{X: 0, Y: 0, Z: 1})

	scene := NewScene(bvh, []light.Light{point, distant})

	require.Len(t, scene.Lights, 2)
	require.Empty(t, scene.InfiniteLights, "neither Point nor Distant is flagged Infinite")
}

func TestSceneIntersectDelegatesToAggregate(t *testing.T) {
	bvh := accel.Build([]primitive.Primitive{unitSpherePrimitive()})
	scene := NewScene(bvh, nil)

	ray := geom.NewRay(geom.Point3{X: 0, Y: 0, Z: -5}, geom.Vector3{X: 0, Y: 0, Z: 1})
	_, hit := scene.Intersect(&ray)
	require.True(t, hit)

	missRay := geom.NewRay(geom.Point3{X: 10, Y: 10, Z: -5}, geom.Vector3{X: 0, Y: 0, Z: 1})
	_, hit = scene.Intersect(&missRay)
	require.False(t, hit)
}

func TestSceneIntersectPMatchesIntersect(t *testing.T) {
	bvh := accel.Build([]primitive.Primitive{unitSpherePrimitive()})
	scene := NewScene(bvh, nil)

	ray := geom.NewRay(geom.Point3{X: 0, Y: 0, Z: -5}, geom.Vector3{X: 0, Y: 0, Z: 1})
	require.True(t, scene.IntersectP(&ray))
}
