package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVectorNormalizeUnitLength(t *testing.T) {
	vs := []Vector3{
		{1, 2, 3}, {-4, 0.5, 7}, {0.001, 0.001, 0.001}, {100, -100, 50},
	}
	for _, v := range vs {
		n := v.Normalize()
		require.InDelta(t, 1.0, n.Length(), 10*epsilon)
	}
}

func TestTransformRoundTrip(t *testing.T) {
	tr := Translate(Vector3{1, 2, 3}).Compose(RotateY(37)).Compose(Scale(2, 3, 4))
	inv := tr.Inverse()

	p := Point3{1.5, -2.25, 9}
	got := inv.Point(tr.Point(p))
	require.InDelta(t, p.X, got.X, 1e-9)
	require.InDelta(t, p.Y, got.Y, 1e-9)
	require.InDelta(t, p.Z, got.Z, 1e-9)
}

func TestTransformInverseInverse(t *testing.T) {
	tr := RotateX(12).Compose(Translate(Vector3{3, -1, 2}))
	got := tr.Inverse().Inverse()
	require.Equal(t, tr.M, got.M)
	require.Equal(t, tr.MInv, got.MInv)
}

func TestMatrixTransposeTranspose(t *testing.T) {
	m := Matrix4x4{M: [4][4]Real{
		{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}, {13, 14, 15, 16},
	}}
	require.Equal(t, m, m.Transpose().Transpose())
}

func TestBoundsUnionContainsPoint(t *testing.T) {
	b := NewBounds3(Point3{0, 0, 0}, Point3{1, 1, 1})
	p := Point3{5, -3, 0.5}
	u := b.UnionPoint(p)
	require.True(t, u.Inside(p))
	require.True(t, u.Inside(Point3{0, 0, 0}))

	// Idempotent when p is already inside.
	inside := Point3{0.5, 0.5, 0.5}
	require.Equal(t, b, b.UnionPoint(inside))
}

func TestBoundsRayIntersectGrazing(t *testing.T) {
	b := NewBounds3(Point3{-1, -1, -1}, Point3{1, 1, 1})
	ray := NewRay(Point3{0, 2, 0}, Vector3{1, 0, 0}) // parallel to X axis, outside in Y
	hit, _, _ := b.IntersectP(ray)
	require.False(t, hit)
}

func TestBoundsRayIntersectFast(t *testing.T) {
	b := NewBounds3(Point3{-1, -1, -1}, Point3{1, 1, 1})
	ray := NewRay(Point3{-5, 0, 0}, Vector3{1, 0, 0})
	invDir := Vector3{1 / ray.Direction.X, math.Inf(1), math.Inf(1)}
	neg := [3]bool{ray.Direction.X < 0, ray.Direction.Y < 0, ray.Direction.Z < 0}
	require.True(t, b.IntersectPFast(ray, invDir, neg))
}
