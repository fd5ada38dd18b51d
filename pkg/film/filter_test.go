package film

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/methusael13/phyray-go/pkg/geom"
)

func TestBoxFilterIsConstantOne(t *testing.T) {
	f := NewBox(geom.Vector2{X: 1, Y: 1})
	require.EqualValues(t, 1, f.Evaluate(geom.Point2{X: 0.5, Y: 0.5}))
}

func TestTriangleFilterPeaksAtCenterAndVanishesAtRadius(t *testing.T) {
	f := NewTriangle(geom.Vector2{X: 2, Y: 2})
	require.InDelta(t, 4, float64(f.Evaluate(geom.Point2{})), 1e-9)
	require.InDelta(t, 0, float64(f.Evaluate(geom.Point2{X: 2, Y: 0})), 1e-9)
}

func TestGaussianFilterIsNonNegativeAndPeaksAtCenter(t *testing.T) {
	f := NewGaussian(geom.Vector2{X: 2, Y: 2}, 2)
	center := f.Evaluate(geom.Point2{})
	edge := f.Evaluate(geom.Point2{X: 2, Y: 0})
	require.Greater(t, float64(center), float64(edge))
	require.GreaterOrEqual(t, float64(edge), 0.0)
}

func TestMitchellFilterIsFiniteAcrossSupport(t *testing.T) {
	f := NewMitchell(geom.Vector2{X: 2, Y: 2}, 1.0/3, 1.0/3)
	for _, x := range []geom.Real{-2, -1, 0, 1, 2} {
		v := f.Evaluate(geom.Point2{X: x, Y: 0})
		require.False(t, v != v) // not NaN
	}
}

func TestLanczosSincFilterVanishesBeyondRadius(t *testing.T) {
	f := NewLanczosSinc(geom.Vector2{X: 3, Y: 3}, 3)
	require.EqualValues(t, 0, f.Evaluate(geom.Point2{X: 4, Y: 0}))
	require.NotEqual(t, geom.Real(0), f.Evaluate(geom.Point2{X: 0, Y: 0}))
}
