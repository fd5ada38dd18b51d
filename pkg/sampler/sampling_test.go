package sampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/methusael13/phyray-go/pkg/geom"
)

func TestConcentricSampleDiskStaysInUnitDisk(t *testing.T) {
	for _, u := range []geom.Point2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0.25, Y: 0.75}, {X: 0.9, Y: 0.1}} {
		p := ConcentricSampleDisk(u)
		require.LessOrEqual(t, p.X*p.X+p.Y*p.Y, 1.0+1e-9)
	}
}

func TestConcentricSampleDiskOriginMapsToOrigin(t *testing.T) {
	p := ConcentricSampleDisk(geom.Point2{X: 0.5, Y: 0.5})
	require.InDelta(t, 0, p.X, 1e-12)
	require.InDelta(t, 0, p.Y, 1e-12)
}

func TestCosineSampleHemisphereStaysInUpperHemisphere(t *testing.T) {
	for _, u := range []geom.Point2{{X: 0.1, Y: 0.2}, {X: 0.5, Y: 0.5}, {X: 0.9, Y: 0.9}} {
		w := CosineSampleHemisphere(u)
		require.GreaterOrEqual(t, w.Z, 0.0)
		require.InDelta(t, 1, w.LengthSquared(), 1e-9)
	}
}

func TestUniformSampleSphereIsUnitLength(t *testing.T) {
	w := UniformSampleSphere(geom.Point2{X: 0.3, Y: 0.7})
	require.InDelta(t, 1, w.Length(), 1e-9)
}

func TestUniformSpherePdfIntegratesToOneOverFullSphere(t *testing.T) {
	require.InDelta(t, 1/(4*math.Pi), UniformSpherePdf(), 1e-12)
}

func TestPowerHeuristicReducesToBalanceWeightWithEqualSampleCounts(t *testing.T) {
	w := PowerHeuristic(1, 2, 1, 2)
	require.InDelta(t, 0.5, w, 1e-12)
}

func TestPowerHeuristicFavorsLowerVarianceStrategy(t *testing.T) {
	w := PowerHeuristic(1, 4, 1, 1)
	// (4^2)/(4^2+1^2) = 16/17
	require.InDelta(t, 16.0/17.0, w, 1e-9)
}

func TestPowerHeuristicZeroWhenBothPdfsZero(t *testing.T) {
	require.Equal(t, 0.0, PowerHeuristic(1, 0, 1, 0))
}
