package reflect

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/methusael13/phyray-go/pkg/spectrum"
)

func TestFrDielectricNormalIncidence(t *testing.T) {
	r := FrDielectric(1, 1, 1.5)
	expected := (1.5 - 1) / (1.5 + 1)
	require.InDelta(t, expected*expected, r, 1e-9)
}

func TestFrDielectricTotalInternalReflection(t *testing.T) {
	// Going from dense to sparse medium at a grazing angle triggers TIR.
	r := FrDielectric(0.05, 1.5, 1.0)
	require.InDelta(t, 1.0, r, 1e-9)
}

func TestFrDielectricEnteringExitingSymmetry(t *testing.T) {
	entering := FrDielectric(0.6, 1.0, 1.5)
	exiting := FrDielectric(-0.6, 1.5, 1.0)
	require.InDelta(t, entering, exiting, 1e-9)
}

func TestFrDielectricBoundedToUnitInterval(t *testing.T) {
	for _, cos := range []float64{-1, -0.5, 0, 0.2, 0.7, 1} {
		r := FrDielectric(cos, 1, 1.5)
		require.GreaterOrEqual(t, r, 0.0)
		require.LessOrEqual(t, r, 1.0)
	}
}

func TestFrConductorAgreesWithDielectricWhenKIsZero(t *testing.T) {
	etaI := spectrum.New(1)
	etaT := spectrum.New(1.5)
	k := spectrum.New(0)

	rc := FrConductor(0.8, etaI, etaT, k)
	rd := FrDielectric(0.8, 1, 1.5)
	require.InDelta(t, rd, rc.At(0), 1e-6)
}

func TestFresnelPureReflectAlwaysOne(t *testing.T) {
	f := FresnelPureReflect{}
	require.InDelta(t, 1.0, f.Evaluate(0.3).At(0), 1e-9)
	require.InDelta(t, 1.0, f.Evaluate(-0.9).At(10), 1e-9)
}
