package spectrum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArithmeticLinearity(t *testing.T) {
	a := FromRGB(0.3, 0.5, 0.8, Illuminant)
	b := FromRGB(0.1, 0.2, 0.9, Illuminant)
	const s = 2.0

	lhs := a.Scale(s).Add(b.Scale(s))
	rhs := a.Add(b).Scale(s)

	for i := 0; i < NumSamples; i++ {
		require.InDelta(t, lhs.At(i), rhs.At(i), 1e-9)
	}
}

func TestToRGBRoundTrip(t *testing.T) {
	cases := [][3]float64{{0.2, 0.4, 0.6}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0.9, 0.9, 0.1}}
	for _, c := range cases {
		s := FromRGB(c[0], c[1], c[2], Reflectance)
		r, g, b := s.ToRGB()
		require.InDelta(t, c[0], r, 0.12)
		require.InDelta(t, c[1], g, 0.12)
		require.InDelta(t, c[2], b, 0.12)
	}
}

func TestIsBlackAndHasNaN(t *testing.T) {
	require.True(t, Black.IsBlack())
	require.False(t, New(1).IsBlack())
	require.False(t, New(0.5).HasNaN())
}

func TestClampBounds(t *testing.T) {
	s := New(5).Clamp(0, 1)
	for i := 0; i < NumSamples; i++ {
		require.Equal(t, 1.0, s.At(i))
	}
}

func TestFromSamplesAveragesPiecewise(t *testing.T) {
	lambda := []float64{400, 500, 600, 700}
	v := []float64{1, 1, 1, 1}
	s := FromSamples(lambda, v)
	for i := 0; i < NumSamples; i++ {
		require.InDelta(t, 1.0, s.At(i), 1e-6)
	}
}
