package sampler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/methusael13/phyray-go/pkg/geom"
)

func TestStratifiedProducesExactlyXTimesYSamplesPerPixel(t *testing.T) {
	s := NewStratified(4, 4, true, 2, 1)
	require.EqualValues(t, 16, s.SamplesPerPixel())

	s.StartPixel(geom.Point2i{X: 0, Y: 0})
	for i := 0; i < int(s.SamplesPerPixel()); i++ {
		v := s.GetNextSample1D()
		require.GreaterOrEqual(t, float64(v), 0.0)
		require.Less(t, float64(v), 1.0)
		if i < int(s.SamplesPerPixel())-1 {
			require.True(t, s.StartNextSample())
		}
	}
}

func TestStratifiedPrecomputedDimensionsStayWithinUnitInterval(t *testing.T) {
	s := NewStratified(2, 2, true, 1, 7)
	s.StartPixel(geom.Point2i{X: 3, Y: 5})
	for ok := true; ok; ok = s.StartNextSample() {
		v := s.GetNextSample2D()
		require.GreaterOrEqual(t, float64(v.X), 0.0)
		require.Less(t, float64(v.X), 1.0)
		require.GreaterOrEqual(t, float64(v.Y), 0.0)
		require.Less(t, float64(v.Y), 1.0)
	}
}

func TestStratifiedFallsBackToUniformPastPrecomputedDimensions(t *testing.T) {
	s := NewStratified(2, 2, true, 1, 1)
	s.StartPixel(geom.Point2i{})
	_ = s.GetNextSample1D() // consumes the one precomputed dimension
	v := s.GetNextSample1D()
	require.GreaterOrEqual(t, float64(v), 0.0)
	require.Less(t, float64(v), 1.0)
}

func TestStratifiedCloneIsIndependent(t *testing.T) {
	s := NewStratified(2, 2, true, 1, 1)
	clone := s.Clone(99)
	require.IsType(t, &Stratified{}, clone)
	require.NotSame(t, s, clone)
	require.Equal(t, s.SamplesPerPixel(), clone.SamplesPerPixel())
}

func TestGetCameraSampleOffsetsRasterPositionByFilmJitter(t *testing.T) {
	s := NewStratified(2, 2, false, 0, 3)
	s.StartPixel(geom.Point2i{X: 10, Y: 20})

	cs := s.GetCameraSample(geom.Point2i{X: 10, Y: 20})
	require.GreaterOrEqual(t, float64(cs.PFilm.X), 10.0)
	require.Less(t, float64(cs.PFilm.X), 11.0)
	require.GreaterOrEqual(t, float64(cs.PFilm.Y), 20.0)
	require.Less(t, float64(cs.PFilm.Y), 21.0)
}

func TestPixelSamplerArraysRoundTripPerSampleIndex(t *testing.T) {
	s := NewStratified(2, 2, true, 0, 5)
	s.Request2DArray(4)
	s.StartPixel(geom.Point2i{})

	arr := s.Get2DArray(4)
	require.Len(t, arr, 4)
	for _, p := range arr {
		require.GreaterOrEqual(t, float64(p.X), 0.0)
		require.Less(t, float64(p.X), 1.0)
	}
	require.Nil(t, s.Get2DArray(4))
}

// fakeLowDiscrepancyImpl is a minimal globalSamplerImpl used only to
// exercise GlobalSampler's dimension bookkeeping; it is not a standalone
// sampling strategy in its own right.
type fakeLowDiscrepancyImpl struct{}

func (fakeLowDiscrepancyImpl) GetIndexForSample(sampleNum int64) int64 { return sampleNum }
func (fakeLowDiscrepancyImpl) SampleDimension(index int64, dim int) geom.Real {
	return geom.Real((int64(dim)*2654435761+index)%1000) / 1000
}

// haltonSampler is a throwaway Sampler implementation used only so
// GlobalSampler (an embeddable base, not a standalone Sampler on its own)
// has a self to dispatch virtual calls through in tests.
type haltonSampler struct{ *GlobalSampler }

func (h haltonSampler) Clone(seed int) Sampler { return h }

func newTestGlobalSampler(samplesPerPixel int64) haltonSampler {
	gs := newGlobalSampler(nil, samplesPerPixel, fakeLowDiscrepancyImpl{})
	h := haltonSampler{gs}
	gs.self = h
	return h
}

func TestGlobalSamplerAdvancesDimensionPerRequest(t *testing.T) {
	gs := newTestGlobalSampler(4)
	gs.StartPixel(geom.Point2i{})

	d0 := gs.GetNextSample1D()
	d1 := gs.GetNextSample1D()
	require.NotEqual(t, d0, d1)
}

func TestGlobalSamplerRequested1DArrayHasRequestedLength(t *testing.T) {
	gs := newTestGlobalSampler(4)
	gs.Request1DArray(3)
	gs.StartPixel(geom.Point2i{})

	arr := gs.Get1DArray(3)
	require.Len(t, arr, 3)
}

func TestGlobalSamplerCameraSampleDispatchesThroughSelf(t *testing.T) {
	gs := newTestGlobalSampler(4)
	gs.StartPixel(geom.Point2i{X: 2, Y: 2})
	cs := gs.GetCameraSample(geom.Point2i{X: 2, Y: 2})
	require.GreaterOrEqual(t, float64(cs.PFilm.X), 2.0)
	require.Less(t, float64(cs.PFilm.X), 3.0)
}
