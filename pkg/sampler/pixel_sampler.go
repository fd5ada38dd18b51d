package sampler

import (
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/rng"
)

// PixelSampler precomputes nSampledDimensions worth of well-distributed 1D
// and 2D samples per pixel sample, up front in StartPixel, and hands them
// out one dimension at a time. Once a consumer asks for more dimensions
// than were precomputed, it falls back to plain uniform random numbers —
// most integrators need only a handful of well-stratified early dimensions
// (light choice, BSDF choice) and go uniform for the long tail of bounces.
type PixelSampler struct {
	*base

	samples1D [][]geom.Real
	samples2D [][]geom.Point2

	current1DDimension int
	current2DDimension int

	rng rng.Source
}

// newPixelSampler is used by concrete samplers (Stratified, ...) that embed
// PixelSampler and fill in samples1D/samples2D themselves in StartPixel.
func newPixelSampler(self Sampler, samplesPerPixel int64, nSampledDimensions int, r rng.Source) *PixelSampler {
	ps := &PixelSampler{rng: r}
	ps.base = newBase(self, samplesPerPixel)
	ps.samples1D = make([][]geom.Real, nSampledDimensions)
	ps.samples2D = make([][]geom.Point2, nSampledDimensions)
	for i := range ps.samples1D {
		ps.samples1D[i] = make([]geom.Real, samplesPerPixel)
		ps.samples2D[i] = make([]geom.Point2, samplesPerPixel)
	}
	return ps
}

func (ps *PixelSampler) StartNextSample() bool {
	ps.current1DDimension, ps.current2DDimension = 0, 0
	return ps.base.StartNextSample()
}

func (ps *PixelSampler) SetSampleIndex(sampleIdx int64) bool {
	ps.current1DDimension, ps.current2DDimension = 0, 0
	return ps.base.SetSampleIndex(sampleIdx)
}

func (ps *PixelSampler) GetNextSample1D() geom.Real {
	if ps.current1DDimension < len(ps.samples1D) {
		v := ps.samples1D[ps.current1DDimension][ps.currentPixelSampleIndex]
		ps.current1DDimension++
		return v
	}
	return geom.Real(ps.rng.Float64())
}

func (ps *PixelSampler) GetNextSample2D() geom.Point2 {
	if ps.current2DDimension < len(ps.samples2D) {
		v := ps.samples2D[ps.current2DDimension][ps.currentPixelSampleIndex]
		ps.current2DDimension++
		return v
	}
	return geom.Point2{X: geom.Real(ps.rng.Float64()), Y: geom.Real(ps.rng.Float64())}
}
