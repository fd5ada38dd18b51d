package sampler

import (
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/rng"
)

// Stratified is a PixelSampler that divides each pixel's samples into an
// xPixelSamples-by-yPixelSamples grid of strata, both for the base film/lens
// dimensions and for every extra dimension an integrator requests. Grid
// stratification gives much lower variance than plain random sampling for
// the same sample count, at the cost of only being exact for counts that
// factor as x*y.
type Stratified struct {
	*PixelSampler

	xPixelSamples, yPixelSamples int
	jitterSamples                bool
}

// NewStratified builds a sampler producing xPixelSamples*yPixelSamples
// samples per pixel, split across nSampledDimensions worth of precomputed
// dimensions before falling back to uniform random numbers.
func NewStratified(xPixelSamples, yPixelSamples int, jitterSamples bool, nSampledDimensions int, seed int64) *Stratified {
	s := &Stratified{xPixelSamples: xPixelSamples, yPixelSamples: yPixelSamples, jitterSamples: jitterSamples}
	s.PixelSampler = newPixelSampler(s, int64(xPixelSamples*yPixelSamples), nSampledDimensions, rng.New(seed))
	return s
}

// StartPixel regenerates every precomputed dimension for a new pixel: the
// base film/lens samples, the single-value extra dimensions, and any
// requested arrays, each independently stratified and then shuffled so
// dimensions don't correlate with one another.
func (s *Stratified) StartPixel(pt geom.Point2i) {
	nSamples := s.xPixelSamples * s.yPixelSamples

	for i := range s.samples1D {
		stratifiedSample1D(s.samples1D[i], nSamples, s.jitterSamples, s.rng)
		shuffleReal(s.samples1D[i], s.rng)
	}
	for i := range s.samples2D {
		stratifiedSample2D(s.samples2D[i], s.xPixelSamples, s.yPixelSamples, s.jitterSamples, s.rng)
		shuffle2D(s.samples2D[i], s.rng)
	}

	for i, n := range s.samples1DArraySizes {
		for j := int64(0); j < s.samplesPerPixel; j++ {
			chunk := s.sampleArray1D[i][int(j)*n : (int(j)+1)*n]
			stratifiedSample1D(chunk, n, s.jitterSamples, s.rng)
			shuffleReal(chunk, s.rng)
		}
	}
	for i, n := range s.samples2DArraySizes {
		for j := int64(0); j < s.samplesPerPixel; j++ {
			chunk := s.sampleArray2D[i][int(j)*n : (int(j)+1)*n]
			latinHypercube2D(chunk, n, s.rng)
		}
	}

	s.PixelSampler.StartPixel(pt)
}

func (s *Stratified) Clone(seed int) Sampler {
	return NewStratified(s.xPixelSamples, s.yPixelSamples, s.jitterSamples, len(s.samples1D), int64(seed))
}
