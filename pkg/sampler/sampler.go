// Package sampler generates the per-pixel sample streams consumed by the
// integrators: film-plane and lens positions for each camera ray, plus
// whatever extra 1D/2D dimensions a light or BSDF sampling strategy asks
// for. Samplers are requested once per tile by the worker pool via Clone,
// so each goroutine gets an independent, deterministically-seeded stream.
package sampler

import "github.com/methusael13/phyray-go/pkg/geom"

// CameraSample carries the film and lens positions a camera needs to
// generate one ray. PLens is only consulted by cameras that model a finite
// aperture; a pinhole camera ignores it.
type CameraSample struct {
	PFilm geom.Point2
	PLens geom.Point2
}

// Sampler produces the stream of sample values consumed while rendering one
// pixel. StartPixel resets the stream for a new pixel; StartNextSample
// advances to the next of its samplesPerPixel passes over that pixel.
// Dimensions are requested in a fixed order call-for-call — integrators must
// not branch on scene content between Get calls, since the order is what
// lets a sampler hand out matched, well-distributed tuples.
type Sampler interface {
	StartPixel(p geom.Point2i)
	StartNextSample() bool
	SetSampleIndex(sampleIdx int64) bool

	GetNextSample1D() geom.Real
	GetNextSample2D() geom.Point2
	GetCameraSample(pRaster geom.Point2i) CameraSample

	// Request1DArray/Request2DArray reserve a whole array of n samples per
	// pixel sample, for integrators that need many matched dimensions at
	// once (e.g. one 2D sample per area-light sample on a multi-sample
	// light source). Must be called before rendering starts.
	Request1DArray(n int)
	Request2DArray(n int)
	Get1DArray(n int) []geom.Real
	Get2DArray(n int) []geom.Point2

	// RefineRequestCount lets a sampler round a requested array size up to
	// whatever size it can actually produce well-distributed samples for.
	// The samplers in this package return n unchanged.
	RefineRequestCount(n int) int

	// Clone returns an independent copy seeded off seed, for handing to a
	// parallel tile-rendering goroutine.
	Clone(seed int) Sampler

	SamplesPerPixel() int64
	CurrentSampleIndex() int64
}

// base implements the bookkeeping shared by every sampler: current pixel,
// sample index, and the array-request machinery. It dispatches the two
// pure sampling primitives (GetNextSample1D/2D) back through self, since
// those are the one part every concrete sampler overrides.
type base struct {
	self            Sampler
	samplesPerPixel int64

	currentPixel            geom.Point2i
	currentPixelSampleIndex int64

	samples1DArraySizes []int
	samples2DArraySizes []int
	sampleArray1D       [][]geom.Real
	sampleArray2D       [][]geom.Point2

	array1DOffset int
	array2DOffset int
}

func newBase(self Sampler, samplesPerPixel int64) *base {
	return &base{self: self, samplesPerPixel: samplesPerPixel}
}

func (b *base) SamplesPerPixel() int64     { return b.samplesPerPixel }
func (b *base) CurrentSampleIndex() int64  { return b.currentPixelSampleIndex }
func (b *base) RefineRequestCount(n int) int { return n }

func (b *base) StartPixel(p geom.Point2i) {
	b.currentPixel = p
	b.currentPixelSampleIndex = 0
	b.array1DOffset, b.array2DOffset = 0, 0
}

func (b *base) StartNextSample() bool {
	b.array1DOffset, b.array2DOffset = 0, 0
	b.currentPixelSampleIndex++
	return b.currentPixelSampleIndex < b.samplesPerPixel
}

func (b *base) SetSampleIndex(sampleIdx int64) bool {
	b.array1DOffset, b.array2DOffset = 0, 0
	b.currentPixelSampleIndex = sampleIdx
	return b.currentPixelSampleIndex < b.samplesPerPixel
}

func (b *base) Request1DArray(n int) {
	b.samples1DArraySizes = append(b.samples1DArraySizes, n)
	b.sampleArray1D = append(b.sampleArray1D, make([]geom.Real, n*int(b.samplesPerPixel)))
}

func (b *base) Request2DArray(n int) {
	b.samples2DArraySizes = append(b.samples2DArraySizes, n)
	b.sampleArray2D = append(b.sampleArray2D, make([]geom.Point2, n*int(b.samplesPerPixel)))
}

func (b *base) Get1DArray(n int) []geom.Real {
	if b.array1DOffset == len(b.sampleArray1D) {
		return nil
	}
	arr := b.sampleArray1D[b.array1DOffset]
	b.array1DOffset++
	start := n * int(b.currentPixelSampleIndex)
	return arr[start : start+n]
}

func (b *base) Get2DArray(n int) []geom.Point2 {
	if b.array2DOffset == len(b.sampleArray2D) {
		return nil
	}
	arr := b.sampleArray2D[b.array2DOffset]
	b.array2DOffset++
	start := n * int(b.currentPixelSampleIndex)
	return arr[start : start+n]
}

// GetCameraSample order matters: pFilm's 2D sample must be drawn before
// pLens's, since the sequence of GetNextSample2D calls is what a sampler's
// precomputed dimension tables are built against.
func (b *base) GetCameraSample(pRaster geom.Point2i) CameraSample {
	var cs CameraSample
	filmJitter := b.self.GetNextSample2D()
	cs.PFilm = pRaster.ToPoint2().AddVector(geom.Vector2{X: filmJitter.X, Y: filmJitter.Y})
	cs.PLens = b.self.GetNextSample2D()
	return cs
}
