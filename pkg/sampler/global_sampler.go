package sampler

import "github.com/methusael13/phyray-go/pkg/geom"

// globalSamplerImpl is the pair of primitives a low-discrepancy sampler
// (Halton, Sobol, ...) must supply: a mapping from the sample number within
// a pixel to a sample index in some shared, pixel-independent sequence, and
// the ability to evaluate one dimension of that sequence at a given index.
// GlobalSampler turns those two primitives into the full Sampler interface.
type globalSamplerImpl interface {
	GetIndexForSample(sampleNum int64) int64
	SampleDimension(index int64, dim int) geom.Real
}

// arrayStartDim is the dimension at which per-pixel array-sample requests
// begin; dimensions below it are reserved for the base film/lens samples
// plus a few scalar dimensions integrators commonly consume first.
const arrayStartDim = 5

// GlobalSampler adapts a pixel-independent low-discrepancy sequence (one
// shared across the whole image, unlike PixelSampler's per-pixel tables)
// into the Sampler interface: each pixel sample is assigned an index into
// the shared sequence, and every requested dimension reads off consecutive
// coordinates of that sequence starting from the index.
type GlobalSampler struct {
	*base

	impl globalSamplerImpl

	dimension           int
	intervalSampleIndex int64
	arrayEndDim         int
}

func newGlobalSampler(self Sampler, samplesPerPixel int64, impl globalSamplerImpl) *GlobalSampler {
	gs := &GlobalSampler{impl: impl}
	gs.base = newBase(self, samplesPerPixel)
	return gs
}

func (gs *GlobalSampler) StartPixel(p geom.Point2i) {
	gs.base.StartPixel(p)
	gs.dimension = 0
	gs.intervalSampleIndex = gs.impl.GetIndexForSample(0)

	gs.arrayEndDim = arrayStartDim + len(gs.sampleArray1D) + 2*len(gs.sampleArray2D)

	for i, n := range gs.samples1DArraySizes {
		dim := arrayStartDim + i
		for j := 0; j < n*int(gs.samplesPerPixel); j++ {
			index := gs.impl.GetIndexForSample(int64(j))
			gs.sampleArray1D[i][j] = gs.impl.SampleDimension(index, dim)
		}
	}

	dim := arrayStartDim + len(gs.samples1DArraySizes)
	for i, n := range gs.samples2DArraySizes {
		for j := 0; j < n*int(gs.samplesPerPixel); j++ {
			index := gs.impl.GetIndexForSample(int64(j))
			gs.sampleArray2D[i][j] = geom.Point2{
				X: gs.impl.SampleDimension(index, dim+2*i),
				Y: gs.impl.SampleDimension(index, dim+2*i+1),
			}
		}
	}
}

func (gs *GlobalSampler) StartNextSample() bool {
	gs.dimension = 0
	gs.intervalSampleIndex = gs.impl.GetIndexForSample(gs.currentPixelSampleIndex + 1)
	return gs.base.StartNextSample()
}

func (gs *GlobalSampler) SetSampleIndex(sampleNum int64) bool {
	gs.dimension = 0
	gs.intervalSampleIndex = gs.impl.GetIndexForSample(sampleNum)
	return gs.base.SetSampleIndex(sampleNum)
}

func (gs *GlobalSampler) GetNextSample1D() geom.Real {
	if gs.dimension >= arrayStartDim && gs.dimension < gs.arrayEndDim {
		gs.dimension = gs.arrayEndDim
	}
	v := gs.impl.SampleDimension(gs.intervalSampleIndex, gs.dimension)
	gs.dimension++
	return v
}

func (gs *GlobalSampler) GetNextSample2D() geom.Point2 {
	if gs.dimension+1 >= arrayStartDim && gs.dimension < gs.arrayEndDim {
		gs.dimension = gs.arrayEndDim
	}
	// Paired dimensions must start on an even offset so that consecutive
	// 2D requests never straddle an odd/even boundary and alias together.
	if gs.dimension%2 != 0 {
		gs.dimension++
	}
	p := geom.Point2{
		X: gs.impl.SampleDimension(gs.intervalSampleIndex, gs.dimension),
		Y: gs.impl.SampleDimension(gs.intervalSampleIndex, gs.dimension+1),
	}
	gs.dimension += 2
	return p
}
