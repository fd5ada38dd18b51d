package integrator

import (
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/sampler"
)

// fixedStubSampler is a minimal sampler.Sampler that always returns the
// same configured values, for tests that only care about one deterministic
// draw rather than exercising real stratification.
type fixedStubSampler struct {
	u1D geom.Real
	u2D geom.Point2
}

func (s fixedStubSampler) StartPixel(geom.Point2i)         {}
func (s fixedStubSampler) StartNextSample() bool            { return false }
func (s fixedStubSampler) SetSampleIndex(int64) bool         { return true }
func (s fixedStubSampler) GetNextSample1D() geom.Real        { return s.u1D }
func (s fixedStubSampler) GetNextSample2D() geom.Point2      { return s.u2D }
func (s fixedStubSampler) GetCameraSample(pRaster geom.Point2i) sampler.CameraSample {
	return sampler.CameraSample{PFilm: geom.Point2{X: geom.Real(pRaster.X), Y: geom.Real(pRaster.Y)}}
}
func (s fixedStubSampler) Request1DArray(int)                {}
func (s fixedStubSampler) Request2DArray(int)                {}
func (s fixedStubSampler) Get1DArray(int) []geom.Real        { return nil }
func (s fixedStubSampler) Get2DArray(int) []geom.Point2      { return nil }
func (s fixedStubSampler) RefineRequestCount(n int) int      { return n }
func (s fixedStubSampler) Clone(int) sampler.Sampler         { return s }
func (s fixedStubSampler) SamplesPerPixel() int64            { return 1 }
func (s fixedStubSampler) CurrentSampleIndex() int64         { return 0 }
