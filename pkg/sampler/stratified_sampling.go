package sampler

import (
	"math"

	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/rng"
)

const oneMinusEpsilon = 1 - 1e-7

// stratifiedSample1D fills samp with one sample per stratum of [0,1),
// dividing it into nSamples equal strata and placing one sample in each —
// jittered within the stratum if jitter is set, centered otherwise.
func stratifiedSample1D(samp []geom.Real, nSamples int, jitter bool, r rng.Source) {
	invNSamples := 1 / geom.Real(nSamples)
	for i := 0; i < nSamples; i++ {
		delta := geom.Real(0.5)
		if jitter {
			delta = geom.Real(r.Float64())
		}
		samp[i] = geom.Real(math.Min(float64((geom.Real(i)+delta)*invNSamples), oneMinusEpsilon))
	}
}

// stratifiedSample2D divides the unit square into an nx-by-ny grid of equal
// strata and places one sample in each.
func stratifiedSample2D(samp []geom.Point2, nx, ny int, jitter bool, r rng.Source) {
	dx, dy := 1/geom.Real(nx), 1/geom.Real(ny)
	idx := 0
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			jx, jy := geom.Real(0.5), geom.Real(0.5)
			if jitter {
				jx, jy = geom.Real(r.Float64()), geom.Real(r.Float64())
			}
			samp[idx] = geom.Point2{
				X: geom.Real(math.Min(float64((geom.Real(x)+jx)*dx), oneMinusEpsilon)),
				Y: geom.Real(math.Min(float64((geom.Real(y)+jy)*dy), oneMinusEpsilon)),
			}
			idx++
		}
	}
}

// latinHypercube2D draws nSamples 2D samples via Latin hypercube sampling:
// each axis is independently stratified into nSamples strata and then the
// per-axis orderings are shuffled, so the projection onto either axis alone
// is still well stratified even though the joint samples are not placed on
// a grid.
func latinHypercube2D(samp []geom.Point2, nSamples int, r rng.Source) {
	invNSamples := 1 / geom.Real(nSamples)
	for i := 0; i < nSamples; i++ {
		samp[i] = geom.Point2{
			X: geom.Real(math.Min(float64((geom.Real(i)+geom.Real(r.Float64()))*invNSamples), oneMinusEpsilon)),
			Y: geom.Real(math.Min(float64((geom.Real(i)+geom.Real(r.Float64()))*invNSamples), oneMinusEpsilon)),
		}
	}
	for axis := 0; axis < 2; axis++ {
		for i := nSamples - 1; i > 0; i-- {
			j := r.Intn(i + 1)
			if axis == 0 {
				samp[i].X, samp[j].X = samp[j].X, samp[i].X
			} else {
				samp[i].Y, samp[j].Y = samp[j].Y, samp[i].Y
			}
		}
	}
}

// shuffleReal and shuffle2D are Fisher-Yates shuffles used to decorrelate
// the per-dimension stratified sample streams generated independently for
// each requested dimension — without this, dimension 0 and dimension 1
// would both be sorted into the same stratum order and samples would
// correlate across dimensions.
func shuffleReal(samp []geom.Real, r rng.Source) {
	for i := len(samp) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		samp[i], samp[j] = samp[j], samp[i]
	}
}

func shuffle2D(samp []geom.Point2, r rng.Source) {
	for i := len(samp) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		samp[i], samp[j] = samp[j], samp[i]
	}
}
