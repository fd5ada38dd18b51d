// Package lightdistrib selects which scene light to sample at a given
// point: Uniform (ignores the point), Power (weights by emitted power,
// still point-independent), and Spatial (a lock-free voxel-grid cache of
// per-region distributions).
package lightdistrib

import "github.com/methusael13/phyray-go/pkg/geom"

// Distribution1D is a piecewise-constant probability distribution over n
// buckets built from an array of non-negative function values, supporting
// O(log n) discrete sampling via its cumulative distribution function.
type Distribution1D struct {
	Func     []geom.Real
	cdf      []geom.Real
	FuncInt  geom.Real
}

// NewDistribution1D builds a distribution from piecewise-constant function
// values; a zero-sum input (every light weighted at 0) falls back to a
// uniform distribution rather than dividing by zero.
func NewDistribution1D(f []geom.Real) *Distribution1D {
	n := len(f)
	d := &Distribution1D{Func: append([]geom.Real(nil), f...), cdf: make([]geom.Real, n+1)}

	for i := 1; i <= n; i++ {
		d.cdf[i] = d.cdf[i-1] + d.Func[i-1]/geom.Real(n)
	}
	d.FuncInt = d.cdf[n]
	if d.FuncInt == 0 {
		for i := 1; i <= n; i++ {
			d.cdf[i] = geom.Real(i) / geom.Real(n)
		}
	} else {
		for i := 1; i <= n; i++ {
			d.cdf[i] /= d.FuncInt
		}
	}
	return d
}

// Count is the number of buckets in the distribution.
func (d *Distribution1D) Count() int { return len(d.Func) }

// SampleDiscrete picks a bucket index proportional to its function value,
// returning the bucket's selection probability and the portion of u
// remapped to [0,1) within that bucket.
func (d *Distribution1D) SampleDiscrete(u geom.Real) (index int, pdf geom.Real, uRemapped geom.Real) {
	index = findInterval(d.cdf, u)
	pdf = d.DiscretePdf(index)

	denom := d.cdf[index+1] - d.cdf[index]
	if denom > 0 {
		uRemapped = (u - d.cdf[index]) / denom
	}
	return index, pdf, uRemapped
}

// DiscretePdf is the selection probability of the given bucket index.
func (d *Distribution1D) DiscretePdf(index int) geom.Real {
	if d.FuncInt == 0 {
		return 1 / geom.Real(len(d.Func))
	}
	return d.Func[index] / (d.FuncInt * geom.Real(len(d.Func)))
}

// findInterval returns the largest i such that cdf[i] <= u < cdf[i+1],
// clamped to a valid bucket index.
func findInterval(cdf []geom.Real, u geom.Real) int {
	lo, hi := 0, len(cdf)-2
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if cdf[mid] <= u {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
