// Package spectrum implements SampledSpectrum, a 60-bin discretization of a
// wavelength-dependent radiometric quantity over [400nm, 700nm], with
// CIE XYZ/RGB conversion and element-wise arithmetic.
package spectrum

import "math"

const (
	WavelengthStart = 400
	WavelengthEnd   = 700
	NumSamples      = 60
)

// Basis distinguishes reflectance spectra (values constrained to [0,1],
// used for albedos) from illuminant spectra (used for light emission) when
// converting from RGB. Both use the same Smits curves; illuminant spectra
// are not scaled against D65.
type Basis int

const (
	Reflectance Basis = iota
	Illuminant
)

// SampledSpectrum holds NumSamples uniformly-spaced radiometric samples.
type SampledSpectrum struct {
	s [NumSamples]float64
}

// New builds a spectrum with every bin set to v.
func New(v float64) SampledSpectrum {
	var s SampledSpectrum
	for i := range s.s {
		s.s[i] = v
	}
	return s
}

var Black = SampledSpectrum{}

func (s SampledSpectrum) At(i int) float64   { return s.s[i] }
func (s *SampledSpectrum) Set(i int, v float64) { s.s[i] = v }

func (a SampledSpectrum) Add(b SampledSpectrum) SampledSpectrum {
	var r SampledSpectrum
	for i := range r.s {
		r.s[i] = a.s[i] + b.s[i]
	}
	return r
}

func (a SampledSpectrum) Sub(b SampledSpectrum) SampledSpectrum {
	var r SampledSpectrum
	for i := range r.s {
		r.s[i] = a.s[i] - b.s[i]
	}
	return r
}

func (a SampledSpectrum) Mul(b SampledSpectrum) SampledSpectrum {
	var r SampledSpectrum
	for i := range r.s {
		r.s[i] = a.s[i] * b.s[i]
	}
	return r
}

func (a SampledSpectrum) Div(b SampledSpectrum) SampledSpectrum {
	var r SampledSpectrum
	for i := range r.s {
		if b.s[i] != 0 {
			r.s[i] = a.s[i] / b.s[i]
		}
	}
	return r
}

func (a SampledSpectrum) Scale(v float64) SampledSpectrum {
	var r SampledSpectrum
	for i := range r.s {
		r.s[i] = a.s[i] * v
	}
	return r
}

func (a SampledSpectrum) Negate() SampledSpectrum { return a.Scale(-1) }

func (a SampledSpectrum) Sqrt() SampledSpectrum {
	var r SampledSpectrum
	for i := range r.s {
		r.s[i] = math.Sqrt(a.s[i])
	}
	return r
}

func (a SampledSpectrum) Exp() SampledSpectrum {
	var r SampledSpectrum
	for i := range r.s {
		r.s[i] = math.Exp(a.s[i])
	}
	return r
}

func (a SampledSpectrum) Pow(e float64) SampledSpectrum {
	var r SampledSpectrum
	for i := range r.s {
		r.s[i] = math.Pow(a.s[i], e)
	}
	return r
}

func (a SampledSpectrum) Clamp(low, high float64) SampledSpectrum {
	var r SampledSpectrum
	for i := range r.s {
		v := a.s[i]
		if v < low {
			v = low
		}
		if v > high {
			v = high
		}
		r.s[i] = v
	}
	return r
}

func (a SampledSpectrum) MaxComponent() float64 {
	m := a.s[0]
	for _, v := range a.s[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func (a SampledSpectrum) IsBlack() bool {
	for _, v := range a.s {
		if v != 0 {
			return false
		}
	}
	return true
}

func (a SampledSpectrum) HasNaN() bool {
	for _, v := range a.s {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

func (a SampledSpectrum) Lerp(b SampledSpectrum, t float64) SampledSpectrum {
	return a.Scale(1 - t).Add(b.Scale(t))
}

// binRange returns the [lambda0, lambda1) wavelength range for sample i.
func binRange(i int) (lambda0, lambda1 float64) {
	const n = NumSamples
	lambda0 = lerpF(float64(i)/n, WavelengthStart, WavelengthEnd)
	lambda1 = lerpF(float64(i+1)/n, WavelengthStart, WavelengthEnd)
	return lambda0, lambda1
}

func lerpF(t, a, b float64) float64 { return (1-t)*a + t*b }

// FromSamples builds a SampledSpectrum from arbitrary (lambda, value) pairs:
// the samples are sorted by wavelength and averaged into each of the 60
// output bins via piecewise-linear interpolation of the input, matching
// SampledSpectrum::getFromSample in the source.
func FromSamples(lambda, v []float64) SampledSpectrum {
	lambda, v = sortedCopy(lambda, v)

	var s SampledSpectrum
	for i := 0; i < NumSamples; i++ {
		l0, l1 := binRange(i)
		s.s[i] = averageIrregular(lambda, v, l0, l1)
	}
	return s
}

func sortedCopy(lambda, v []float64) ([]float64, []float64) {
	n := len(lambda)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 1; i < n; i++ {
		for j := i; j > 0 && lambda[idx[j-1]] > lambda[idx[j]]; j-- {
			idx[j-1], idx[j] = idx[j], idx[j-1]
		}
	}
	sl := make([]float64, n)
	sv := make([]float64, n)
	for i, k := range idx {
		sl[i] = lambda[k]
		sv[i] = v[k]
	}
	return sl, sv
}

// averageIrregular averages piecewise-linearly interpolated (lambda, v)
// samples over [lambda0, lambda1].
func averageIrregular(lambda, v []float64, lambda0, lambda1 float64) float64 {
	n := len(lambda)
	if n == 0 {
		return 0
	}
	if lambda1 <= lambda[0] {
		return v[0]
	}
	if lambda0 >= lambda[n-1] {
		return v[n-1]
	}
	if n == 1 {
		return v[0]
	}

	sum := 0.0
	if lambda0 < lambda[0] {
		sum += v[0] * (lambda[0] - lambda0)
	}
	if lambda1 > lambda[n-1] {
		sum += v[n-1] * (lambda1 - lambda[n-1])
	}

	i := 0
	for i+1 < n && lambda[i+1] < lambda0 {
		i++
	}
	interp := func(w float64, i int) float64 {
		t := (w - lambda[i]) / (lambda[i+1] - lambda[i])
		return lerpF(t, v[i], v[i+1])
	}
	for ; i+1 < n && lambda0 < lambda[n-1] && lambda[i] <= lambda1; i++ {
		segStart := math.Max(lambda0, lambda[i])
		segEnd := math.Min(lambda1, lambda[i+1])
		if segStart < segEnd {
			vStart := interp(segStart, i)
			vEnd := interp(segEnd, i)
			sum += 0.5 * (vStart + vEnd) * (segEnd - segStart)
		}
	}
	return sum / (lambda1 - lambda0)
}
