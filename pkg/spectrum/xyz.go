package spectrum

import "sync"

var (
	xBasis, yBasis, zBasis SampledSpectrum
	initOnce               sync.Once
)

// Init performs the one-time population of the sampled CIE basis spectra
// used by ToXYZ/ToRGB/Y. It must run before any conversion call; callers
// that only ever add/scale/clamp spectra never need to call it. Modeled as
// an explicit, idempotent entry point (rather than a package `init()`)
// because the source threads this as an explicit call ordered before any
// spectrum arithmetic — package-level `init()` would hide that ordering
// contract from readers.
func Init() {
	initOnce.Do(func() {
		for i := 0; i < NumSamples; i++ {
			l0, l1 := binRange(i)
			xBasis.s[i] = averageSampleRange(cieX, l0, l1)
			yBasis.s[i] = averageSampleRange(cieY, l0, l1)
			zBasis.s[i] = averageSampleRange(cieZ, l0, l1)
		}
	})
}

// ToXYZ converts to CIE XYZ tristimulus values via Riemann-sum integration
// against the basis spectra, normalized by the wavelength range and the Y
// integral so a flat unit spectrum maps to Y ~= 1.
func (a SampledSpectrum) ToXYZ() (x, y, z float64) {
	Init()
	for i := 0; i < NumSamples; i++ {
		x += xBasis.s[i] * a.s[i]
		y += yBasis.s[i] * a.s[i]
		z += zBasis.s[i] * a.s[i]
	}
	scale := (WavelengthEnd - WavelengthStart) / (cieYIntegral * NumSamples)
	return x * scale, y * scale, z * scale
}

// Y returns photometric luminance, the projection onto the CIE Y matching
// function alone.
func (a SampledSpectrum) Y() float64 {
	Init()
	y := 0.0
	for i := 0; i < NumSamples; i++ {
		y += yBasis.s[i] * a.s[i]
	}
	return y * (WavelengthEnd - WavelengthStart) / (cieYIntegral * NumSamples)
}

// XYZToRGB applies the standard CIE XYZ -> linear sRGB primaries matrix.
func XYZToRGB(x, y, z float64) (r, g, b float64) {
	r = 3.2404542*x - 1.5371385*y - 0.4985314*z
	g = -0.9692660*x + 1.8760108*y + 0.0415560*z
	b = 0.0556434*x - 0.2040259*y + 1.0572252*z
	return r, g, b
}

func RGBToXYZ(r, g, b float64) (x, y, z float64) {
	x = 0.4124564*r + 0.3575761*g + 0.1804375*b
	y = 0.2126729*r + 0.7151522*g + 0.0721750*b
	z = 0.0193339*r + 0.1191920*g + 0.9503041*b
	return x, y, z
}

// ToRGB converts via ToXYZ then XYZToRGB.
func (a SampledSpectrum) ToRGB() (r, g, b float64) {
	x, y, z := a.ToXYZ()
	return XYZToRGB(x, y, z)
}

// FromRGB builds a spectrum that reproduces (r,g,b) under ToRGB, using
// Smits' 1999 piecewise RGB-to-spectrum basis functions. basis selects
// between a reflectance interpretation (clamped to [0,1], as for an
// albedo) and an illuminant interpretation. Both build the spectrum from
// the same basis curves; no D65 scaling is applied, and the illuminant
// case differs only in its clamp bound.
func FromRGB(r, g, b float64, basis Basis) SampledSpectrum {
	if basis == Reflectance {
		r = clamp01(r)
		g = clamp01(g)
		b = clamp01(b)
	}

	white := smitsBasis(smitsWhite)
	cyan := smitsBasis(smitsCyan)
	magenta := smitsBasis(smitsMagenta)
	yellow := smitsBasis(smitsYellow)
	red := smitsBasis(smitsRed)
	green := smitsBasis(smitsGreen)
	blue := smitsBasis(smitsBlue)

	result := New(0)
	switch {
	case r <= g && r <= b:
		result = result.Add(white.Scale(r))
		if g <= b {
			result = result.Add(cyan.Scale(g - r))
			result = result.Add(blue.Scale(b - g))
		} else {
			result = result.Add(cyan.Scale(b - r))
			result = result.Add(green.Scale(g - b))
		}
	case g <= r && g <= b:
		result = result.Add(white.Scale(g))
		if r <= b {
			result = result.Add(magenta.Scale(r - g))
			result = result.Add(blue.Scale(b - r))
		} else {
			result = result.Add(magenta.Scale(b - g))
			result = result.Add(red.Scale(r - b))
		}
	default:
		result = result.Add(white.Scale(b))
		if r <= g {
			result = result.Add(yellow.Scale(r - b))
			result = result.Add(green.Scale(g - r))
		} else {
			result = result.Add(yellow.Scale(g - b))
			result = result.Add(red.Scale(r - g))
		}
	}
	return result.Clamp(0, maxFloat(basis))
}

func maxFloat(basis Basis) float64 {
	if basis == Reflectance {
		return 1
	}
	return 1e38
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
