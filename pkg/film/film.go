// Package film accumulates filtered radiance samples into pixels and
// resolves them to a final image. A Film is split into per-tile FilmTiles
// so worker goroutines can accumulate samples without contending on a
// shared lock; tiles are merged back into the Film under a single mutex
// once complete.
package film

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

// filterTableSize is the resolution of the precomputed 2D filter-weight
// lookup table: evaluating a filter analytically for every (pixel, sample)
// pair visited during rendering would dominate render time, so the filter
// is instead evaluated once on a 16x16 grid over its support and every
// sample looks up the nearest table entry by scaled distance.
const filterTableSize = 16

// Pixel holds one resolved output pixel's accumulated tristimulus value and
// the total filter weight that contributed to it.
type Pixel struct {
	XYZ             [3]float64
	FilterWeightSum float64
}

// FilmTilePixel is the same accumulator, keyed in a tile's local pixel
// array rather than the Film's — spectral rather than XYZ, since the
// Film->XYZ conversion only needs to happen once, at merge time.
type FilmTilePixel struct {
	ContributionSum spectrum.SampledSpectrum
	FilterWeightSum geom.Real
}

// FilmTile accumulates samples for one rectangular region of the image. It
// is owned by exactly one rendering goroutine for its lifetime and carries
// its own copy of the precomputed filter table, so it never touches Film's
// shared state until MergeFilmTile.
type FilmTile struct {
	pixelBounds     geom.Bounds2i
	filterRadius    geom.Vector2
	invFilterRadius geom.Vector2
	filterTable     []geom.Real
	filterTableSize int

	pixels []FilmTilePixel
}

func newFilmTile(pixelBounds geom.Bounds2i, filterRadius geom.Vector2, filterTable []geom.Real, tableSize int) *FilmTile {
	n := pixelBounds.Area()
	if n < 0 {
		n = 0
	}
	return &FilmTile{
		pixelBounds:     pixelBounds,
		filterRadius:    filterRadius,
		invFilterRadius: geom.Vector2{X: 1 / filterRadius.X, Y: 1 / filterRadius.Y},
		filterTable:     filterTable,
		filterTableSize: tableSize,
		pixels:          make([]FilmTilePixel, n),
	}
}

// PixelBounds returns the pixel rectangle this tile covers.
func (t *FilmTile) PixelBounds() geom.Bounds2i { return t.pixelBounds }

func (t *FilmTile) getPixel(p geom.Point2i) *FilmTilePixel {
	w := t.pixelBounds.PMax.X - t.pixelBounds.PMin.X
	idx := (p.Y-t.pixelBounds.PMin.Y)*w + (p.X - t.pixelBounds.PMin.X)
	return &t.pixels[idx]
}

// AddSample splats one sample's radiance across every pixel its filter's
// support overlaps, weighted by the filter value at each pixel's offset
// from the (continuous) sample position.
func (t *FilmTile) AddSample(pFilm geom.Point2, l spectrum.SampledSpectrum, sampleWeight geom.Real) {
	pFilmDiscrete := geom.Point2{X: pFilm.X - 0.5, Y: pFilm.Y - 0.5}

	p0 := geom.Point2i{
		X: int(math.Ceil(float64(pFilmDiscrete.X - t.filterRadius.X))),
		Y: int(math.Ceil(float64(pFilmDiscrete.Y - t.filterRadius.Y))),
	}
	p1 := geom.Point2i{
		X: int(math.Floor(float64(pFilmDiscrete.X+t.filterRadius.X))) + 1,
		Y: int(math.Floor(float64(pFilmDiscrete.Y+t.filterRadius.Y))) + 1,
	}
	p0.X, p0.Y = maxInt(p0.X, t.pixelBounds.PMin.X), maxInt(p0.Y, t.pixelBounds.PMin.Y)
	p1.X, p1.Y = minInt(p1.X, t.pixelBounds.PMax.X), minInt(p1.Y, t.pixelBounds.PMax.Y)
	if p0.X >= p1.X || p0.Y >= p1.Y {
		return
	}

	ftx := make([]int, p1.X-p0.X)
	for x := p0.X; x < p1.X; x++ {
		fx := absReal((geom.Real(x) - pFilmDiscrete.X) * t.invFilterRadius.X * geom.Real(t.filterTableSize))
		ftx[x-p0.X] = minInt(int(math.Floor(float64(fx))), t.filterTableSize-1)
	}
	fty := make([]int, p1.Y-p0.Y)
	for y := p0.Y; y < p1.Y; y++ {
		fy := absReal((geom.Real(y) - pFilmDiscrete.Y) * t.invFilterRadius.Y * geom.Real(t.filterTableSize))
		fty[y-p0.Y] = minInt(int(math.Floor(float64(fy))), t.filterTableSize-1)
	}

	for y := p0.Y; y < p1.Y; y++ {
		for x := p0.X; x < p1.X; x++ {
			idx := fty[y-p0.Y]*t.filterTableSize + ftx[x-p0.X]
			weight := t.filterTable[idx]

			pixel := t.getPixel(geom.Point2i{X: x, Y: y})
			pixel.ContributionSum = pixel.ContributionSum.Add(l.Scale(float64(sampleWeight * weight)))
			pixel.FilterWeightSum += weight
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Film is the final image plane: a cropped pixel grid plus the
// reconstruction filter used to resolve samples into it. Safe for
// concurrent use — every mutating call goes through mu, and the only one
// that's actually hot (MergeFilmTile) holds it only as long as it takes to
// add one tile's worth of already-filtered pixels.
type Film struct {
	Resolution         geom.Point2i
	filter             Filter
	croppedImageBounds geom.Bounds2i
	filterTable        []geom.Real
	scale              geom.Real

	mu     sync.Mutex
	pixels []Pixel
}

// NewFilm builds a film over resolution pixels, cropped to cropWindow (unit
// square coordinates, e.g. {0,0}-{1,1} for the full frame), reconstructed
// with filter, and scaled by scale before gamma-encoding to 8-bit output.
func NewFilm(resolution geom.Point2i, cropWindow geom.Bounds2, filter Filter, scale geom.Real) *Film {
	croppedImageBounds := geom.NewBounds2i(
		geom.Point2i{
			X: int(math.Ceil(float64(geom.Real(resolution.X) * cropWindow.PMin.X))),
			Y: int(math.Ceil(float64(geom.Real(resolution.Y) * cropWindow.PMin.Y))),
		},
		geom.Point2i{
			X: int(math.Ceil(float64(geom.Real(resolution.X) * cropWindow.PMax.X))),
			Y: int(math.Ceil(float64(geom.Real(resolution.Y) * cropWindow.PMax.Y))),
		},
	)

	f := &Film{
		Resolution:         resolution,
		filter:             filter,
		croppedImageBounds: croppedImageBounds,
		scale:              scale,
		pixels:             make([]Pixel, croppedImageBounds.Area()),
	}

	f.filterTable = make([]geom.Real, filterTableSize*filterTableSize)
	radius := filter.Radius()
	offset := 0
	for y := 0; y < filterTableSize; y++ {
		for x := 0; x < filterTableSize; x++ {
			p := geom.Point2{
				X: (geom.Real(x) + 0.5) * radius.X / filterTableSize,
				Y: (geom.Real(y) + 0.5) * radius.Y / filterTableSize,
			}
			f.filterTable[offset] = filter.Evaluate(p)
			offset++
		}
	}
	return f
}

// GetSampleBounds returns the pixel rectangle samples must be drawn from to
// cover every pixel the filter could touch, expanding the cropped image
// bounds outward by the filter radius and rounding to whole pixels.
func (f *Film) GetSampleBounds() geom.Bounds2i {
	radius := f.filter.Radius()
	return geom.NewBounds2i(
		geom.Point2i{
			X: int(math.Floor(float64(geom.Real(f.croppedImageBounds.PMin.X) + 0.5 - radius.X))),
			Y: int(math.Floor(float64(geom.Real(f.croppedImageBounds.PMin.Y) + 0.5 - radius.Y))),
		},
		geom.Point2i{
			X: int(math.Ceil(float64(geom.Real(f.croppedImageBounds.PMax.X) - 0.5 + radius.X))),
			Y: int(math.Ceil(float64(geom.Real(f.croppedImageBounds.PMax.Y) - 0.5 + radius.Y))),
		},
	)
}

// GetFilmTile allocates a tile covering the pixels sampleBounds could
// contribute to, clipped to the film's cropped image.
func (f *Film) GetFilmTile(sampleBounds geom.Bounds2i) *FilmTile {
	radius := f.filter.Radius()
	p0 := geom.Point2i{
		X: int(math.Ceil(float64(geom.Real(sampleBounds.PMin.X) - 0.5 - radius.X))),
		Y: int(math.Ceil(float64(geom.Real(sampleBounds.PMin.Y) - 0.5 - radius.Y))),
	}
	p1 := geom.Point2i{
		X: int(math.Floor(float64(geom.Real(sampleBounds.PMax.X) - 0.5 + radius.X))) + 1,
		Y: int(math.Floor(float64(geom.Real(sampleBounds.PMax.Y) - 0.5 + radius.Y))) + 1,
	}
	tileBounds := geom.NewBounds2i(p0, p1).Intersect(f.croppedImageBounds)
	return newFilmTile(tileBounds, radius, f.filterTable, filterTableSize)
}

// MergeFilmTile folds a completed tile's per-pixel contributions into the
// film, converting spectral contributions to XYZ exactly once per pixel.
// The lock is held only for this accumulation, never while a goroutine is
// still tracing rays or filtering samples.
func (f *Film) MergeFilmTile(tile *FilmTile) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b := tile.pixelBounds
	for y := b.PMin.Y; y < b.PMax.Y; y++ {
		for x := b.PMin.X; x < b.PMax.X; x++ {
			p := geom.Point2i{X: x, Y: y}
			tp := tile.getPixel(p)
			merged := f.getPixel(p)

			px, py, pz := tp.ContributionSum.ToXYZ()
			merged.XYZ[0] += px
			merged.XYZ[1] += py
			merged.XYZ[2] += pz
			merged.FilterWeightSum += float64(tp.FilterWeightSum)
		}
	}
}

func (f *Film) getPixel(p geom.Point2i) *Pixel {
	w := f.croppedImageBounds.PMax.X - f.croppedImageBounds.PMin.X
	idx := (p.Y-f.croppedImageBounds.PMin.Y)*w + (p.X - f.croppedImageBounds.PMin.X)
	return &f.pixels[idx]
}

// gamma is the display encoding gamma applied when resolving to 8-bit
// output; 2.2 approximates the sRGB transfer function closely enough for
// preview-quality output without needing the exact piecewise curve.
const gamma = 2.2

// WriteImage resolves every accumulated pixel (dividing out its filter
// weight sum, converting XYZ to RGB, applying scale and gamma, and clamping
// to [0,1]) into a ready-to-encode 8-bit RGBA image.
func (f *Film) WriteImage() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()

	b := f.croppedImageBounds
	w, h := b.PMax.X-b.PMin.X, b.PMax.Y-b.PMin.Y
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := f.pixels[y*w+x]
			xyz := px.XYZ
			if px.FilterWeightSum != 0 {
				inv := 1 / px.FilterWeightSum
				xyz[0] *= inv
				xyz[1] *= inv
				xyz[2] *= inv
			}
			r, g, bl := spectrum.XYZToRGB(xyz[0], xyz[1], xyz[2])
			r, g, bl = r*float64(f.scale), g*float64(f.scale), bl*float64(f.scale)
			img.SetRGBA(x, y, color.RGBA{
				R: encodeChannel(r),
				G: encodeChannel(g),
				B: encodeChannel(bl),
				A: 255,
			})
		}
	}
	return img
}

func encodeChannel(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	v = math.Pow(v, 1/gamma)
	return uint8(math.Round(v * 255))
}
