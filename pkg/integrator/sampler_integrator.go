package integrator

import (
	"log"
	"math"

	"github.com/methusael13/phyray-go/pkg/camera"
	"github.com/methusael13/phyray-go/pkg/film"
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/memory"
	"github.com/methusael13/phyray-go/pkg/parallel"
	"github.com/methusael13/phyray-go/pkg/sampler"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

const tileSize = 16

// Integrator is a light-transport algorithm: given a camera ray, it
// returns the radiance arriving along it. Preprocess runs once before
// rendering starts, with the scene, to build any setup-time state (a light
// distribution, for instance).
type Integrator interface {
	Preprocess(scene *Scene)
	Li(ray geom.Ray, scene *Scene, samp sampler.Sampler, arena *memory.Arena, depth int) spectrum.SampledSpectrum
}

// SamplerIntegrator is the shared tile-partition/render/merge driver every
// concrete integrator here embeds: it owns nothing of the light-transport
// math itself (that's Integrator.Li), only the camera-ray generation and
// parallel tile loop around it.
type SamplerIntegrator struct {
	self        Integrator
	Camera      camera.Camera
	Sampler     sampler.Sampler
	PixelBounds geom.Bounds2i
}

func newSamplerIntegrator(self Integrator, cam camera.Camera, samp sampler.Sampler, pixelBounds geom.Bounds2i) SamplerIntegrator {
	return SamplerIntegrator{self: self, Camera: cam, Sampler: samp, PixelBounds: pixelBounds}
}

// Render partitions the camera film's sample bounds into 16x16 tiles and
// submits one Job per tile to a worker pool (one cloned sampler and one
// arena per tile); tiles are merged into the film one at a time as their
// results arrive, rather than waiting on every tile at once. It does not
// write the final image — call Camera.Film().WriteImage() once Render
// returns.
func (si *SamplerIntegrator) Render(scene *Scene) {
	si.self.Preprocess(scene)

	f := si.Camera.Film()
	sampleBounds := f.GetSampleBounds()
	extentX := sampleBounds.PMax.X - sampleBounds.PMin.X
	extentY := sampleBounds.PMax.Y - sampleBounds.PMin.Y

	nTilesX := (extentX + tileSize - 1) / tileSize
	nTilesY := (extentY + tileSize - 1) / tileSize
	nTiles := nTilesX * nTilesY

	pool := parallel.NewPool(0, nTiles)
	for ty := 0; ty < nTilesY; ty++ {
		for tx := 0; tx < nTilesX; tx++ {
			tx, ty := tx, ty
			pool.Submit(parallel.Job{
				TaskID: ty*nTilesX + tx,
				Run: func() any {
					return si.renderTile(scene, f, sampleBounds, nTilesX, tx, ty)
				},
			})
		}
	}

	for i := 0; i < nTiles; i++ {
		result := <-pool.Results()
		f.MergeFilmTile(result.Value.(*film.FilmTile))
	}
	pool.Stop()
}

// renderTile draws every sample for tile (tx, ty) into its own FilmTile,
// which the caller merges into the film once the Job returns it.
func (si *SamplerIntegrator) renderTile(scene *Scene, f *film.Film, sampleBounds geom.Bounds2i, nTilesX, tx, ty int) *film.FilmTile {
	arena := memory.New(0)

	seed := ty*nTilesX + tx
	tileSampler := si.Sampler.Clone(seed)

	x0 := sampleBounds.PMin.X + tx*tileSize
	x1 := minInt(x0+tileSize, sampleBounds.PMax.X)
	y0 := sampleBounds.PMin.Y + ty*tileSize
	y1 := minInt(y0+tileSize, sampleBounds.PMax.Y)
	tileBounds := geom.NewBounds2i(geom.Point2i{X: x0, Y: y0}, geom.Point2i{X: x1, Y: y1})

	filmTile := f.GetFilmTile(tileBounds)

	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			pixel := geom.Point2i{X: px, Y: py}
			tileSampler.StartPixel(pixel)

			if !si.PixelBounds.Inside(pixel) {
				continue
			}

			for {
				cs := tileSampler.GetCameraSample(pixel)

				ray, rayWeight := si.Camera.GenerateRay(cs)

				l := spectrum.Black
				if rayWeight > 0 {
					l = si.self.Li(ray, scene, tileSampler, arena, 0)
				}

				l = validateRadiance(l, pixel, tileSampler.CurrentSampleIndex())
				filmTile.AddSample(cs.PFilm, l, rayWeight)

				arena.Reset()
				if !tileSampler.StartNextSample() {
					break
				}
			}
		}
	}

	return filmTile
}

// validateRadiance guards against NaN, negative-luminance, and infinite
// samples reaching the film, replacing them with black and logging a
// warning — the integrator's own bugs or numerical corner cases should
// degrade the image, not corrupt it silently or crash the renderer.
func validateRadiance(l spectrum.SampledSpectrum, pixel geom.Point2i, sampleIndex int64) spectrum.SampledSpectrum {
	if l.HasNaN() {
		log.Printf("integrator: NaN radiance at pixel (%d, %d), sample %d; using black", pixel.X, pixel.Y, sampleIndex)
		return spectrum.Black
	}
	if y := l.Y(); y < -1e-5 {
		log.Printf("integrator: negative luminance %f at pixel (%d, %d), sample %d; using black", y, pixel.X, pixel.Y, sampleIndex)
		return spectrum.Black
	} else if math.IsInf(y, 1) {
		log.Printf("integrator: infinite luminance at pixel (%d, %d), sample %d; using black", pixel.X, pixel.Y, sampleIndex)
		return spectrum.Black
	}
	return l
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
