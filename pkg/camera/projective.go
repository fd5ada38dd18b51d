package camera

import (
	"github.com/methusael13/phyray-go/pkg/film"
	"github.com/methusael13/phyray-go/pkg/geom"
)

// projective is the shared base for cameras defined by a projection
// (perspective or orthographic) from camera space onto a screen window,
// which is then mapped onto the film's raster grid. It precomputes the
// composed raster-to-camera transform so GenerateRay only has to apply one
// matrix per sample.
type projective struct {
	cameraToWorld geom.Transform
	film          *film.Film

	lensRadius    geom.Real
	focalDistance geom.Real

	rasterToCamera geom.Transform
}

// newProjective derives screenToRaster/rasterToScreen from the film
// resolution and screen window, composes it with the inverse of
// cameraToScreen to get rasterToCamera, matching the standard projective-
// camera construction: camera space -> (cameraToScreen) -> screen space ->
// (screenToRaster) -> raster space, inverted end to end.
func newProjective(
	cameraToWorld geom.Transform,
	cameraToScreen geom.Transform,
	screenWindow geom.Bounds2,
	lensRadius, focalDistance geom.Real,
	f *film.Film,
) projective {
	res := f.Resolution

	screenToRaster := geom.Scale(geom.Real(res.X), geom.Real(res.Y), 1).
		Compose(geom.Scale(1/(screenWindow.PMax.X-screenWindow.PMin.X), 1/(screenWindow.PMin.Y-screenWindow.PMax.Y), 1)).
		Compose(geom.Translate(geom.Vector3{X: -screenWindow.PMin.X, Y: -screenWindow.PMax.Y}))

	rasterToScreen := screenToRaster.Inverse()
	rasterToCamera := cameraToScreen.Inverse().Compose(rasterToScreen)

	return projective{
		cameraToWorld:  cameraToWorld,
		film:           f,
		lensRadius:     lensRadius,
		focalDistance:  focalDistance,
		rasterToCamera: rasterToCamera,
	}
}

func (p *projective) Film() *film.Film { return p.film }
