package camera

import (
	"math"

	"github.com/methusael13/phyray-go/pkg/film"
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/sampler"
)

// Perspective is a pinhole (or thin-lens, when LensRadius > 0) camera with
// a fixed field of view.
type Perspective struct {
	projective

	imagePlaneArea geom.Real
}

// NewPerspective builds a perspective camera. fovDeg is the vertical field
// of view in degrees; near/far bound the (otherwise irrelevant, since no
// depth buffer is kept) perspective projection's z range.
func NewPerspective(
	cameraToWorld geom.Transform,
	screenWindow geom.Bounds2,
	lensRadius, focalDistance, fovDeg geom.Real,
	f *film.Film,
) *Perspective {
	cameraToScreen := geom.Perspective(fovDeg, 1e-2, 1000)
	c := &Perspective{projective: newProjective(cameraToWorld, cameraToScreen, screenWindow, lensRadius, focalDistance, f)}

	res := f.Resolution
	pMin := c.rasterToCamera.Point(geom.Point3{})
	pMax := c.rasterToCamera.Point(geom.Point3{X: geom.Real(res.X), Y: geom.Real(res.Y)})
	pMin = geom.Point3{X: pMin.X / pMin.Z, Y: pMin.Y / pMin.Z, Z: 1}
	pMax = geom.Point3{X: pMax.X / pMax.Z, Y: pMax.Y / pMax.Z, Z: 1}
	c.imagePlaneArea = geom.Real(math.Abs(float64((pMax.X - pMin.X) * (pMax.Y - pMin.Y))))

	return c
}

// GenerateRay maps the raster-space film sample through rasterToCamera to
// get the ray direction, then (for a finite-aperture lens) refocuses it
// through a point sampled on the lens so everything at FocalDistance stays
// sharp and everything else blurs.
func (c *Perspective) GenerateRay(sample sampler.CameraSample) (geom.Ray, geom.Real) {
	pFilm := geom.Point3{X: sample.PFilm.X, Y: sample.PFilm.Y, Z: 0}
	pCamera := c.rasterToCamera.Point(pFilm)

	ray := geom.NewRay(geom.Point3{}, geom.Vector3{X: pCamera.X, Y: pCamera.Y, Z: pCamera.Z}.Normalize())

	if c.lensRadius > 0 {
		lensSample := sampler.ConcentricSampleDisk(sample.PLens)
		pLens := geom.Point2{X: lensSample.X * c.lensRadius, Y: lensSample.Y * c.lensRadius}

		ft := c.focalDistance / ray.Direction.Z
		pFocus := ray.At(ft)

		ray.Origin = geom.Point3{X: pLens.X, Y: pLens.Y}
		ray.Direction = pFocus.Sub(ray.Origin).Normalize()
	}

	worldRay := c.cameraToWorld.Ray(ray)
	return worldRay, 1
}
