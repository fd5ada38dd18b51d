// Package camera turns a CameraSample (film and lens positions) into a
// world-space ray. All cameras here are static — no motion blur, matching
// the fixed-shutter scope this module builds toward.
package camera

import (
	"github.com/methusael13/phyray-go/pkg/film"
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/sampler"
)

// Camera generates the ray corresponding to one film/lens sample, returning
// a weight that scales how much arriving radiance along that ray
// contributes to the final image (always 1 for the cameras here — only a
// physically-based realistic-lens model would return something else).
type Camera interface {
	GenerateRay(sample sampler.CameraSample) (ray geom.Ray, weight geom.Real)
	Film() *film.Film
}
