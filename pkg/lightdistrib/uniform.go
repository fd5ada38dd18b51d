package lightdistrib

import "github.com/methusael13/phyray-go/pkg/geom"

// Distribution returns a sampling distribution over scene lights for a
// given point; Uniform and Power ignore the point entirely, Spatial does
// not.
type Distribution interface {
	Lookup(p geom.Point3) *Distribution1D
}

// Uniform weights every light equally, regardless of query point. Cheap
// and robust for scenes with only a handful of lights, but wastes samples
// on lights that can't possibly illuminate the query point.
type Uniform struct {
	distrib *Distribution1D
}

func NewUniform(nLights int) *Uniform {
	f := make([]geom.Real, nLights)
	for i := range f {
		f[i] = 1
	}
	return &Uniform{distrib: NewDistribution1D(f)}
}

func (u *Uniform) Lookup(geom.Point3) *Distribution1D { return u.distrib }
