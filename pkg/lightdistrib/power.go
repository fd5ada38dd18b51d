package lightdistrib

import (
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/light"
)

// Power weights each light proportional to its total emitted luminance,
// still independent of the query point. Better than Uniform when a scene's
// brightest lights dominate its illumination everywhere, worse when
// different lights matter in different regions (Spatial handles that case).
type Power struct {
	distrib *Distribution1D
}

func NewPower(lights []light.Light) *Power {
	f := make([]geom.Real, len(lights))
	for i, l := range lights {
		f[i] = l.Power().Y()
	}
	return &Power{distrib: NewDistribution1D(f)}
}

func (p *Power) Lookup(geom.Point3) *Distribution1D { return p.distrib }
