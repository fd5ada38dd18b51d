package lightdistrib

import (
	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/light"
)

const defaultMaxVoxels = 64

// New builds the named distribution variant ("uniform", "power", "spatial");
// an unrecognized name falls back to spatial, matching the original
// integrator's behavior of defaulting to the more expensive but generally
// more effective strategy rather than rejecting the configuration.
func New(name string, lights []light.Light, bounds geom.Bounds3) Distribution {
	switch name {
	case "uniform":
		return NewUniform(len(lights))
	case "power":
		return NewPower(lights)
	default:
		return NewSpatial(lights, bounds, defaultMaxVoxels)
	}
}
