package light

import (
	"math"

	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/sampler"
	"github.com/methusael13/phyray-go/pkg/shape"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

// Distant is a directional emitter (sunlight): every point in the scene
// receives light from the same direction with no falloff. Preprocess must
// be called once the scene bounds are known, since sample_le needs a world
// radius to place the virtual emitting disk.
type Distant struct {
	L      spectrum.SampledSpectrum
	WLight geom.Vector3

	worldCenter geom.Point3
	worldRadius geom.Real
}

func NewDistant(lightToWorld geom.Transform, l spectrum.SampledSpectrum, w geom.Vector3) *Distant {
	return &Distant{L: l, WLight: lightToWorld.Vector(w).Normalize()}
}

// Preprocess records the scene's bounding sphere, used to place the
// disk sample_le emits particles from and to size the shadow-ray offset in
// sample_li.
func (l *Distant) Preprocess(bounds geom.Bounds3) {
	l.worldCenter, l.worldRadius = bounds.BoundingSphere()
}

func (l *Distant) Flags() Flags { return DeltaDirection }

func (l *Distant) Power() spectrum.SampledSpectrum {
	return l.L.Scale(math.Pi * l.worldRadius * l.worldRadius)
}

func (l *Distant) SampleLi(ref shape.Interaction, u geom.Point2) (spectrum.SampledSpectrum, geom.Vector3, geom.Real, VisibilityTester) {
	pOutside := ref.P.AddVector(l.WLight.Scale(2 * l.worldRadius))
	vis := VisibilityTester{P0: ref, P1: shape.Interaction{P: pOutside}}
	return l.L, l.WLight, 1, vis
}

func (l *Distant) PdfLi(shape.Interaction, geom.Vector3) geom.Real { return 0 }

func (l *Distant) SampleLe(u1, u2 geom.Point2) (spectrum.SampledSpectrum, geom.Ray, geom.Normal3, geom.Real, geom.Real) {
	v1, v2 := geom.CoordinateSystem(l.WLight)
	cd := sampler.ConcentricSampleDisk(u1)
	pDisk := l.worldCenter.AddVector(v1.Scale(l.worldRadius * cd.X)).AddVector(v2.Scale(l.worldRadius * cd.Y))

	ray := geom.NewRay(pDisk.AddVector(l.WLight.Scale(l.worldRadius)), l.WLight.Negate())
	nLight := geom.NormalFromVector(ray.Direction)
	pdfPos := 1 / (math.Pi * l.worldRadius * l.worldRadius)
	return l.L, ray, nLight, pdfPos, 1
}

func (l *Distant) PdfLe(geom.Ray, geom.Normal3) (geom.Real, geom.Real) {
	return 1 / (math.Pi * l.worldRadius * l.worldRadius), 0
}

func (l *Distant) Le(geom.Ray) spectrum.SampledSpectrum { return spectrum.Black }
