package lightdistrib

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/light"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

func TestUniformWeightsAllLightsEqually(t *testing.T) {
	u := NewUniform(3)
	d := u.Lookup(geom.Point3{})
	for i := 0; i < 3; i++ {
		require.InDelta(t, 1.0/3.0, d.DiscretePdf(i), 1e-9)
	}
}

func TestUniformIgnoresQueryPoint(t *testing.T) {
	u := NewUniform(2)
	require.Same(t, u.Lookup(geom.Point3{X: 1, Y: 2, Z: 3}), u.Lookup(geom.Point3{}))
}

func TestPowerWeightsByEmittedLuminance(t *testing.T) {
	bright := light.NewPoint(geom.IdentityTransform(), spectrum.New(10))
	dim := light.NewPoint(geom.IdentityTransform(), spectrum.New(1))
	p := NewPower([]light.Light{bright, dim})

	d := p.Lookup(geom.Point3{})
	require.Greater(t, d.DiscretePdf(0), d.DiscretePdf(1))
}

func TestSpatialLookupIsConsistentForSamePoint(t *testing.T) {
	bounds := geom.NewBounds3(geom.Point3{X: -5, Y: -5, Z: -5}, geom.Point3{X: 5, Y: 5, Z: 5})
	lights := []light.Light{
		light.NewPoint(geom.IdentityTransform(), spectrum.New(1)),
		light.NewPoint(geom.Translate(geom.Vector3{X: 3}), spectrum.New(1)),
	}
	s := NewSpatial(lights, bounds, 8)

	p := geom.Point3{X: 1, Y: 1, Z: 1}
	d1 := s.Lookup(p)
	d2 := s.Lookup(p)
	require.Same(t, d1, d2)
	require.Equal(t, len(lights), d1.Count())
}

func TestSpatialLookupIsSafeForConcurrentAccess(t *testing.T) {
	bounds := geom.NewBounds3(geom.Point3{X: -5, Y: -5, Z: -5}, geom.Point3{X: 5, Y: 5, Z: 5})
	lights := []light.Light{light.NewPoint(geom.IdentityTransform(), spectrum.New(1))}
	s := NewSpatial(lights, bounds, 4)

	var wg sync.WaitGroup
	p := geom.Point3{X: 2, Y: -1, Z: 0}
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NotNil(t, s.Lookup(p))
		}()
	}
	wg.Wait()
}

func TestNewFallsBackToSpatialForUnknownName(t *testing.T) {
	bounds := geom.NewBounds3(geom.Point3{}, geom.Point3{X: 1, Y: 1, Z: 1})
	lights := []light.Light{light.NewPoint(geom.IdentityTransform(), spectrum.New(1))}
	d := New("bogus", lights, bounds)
	_, ok := d.(*Spatial)
	require.True(t, ok)
}
