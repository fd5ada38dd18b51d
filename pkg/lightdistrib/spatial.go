package lightdistrib

import (
	"math"
	"sync/atomic"

	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/light"
	"github.com/methusael13/phyray-go/pkg/shape"
)

const invalidPackedPos = ^uint64(0)
const spatialSamples = 128

type hashEntry struct {
	packedPos atomic.Uint64
	dist      atomic.Pointer[Distribution1D]
}

// Spatial divides the scene bounds into a roughly cube-shaped voxel grid
// (the largest dimension gets maxVoxels voxels, the others scaled to match)
// and lazily computes a light-sampling distribution per voxel on first
// lookup, cached in a fixed-size lock-free open-addressed hash table keyed
// by packed voxel coordinates.
type Spatial struct {
	lights  []light.Light
	bounds  geom.Bounds3
	nVoxels [3]int

	hashTable []hashEntry
}

// NewSpatial builds the (empty) hash table sized for the given scene bounds;
// distributions are computed lazily, the first time each voxel is queried.
func NewSpatial(lights []light.Light, bounds geom.Bounds3, maxVoxels int) *Spatial {
	diag := bounds.Diagonal()
	bmax := diag.Component(bounds.MaximumExtent())

	var nVoxels [3]int
	for i := 0; i < 3; i++ {
		n := int(math.Round(float64(diag.Component(i) / bmax * geom.Real(maxVoxels))))
		if n < 1 {
			n = 1
		}
		if n >= 1<<20 {
			panic("lightdistrib: voxel count exceeds the 20-bit packed coordinate range")
		}
		nVoxels[i] = n
	}

	hashTableSize := 4 * nVoxels[0] * nVoxels[1] * nVoxels[2]
	s := &Spatial{lights: lights, bounds: bounds, nVoxels: nVoxels, hashTable: make([]hashEntry, hashTableSize)}
	for i := range s.hashTable {
		s.hashTable[i].packedPos.Store(invalidPackedPos)
	}
	return s
}

// Lookup returns the sampling distribution for the voxel containing p,
// computing and caching it on first access. Safe for concurrent use by the
// tile-rendering worker pool without any locking: claims on an empty slot
// are made with a single atomic compare-and-swap, and a goroutine that loses
// the race spins until the winner publishes its distribution.
func (s *Spatial) Lookup(p geom.Point3) *Distribution1D {
	offset := s.bounds.Offset(p)
	var pi [3]int
	for i := 0; i < 3; i++ {
		pi[i] = clampInt(int(offset.Component(i)*geom.Real(s.nVoxels[i])), 0, s.nVoxels[i]-1)
	}

	packedPos := uint64(pi[0])<<40 | uint64(pi[1])<<20 | uint64(pi[2])
	hash := mixBits(packedPos) % uint64(len(s.hashTable))

	step := uint64(1)
	for {
		entry := &s.hashTable[hash]
		entryPos := entry.packedPos.Load()

		if entryPos == packedPos {
			dist := entry.dist.Load()
			for dist == nil {
				dist = entry.dist.Load()
			}
			return dist
		}

		if entryPos != invalidPackedPos {
			hash = (hash + step*step) % uint64(len(s.hashTable))
			step++
			continue
		}

		if entry.packedPos.CompareAndSwap(invalidPackedPos, packedPos) {
			dist := s.computeDistribution(pi)
			entry.dist.Store(dist)
			return dist
		}
		// Lost the race for this slot; re-read and retry the same slot,
		// since the winner may have claimed this exact voxel.
	}
}

// mixBits is the Zimbry 64-bit bit mixer, used to spread packed voxel
// coordinates (which are not well distributed on their own) across the hash
// table.
func mixBits(v uint64) uint64 {
	v ^= v >> 31
	v *= 0x7fb5d329728ea185
	v ^= v >> 27
	v *= 0x81dadef4bc2dd44d
	v ^= v >> 33
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// computeDistribution estimates each light's contribution to the voxel at
// integer coordinates pi by sampling Li/pdf at spatialSamples Halton points
// within its world-space bounds, then floors every light's weight at a
// small fraction of the average so no light is ever given zero probability.
func (s *Spatial) computeDistribution(pi [3]int) *Distribution1D {
	p0 := geom.Point3{
		X: geom.Real(pi[0]) / geom.Real(s.nVoxels[0]),
		Y: geom.Real(pi[1]) / geom.Real(s.nVoxels[1]),
		Z: geom.Real(pi[2]) / geom.Real(s.nVoxels[2]),
	}
	p1 := geom.Point3{
		X: geom.Real(pi[0]+1) / geom.Real(s.nVoxels[0]),
		Y: geom.Real(pi[1]+1) / geom.Real(s.nVoxels[1]),
		Z: geom.Real(pi[2]+1) / geom.Real(s.nVoxels[2]),
	}
	voxelMin := lerpBounds(s.bounds, p0)
	voxelMax := lerpBounds(s.bounds, p1)

	contrib := make([]geom.Real, len(s.lights))
	for i := 0; i < spatialSamples; i++ {
		po := geom.Point3{
			X: lerpReal(radicalInverse(0, uint64(i)), voxelMin.X, voxelMax.X),
			Y: lerpReal(radicalInverse(1, uint64(i)), voxelMin.Y, voxelMax.Y),
			Z: lerpReal(radicalInverse(2, uint64(i)), voxelMin.Z, voxelMax.Z),
		}
		intr := shape.Interaction{P: po, Wo: geom.Vector3{X: 1, Y: 0, Z: 0}}
		u := geom.Point2{X: radicalInverse(3, uint64(i)), Y: radicalInverse(4, uint64(i))}

		for j, l := range s.lights {
			li, _, pdf, _ := l.SampleLi(intr, u)
			if pdf > 0 {
				contrib[j] += li.Y() / geom.Real(pdf)
			}
		}
	}

	var sum geom.Real
	for _, c := range contrib {
		sum += c
	}
	avg := sum / (geom.Real(spatialSamples) * geom.Real(len(contrib)))
	minContrib := geom.Real(1)
	if avg > 0 {
		minContrib = 0.001 * avg
	}
	for i := range contrib {
		if contrib[i] < minContrib {
			contrib[i] = minContrib
		}
	}

	return NewDistribution1D(contrib)
}

func lerpBounds(b geom.Bounds3, t geom.Point3) geom.Point3 {
	return geom.Point3{
		X: lerpReal(t.X, b.PMin.X, b.PMax.X),
		Y: lerpReal(t.Y, b.PMin.Y, b.PMax.Y),
		Z: lerpReal(t.Z, b.PMin.Z, b.PMax.Z),
	}
}

func lerpReal(t, a, b geom.Real) geom.Real { return (1-t)*a + t*b }
