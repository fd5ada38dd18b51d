// Package accel implements the scene's ray-acceleration structure: a
// surface-area-heuristic bounding volume hierarchy over a flat primitive
// list, flattened into a cache-friendly linear array for traversal.
package accel

import (
	"sort"

	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/parallel"
	"github.com/methusael13/phyray-go/pkg/primitive"
	"github.com/methusael13/phyray-go/pkg/shape"
)

const (
	nBins        = 12
	maxPrimsInNode = 255
)

// LinearNode is one entry of the flattened, depth-first BVH. For a leaf,
// PrimitivesOffset/NPrimitives index into the accelerator's reordered
// primitive slice. For an internal node, SecondChildOffset is the index of
// the second child (the first child always sits at the node's own index +
// 1, a consequence of the depth-first flattening).
type LinearNode struct {
	Bounds            geom.Bounds3
	PrimitivesOffset  int32 // leaf only
	SecondChildOffset int32 // internal only
	NPrimitives       uint16
	SplitAxis         uint8
}

// BVH is a SAH-binned bounding volume hierarchy over a fixed primitive set.
type BVH struct {
	primitives []primitive.Primitive
	nodes      []LinearNode
}

type primInfo struct {
	index    int
	bounds   geom.Bounds3
	centroid geom.Point3
}

// Build constructs a BVH over prims. The input slice is not modified; the
// accelerator keeps its own reordered copy (Build's partitioning needs to
// reorder leaves into contiguous ranges, and a caller-visible reorder would
// be a surprising side effect).
func Build(prims []primitive.Primitive) *BVH {
	if len(prims) == 0 {
		return &BVH{}
	}

	infos := make([]primInfo, len(prims))
	parallel.ParallelFor(len(prims), 0, 0, func(i int) {
		b := prims[i].WorldBounds()
		infos[i] = primInfo{index: i, bounds: b, centroid: b.Center()}
	})

	ordered := make([]primitive.Primitive, 0, len(prims))
	var nodes []LinearNode
	buildRecursive(infos, prims, &ordered, &nodes)

	return &BVH{primitives: ordered, nodes: nodes}
}

// buildRecursive partitions infos[0:] in place, appends exactly one node
// (plus everything its subtree appends) to *nodes, and returns that node's
// index. ordered accumulates primitives in the leaf traversal order the
// flattened tree expects.
func buildRecursive(infos []primInfo, allPrims []primitive.Primitive, ordered *[]primitive.Primitive, nodes *[]LinearNode) int {
	nodeIndex := len(*nodes)
	*nodes = append(*nodes, LinearNode{})

	bounds := geom.Bounds3Empty()
	for _, info := range infos {
		bounds = bounds.Union(info.bounds)
	}

	makeLeaf := func() int {
		offset := int32(len(*ordered))
		for _, info := range infos {
			*ordered = append(*ordered, allPrims[info.index])
		}
		(*nodes)[nodeIndex] = LinearNode{
			Bounds:           bounds,
			PrimitivesOffset: offset,
			NPrimitives:      uint16(len(infos)),
		}
		return nodeIndex
	}

	if len(infos) == 1 {
		return makeLeaf()
	}

	centroidBounds := geom.Bounds3Empty()
	for _, info := range infos {
		centroidBounds = centroidBounds.UnionPoint(info.centroid)
	}
	axis := centroidBounds.MaximumExtent()
	if centroidBounds.PMax.Component(axis) == centroidBounds.PMin.Component(axis) {
		return makeLeaf()
	}

	if len(infos) <= 2 {
		mid := len(infos) / 2
		sortByAxis(infos, axis)
		return buildInternal(infos, mid, axis, allPrims, ordered, nodes, nodeIndex, bounds)
	}

	splitIdx, found := bestSAHSplit(infos, centroidBounds, axis, bounds)
	if !found {
		if len(infos) > maxPrimsInNode {
			mid := len(infos) / 2
			sortByAxis(infos, axis)
			return buildInternal(infos, mid, axis, allPrims, ordered, nodes, nodeIndex, bounds)
		}
		return makeLeaf()
	}

	return buildInternal(infos, splitIdx, axis, allPrims, ordered, nodes, nodeIndex, bounds)
}

func buildInternal(infos []primInfo, mid, axis int, allPrims []primitive.Primitive, ordered *[]primitive.Primitive, nodes *[]LinearNode, nodeIndex int, bounds geom.Bounds3) int {
	buildRecursive(infos[:mid], allPrims, ordered, nodes)
	secondChild := buildRecursive(infos[mid:], allPrims, ordered, nodes)
	(*nodes)[nodeIndex] = LinearNode{
		Bounds:            bounds,
		SecondChildOffset: int32(secondChild),
		SplitAxis:         uint8(axis),
	}
	return nodeIndex
}

// sortByAxis orders infos by centroid coordinate along axis.
func sortByAxis(infos []primInfo, axis int) {
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].centroid.Component(axis) < infos[j].centroid.Component(axis)
	})
}

// bestSAHSplit bins centroids into nBins buckets along axis and returns the
// index (within infos, after partitioning) of the minimum-cost split, or
// found=false if splitting is not worth a leaf's cost.
func bestSAHSplit(infos []primInfo, centroidBounds geom.Bounds3, axis int, nodeBounds geom.Bounds3) (int, bool) {
	type bucket struct {
		count  int
		bounds geom.Bounds3
	}
	var buckets [nBins]bucket
	for i := range buckets {
		buckets[i].bounds = geom.Bounds3Empty()
	}

	bucketFor := func(info primInfo) int {
		offset := centroidBounds.Offset(info.centroid).Component(axis)
		b := int(geom.Real(nBins) * offset)
		if b == nBins {
			b = nBins - 1
		}
		if b < 0 {
			b = 0
		}
		return b
	}

	for _, info := range infos {
		b := bucketFor(info)
		buckets[b].count++
		buckets[b].bounds = buckets[b].bounds.Union(info.bounds)
	}

	var cost [nBins - 1]geom.Real
	nodeSA := nodeBounds.SurfaceArea()
	for i := 0; i < nBins-1; i++ {
		b0, b1 := geom.Bounds3Empty(), geom.Bounds3Empty()
		count0, count1 := 0, 0
		for j := 0; j <= i; j++ {
			b0 = b0.Union(buckets[j].bounds)
			count0 += buckets[j].count
		}
		for j := i + 1; j < nBins; j++ {
			b1 = b1.Union(buckets[j].bounds)
			count1 += buckets[j].count
		}
		cost[i] = 1 + (geom.Real(count0)*b0.SurfaceArea()+geom.Real(count1)*b1.SurfaceArea())/nodeSA
	}

	minCost, minBucket := cost[0], 0
	for i := 1; i < nBins-1; i++ {
		if cost[i] < minCost {
			minCost = cost[i]
			minBucket = i
		}
	}

	leafCost := geom.Real(len(infos))
	if len(infos) <= maxPrimsInNode && minCost >= leafCost {
		return 0, false
	}

	mid := partitionByBucket(infos, bucketFor, minBucket)
	return mid, true
}

// partitionByBucket reorders infos in place so every element whose bucket
// is <= splitBucket comes first, and returns the partition point.
func partitionByBucket(infos []primInfo, bucketFor func(primInfo) int, splitBucket int) int {
	i := 0
	for j := 0; j < len(infos); j++ {
		if bucketFor(infos[j]) <= splitBucket {
			infos[i], infos[j] = infos[j], infos[i]
			i++
		}
	}
	if i == 0 || i == len(infos) {
		// Degenerate bucket assignment (possible with coincident
		// centroids): fall back to a median split so neither side is empty.
		sort.Slice(infos, func(a, b int) bool { return bucketFor(infos[a]) < bucketFor(infos[b]) })
		i = len(infos) / 2
	}
	return i
}

// WorldBounds returns the accelerator's overall bounds, or the zero bounds
// for an empty scene.
func (bvh *BVH) WorldBounds() geom.Bounds3 {
	if len(bvh.nodes) == 0 {
		return geom.Bounds3{}
	}
	return bvh.nodes[0].Bounds
}

// Intersect finds the closest primitive hit along ray, shrinking ray.TMax
// as closer hits are found during the descent.
func (bvh *BVH) Intersect(ray *geom.Ray) (shape.SurfaceInteraction, bool) {
	if len(bvh.nodes) == 0 {
		return shape.SurfaceInteraction{}, false
	}

	invDir := geom.Vector3{X: 1 / ray.Direction.X, Y: 1 / ray.Direction.Y, Z: 1 / ray.Direction.Z}
	dirIsNeg := [3]bool{ray.Direction.X < 0, ray.Direction.Y < 0, ray.Direction.Z < 0}

	var hitSI shape.SurfaceInteraction
	hitAnything := false

	var stack [64]int32
	sp := 0
	current := int32(0)

	for {
		node := &bvh.nodes[current]
		if node.Bounds.IntersectPFast(*ray, invDir, dirIsNeg) {
			if node.NPrimitives > 0 {
				offset := node.PrimitivesOffset
				for i := int32(0); i < int32(node.NPrimitives); i++ {
					if si, ok := bvh.primitives[offset+i].Intersect(ray); ok {
						hitSI = si
						hitAnything = true
					}
				}
				if sp == 0 {
					break
				}
				sp--
				current = stack[sp]
			} else {
				if dirIsNeg[node.SplitAxis] {
					stack[sp] = current + 1
					sp++
					current = node.SecondChildOffset
				} else {
					stack[sp] = node.SecondChildOffset
					sp++
					current = current + 1
				}
			}
		} else {
			if sp == 0 {
				break
			}
			sp--
			current = stack[sp]
		}
	}

	return hitSI, hitAnything
}

// IntersectP is the any-hit traversal used for shadow rays: it returns true
// as soon as any primitive along the ray is found, without determining the
// closest one.
func (bvh *BVH) IntersectP(ray *geom.Ray) bool {
	if len(bvh.nodes) == 0 {
		return false
	}

	invDir := geom.Vector3{X: 1 / ray.Direction.X, Y: 1 / ray.Direction.Y, Z: 1 / ray.Direction.Z}
	dirIsNeg := [3]bool{ray.Direction.X < 0, ray.Direction.Y < 0, ray.Direction.Z < 0}

	var stack [64]int32
	sp := 0
	current := int32(0)

	for {
		node := &bvh.nodes[current]
		if node.Bounds.IntersectPFast(*ray, invDir, dirIsNeg) {
			if node.NPrimitives > 0 {
				offset := node.PrimitivesOffset
				for i := int32(0); i < int32(node.NPrimitives); i++ {
					if bvh.primitives[offset+i].IntersectP(ray) {
						return true
					}
				}
				if sp == 0 {
					break
				}
				sp--
				current = stack[sp]
			} else {
				if dirIsNeg[node.SplitAxis] {
					stack[sp] = current + 1
					sp++
					current = node.SecondChildOffset
				} else {
					stack[sp] = node.SecondChildOffset
					sp++
					current = current + 1
				}
			}
		} else {
			if sp == 0 {
				break
			}
			sp--
			current = stack[sp]
		}
	}

	return false
}
