package geom

// Bounds3 is an axis-aligned box with PMin <= PMax component-wise. The
// zero value is degenerate (PMin == PMax == origin); use Bounds3Empty when
// an identity element for Union is needed.
type Bounds3 struct {
	PMin, PMax Point3
}

func Bounds3Empty() Bounds3 {
	return Bounds3{
		PMin: Point3{Infinity, Infinity, Infinity},
		PMax: Point3{-Infinity, -Infinity, -Infinity},
	}
}

func NewBounds3(p1, p2 Point3) Bounds3 {
	return Bounds3{
		PMin: Point3{minReal(p1.X, p2.X), minReal(p1.Y, p2.Y), minReal(p1.Z, p2.Z)},
		PMax: Point3{maxReal(p1.X, p2.X), maxReal(p1.Y, p2.Y), maxReal(p1.Z, p2.Z)},
	}
}

func (b Bounds3) UnionPoint(p Point3) Bounds3 {
	return Bounds3{
		PMin: Point3{minReal(b.PMin.X, p.X), minReal(b.PMin.Y, p.Y), minReal(b.PMin.Z, p.Z)},
		PMax: Point3{maxReal(b.PMax.X, p.X), maxReal(b.PMax.Y, p.Y), maxReal(b.PMax.Z, p.Z)},
	}
}

func (b Bounds3) Union(o Bounds3) Bounds3 {
	return Bounds3{
		PMin: Point3{minReal(b.PMin.X, o.PMin.X), minReal(b.PMin.Y, o.PMin.Y), minReal(b.PMin.Z, o.PMin.Z)},
		PMax: Point3{maxReal(b.PMax.X, o.PMax.X), maxReal(b.PMax.Y, o.PMax.Y), maxReal(b.PMax.Z, o.PMax.Z)},
	}
}

func (b Bounds3) Intersect(o Bounds3) Bounds3 {
	return Bounds3{
		PMin: Point3{maxReal(b.PMin.X, o.PMin.X), maxReal(b.PMin.Y, o.PMin.Y), maxReal(b.PMin.Z, o.PMin.Z)},
		PMax: Point3{minReal(b.PMax.X, o.PMax.X), minReal(b.PMax.Y, o.PMax.Y), minReal(b.PMax.Z, o.PMax.Z)},
	}
}

func (b Bounds3) Overlaps(o Bounds3) bool {
	x := b.PMax.X >= o.PMin.X && b.PMin.X <= o.PMax.X
	y := b.PMax.Y >= o.PMin.Y && b.PMin.Y <= o.PMax.Y
	z := b.PMax.Z >= o.PMin.Z && b.PMin.Z <= o.PMax.Z
	return x && y && z
}

func (b Bounds3) Inside(p Point3) bool {
	return p.X >= b.PMin.X && p.X <= b.PMax.X &&
		p.Y >= b.PMin.Y && p.Y <= b.PMax.Y &&
		p.Z >= b.PMin.Z && p.Z <= b.PMax.Z
}

func (b Bounds3) Diagonal() Vector3 { return b.PMax.Sub(b.PMin) }

func (b Bounds3) SurfaceArea() Real {
	d := b.Diagonal()
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return 0
	}
	return 2 * (d.X*d.Y + d.X*d.Z + d.Y*d.Z)
}

func (b Bounds3) Volume() Real {
	d := b.Diagonal()
	return d.X * d.Y * d.Z
}

func (b Bounds3) Center() Point3 {
	return Point3{(b.PMin.X + b.PMax.X) / 2, (b.PMin.Y + b.PMax.Y) / 2, (b.PMin.Z + b.PMax.Z) / 2}
}

func (b Bounds3) MaximumExtent() int {
	d := b.Diagonal()
	return d.MaxDimension()
}

// Offset returns p's position relative to the box, with (0,0,0) at PMin and
// (1,1,1) at PMax — used by the BVH SAH bucket assignment.
func (b Bounds3) Offset(p Point3) Vector3 {
	o := p.Sub(b.PMin)
	if b.PMax.X > b.PMin.X {
		o.X /= b.PMax.X - b.PMin.X
	}
	if b.PMax.Y > b.PMin.Y {
		o.Y /= b.PMax.Y - b.PMin.Y
	}
	if b.PMax.Z > b.PMin.Z {
		o.Z /= b.PMax.Z - b.PMin.Z
	}
	return o
}

func (b Bounds3) BoundingSphere() (center Point3, radius Real) {
	center = b.Center()
	if b.Inside(center) {
		radius = center.Distance(b.PMax)
	}
	return center, radius
}

// IntersectP is the scalar slab test: returns whether the ray [0, ray.TMax]
// overlaps the box, and (if so) the entry/exit parametric distances.
func (b Bounds3) IntersectP(ray Ray) (hit bool, t0, t1 Real) {
	t0, t1 = 0, ray.TMax
	for axis := 0; axis < 3; axis++ {
		invDir := 1 / ray.Direction.Component(axis)
		tNear := (b.PMin.Component(axis) - ray.Origin.Component(axis)) * invDir
		tFar := (b.PMax.Component(axis) - ray.Origin.Component(axis)) * invDir
		if tNear > tFar {
			tNear, tFar = tFar, tNear
		}
		// Widen the far intersection by the accumulated rounding error bound
		// so a ray skimming a box edge is never rejected by round-off.
		tFar *= 1 + 2*Gamma(3)
		if tNear > t0 {
			t0 = tNear
		}
		if tFar < t1 {
			t1 = tFar
		}
		if t0 > t1 {
			return false, 0, 0
		}
	}
	return true, t0, t1
}

// IntersectPFast is the traversal-optimized form: the caller precomputes
// 1/direction and the sign of each direction component once per ray and
// reuses them across every node test in a BVH descent.
func (b Bounds3) IntersectPFast(ray Ray, invDir Vector3, dirIsNeg [3]bool) bool {
	bounds := [2]Point3{b.PMin, b.PMax}

	tMin := (bounds[boolToInt(dirIsNeg[0])].X - ray.Origin.X) * invDir.X
	tMax := (bounds[1-boolToInt(dirIsNeg[0])].X - ray.Origin.X) * invDir.X
	tyMin := (bounds[boolToInt(dirIsNeg[1])].Y - ray.Origin.Y) * invDir.Y
	tyMax := (bounds[1-boolToInt(dirIsNeg[1])].Y - ray.Origin.Y) * invDir.Y

	tMax *= 1 + 2*Gamma(3)
	tyMax *= 1 + 2*Gamma(3)
	if tMin > tyMax || tyMin > tMax {
		return false
	}
	if tyMin > tMin {
		tMin = tyMin
	}
	if tyMax < tMax {
		tMax = tyMax
	}

	tzMin := (bounds[boolToInt(dirIsNeg[2])].Z - ray.Origin.Z) * invDir.Z
	tzMax := (bounds[1-boolToInt(dirIsNeg[2])].Z - ray.Origin.Z) * invDir.Z
	tzMax *= 1 + 2*Gamma(3)
	if tMin > tzMax || tzMin > tMax {
		return false
	}
	if tzMin > tMin {
		tMin = tzMin
	}
	if tzMax < tMax {
		tMax = tzMax
	}

	return tMin < ray.TMax && tMax > 0
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Bounds2 is the 2D analogue used for film/sample bounds.
type Bounds2 struct {
	PMin, PMax Point2
}

func NewBounds2(p1, p2 Point2) Bounds2 {
	return Bounds2{
		PMin: Point2{minReal(p1.X, p2.X), minReal(p1.Y, p2.Y)},
		PMax: Point2{maxReal(p1.X, p2.X), maxReal(p1.Y, p2.Y)},
	}
}

func (b Bounds2) Diagonal() Vector2 { return b.PMax.Sub(b.PMin) }

func (b Bounds2) Area() Real {
	d := b.Diagonal()
	return d.X * d.Y
}

func (b Bounds2) Inside(p Point2) bool {
	return p.X >= b.PMin.X && p.X <= b.PMax.X && p.Y >= b.PMin.Y && p.Y <= b.PMax.Y
}

func (b Bounds2) Intersect(o Bounds2) Bounds2 {
	return Bounds2{
		PMin: Point2{maxReal(b.PMin.X, o.PMin.X), maxReal(b.PMin.Y, o.PMin.Y)},
		PMax: Point2{minReal(b.PMax.X, o.PMax.X), minReal(b.PMax.Y, o.PMax.Y)},
	}
}

// Expand grows the box by amount in every direction.
func (b Bounds2) Expand(amount Real) Bounds2 {
	return Bounds2{
		PMin: Point2{b.PMin.X - amount, b.PMin.Y - amount},
		PMax: Point2{b.PMax.X + amount, b.PMax.Y + amount},
	}
}

// Bounds2i is the integer-pixel analogue of Bounds2, used for the film's
// cropped image bounds and per-tile pixel rectangles.
type Bounds2i struct {
	PMin, PMax Point2i
}

func NewBounds2i(p1, p2 Point2i) Bounds2i {
	return Bounds2i{
		PMin: Point2i{minInt(p1.X, p2.X), minInt(p1.Y, p2.Y)},
		PMax: Point2i{maxInt(p1.X, p2.X), maxInt(p1.Y, p2.Y)},
	}
}

func (b Bounds2i) Area() int {
	return (b.PMax.X - b.PMin.X) * (b.PMax.Y - b.PMin.Y)
}

func (b Bounds2i) Inside(p Point2i) bool {
	return p.X >= b.PMin.X && p.X < b.PMax.X && p.Y >= b.PMin.Y && p.Y < b.PMax.Y
}

func (b Bounds2i) Intersect(o Bounds2i) Bounds2i {
	return Bounds2i{
		PMin: Point2i{maxInt(b.PMin.X, o.PMin.X), maxInt(b.PMin.Y, o.PMin.Y)},
		PMax: Point2i{minInt(b.PMax.X, o.PMax.X), minInt(b.PMax.Y, o.PMax.Y)},
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
