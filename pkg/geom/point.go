package geom

import "math"

// Point3 is a location in 3-space. Point3 - Point3 yields a Vector3;
// Point3 + Vector3 yields a Point3 — the two are never interchangeable.
type Point3 struct {
	X, Y, Z Real
}

func NewPoint3(x, y, z Real) Point3 {
	assertNoNaN3(x, y, z)
	return Point3{x, y, z}
}

func (p Point3) HasNaN() bool { return math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) }

func (p Point3) Sub(o Point3) Vector3       { return Vector3{p.X - o.X, p.Y - o.Y, p.Z - o.Z} }
func (p Point3) AddVector(v Vector3) Point3 { return Point3{p.X + v.X, p.Y + v.Y, p.Z + v.Z} }
func (p Point3) SubVector(v Vector3) Point3 { return Point3{p.X - v.X, p.Y - v.Y, p.Z - v.Z} }

// Distance and DistanceSquared measure separation between two points.
func (p Point3) Distance(o Point3) Real        { return p.Sub(o).Length() }
func (p Point3) DistanceSquared(o Point3) Real { return p.Sub(o).LengthSquared() }

func (p Point3) Component(axis int) Real {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// Lerp interpolates between two points component-wise.
func LerpPoint3(t Real, p0, p1 Point3) Point3 {
	return Point3{lerp(t, p0.X, p1.X), lerp(t, p0.Y, p1.Y), lerp(t, p0.Z, p1.Z)}
}

// Point2 is the 2D analogue used for (u,v) shape parameters and film samples.
type Point2 struct {
	X, Y Real
}

func NewPoint2(x, y Real) Point2 { return Point2{x, y} }

func (p Point2) Sub(o Point2) Vector2       { return Vector2{p.X - o.X, p.Y - o.Y} }
func (p Point2) AddVector(v Vector2) Point2 { return Point2{p.X + v.X, p.Y + v.Y} }

// Point2i is an integer pixel coordinate: raster positions, tile bounds and
// film extents are expressed in whole pixels rather than Real.
type Point2i struct {
	X, Y int
}

func NewPoint2i(x, y int) Point2i { return Point2i{x, y} }

// ToPoint2 widens an integer raster coordinate to the Real domain, e.g. to
// add a continuous (u,v) offset sampled within the pixel.
func (p Point2i) ToPoint2() Point2 { return Point2{X: Real(p.X), Y: Real(p.Y)} }
