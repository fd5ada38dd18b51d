package shape

import (
	"math"

	"github.com/methusael13/phyray-go/pkg/geom"
)

// Disk is a flat annulus (optionally a full disk when InnerRadius is 0) at
// object-space z = Height, swept through PhiMax radians.
type Disk struct {
	shapeBase
	Height                 geom.Real
	Radius, InnerRadius    geom.Real
	PhiMax                 geom.Real
}

// NewDisk builds a full disk of the given radius lying in the object-space
// z = height plane.
func NewDisk(o2w geom.Transform, height, radius geom.Real, reverseNormals bool) *Disk {
	return NewAnnulus(o2w, height, radius, 0, 360, reverseNormals)
}

// NewAnnulus builds a disk clipped to an inner radius and swept through
// phiMaxDeg degrees.
func NewAnnulus(o2w geom.Transform, height, radius, innerRadius, phiMaxDeg geom.Real, reverseNormals bool) *Disk {
	return &Disk{
		shapeBase:   newShapeBase(o2w, reverseNormals),
		Height:      height,
		Radius:      radius,
		InnerRadius: innerRadius,
		PhiMax:      radians(clampR(phiMaxDeg, 0, 360)),
	}
}

func (d *Disk) ObjectBounds() geom.Bounds3 {
	return geom.NewBounds3(
		geom.Point3{X: -d.Radius, Y: -d.Radius, Z: d.Height},
		geom.Point3{X: d.Radius, Y: d.Radius, Z: d.Height},
	)
}

func (d *Disk) WorldBounds() geom.Bounds3 { return d.ObjectToWorld.Bounds(d.ObjectBounds()) }

func (d *Disk) SurfaceArea() geom.Real {
	return d.PhiMax * 0.5 * (d.Radius*d.Radius - d.InnerRadius*d.InnerRadius)
}

// basicIntersect rejects rays parallel to the disk's plane, then tests the
// plane-hit point against the radius band and phiMax sweep.
func (d *Disk) basicIntersect(ray geom.Ray) (localRay geom.Ray, t geom.Real, hp geom.Point3, phi geom.Real, ok bool) {
	localRay = d.WorldToObject.Ray(ray)
	if localRay.Direction.Z == 0 {
		return localRay, 0, geom.Point3{}, 0, false
	}
	tShapeHit := (d.Height - localRay.Origin.Z) / localRay.Direction.Z
	if tShapeHit <= 0 || tShapeHit >= localRay.TMax {
		return localRay, 0, geom.Point3{}, 0, false
	}

	hitPoint := localRay.At(tShapeHit)
	dist2 := hitPoint.X*hitPoint.X + hitPoint.Y*hitPoint.Y
	if dist2 > d.Radius*d.Radius || dist2 < d.InnerRadius*d.InnerRadius {
		return localRay, 0, geom.Point3{}, 0, false
	}

	phiVal := math.Atan2(hitPoint.Y, hitPoint.X)
	if phiVal < 0 {
		phiVal += 2 * math.Pi
	}
	if phiVal > d.PhiMax {
		return localRay, 0, geom.Point3{}, 0, false
	}
	return localRay, tShapeHit, hitPoint, phiVal, true
}

func (d *Disk) Intersect(ray geom.Ray) (geom.Real, SurfaceInteraction, bool) {
	_, t, hp, phi, ok := d.basicIntersect(ray)
	if !ok {
		return 0, SurfaceInteraction{}, false
	}

	dist2 := hp.X*hp.X + hp.Y*hp.Y
	rHit := math.Sqrt(dist2)
	u := phi / d.PhiMax
	v := 1 - (rHit-d.InnerRadius)/(d.Radius-d.InnerRadius)

	dpdu := geom.Vector3{X: -d.PhiMax * hp.Y, Y: d.PhiMax * hp.X, Z: 0}
	dpdv := geom.Vector3{X: hp.X, Y: hp.Y, Z: 0}.Scale((d.InnerRadius - d.Radius) / rHit)
	var dndu, dndv geom.Normal3

	// The disk is exactly planar, so the true hit z is the plane height
	// exactly; recomputing it here avoids carrying forward the root's
	// rounding error.
	hp.Z = d.Height

	si := NewSurfaceInteraction(hp, geom.Vector3{}, d.WorldToObject.Vector(ray.Direction).Negate().Normalize(),
		geom.Point2{X: u, Y: v}, dpdu, dpdv, dndu, dndv, d)

	si.P = d.ObjectToWorld.Point(si.P)
	si.N = d.ObjectToWorld.Normal(si.N).Normalize()
	si.Wo = d.ObjectToWorld.Vector(si.Wo).Normalize()
	si.Dpdu = d.ObjectToWorld.Vector(si.Dpdu)
	si.Dpdv = d.ObjectToWorld.Vector(si.Dpdv)
	si.ShadingGeom.N = si.N
	si.ShadingGeom.Dpdu, si.ShadingGeom.Dpdv = si.Dpdu, si.Dpdv

	return t, si, true
}

func (d *Disk) IntersectP(ray geom.Ray) bool {
	_, _, _, _, ok := d.basicIntersect(ray)
	return ok
}

func (d *Disk) Sample(u geom.Point2) (Interaction, geom.Real) {
	pd := concentricSampleDisk(u)
	pObj := geom.Point3{X: pd.X * d.Radius, Y: pd.Y * d.Radius, Z: d.Height}

	n := d.ObjectToWorld.Normal(geom.NormalFromVector(geom.Vector3{X: 0, Y: 0, Z: 1})).Normalize()
	if d.Reverse {
		n = n.Negate()
	}
	p := d.ObjectToWorld.Point(pObj)
	pError := geom.Vector3{}
	return Interaction{P: p, N: n, PError: pError}, 1 / d.SurfaceArea()
}

func (d *Disk) SampleFrom(ref Interaction, u geom.Point2) (Interaction, geom.Real) {
	it, areaPDF := d.Sample(u)
	wi := it.P.Sub(ref.P)
	if wi.LengthSquared() == 0 {
		return it, 0
	}
	wi = wi.Normalize()
	distSq := ref.P.DistanceSquared(it.P)
	denom := it.N.AbsDot(wi.Negate())
	if denom == 0 {
		return it, 0
	}
	return it, areaPDF * distSq / denom
}

func (d *Disk) PDFFrom(ref Interaction, wi geom.Vector3) geom.Real {
	return pdfFrom(d, ref, wi)
}

// concentricSampleDisk maps a unit square sample to the unit disk via
// Shirley & Chiu's concentric mapping, avoiding the distortion of the naive
// polar (sqrt(u), 2*pi*v) approach.
func concentricSampleDisk(u geom.Point2) geom.Point2 {
	ox := 2*u.X - 1
	oy := 2*u.Y - 1
	if ox == 0 && oy == 0 {
		return geom.Point2{}
	}

	var r, theta geom.Real
	if math.Abs(ox) > math.Abs(oy) {
		r = ox
		theta = (math.Pi / 4) * (oy / ox)
	} else {
		r = oy
		theta = (math.Pi / 2) - (math.Pi/4)*(ox/oy)
	}
	return geom.Point2{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}
