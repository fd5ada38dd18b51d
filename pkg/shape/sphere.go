package shape

import (
	"math"

	"github.com/methusael13/phyray-go/pkg/geom"
)

// Sphere is a parametric sphere of a given radius, optionally clipped in z
// and phi to form a partial sphere (lune/cap). It is defined in object
// space centered at the origin; ObjectToWorld places it in the scene.
type Sphere struct {
	shapeBase
	Radius           geom.Real
	ZMin, ZMax       geom.Real
	ThetaMin, ThetaMax geom.Real
	PhiMax           geom.Real
}

// NewSphere builds a full sphere of the given radius.
func NewSphere(o2w geom.Transform, radius geom.Real, reverseNormals bool) *Sphere {
	return NewPartialSphere(o2w, radius, -radius, radius, 360, reverseNormals)
}

// NewPartialSphere builds a sphere clipped to [zMin, zMax] and swept
// through phiMax degrees.
func NewPartialSphere(o2w geom.Transform, radius, zMin, zMax, phiMaxDeg geom.Real, reverseNormals bool) *Sphere {
	zMin = clampR(zMin, -radius, radius)
	zMax = clampR(zMax, -radius, radius)
	if zMin > zMax {
		zMin, zMax = zMax, zMin
	}
	return &Sphere{
		shapeBase:  newShapeBase(o2w, reverseNormals),
		Radius:     radius,
		ZMin:       zMin,
		ZMax:       zMax,
		ThetaMin:   math.Acos(clampR(zMin/radius, -1, 1)),
		ThetaMax:   math.Acos(clampR(zMax/radius, -1, 1)),
		PhiMax:     radians(clampR(phiMaxDeg, 0, 360)),
	}
}

func clampR(v, lo, hi geom.Real) geom.Real {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func radians(deg geom.Real) geom.Real { return deg * math.Pi / 180 }

func (s *Sphere) ObjectBounds() geom.Bounds3 {
	return geom.NewBounds3(
		geom.Point3{X: -s.Radius, Y: -s.Radius, Z: s.ZMin},
		geom.Point3{X: s.Radius, Y: s.Radius, Z: s.ZMax},
	)
}

func (s *Sphere) WorldBounds() geom.Bounds3 { return s.ObjectToWorld.Bounds(s.ObjectBounds()) }

func (s *Sphere) SurfaceArea() geom.Real {
	return s.PhiMax * s.Radius * (s.ZMax - s.ZMin)
}

// solveQuadratic solves a*t^2 + b*t + c = 0 for real roots t0 <= t1.
func solveQuadratic(a, b, c geom.Real) (t0, t1 geom.Real, ok bool) {
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, 0, false
	}
	rootDisc := math.Sqrt(disc)
	var q geom.Real
	if b < 0 {
		q = -0.5 * (b - rootDisc)
	} else {
		q = -0.5 * (b + rootDisc)
	}
	t0, t1 = q/a, c/q
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}

func (s *Sphere) basicIntersect(ray geom.Ray) (localRay geom.Ray, t geom.Real, hp geom.Point3, ok bool) {
	localRay = s.WorldToObject.Ray(ray)

	dx, dy, dz := localRay.Direction.X, localRay.Direction.Y, localRay.Direction.Z
	ox, oy, oz := localRay.Origin.X, localRay.Origin.Y, localRay.Origin.Z
	a := dx*dx + dy*dy + dz*dz
	b := 2 * (ox*dx + oy*dy + oz*dz)
	c := ox*ox + oy*oy + oz*oz - s.Radius*s.Radius

	t0, t1, hit := solveQuadratic(a, b, c)
	if !hit {
		return localRay, 0, geom.Point3{}, false
	}
	if t0 > localRay.TMax || t1 <= 0 {
		return localRay, 0, geom.Point3{}, false
	}
	tShapeHit := t0
	if tShapeHit <= 0 {
		tShapeHit = t1
		if tShapeHit > localRay.TMax {
			return localRay, 0, geom.Point3{}, false
		}
	}

	hitPoint := localRay.At(tShapeHit)
	if s.clipped(hitPoint) {
		if tShapeHit == t1 {
			return localRay, 0, geom.Point3{}, false
		}
		if t1 > localRay.TMax {
			return localRay, 0, geom.Point3{}, false
		}
		tShapeHit = t1
		hitPoint = localRay.At(tShapeHit)
		if s.clipped(hitPoint) {
			return localRay, 0, geom.Point3{}, false
		}
	}
	return localRay, tShapeHit, hitPoint, true
}

func (s *Sphere) clipped(p geom.Point3) bool {
	return (s.ZMin > -s.Radius && p.Z < s.ZMin) || (s.ZMax < s.Radius && p.Z > s.ZMax)
}

func (s *Sphere) Intersect(ray geom.Ray) (geom.Real, SurfaceInteraction, bool) {
	_, t, hp, ok := s.basicIntersect(ray)
	if !ok {
		return 0, SurfaceInteraction{}, false
	}

	if hp.X == 0 && hp.Y == 0 {
		hp.X = 1e-5 * s.Radius
	}
	phi := math.Atan2(hp.Y, hp.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	theta := math.Acos(clampR(hp.Z/s.Radius, -1, 1))

	u := phi / s.PhiMax
	deltaTheta := s.ThetaMax - s.ThetaMin
	v := (theta - s.ThetaMin) / deltaTheta

	hypot := math.Sqrt(hp.X*hp.X + hp.Y*hp.Y)
	invHypot := 1 / hypot
	cosPhi, sinPhi := hp.X*invHypot, hp.Y*invHypot

	dpdu := geom.Vector3{X: -s.PhiMax * hp.Y, Y: s.PhiMax * hp.X, Z: 0}
	dpdv := geom.Vector3{X: hp.Z * cosPhi, Y: hp.Z * sinPhi, Z: -s.Radius * math.Sin(theta)}.Scale(deltaTheta)

	d2Pduu := geom.Vector3{X: hp.X, Y: hp.Y, Z: 0}.Scale(-s.PhiMax * s.PhiMax)
	d2Pduv := geom.Vector3{X: -sinPhi, Y: cosPhi, Z: 0}.Scale(deltaTheta * hp.Z * s.PhiMax)
	d2Pdvv := geom.Vector3{X: hp.X, Y: hp.Y, Z: hp.Z}.Scale(-deltaTheta * deltaTheta)

	E, F, G := dpdu.Dot(dpdu), dpdu.Dot(dpdv), dpdv.Dot(dpdv)
	n := dpdu.Cross(dpdv).Normalize()
	e, f, g := n.Dot(d2Pduu), n.Dot(d2Pduv), n.Dot(d2Pdvv)

	invEGF2 := 1 / (E*G - F*F)
	dndu := geom.NormalFromVector(dpdu.Scale((f*F - e*G) * invEGF2).Add(dpdv.Scale((e*F - f*E) * invEGF2)))
	dndv := geom.NormalFromVector(dpdu.Scale((g*F - f*G) * invEGF2).Add(dpdv.Scale((f*F - g*E) * invEGF2)))

	pError := geom.Vector3{X: hp.X, Y: hp.Y, Z: hp.Z}.Abs().Scale(geom.Gamma(5))

	si := NewSurfaceInteraction(hp, pError, s.WorldToObject.Vector(ray.Direction).Negate().Normalize(),
		geom.Point2{X: u, Y: v}, dpdu, dpdv, dndu, dndv, s)

	si.P = s.ObjectToWorld.Point(si.P)
	si.PError = s.ObjectToWorld.Vector(si.PError).Abs()
	si.N = s.ObjectToWorld.Normal(si.N).Normalize()
	si.Wo = s.ObjectToWorld.Vector(si.Wo).Normalize()
	si.Dpdu = s.ObjectToWorld.Vector(si.Dpdu)
	si.Dpdv = s.ObjectToWorld.Vector(si.Dpdv)
	si.Dndu = s.ObjectToWorld.Normal(si.Dndu)
	si.Dndv = s.ObjectToWorld.Normal(si.Dndv)
	si.ShadingGeom.N = si.N
	si.ShadingGeom.Dpdu, si.ShadingGeom.Dpdv = si.Dpdu, si.Dpdv
	si.ShadingGeom.Dndu, si.ShadingGeom.Dndv = si.Dndu, si.Dndv

	return t, si, true
}

func (s *Sphere) IntersectP(ray geom.Ray) bool {
	_, _, _, ok := s.basicIntersect(ray)
	return ok
}

// Sample picks a point uniformly over the full sphere's surface, returning
// the area PDF 1/SurfaceArea.
func (s *Sphere) Sample(u geom.Point2) (Interaction, geom.Real) {
	pObj := uniformSampleSphere(u).Scale(s.Radius)
	n := s.ObjectToWorld.Normal(geom.NormalFromVector(pObj)).Normalize()
	if s.Reverse {
		n = n.Negate()
	}
	p := s.ObjectToWorld.Point(geom.Point3{X: pObj.X, Y: pObj.Y, Z: pObj.Z})
	pError := geom.Vector3{X: p.X, Y: p.Y, Z: p.Z}.Abs().Scale(geom.Gamma(5))
	return Interaction{P: p, N: n, PError: pError}, 1 / s.SurfaceArea()
}

// SampleFrom samples the solid angle subtended by the sphere from ref using
// cone sampling when ref lies outside the sphere, falling back to uniform
// area sampling (converted to solid angle) when ref is inside.
func (s *Sphere) SampleFrom(ref Interaction, u geom.Point2) (Interaction, geom.Real) {
	center := s.ObjectToWorld.Point(geom.Point3{})
	distSq := center.DistanceSquared(ref.P)
	radiusSq := s.Radius * s.Radius

	if distSq <= radiusSq {
		it, _ := s.Sample(u)
		wi := it.P.Sub(ref.P)
		if wi.LengthSquared() == 0 {
			return it, 0
		}
		wi = wi.Normalize()
		pdf := pdfFrom(s, ref, wi)
		return it, pdf
	}

	dc := math.Sqrt(distSq)
	invDc := 1 / dc
	wc := center.Sub(ref.P).Scale(invDc)
	wcX, wcY := geom.CoordinateSystem(wc)

	sinThetaMax2 := radiusSq / distSq
	cosThetaMax := math.Sqrt(math.Max(0, 1-sinThetaMax2))
	cosTheta := (cosThetaMax-1)*u.X + 1
	sinTheta2 := 1 - cosTheta*cosTheta
	if sinThetaMax2 < 0.00068523 { // sin^2(1.5 deg): small-angle series
		sinTheta2 = sinThetaMax2 * u.X
		cosTheta = math.Sqrt(1 - sinTheta2)
	}

	cosAlpha := sinTheta2*dc/s.Radius + cosTheta*math.Sqrt(math.Max(0, 1-sinTheta2*distSq/radiusSq))
	sinAlpha := math.Sqrt(math.Max(0, 1-cosAlpha*cosAlpha))
	phi := u.Y * 2 * math.Pi

	nWorld := wc.Scale(-cosAlpha).Add(wcX.Scale(sinAlpha * math.Cos(phi))).Add(wcY.Scale(sinAlpha * math.Sin(phi)))
	pWorld := center.AddVector(nWorld.Scale(s.Radius))

	n := geom.NormalFromVector(nWorld)
	if s.Reverse {
		n = n.Negate()
	}
	pError := geom.Vector3{X: pWorld.X, Y: pWorld.Y, Z: pWorld.Z}.Abs().Scale(geom.Gamma(5))

	pdf := 1 / (2 * math.Pi * (1 - cosThetaMax))
	return Interaction{P: pWorld, N: n, PError: pError}, pdf
}

func (s *Sphere) PDFFrom(ref Interaction, wi geom.Vector3) geom.Real {
	center := s.ObjectToWorld.Point(geom.Point3{})
	distSq := center.DistanceSquared(ref.P)
	radiusSq := s.Radius * s.Radius
	if distSq <= radiusSq {
		return pdfFrom(s, ref, wi)
	}
	sinThetaMax2 := radiusSq / distSq
	cosThetaMax := math.Sqrt(math.Max(0, 1-sinThetaMax2))
	return uniformConePDF(cosThetaMax)
}

func uniformConePDF(cosThetaMax geom.Real) geom.Real {
	return 1 / (2 * math.Pi * (1 - cosThetaMax))
}

func uniformSampleSphere(u geom.Point2) geom.Vector3 {
	z := 1 - 2*u.X
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u.Y
	return geom.Vector3{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}
