package reflect

import (
	"math"

	"github.com/methusael13/phyray-go/pkg/geom"
	"github.com/methusael13/phyray-go/pkg/spectrum"
)

const maxBxDFs = 8

// BSDF composes up to maxBxDFs scattering lobes evaluated in a local
// shading frame where the shading normal is +z; world-space directions are
// rotated into and out of that frame via (ss, ts, ns).
type BSDF struct {
	Eta geom.Real // relative index of refraction across the surface, 1 for opaque

	ng geom.Normal3 // true geometric normal, used only to reject light leaks
	ns geom.Normal3
	ss geom.Vector3
	ts geom.Vector3

	nBxDFs int
	bxdfs  [maxBxDFs]BxDF
}

// NewBSDF builds a BSDF anchored at a surface hit, deriving the shading
// frame from ShadingGeom.N and ShadingGeom.Dpdu. eta is the relative index
// of refraction for transmissive surfaces, and should be 1 for opaque ones.
func NewBSDF(ns geom.Normal3, ngeom geom.Normal3, dpdus geom.Vector3, eta geom.Real) *BSDF {
	ss := dpdus.Normalize()
	ts := ns.Vector().Cross(ss)
	return &BSDF{Eta: eta, ng: ngeom, ns: ns, ss: ss, ts: ts}
}

// Add appends a scattering lobe to the BSDF; panics if more than maxBxDFs
// lobes are added, which would indicate a material bug rather than
// something a caller should need to recover from.
func (b *BSDF) Add(bxdf BxDF) {
	if b.nBxDFs >= maxBxDFs {
		panic("reflect: BSDF lobe capacity exceeded")
	}
	b.bxdfs[b.nBxDFs] = bxdf
	b.nBxDFs++
}

// Lobes returns the BSDF's underlying scattering lobes, for callers (such
// as a mixture material) that need to re-wrap them rather than evaluate
// through this BSDF directly.
func (b *BSDF) Lobes() []BxDF {
	return append([]BxDF(nil), b.bxdfs[:b.nBxDFs]...)
}

// NumComponents counts the lobes matching the given flags.
func (b *BSDF) NumComponents(flags Type) int {
	n := 0
	for i := 0; i < b.nBxDFs; i++ {
		if b.bxdfs[i].MatchesFlags(flags) {
			n++
		}
	}
	return n
}

func (b *BSDF) worldToLocal(v geom.Vector3) geom.Vector3 {
	return geom.Vector3{X: v.Dot(b.ss), Y: v.Dot(b.ts), Z: v.Dot(b.ns.Vector())}
}

func (b *BSDF) localToWorld(v geom.Vector3) geom.Vector3 {
	return geom.Vector3{
		X: b.ss.X*v.X + b.ts.X*v.Y + b.ns.X*v.Z,
		Y: b.ss.Y*v.X + b.ts.Y*v.Y + b.ns.Y*v.Z,
		Z: b.ss.Z*v.X + b.ts.Z*v.Y + b.ns.Z*v.Z,
	}
}

// F evaluates every lobe matching flags for the world-space direction pair
// (woW, wiW), rejecting lobes whose reflection/transmission side disagrees
// with the true geometric normal (this is what keeps shading normals from
// leaking light through a backfacing geometric surface).
func (b *BSDF) F(woW, wiW geom.Vector3, flags Type) spectrum.SampledSpectrum {
	wo := b.worldToLocal(woW)
	wi := b.worldToLocal(wiW)
	if wo.Z == 0 {
		return spectrum.Black
	}

	reflect := wiW.Dot(b.ng.Vector())*woW.Dot(b.ng.Vector()) > 0
	f := spectrum.Black
	for i := 0; i < b.nBxDFs; i++ {
		lobe := b.bxdfs[i]
		if !lobe.MatchesFlags(flags) {
			continue
		}
		if (reflect && lobe.Type().Has(Reflection)) || (!reflect && lobe.Type().Has(Transmission)) {
			f = f.Add(lobe.F(wo, wi))
		}
	}
	return f
}

// Pdf is the sum over matching lobes of their individual pdfs, averaged by
// lobe count to stay a valid probability density for SampleF's MIS weight.
func (b *BSDF) Pdf(woW, wiW geom.Vector3, flags Type) geom.Real {
	if b.nBxDFs == 0 {
		return 0
	}
	wo := b.worldToLocal(woW)
	wi := b.worldToLocal(wiW)
	if wo.Z == 0 {
		return 0
	}

	var pdf geom.Real
	matching := 0
	for i := 0; i < b.nBxDFs; i++ {
		if b.bxdfs[i].MatchesFlags(flags) {
			pdf += b.bxdfs[i].Pdf(wo, wi)
			matching++
		}
	}
	if matching == 0 {
		return 0
	}
	return pdf / geom.Real(matching)
}

// SampleF picks a matching lobe uniformly at random, samples it for an
// incident direction, and then averages f and pdf against the BSDF's other
// matching lobes (unless the sampled lobe is a delta distribution, whose f
// and pdf are meaningless for any other direction).
func (b *BSDF) SampleF(woW geom.Vector3, u geom.Point2, uComponent geom.Real, flags Type) (f spectrum.SampledSpectrum, wiW geom.Vector3, pdf geom.Real, sampledType Type) {
	matching := b.NumComponents(flags)
	if matching == 0 {
		return spectrum.Black, geom.Vector3{}, 0, 0
	}

	comp := int(math.Min(uComponent*geom.Real(matching), geom.Real(matching)-1))
	var chosen BxDF
	seen := 0
	for i := 0; i < b.nBxDFs; i++ {
		if b.bxdfs[i].MatchesFlags(flags) {
			if seen == comp {
				chosen = b.bxdfs[i]
				break
			}
			seen++
		}
	}

	wo := b.worldToLocal(woW)
	if wo.Z == 0 {
		return spectrum.Black, geom.Vector3{}, 0, 0
	}

	var wi geom.Vector3
	f, wi, pdf = chosen.SampleF(wo, u)
	if pdf == 0 {
		return spectrum.Black, geom.Vector3{}, 0, 0
	}
	sampledType = chosen.Type()
	wiW = b.localToWorld(wi)

	if !chosen.Type().Has(Specular) && matching > 1 {
		for i := 0; i < b.nBxDFs; i++ {
			lobe := b.bxdfs[i]
			if lobe == chosen || !lobe.MatchesFlags(flags) {
				continue
			}
			pdf += lobe.Pdf(wo, wi)
		}
	}
	if matching > 1 {
		pdf /= geom.Real(matching)
	}

	if !chosen.Type().Has(Specular) && matching > 1 {
		reflect := wiW.Dot(b.ng.Vector())*woW.Dot(b.ng.Vector()) > 0
		f = spectrum.Black
		for i := 0; i < b.nBxDFs; i++ {
			lobe := b.bxdfs[i]
			if !lobe.MatchesFlags(flags) {
				continue
			}
			if (reflect && lobe.Type().Has(Reflection)) || (!reflect && lobe.Type().Has(Transmission)) {
				f = f.Add(lobe.F(wo, wi))
			}
		}
	}

	return f, wiW, pdf, sampledType
}
