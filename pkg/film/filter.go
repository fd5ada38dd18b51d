package film

import (
	"math"

	"github.com/methusael13/phyray-go/pkg/geom"
)

// Filter is a separable pixel reconstruction filter: Evaluate is only ever
// called with |p.X| <= Radius.X and |p.Y| <= Radius.Y.
type Filter interface {
	Evaluate(p geom.Point2) geom.Real
	Radius() geom.Vector2
}

type filterBase struct {
	radius, invRadius geom.Vector2
}

func newFilterBase(radius geom.Vector2) filterBase {
	return filterBase{radius: radius, invRadius: geom.Vector2{X: 1 / radius.X, Y: 1 / radius.Y}}
}

func (f filterBase) Radius() geom.Vector2 { return f.radius }

// Box is the simplest (and cheapest, and blurriest) reconstruction filter:
// every sample within the radius contributes with equal weight.
type Box struct{ filterBase }

func NewBox(radius geom.Vector2) *Box { return &Box{newFilterBase(radius)} }

func (f *Box) Evaluate(p geom.Point2) geom.Real { return 1 }

// Triangle weights samples linearly by distance from the pixel center.
type Triangle struct{ filterBase }

func NewTriangle(radius geom.Vector2) *Triangle { return &Triangle{newFilterBase(radius)} }

func (f *Triangle) Evaluate(p geom.Point2) geom.Real {
	return maxReal(0, f.radius.X-absReal(p.X)) * maxReal(0, f.radius.Y-absReal(p.Y))
}

// Gaussian filters a sample by a Gaussian bump, shifted down by the value at
// the filter's edge so it reaches exactly zero at the radius (avoiding a
// visible discontinuity where the filter support is truncated).
type Gaussian struct {
	filterBase
	alpha      geom.Real
	expX, expY geom.Real
}

func NewGaussian(radius geom.Vector2, alpha geom.Real) *Gaussian {
	return &Gaussian{
		filterBase: newFilterBase(radius),
		alpha:      alpha,
		expX:       geom.Real(math.Exp(float64(-alpha * radius.X * radius.X))),
		expY:       geom.Real(math.Exp(float64(-alpha * radius.Y * radius.Y))),
	}
}

func (f *Gaussian) Evaluate(p geom.Point2) geom.Real {
	return f.gaussian(p.X, f.expX) * f.gaussian(p.Y, f.expY)
}

func (f *Gaussian) gaussian(d, expv geom.Real) geom.Real {
	return maxReal(0, geom.Real(math.Exp(float64(-f.alpha*d*d)))-expv)
}

// LanczosSinc windows the ideal (infinite-support) sinc reconstruction
// filter by a second sinc lobe stretched to the filter radius via tau, so
// it tapers to zero instead of ringing forever.
type LanczosSinc struct {
	filterBase
	tau geom.Real
}

func NewLanczosSinc(radius geom.Vector2, tau geom.Real) *LanczosSinc {
	return &LanczosSinc{filterBase: newFilterBase(radius), tau: tau}
}

func (f *LanczosSinc) Evaluate(p geom.Point2) geom.Real {
	return f.windowedSinc(p.X, f.radius.X) * f.windowedSinc(p.Y, f.radius.Y)
}

func (f *LanczosSinc) sinc(x geom.Real) geom.Real {
	x = absReal(x)
	if x < 1e-5 {
		return 1
	}
	return geom.Real(math.Sin(math.Pi*float64(x))) / (geom.Real(math.Pi) * x)
}

func (f *LanczosSinc) windowedSinc(x, radius geom.Real) geom.Real {
	x = absReal(x)
	if x > radius {
		return 0
	}
	return f.sinc(x) * f.sinc(x/f.tau)
}

// Mitchell is the Mitchell-Netravali cubic reconstruction filter, tunable
// between blurring (high B) and ringing (high C) via its B and C
// parameters; pre-expanded coefficients avoid recomputing the cubic's terms
// per evaluation.
type Mitchell struct {
	filterBase
	b, c                                     geom.Real
	coeffPrimD3, coeffPrimD2, coeffPrimD1, coeffPrimD0 geom.Real
	coeffSecD3, coeffSecD2, coeffSecD0                 geom.Real
}

const oneOverSix = geom.Real(1) / 6

func NewMitchell(radius geom.Vector2, b, c geom.Real) *Mitchell {
	return &Mitchell{
		filterBase:  newFilterBase(radius),
		b:           b,
		c:           c,
		coeffPrimD3: -b - 6*c,
		coeffPrimD2: 6*b + 30*c,
		coeffPrimD1: -12*b - 48*c,
		coeffPrimD0: 8*b + 24*c,
		coeffSecD3:  12 - 9*b - 6*c,
		coeffSecD2:  -18 + 12*b + 6*c,
		coeffSecD0:  6 - 2*b,
	}
}

func (f *Mitchell) Evaluate(p geom.Point2) geom.Real {
	return f.mitchell1D(p.X*f.invRadius.X) * f.mitchell1D(p.Y*f.invRadius.Y)
}

func (f *Mitchell) mitchell1D(x geom.Real) geom.Real {
	x = absReal(2 * x)
	if x > 1 {
		return (f.coeffPrimD3*x*x*x + f.coeffPrimD2*x*x + f.coeffPrimD1*x + f.coeffPrimD0) * oneOverSix
	}
	return (f.coeffSecD3*x*x*x + f.coeffSecD2*x*x + f.coeffSecD0) * oneOverSix
}

func absReal(v geom.Real) geom.Real {
	if v < 0 {
		return -v
	}
	return v
}

func maxReal(a, b geom.Real) geom.Real {
	if a > b {
		return a
	}
	return b
}
