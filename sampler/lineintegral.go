package sampler

import (
	"math"

	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
)

// lineIntegral is the antiderivative of the LTC line integral along a
// sampled edge, evaluated in the plane spanned by the perpendicular foot
// vo and the edge direction wt, at distance d from the shading point's
// projection and parameter l along wt.
func lineIntegral(vo, wt types.Vec3, d, l float32) float32 {
	denom := d * (d*d + l*l)
	atanTerm := float32(math.Atan(float64(l/d))) / (d * d)
	return (l/denom+atanTerm)*vo[2] + (l*l/denom)*wt[2]
}

// linePdfUnnormalized is the (un-normalized) density of the line integral
// at parameter l; dividing by the bracket I(l1)-I(l0) yields the pdf of
// the sampled point along the edge.
func linePdfUnnormalized(vo, wt types.Vec3, d, l float32) float32 {
	p := vo.Add(wt.Mul(l))
	denom := d*d + l*l
	return 2 * d * p[2] / (denom * denom)
}

// solveLineCDF inverts the line-CDF at t via hybrid bisection/Newton on
// [min(l0,l1), max(l0,l1)], falling back to bisection whenever a Newton
// step would exit the bracket.
func solveLineCDF(vo, wt types.Vec3, d, l0, l1, t float32) (l, pdf float32, ok bool) {
	i0 := lineIntegral(vo, wt, d, l0)
	i1 := lineIntegral(vo, wt, d, l1)
	denom := i1 - i0
	if denom == 0 || float32(math.Abs(float64(denom))) < 1e-9 {
		return 0, 0, false
	}

	lo, hi := l0, l1
	if lo > hi {
		lo, hi = hi, lo
	}
	guess := lo + t*(hi-lo)

	for iter := 0; iter < lineSearchMaxIters; iter++ {
		val := (lineIntegral(vo, wt, d, guess)-i0)/denom - t
		if float32(math.Abs(float64(val))) < lineSearchTolerance {
			break
		}
		deriv := linePdfUnnormalized(vo, wt, d, guess) / denom

		if val > 0 {
			hi = guess
		} else {
			lo = guess
		}

		next := guess
		if deriv != 0 {
			next = guess - val/deriv
		}
		if next <= lo || next >= hi {
			next = 0.5 * (lo + hi)
		}
		guess = next
	}

	pdfVal := linePdfUnnormalized(vo, wt, d, guess) / denom
	if pdfVal <= 0 {
		return 0, 0, false
	}
	return guess, pdfVal, true
}

// propagateRayDifferential propagates a ray differential through a
// secondary-edge bounce: origin differentials are carried unchanged from
// the incoming ray; direction differentials use a fixed low-pass kernel on
// the diffuse branch, or the Igehy 1999 specular-reflection equations on
// the specular branch, treating the half vector between the view
// direction and the sampled direction sHat as the reflecting micronormal.
func propagateRayDifferential(in SecondaryPixelInput, p scene.SurfacePoint, isDiffuse bool, sHat types.Vec3) scene.RayDifferential {
	diff := scene.RayDifferential{
		OrgDx: in.IncomingDiff.OrgDx,
		OrgDy: in.IncomingDiff.OrgDy,
	}
	if isDiffuse {
		diff.DirDx = diffuseRayDifferentialKernel
		diff.DirDy = diffuseRayDifferentialKernel
		return diff
	}

	n := p.ShadingFrame.Z
	wi := in.IncomingRay.Dir.Neg().Normalize()
	m := wi.Add(sHat).Normalize()
	mDotN := m.Dot(n)

	dirDx := in.IncomingDiff.DirDx.Neg()
	dirDy := in.IncomingDiff.DirDy.Neg()

	dmdx := p.DnDx.Mul(mDotN)
	dmdy := p.DnDy.Mul(mDotN)

	diff.DirDx = dirDx.
		Add(p.DnDx.Mul(2 * wi.Dot(m))).
		Sub(m.Mul(2 * dirDx.Dot(m))).
		Add(m.Mul(2 * wi.Dot(dmdx)))
	diff.DirDy = dirDy.
		Add(p.DnDy.Mul(2 * wi.Dot(m))).
		Sub(m.Mul(2 * dirDy.Dot(m))).
		Add(m.Mul(2 * wi.Dot(dmdy)))
	return diff
}
