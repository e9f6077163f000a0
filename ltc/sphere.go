package ltc

import (
	"math"

	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
)

// solveCubic finds the three real roots of c3*x^3 + c2*x^2 + c1*x + c0,
// using Blinn's "Algorithm A" and "Algorithm D" merged to avoid
// catastrophic cancellation. The smallest root is returned in the middle
// component (y); the other two occupy x and z. SphereIntegral relies on
// this order: its e2 is the smallest root.
// This is valid only for the non-negative discriminants encountered when
// solving the LTC disk's equivalent-sphere equation; it is not a general
// cubic solver. A circular disk gives a discriminant of exactly zero, so a
// slightly negative value from rounding is clamped to zero.
func solveCubic(c0, c1, c2, c3 float32) types.Vec3 {
	invC3 := 1.0 / c3
	c0 *= invC3
	c1 *= invC3
	c2 *= invC3
	c1 /= 3.0
	c2 /= 3.0

	A := c3
	B := c2
	C := c1
	D := c0

	deltaX := -(c2 * c2) + c1
	deltaY := -c1*c2 + c0
	deltaZ := c2*c0 - c1*c1

	discriminant := 4.0*deltaX*deltaZ - deltaY*deltaY
	if discriminant < 0 {
		discriminant = 0
	}
	sqrtDisc := sqrtf(discriminant)

	// Algorithm A
	Ca := deltaX
	Da := -2.0*B*deltaX + deltaY
	thetaA := atan2f(sqrtDisc, -Da) / 3.0
	x1a := 2.0 * sqrtf(-Ca) * cosf(thetaA)
	x3a := 2.0 * sqrtf(-Ca) * cosf(thetaA+float32(2.0/3.0*math.Pi))
	xl := x3a
	if x1a+x3a > 2.0*B {
		xl = x1a
	}
	xlc := types.XY(xl-B, A)

	// Algorithm D
	Cd := deltaZ
	Dd := -D*deltaY + 2.0*C*deltaZ
	thetaD := atan2f(D*sqrtDisc, -Dd) / 3.0
	x1d := 2.0 * sqrtf(-Cd) * cosf(thetaD)
	x3d := 2.0 * sqrtf(-Cd) * cosf(thetaD+float32(2.0/3.0*math.Pi))
	xs := x3d
	if x1d+x3d < 2.0*C {
		xs = x1d
	}
	xsc := types.XY(-D, xs+C)

	E := xlc[1] * xsc[1]
	F := -xlc[0]*xsc[1] - xlc[1]*xsc[0]
	G := xlc[0] * xsc[0]

	xmc := types.XY(C*F-B*G, -B*F+C*E)

	root := types.XYZ(xsc[0]/xsc[1], xmc[0]/xmc[1], xlc[0]/xlc[1])

	if root[0] < root[1] && root[0] < root[2] {
		root = types.XYZ(root[1], root[0], root[2])
	} else if root[2] < root[0] && root[2] < root[1] {
		root = types.XYZ(root[0], root[2], root[1])
	}
	return root
}

func sqrtf(x float32) float32  { return float32(math.Sqrt(float64(x))) }
func atan2f(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}
func cosf(x float32) float32 { return float32(math.Cos(float64(x))) }

// SphereIntegral evaluates the integral of the linearly-transformed
// clamped cosine over the bounding sphere (center, radius), as seen from
// surface point p with inverse LTC transform mInv. It returns 0 if
// the transformed frame is back-facing (no contribution).
func SphereIntegral(p scene.SurfacePoint, mInv types.Mat3, center types.Vec3, radius float32, table Table) float32 {
	c := p.ShadingFrame.ToLocal(center.Sub(p.Position))

	v1dir, v2dir := types.CoordinateSystem(c.Normalize())
	v1 := v1dir.Mul(radius)
	v2 := v2dir.Mul(radius)

	c = mInv.MulVec3(c)
	v1 = mInv.MulVec3(v1)
	v2 = mInv.MulVec3(v2)

	if v1.Cross(v2).Dot(c) <= 0 {
		return 0
	}

	d11 := v1.Dot(v1)
	d22 := v2.Dot(v2)
	d12 := v1.Dot(v2)

	var a, b float32
	if absf(d12)/sqrtf(d11*d22) > 1e-4 {
		tr := d11 + d22
		det := sqrtf(-d12*d12 + d11*d22)
		u := 0.5 * sqrtf(tr-2.0*det)
		v := 0.5 * sqrtf(tr+2.0*det)
		eMax := (u + v) * (u + v)
		eMin := (u - v) * (u - v)

		var v1n, v2n types.Vec3
		if d11 > d22 {
			v1n = v1.Mul(d12).Add(v2.Mul(eMax - d11))
			v2n = v1.Mul(d12).Add(v2.Mul(eMin - d11))
		} else {
			v1n = v2.Mul(d12).Add(v1.Mul(eMax - d22))
			v2n = v2.Mul(d12).Add(v1.Mul(eMin - d22))
		}
		a = 1.0 / eMax
		b = 1.0 / eMin
		v1 = v1n.Normalize()
		v2 = v2n.Normalize()
	} else {
		a = 1.0 / d11
		b = 1.0 / d22
		v1 = v1.Mul(sqrtf(a))
		v2 = v2.Mul(sqrtf(b))
	}

	v3 := v1.Cross(v2)
	if c.Dot(v3) < 0 {
		v3 = v3.Neg()
	}

	l := v3.Dot(c)
	x0 := v1.Dot(c) / l
	y0 := v2.Dot(c) / l
	a *= l * l
	b *= l * l

	c0 := a * b
	c1 := a*b*(1.0+x0*x0+y0*y0) - a - b
	c2 := float32(1.0) - a*(1.0+x0*x0) - b*(1.0+y0*y0)
	roots := solveCubic(c0, c1, c2, 1.0)
	e1, e2, e3 := roots[0], roots[1], roots[2]

	avgDir := types.XYZ(a*x0/(a-e2), b*y0/(b-e2), 1.0)
	rotate := types.Mat3FromCols(v1, v2, v3)
	avgDir = rotate.MulVec3(avgDir).Normalize()

	l1 := sqrtf(-e2 / e3)
	l2 := sqrtf(-e2 / e1)
	formFactor := l1 * l2 / sqrtf((1.0+l1*l1)*(1.0+l2*l2))
	return table.SphereAt(avgDir[2], formFactor) * formFactor
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
