package sampler

import (
	"math"
	"testing"

	"github.com/gard-n/redner/types"
)

func TestSolveLineCDFRoundTrip(t *testing.T) {
	vo := types.XYZ(0, 0, 1)
	wt := types.XYZ(0, 0, 0)
	d := float32(1)
	l0, l1 := float32(-1), float32(1)

	for _, target := range []float32{0.1, 0.25, 0.5, 0.75, 0.9} {
		l, pdf, ok := solveLineCDF(vo, wt, d, l0, l1, target)
		if !ok {
			t.Fatalf("solveLineCDF(t=%f) reported failure", target)
		}
		if pdf <= 0 {
			t.Fatalf("solveLineCDF(t=%f) returned non-positive pdf %f", target, pdf)
		}

		i0 := lineIntegral(vo, wt, d, l0)
		i1 := lineIntegral(vo, wt, d, l1)
		recovered := (lineIntegral(vo, wt, d, l) - i0) / (i1 - i0)

		const eps = 1e-4
		if math.Abs(float64(recovered-target)) > eps {
			t.Fatalf("t=%f -> l=%f -> recovered t=%f, diff %f exceeds tolerance", target, l, recovered, recovered-target)
		}
	}
}

func TestSolveLineCDFSymmetricMidpoint(t *testing.T) {
	vo := types.XYZ(0, 0, 1)
	wt := types.XYZ(0, 0, 0)
	l, _, ok := solveLineCDF(vo, wt, 1, -1, 1, 0.5)
	if !ok {
		t.Fatalf("solveLineCDF(t=0.5) reported failure")
	}
	if math.Abs(float64(l)) > 1e-3 {
		t.Fatalf("symmetric integrand at t=0.5 should invert to l~0, got %f", l)
	}
}

func TestSolveLineCDFDegenerateBracket(t *testing.T) {
	vo := types.XYZ(0, 0, 0)
	wt := types.XYZ(0, 0, 0)
	_, _, ok := solveLineCDF(vo, wt, 1, -1, 1, 0.5)
	if ok {
		t.Fatalf("solveLineCDF on an identically-zero integrand should fail, not succeed")
	}
}
