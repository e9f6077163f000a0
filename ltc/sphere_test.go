package ltc

import (
	"math"
	"testing"

	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
)

// TestSphereIntegralMatchesAnalyticFormFactor checks the identity-transform,
// directly-facing case against the closed-form Lambertian sphere form factor
// pi*(1 - sqrt(1 - (r/d)^2)): a unit-radius sphere at distance 2 along the
// shading normal gives pi*(1 - sqrt(3)/2) =~ 0.4205.
func TestSphereIntegralMatchesAnalyticFormFactor(t *testing.T) {
	p := scene.SurfacePoint{
		Position: types.XYZ(0, 0, 0),
		ShadingFrame: scene.Frame{
			X: types.XYZ(1, 0, 0),
			Y: types.XYZ(0, 1, 0),
			Z: types.XYZ(0, 0, 1),
		},
	}
	center := types.XYZ(0, 0, 2)
	got := SphereIntegral(p, types.Ident3(), center, 1, AnalyticTable{})

	want := float32(math.Pi * (1 - math.Sqrt(1-0.25)))
	if diff := absf(got - want); diff > 0.05 {
		t.Fatalf("SphereIntegral = %f, want ~%f (diff %f)", got, want, diff)
	}
}

func TestSphereIntegralDecreasesWithDistance(t *testing.T) {
	p := scene.SurfacePoint{
		Position: types.XYZ(0, 0, 0),
		ShadingFrame: scene.Frame{
			X: types.XYZ(1, 0, 0),
			Y: types.XYZ(0, 1, 0),
			Z: types.XYZ(0, 0, 1),
		},
	}
	near := SphereIntegral(p, types.Ident3(), types.XYZ(0, 0, 2), 1, AnalyticTable{})
	far := SphereIntegral(p, types.Ident3(), types.XYZ(0, 0, 4), 1, AnalyticTable{})
	if far >= near {
		t.Fatalf("a farther sphere of equal radius should contribute less: near=%f far=%f", near, far)
	}
}
