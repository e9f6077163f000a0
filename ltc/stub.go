package ltc

import "github.com/gard-n/redner/types"

// AnalyticTable is a small closed-form stand-in for the real fitted LTC
// tables, useful for tests and the demo CLI where
// loading ltc.inc/ltc_sphere.inc is out of scope. It treats every material
// as perfectly diffuse (MatrixAt is always identity) and approximates the
// sphere integral by a plain clamped-cosine falloff, which is exact in the
// diffuse case and only approximate for glossy materials.
type AnalyticTable struct{}

// MatrixAt always returns the identity matrix: AnalyticTable models every
// surface as Lambertian, for which the LTC transform is the identity.
func (AnalyticTable) MatrixAt(roughness, theta float32) types.Mat3 {
	return types.Ident3()
}

// SphereAt approximates the tabulated sphere-integral lookup with a plain
// clamped-cosine term, pi * max(cosTheta, 0). formFactor is ignored;
// SphereIntegral multiplies the returned value by the form factor.
func (AnalyticTable) SphereAt(cosTheta, formFactor float32) float32 {
	c := cosTheta
	if c < 0 {
		c = 0
	}
	return 3.14159265358979323846 * c
}
