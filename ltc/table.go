// Package ltc implements the Linearly Transformed Cosine machinery shared
// by the secondary-edge flat resampler and the hierarchical tree sampler:
// building the per-material LTC matrix, and integrating a clamped cosine
// lobe over the bounding sphere of an edge cluster.
//
// The actual 64x64 fitted matrix/sphere tables are generated offline from a
// numerical fit and are out of scope to regenerate here; Table abstracts
// the lookup so a real fit can be plugged in without touching the sampler
// code.
package ltc

import "github.com/gard-n/redner/types"

// Table is the precomputed LTC lookup data, loaded once at process start
// from the fitted matrix and sphere-integral tables.
type Table interface {
	// MatrixAt returns the fitted LTC matrix for a given roughness and
	// incidence angle theta (radians from the shading normal).
	MatrixAt(roughness, theta float32) types.Mat3
	// SphereAt returns the tabulated sphere-integral value for a given
	// z-component of the average direction and form factor.
	SphereAt(cosTheta, formFactor float32) float32
}

// Size is the per-axis resolution of the fitted tables (typically 64).
const Size = 64
