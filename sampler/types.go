// Package sampler implements the primary- and secondary-edge samplers:
// given CDF draws and the shared edge tables/distributions built once
// per scene, it produces straddling ray pairs, throughputs and Jacobians
// for the outer differentiable renderer to trace and accumulate.
package sampler

import (
	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
)

// PrimaryEdgeSample is the pair of independent uniform draws a caller
// supplies per primary-edge sample.
type PrimaryEdgeSample struct {
	EdgeSel float32
	T       float32
}

// SecondaryEdgeSample is the set of uniform draws a caller supplies per
// secondary-edge sample.
type SecondaryEdgeSample struct {
	EdgeSel      float32
	ResampleSel  float32
	T            float32
	BsdfComponent float32
}

// PrimaryEdgeRecord describes a sampled primary edge and where on the
// screen it was sampled.
type PrimaryEdgeRecord struct {
	Edge        scene.Edge
	ScreenPoint types.Vec2
}

// Valid reports whether r is a real (non-rejected) record.
func (r PrimaryEdgeRecord) Valid() bool {
	return r.Edge.ShapeID >= 0
}

// InvalidPrimaryEdgeRecord is the canonical "sample rejected" record.
var InvalidPrimaryEdgeRecord = PrimaryEdgeRecord{Edge: scene.InvalidEdge}

// SecondaryEdgeRecord describes a sampled secondary edge, its world-space
// sample point, and the world-space edge direction used by the Jacobian of
// the downstream ray-plane intersection.
type SecondaryEdgeRecord struct {
	Edge   scene.Edge
	Point  types.Vec3
	EdgeDir types.Vec3
}

// Valid reports whether r is a real (non-rejected) record.
func (r SecondaryEdgeRecord) Valid() bool {
	return r.Edge.ShapeID >= 0
}

// InvalidSecondaryEdgeRecord is the canonical "sample rejected" record.
var InvalidSecondaryEdgeRecord = SecondaryEdgeRecord{Edge: scene.InvalidEdge}

// RayPair is a straddling pair of rays offset to either side of a sampled
// edge, plus the differential carried forward for texture/specular
// filtering.
type RayPair struct {
	Upper, Lower scene.Ray
	Diff         scene.RayDifferential
}

// Contribution is the vector throughput and per-channel multiplier an
// outer pipeline derives for one ray of a pair, carried back in to compute
// per-vertex and per-edge derivatives.
type Contribution struct {
	Throughput         types.Vec3
	ChannelMultipliers []float32
}
