// Package deriv implements the derivative propagators: turning per-ray
// radiance contributions the outer pipeline has already traced into
// vertex and camera parameter gradients, plus the two optional edge-weight
// update hooks.
package deriv

import (
	"github.com/gard-n/redner/log"
	"github.com/gard-n/redner/sampler"
	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
)

var logger = log.New("deriv")

// EdgeContribution is the outer pipeline's report of what a traced primary
// edge ray pair contributed: the scalar per-pair radiance difference (the
// traced upper-minus-lower contribution, already divided by pmf) that the
// Eq. 8 screen-space derivative is scaled by.
type EdgeContribution struct {
	Value float32
}

// ComputePrimaryEdgeDerivatives back-propagates the per-sample contributions
// recorded in contribs into vertex and camera derivatives, building the
// Eq. 8 screen-space derivatives of the projected endpoints from each
// record's sampled screen point:
//
//	dV0ss = (v1ss.y - edgePt.y, edgePt.x - v1ss.x) * contribution
//	dV1ss = (edgePt.y - v0ss.y, v0ss.x - edgePt.x) * contribution
//
// Entries whose record is invalid contribute nothing.
func ComputePrimaryEdgeDerivatives(
	shapes []scene.Shape,
	camera scene.Camera,
	records []sampler.PrimaryEdgeRecord,
	contribs []EdgeContribution,
	dVertices map[int32]*types.Vec3,
	dCamera *scene.CameraDerivative,
) {
	for idx, rec := range records {
		if !rec.Valid() {
			continue
		}
		shape := shapes[rec.Edge.ShapeID]
		v0 := shape.Vertex(rec.Edge.V0)
		v1 := shape.Vertex(rec.Edge.V1)

		v0ss, v1ss, ok := camera.Project(v0, v1)
		if !ok {
			continue
		}
		edgePt := rec.ScreenPoint
		c := contribs[idx].Value

		dV0ss := types.XY(v1ss[1]-edgePt[1], edgePt[0]-v1ss[0]).Mul(c)
		dV1ss := types.XY(edgePt[1]-v0ss[1], v0ss[0]-edgePt[0]).Mul(c)

		camDeriv, dV0, dV1 := camera.DProject(v0, v1, dV0ss, dV1ss)
		dCamera.Add(camDeriv)
		accumulateVertex(dVertices, rec.Edge.V0, dV0)
		accumulateVertex(dVertices, rec.Edge.V1, dV1)
	}
}

func accumulateVertex(dVertices map[int32]*types.Vec3, id int32, d types.Vec3) {
	acc, ok := dVertices[id]
	if !ok {
		v := types.Vec3{}
		acc = &v
		dVertices[id] = acc
	}
	*acc = acc.Add(d)
}
