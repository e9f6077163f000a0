package deriv

import (
	"github.com/gard-n/redner/sampler"
	"github.com/gard-n/redner/scene"
)

// UpdatePrimaryEdgeWeights zeros the throughput of a primary-edge ray pair
// when neither ray's reported intersection landed on one of the edge's two
// adjacent triangles. This check is opt-in: callers call it explicitly
// after tracing the pair, rather than it running unconditionally inside
// SamplePrimaryEdges.
func UpdatePrimaryEdgeWeights(
	records []sampler.PrimaryEdgeRecord,
	upperHit, lowerHit []scene.Intersection,
	upper, lower []sampler.Contribution,
) {
	for i, rec := range records {
		if !rec.Valid() {
			continue
		}
		if hitsAdjacentFace(rec.Edge, upperHit[i]) || hitsAdjacentFace(rec.Edge, lowerHit[i]) {
			continue
		}
		zeroContribution(&upper[i])
		zeroContribution(&lower[i])
	}
}

func hitsAdjacentFace(edge scene.Edge, hit scene.Intersection) bool {
	if !hit.Valid() {
		return false
	}
	return hit.ShapeID == edge.ShapeID && (hit.TriID == edge.F0 || hit.TriID == edge.F1)
}
