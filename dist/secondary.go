package dist

import (
	"time"

	"github.com/gard-n/redner/log"
	"github.com/gard-n/redner/parallel"
	"github.com/gard-n/redner/scene"
)

var secondaryLogger = log.New("secondary-edge-dist")

// BuildSecondary computes the flat secondary-edge sampling distribution,
// used as a fallback when the hierarchical tree sampler (package bvh) is
// not built. Weight = length * (pi - dihedral angle).
func BuildSecondary(shapes []scene.Shape, edges []scene.Edge, opts parallel.Options) Distribution {
	start := time.Now()
	secondaryLogger.Noticef("building secondary edge distribution for %d edges", len(edges))

	weights := make([]float32, len(edges))
	parallel.ForEach(len(edges), opts, func(idx int) {
		edge := edges[idx]
		shape := shapes[edge.ShapeID]
		v0 := shape.Vertex(edge.V0)
		v1 := shape.Vertex(edge.V1)
		weights[idx] = v0.Distance(v1) * ExteriorDihedral(shapes, edge)
	})

	d := Build(weights)
	secondaryLogger.Noticef("built secondary edge distribution in %d ms", time.Since(start).Nanoseconds()/1e6)
	return d
}
