package dist

import (
	"time"

	"github.com/gard-n/redner/log"
	"github.com/gard-n/redner/parallel"
	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
)

var primaryLogger = log.New("primary-edge-dist")

// BuildPrimary computes the primary-edge sampling distribution:
// for each edge, project its endpoints, clip to the screen rectangle and
// reject non-silhouette edges (from the camera origin); the weight of a
// surviving edge is its clipped screen-space length.
func BuildPrimary(shapes []scene.Shape, camera scene.Camera, edges []scene.Edge, opts parallel.Options) Distribution {
	start := time.Now()
	primaryLogger.Noticef("building primary edge distribution for %d edges", len(edges))

	weights := make([]float32, len(edges))
	camOrg := camera.Origin()
	parallel.ForEach(len(edges), opts, func(idx int) {
		weights[idx] = primaryEdgeWeight(shapes, camera, camOrg, edges[idx])
	})

	d := Build(weights)
	primaryLogger.Noticef("built primary edge distribution in %d ms", time.Since(start).Nanoseconds()/1e6)
	return d
}

func primaryEdgeWeight(shapes []scene.Shape, camera scene.Camera, camOrg types.Vec3, edge scene.Edge) float32 {
	shape := shapes[edge.ShapeID]
	v0 := shape.Vertex(edge.V0)
	v1 := shape.Vertex(edge.V1)

	v0ss, v1ss, ok := camera.Project(v0, v1)
	if !ok {
		return 0
	}
	c0, c1, ok := clipToUnitSquare(v0ss, v1ss)
	if !ok {
		return 0
	}
	if !IsSilhouette(shapes, camOrg, edge) {
		return 0
	}
	return c0.Sub(c1).Len()
}
