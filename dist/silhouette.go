// Package dist builds the per-edge sampling distributions (primary and
// flat secondary) and implements the silhouette test they both depend on.
package dist

import (
	"math"

	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
)

// IsSilhouette reports whether edge is a silhouette as seen from query
// point q: a boundary edge always is, otherwise the two incident
// triangles' outward normals must lie on opposite sides of the half-space
// through v0 with normal (q - v0). Using a strict sign product rather than
// an epsilon comparison makes the test stable for perfectly coplanar faces
// (the product is exactly zero, never spuriously negative due to rounding
// in one evaluation but not the next).
func IsSilhouette(shapes []scene.Shape, q types.Vec3, edge scene.Edge) bool {
	if edge.Boundary() {
		return true
	}
	shape := shapes[edge.ShapeID]
	n0 := shape.FaceNormal(edge.F0)
	n1 := shape.FaceNormal(edge.F1)
	v0 := shape.Vertex(edge.V0)
	d := q.Sub(v0)
	s0 := n0.Dot(d)
	s1 := n1.Dot(d)
	return s0*s1 < 0
}

// ExteriorDihedral returns the exterior dihedral angle between an edge's
// two incident faces — the angle between their outward normals — or pi
// for boundary edges. Coplanar faces (a flat, non-silhouette edge) give 0;
// a fold back on itself gives pi.
func ExteriorDihedral(shapes []scene.Shape, edge scene.Edge) float32 {
	if edge.Boundary() {
		return math.Pi
	}
	shape := shapes[edge.ShapeID]
	n0 := shape.FaceNormal(edge.F0).Normalize()
	n1 := shape.FaceNormal(edge.F1).Normalize()
	cosTheta := n0.Dot(n1)
	if cosTheta > 1 {
		cosTheta = 1
	} else if cosTheta < -1 {
		cosTheta = -1
	}
	return float32(math.Acos(float64(cosTheta)))
}
