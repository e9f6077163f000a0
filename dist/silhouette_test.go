package dist

import (
	"math"
	"testing"

	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
)

// foldShape is two triangles sharing edge (0,1), folded along it like an
// open book; the dihedral angle and silhouette test both depend on the two
// face normals.
type foldShape struct {
	verts [4]types.Vec3
	norms [2]types.Vec3
}

func (s *foldShape) NumTriangles() int { return 2 }
func (s *foldShape) TriangleIndices(tri int) [3]int32 {
	if tri == 0 {
		return [3]int32{0, 1, 2}
	}
	return [3]int32{1, 0, 3}
}
func (s *foldShape) Vertex(id int32) types.Vec3      { return s.verts[id] }
func (s *foldShape) FaceNormal(tri int32) types.Vec3 { return s.norms[tri] }
func (s *foldShape) MaterialID() int                 { return 0 }

func TestIsSilhouetteBoundaryAlwaysTrue(t *testing.T) {
	edge := scene.Edge{ShapeID: 0, V0: 0, V1: 1, F0: 0, F1: -1}
	if !IsSilhouette(nil, types.XYZ(0, 0, 0), edge) {
		t.Fatalf("boundary edge must always be a silhouette")
	}
}

func TestIsSilhouetteFlatFacesNeverSilhouette(t *testing.T) {
	shape := &foldShape{
		verts: [4]types.Vec3{
			types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0), types.XYZ(0, -1, 0),
		},
		norms: [2]types.Vec3{types.XYZ(0, 0, 1), types.XYZ(0, 0, 1)},
	}
	edge := scene.Edge{ShapeID: 0, V0: 0, V1: 1, F0: 0, F1: 1}
	shapes := []scene.Shape{shape}
	q := types.XYZ(0.5, 0.5, 5)
	if IsSilhouette(shapes, q, edge) {
		t.Fatalf("coplanar faces should never be reported as a silhouette")
	}
}

func TestIsSilhouetteFoldedFaces(t *testing.T) {
	shape := &foldShape{
		verts: [4]types.Vec3{
			types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0), types.XYZ(0, -1, 0),
		},
		norms: [2]types.Vec3{types.XYZ(0, 1, 0), types.XYZ(0, -1, 0)},
	}
	edge := scene.Edge{ShapeID: 0, V0: 0, V1: 1, F0: 0, F1: 1}
	shapes := []scene.Shape{shape}
	// q must be off the y=0 plane: there both normals are perpendicular to
	// q - v0 and the sign product is exactly zero (not a silhouette).
	q := types.XYZ(0.5, 0.5, 5)
	if !IsSilhouette(shapes, q, edge) {
		t.Fatalf("opposite-facing normals straddling the query point should be a silhouette")
	}
}

func TestExteriorDihedralBoundaryIsPi(t *testing.T) {
	edge := scene.Edge{ShapeID: 0, V0: 0, V1: 1, F0: 0, F1: -1}
	got := ExteriorDihedral(nil, edge)
	if math.Abs(float64(got-math.Pi)) > 1e-5 {
		t.Fatalf("boundary edge exterior dihedral = %f, want pi", got)
	}
}

func TestExteriorDihedralFlatFacesIsZero(t *testing.T) {
	shape := &foldShape{
		norms: [2]types.Vec3{types.XYZ(0, 0, 1), types.XYZ(0, 0, 1)},
	}
	edge := scene.Edge{ShapeID: 0, V0: 0, V1: 1, F0: 0, F1: 1}
	got := ExteriorDihedral([]scene.Shape{shape}, edge)
	if math.Abs(float64(got)) > 1e-5 {
		t.Fatalf("coplanar faces exterior dihedral = %f, want 0", got)
	}
}
