package deriv

import (
	"testing"

	"github.com/gard-n/redner/sampler"
	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
)

type recordingCamera struct {
	lastV0, lastV1     types.Vec3
	lastDV0, lastDV1   types.Vec2
	returnDV0, returnDV1 types.Vec3
}

func (c *recordingCamera) Fisheye() bool      { return false }
func (c *recordingCamera) Width() int         { return 1 }
func (c *recordingCamera) Height() int        { return 1 }
func (c *recordingCamera) Origin() types.Vec3 { return types.Vec3{} }
func (c *recordingCamera) Project(v0, v1 types.Vec3) (types.Vec2, types.Vec2, bool) {
	return types.XY(0, 0), types.XY(1, 0), true
}
func (c *recordingCamera) InScreen(types.Vec2) bool                { return true }
func (c *recordingCamera) SamplePrimary(types.Vec2) scene.Ray      { return scene.Ray{} }
func (c *recordingCamera) ScreenToCamera(types.Vec2) types.Vec3    { return types.Vec3{} }
func (c *recordingCamera) CameraToScreen(types.Vec3) types.Vec2    { return types.Vec2{} }
func (c *recordingCamera) WorldToCamera(v types.Vec3) types.Vec3   { return v }
func (c *recordingCamera) DScreenToCamera(types.Vec2) (types.Vec3, types.Vec3) {
	return types.Vec3{}, types.Vec3{}
}
func (c *recordingCamera) DProject(v0, v1 types.Vec3, dV0ss, dV1ss types.Vec2) (scene.CameraDerivative, types.Vec3, types.Vec3) {
	c.lastV0, c.lastV1 = v0, v1
	c.lastDV0, c.lastDV1 = dV0ss, dV1ss
	return scene.CameraDerivative{Position: types.XYZ(1, 2, 3)}, c.returnDV0, c.returnDV1
}

type derivTriShape struct {
	verts [2]types.Vec3
}

func (s *derivTriShape) NumTriangles() int            { return 1 }
func (s *derivTriShape) TriangleIndices(int) [3]int32 { return [3]int32{0, 1, 0} }
func (s *derivTriShape) Vertex(id int32) types.Vec3   { return s.verts[id] }
func (s *derivTriShape) FaceNormal(int32) types.Vec3  { return types.XYZ(0, 0, 1) }
func (s *derivTriShape) MaterialID() int              { return 0 }

func TestComputePrimaryEdgeDerivativesAccumulatesPerVertex(t *testing.T) {
	shape := &derivTriShape{verts: [2]types.Vec3{types.XYZ(0, 0, 0), types.XYZ(1, 0, 0)}}
	shapes := []scene.Shape{shape}
	cam := &recordingCamera{returnDV0: types.XYZ(1, 0, 0), returnDV1: types.XYZ(0, 1, 0)}

	records := []sampler.PrimaryEdgeRecord{
		{Edge: scene.Edge{ShapeID: 0, V0: 0, V1: 1}, ScreenPoint: types.XY(0.5, 0.5)},
		sampler.InvalidPrimaryEdgeRecord,
	}
	contribs := []EdgeContribution{
		{Value: 2},
		{Value: 99},
	}
	dVertices := map[int32]*types.Vec3{}
	var dCamera scene.CameraDerivative

	ComputePrimaryEdgeDerivatives(shapes, cam, records, contribs, dVertices, &dCamera)

	if dCamera.Position != types.XYZ(1, 2, 3) {
		t.Fatalf("camera derivative not accumulated: got %v", dCamera.Position)
	}
	if *dVertices[0] != types.XYZ(1, 0, 0) {
		t.Fatalf("vertex 0 derivative = %v, want (1,0,0)", *dVertices[0])
	}
	if *dVertices[1] != types.XYZ(0, 1, 0) {
		t.Fatalf("vertex 1 derivative = %v, want (0,1,0)", *dVertices[1])
	}
	if cam.lastDV0 != types.XY(-1, -1) || cam.lastDV1 != types.XY(1, -1) {
		t.Fatalf("Eq. 8 screen-space derivatives wrong: got dV0ss=%v dV1ss=%v", cam.lastDV0, cam.lastDV1)
	}
}

func TestUpdatePrimaryEdgeWeightsKeepsAdjacentHit(t *testing.T) {
	records := []sampler.PrimaryEdgeRecord{
		{Edge: scene.Edge{ShapeID: 0, V0: 0, V1: 1, F0: 3, F1: 4}},
	}
	upperHit := []scene.Intersection{{ShapeID: 0, TriID: 3}}
	lowerHit := []scene.Intersection{scene.InvalidIntersection}
	upper := []sampler.Contribution{{Throughput: types.XYZ(1, 1, 1), ChannelMultipliers: []float32{1}}}
	lower := []sampler.Contribution{{Throughput: types.XYZ(1, 1, 1), ChannelMultipliers: []float32{1}}}

	UpdatePrimaryEdgeWeights(records, upperHit, lowerHit, upper, lower)

	if upper[0].Throughput == (types.Vec3{}) {
		t.Fatalf("a hit on an adjacent face should not be zeroed")
	}
}

func TestUpdatePrimaryEdgeWeightsZeroesUnrelatedHit(t *testing.T) {
	records := []sampler.PrimaryEdgeRecord{
		{Edge: scene.Edge{ShapeID: 0, V0: 0, V1: 1, F0: 3, F1: 4}},
	}
	upperHit := []scene.Intersection{{ShapeID: 0, TriID: 99}}
	lowerHit := []scene.Intersection{{ShapeID: 1, TriID: 3}}
	upper := []sampler.Contribution{{Throughput: types.XYZ(1, 1, 1), ChannelMultipliers: []float32{1}}}
	lower := []sampler.Contribution{{Throughput: types.XYZ(1, 1, 1), ChannelMultipliers: []float32{1}}}

	UpdatePrimaryEdgeWeights(records, upperHit, lowerHit, upper, lower)

	if upper[0].Throughput != (types.Vec3{}) || lower[0].Throughput != (types.Vec3{}) {
		t.Fatalf("neither side hit an adjacent face; both contributions should be zeroed")
	}
}
