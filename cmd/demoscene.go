package cmd

import (
	"math"

	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
)

// tetrahedronShape is a procedurally generated closed tetrahedron: mesh I/O
// is out of scope, so the demo CLI builds a shape directly
// instead of parsing a file format.
type tetrahedronShape struct {
	vertices []types.Vec3
	indices  [][3]int32
	material int
}

func newTetrahedron() *tetrahedronShape {
	v := []types.Vec3{
		types.XYZ(1, 1, 1),
		types.XYZ(1, -1, -1),
		types.XYZ(-1, 1, -1),
		types.XYZ(-1, -1, 1),
	}
	idx := [][3]int32{
		{0, 1, 2},
		{0, 3, 1},
		{0, 2, 3},
		{1, 3, 2},
	}
	return &tetrahedronShape{vertices: v, indices: idx}
}

func (s *tetrahedronShape) NumTriangles() int { return len(s.indices) }

func (s *tetrahedronShape) TriangleIndices(triID int) [3]int32 {
	return s.indices[triID]
}

func (s *tetrahedronShape) Vertex(id int32) types.Vec3 {
	return s.vertices[id]
}

func (s *tetrahedronShape) FaceNormal(triID int32) types.Vec3 {
	ind := s.indices[triID]
	a := s.vertices[ind[0]]
	b := s.vertices[ind[1]]
	c := s.vertices[ind[2]]
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

func (s *tetrahedronShape) MaterialID() int { return s.material }

// demoMaterial is a plain Lambertian-plus-constant-specular material,
// sufficient to exercise the secondary-edge sampler's BSDF-component
// split; BSDF evaluation itself is an external collaborator.
type demoMaterial struct {
	diffuse, specular types.Vec3
	roughness         float32
}

func (m *demoMaterial) GetRoughness(scene.SurfacePoint) float32 { return m.roughness }

func (m *demoMaterial) GetDiffuseReflectance(scene.SurfacePoint) types.Vec3 { return m.diffuse }

func (m *demoMaterial) GetSpecularReflectance(scene.SurfacePoint) types.Vec3 { return m.specular }

func (m *demoMaterial) Bsdf(sp scene.SurfacePoint, wi, wo types.Vec3, minRoughness float32) types.Vec3 {
	cosTheta := sp.ShadingFrame.Z.Dot(wi)
	if cosTheta < 0 {
		cosTheta = 0
	}
	return m.diffuse.Mul(cosTheta / math.Pi)
}

// pinholeCamera is a minimal look-at pinhole camera used only to exercise
// the sampler against real projection math in the demo CLI. Camera
// projection is an external collaborator; this is not meant to be a
// precision differentiable camera, and its camera-parameter Jacobian
// (DProject) only backpropagates into the eye position.
type pinholeCamera struct {
	origin, forward, right, up types.Vec3
	tanHalfFov                 float32
	aspect                     float32
	width, height              int
}

func newPinholeCamera(origin, lookAt, upHint types.Vec3, fovY float32, width, height int) *pinholeCamera {
	forward := lookAt.Sub(origin).Normalize()
	right := forward.Cross(upHint).Normalize()
	up := right.Cross(forward)
	return &pinholeCamera{
		origin:     origin,
		forward:    forward,
		right:      right,
		up:         up,
		tanHalfFov: float32(math.Tan(float64(fovY) / 2)),
		aspect:     float32(width) / float32(height),
		width:      width,
		height:     height,
	}
}

func (c *pinholeCamera) Fisheye() bool { return false }
func (c *pinholeCamera) Width() int    { return c.width }
func (c *pinholeCamera) Height() int   { return c.height }
func (c *pinholeCamera) Origin() types.Vec3 { return c.origin }

func (c *pinholeCamera) WorldToCamera(v types.Vec3) types.Vec3 {
	d := v.Sub(c.origin)
	return types.XYZ(d.Dot(c.right), d.Dot(c.up), d.Dot(c.forward))
}

func (c *pinholeCamera) CameraToScreen(dir types.Vec3) types.Vec2 {
	if dir[2] <= 1e-6 {
		return types.Vec2{}
	}
	ndcX := dir[0] / (dir[2] * c.tanHalfFov * c.aspect)
	ndcY := dir[1] / (dir[2] * c.tanHalfFov)
	return types.XY((ndcX+1)*0.5, (1-ndcY)*0.5)
}

func (c *pinholeCamera) ScreenToCamera(p types.Vec2) types.Vec3 {
	ndcX := p[0]*2 - 1
	ndcY := 1 - p[1]*2
	dir := types.XYZ(ndcX*c.tanHalfFov*c.aspect, ndcY*c.tanHalfFov, 1)
	return dir.Normalize()
}

func (c *pinholeCamera) projectPoint(v types.Vec3) (types.Vec2, bool) {
	local := c.WorldToCamera(v)
	if local[2] <= 1e-6 {
		return types.Vec2{}, false
	}
	return c.CameraToScreen(local), true
}

func (c *pinholeCamera) Project(v0, v1 types.Vec3) (types.Vec2, types.Vec2, bool) {
	v0ss, ok0 := c.projectPoint(v0)
	v1ss, ok1 := c.projectPoint(v1)
	return v0ss, v1ss, ok0 && ok1
}

func (c *pinholeCamera) InScreen(p types.Vec2) bool {
	return p[0] >= 0 && p[0] <= 1 && p[1] >= 0 && p[1] <= 1
}

func (c *pinholeCamera) SamplePrimary(screenPos types.Vec2) scene.Ray {
	localDir := c.ScreenToCamera(screenPos)
	worldDir := c.right.Mul(localDir[0]).Add(c.up.Mul(localDir[1])).Add(c.forward.Mul(localDir[2])).Normalize()
	return scene.Ray{Org: c.origin, Dir: worldDir, TMin: 1e-4}
}

const cameraFDDelta = 1e-4

func (c *pinholeCamera) DScreenToCamera(p types.Vec2) (types.Vec3, types.Vec3) {
	d0 := c.ScreenToCamera(p)
	dx := c.ScreenToCamera(p.Add(types.XY(cameraFDDelta, 0)))
	dy := c.ScreenToCamera(p.Add(types.XY(0, cameraFDDelta)))
	return dx.Sub(d0).Mul(1 / cameraFDDelta), dy.Sub(d0).Mul(1 / cameraFDDelta)
}

func (c *pinholeCamera) DProject(v0, v1 types.Vec3, dV0ss, dV1ss types.Vec2) (scene.CameraDerivative, types.Vec3, types.Vec3) {
	dV0 := numericVertexGradient(c, v0, dV0ss)
	dV1 := numericVertexGradient(c, v1, dV1ss)
	dPos := numericOriginGradient(c, v0, v1, dV0ss, dV1ss)
	return scene.CameraDerivative{Position: dPos}, dV0, dV1
}

// numericVertexGradient backpropagates a screen-space derivative through
// Project by finite-difference Jacobian-transpose product. Camera
// projection math is an external collaborator; this numeric adjoint
// is sufficient for a demo, not a claim of analytic precision.
func numericVertexGradient(c *pinholeCamera, v types.Vec3, dss types.Vec2) types.Vec3 {
	base, ok := c.projectPoint(v)
	if !ok {
		return types.Vec3{}
	}
	var grad types.Vec3
	for axis := 0; axis < 3; axis++ {
		delta := types.Vec3{}
		delta[axis] = cameraFDDelta
		perturbed, ok := c.projectPoint(v.Add(delta))
		if !ok {
			continue
		}
		d := perturbed.Sub(base).Mul(1 / cameraFDDelta)
		grad[axis] = d.Dot(dss)
	}
	return grad
}

func numericOriginGradient(c *pinholeCamera, v0, v1 types.Vec3, dV0ss, dV1ss types.Vec2) types.Vec3 {
	var grad types.Vec3
	for axis := 0; axis < 3; axis++ {
		delta := types.Vec3{}
		delta[axis] = cameraFDDelta
		perturbed := &pinholeCamera{
			origin: c.origin.Add(delta), forward: c.forward, right: c.right, up: c.up,
			tanHalfFov: c.tanHalfFov, aspect: c.aspect, width: c.width, height: c.height,
		}
		p0, ok0 := perturbed.projectPoint(v0)
		p1, ok1 := perturbed.projectPoint(v1)
		base0, okb0 := c.projectPoint(v0)
		base1, okb1 := c.projectPoint(v1)
		if !(ok0 && ok1 && okb0 && okb1) {
			continue
		}
		d0 := p0.Sub(base0).Mul(1 / cameraFDDelta)
		d1 := p1.Sub(base1).Mul(1 / cameraFDDelta)
		grad[axis] = d0.Dot(dV0ss) + d1.Dot(dV1ss)
	}
	return grad
}
