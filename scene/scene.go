// Package scene declares the data types and external collaborator
// interfaces the edge-sampling engine is built against: meshes, cameras,
// materials, intersections and the thin per-pixel channel bookkeeping used
// to route per-channel image gradients. None of these are implemented here
// — they are supplied by the outer rendering pipeline — except for the
// plain data carriers (Edge, Ray, RayDifferential, Frame) that the engine
// itself produces and consumes.
package scene

import "github.com/gard-n/redner/types"

// Edge is a deduplicated mesh edge. V0 <= V1 always holds within a shape.
// F1 is -1 for boundary edges (only one incident triangle).
type Edge struct {
	ShapeID int
	V0, V1  int32
	F0, F1  int32
}

// Boundary reports whether the edge has only one incident triangle.
func (e Edge) Boundary() bool {
	return e.F1 < 0
}

// Valid reports whether this is a real (non-placeholder) edge record.
func (e Edge) Valid() bool {
	return e.ShapeID >= 0
}

// InvalidEdge is the canonical placeholder used by samplers to signal a
// failed or rejected sample.
var InvalidEdge = Edge{ShapeID: -1, V0: -1, V1: -1, F0: -1, F1: -1}

// Ray is a traced ray with an optional minimum-t offset (used to push
// secondary rays off the surface they originate from).
type Ray struct {
	Org, Dir types.Vec3
	TMin     float32
}

// RayDifferential carries the screen-space derivative of a ray's origin and
// direction, used by the outer pipeline for texture filtering and by the
// secondary sampler to propagate BSDF ray differentials.
type RayDifferential struct {
	OrgDx, OrgDy types.Vec3
	DirDx, DirDy types.Vec3
}

// Frame is a right-handed orthonormal shading frame.
type Frame struct {
	X, Y, Z types.Vec3
}

// ToLocal expresses a world-space vector in the frame's local basis.
func (f Frame) ToLocal(v types.Vec3) types.Vec3 {
	return types.Vec3{f.X.Dot(v), f.Y.Dot(v), f.Z.Dot(v)}
}

// ToWorld expresses a local-space vector in world space.
func (f Frame) ToWorld(v types.Vec3) types.Vec3 {
	return f.X.Mul(v[0]).Add(f.Y.Mul(v[1])).Add(f.Z.Mul(v[2]))
}

// Matrix returns the world-to-local transform of this frame: its rows are
// the frame's basis vectors, so Matrix().MulVec3(v) == ToLocal(v).
func (f Frame) Matrix() types.Mat3 {
	return types.Mat3FromRows(f.X, f.Y, f.Z)
}

// Shape is the mesh interface consumed by the engine: triangle topology,
// vertex positions and the material bound to the shape. Mesh I/O itself is
// out of scope; this is purely the query surface the edge table and
// samplers need.
type Shape interface {
	// NumTriangles returns the number of triangles in the shape.
	NumTriangles() int
	// TriangleIndices returns the three vertex indices of triangle triID.
	TriangleIndices(triID int) [3]int32
	// Vertex returns the world-space position of vertex id.
	Vertex(id int32) types.Vec3
	// FaceNormal returns the (consistently oriented, not necessarily
	// normalized) geometric normal of triangle triID.
	FaceNormal(triID int32) types.Vec3
	// MaterialID returns the index into the scene's material list.
	MaterialID() int
}

// CameraDerivative accumulates the backpropagated gradient with respect to
// a camera's extrinsic parameters. The concrete camera parameterization
// (position, look-at, up, fov, ...) lives outside this engine; this struct
// is the minimal accumulator the camera-projection Jacobian needs to
// report into.
type CameraDerivative struct {
	Position types.Vec3
	Look     types.Vec3
	Up       types.Vec3
}

// Add accumulates another camera derivative into this one.
func (d *CameraDerivative) Add(other CameraDerivative) {
	d.Position = d.Position.Add(other.Position)
	d.Look = d.Look.Add(other.Look)
	d.Up = d.Up.Add(other.Up)
}

// Camera is the projection/ray-generation interface consumed by the engine.
// Camera-projection math is an external collaborator; this interface
// is the pure-function surface the primary-edge components call.
type Camera interface {
	// Fisheye reports whether this camera uses a non-linear (fisheye)
	// projection. Pinhole cameras return false.
	Fisheye() bool
	Width() int
	Height() int
	// Origin returns the world-space position of the camera.
	Origin() types.Vec3
	// Project projects two world-space points to screen space ([0,1]^2).
	// ok is false if either point is behind the camera or projection is
	// otherwise undefined.
	Project(v0, v1 types.Vec3) (v0ss, v1ss types.Vec2, ok bool)
	// InScreen reports whether a screen-space point lies within the image.
	InScreen(p types.Vec2) bool
	// SamplePrimary generates the camera ray through a screen-space point.
	SamplePrimary(screenPos types.Vec2) Ray
	// ScreenToCamera unprojects a screen-space point to a camera-space
	// direction.
	ScreenToCamera(p types.Vec2) types.Vec3
	// CameraToScreen projects a camera-space direction back to screen
	// space.
	CameraToScreen(dir types.Vec3) types.Vec2
	// WorldToCamera transforms a world-space point into camera space.
	WorldToCamera(v types.Vec3) types.Vec3
	// DScreenToCamera returns the screen-space derivative of
	// ScreenToCamera at p (∂dir/∂x, ∂dir/∂y).
	DScreenToCamera(p types.Vec2) (dDirX, dDirY types.Vec3)
	// DProject back-propagates a screen-space derivative of the
	// projected endpoints into vertex and camera-parameter derivatives.
	DProject(v0, v1 types.Vec3, dV0ss, dV1ss types.Vec2) (dCamera CameraDerivative, dV0, dV1 types.Vec3)
}

// Material is the BSDF interface consumed by the secondary-edge sampler.
// BSDF evaluation and LTC lookup are external collaborators; only the
// named operations the sampler needs are declared here.
type Material interface {
	GetRoughness(sp SurfacePoint) float32
	GetDiffuseReflectance(sp SurfacePoint) types.Vec3
	GetSpecularReflectance(sp SurfacePoint) types.Vec3
	// Bsdf evaluates the material's BSDF at the shading point for the
	// given incoming/outgoing directions and minimum-roughness clamp.
	Bsdf(sp SurfacePoint, wi, wo types.Vec3, minRoughness float32) types.Vec3
}

// Intersection is the (opaque, externally produced) result of a ray-scene
// intersection query.
type Intersection struct {
	ShapeID int
	TriID   int32
}

// Valid reports whether the intersection hit a surface.
func (i Intersection) Valid() bool {
	return i.ShapeID >= 0
}

// InvalidIntersection is the canonical "ray escaped the scene" result.
var InvalidIntersection = Intersection{ShapeID: -1, TriID: -1}

// SurfacePoint carries the local differential geometry at a shading or
// secondary-ray intersection point.
type SurfacePoint struct {
	Position     types.Vec3
	GeomNormal   types.Vec3
	ShadingFrame Frame
	// DnDx, DnDy are the screen-space derivatives of the shading normal,
	// used to propagate specular ray differentials (Igehy 1999, Eq. 14-15).
	DnDx, DnDy types.Vec3
}

// Envmap is a presence marker for an environment light: its actual
// evaluation (image lookup, importance sampling) is out of scope here.
type Envmap struct {
	Present bool
}

// ChannelInfo describes the layout of the per-pixel gradient image that
// drives both samplers: nd channels per pixel, with the 3-channel radiance
// block starting at RadianceDimension.
type ChannelInfo struct {
	NumTotalDimensions int
	RadianceDimension  int
}

// Intersector is the ray-scene intersection collaborator: given a batch of
// rays it returns per-ray intersections and surface points. Ray-scene
// intersection itself is out of scope; this interface documents the
// call shape the outer pipeline is expected to implement between
// sample_*_edges and update_*_edge_weights.
type Intersector interface {
	Intersect(rays []Ray) (intersections []Intersection, points []SurfacePoint)
}

// GradientImage is the per-pixel loss-gradient image the samplers read
// from. Image storage
// and accumulation are out of scope; this is the pure read
// surface the edge samplers need at a continuous screen-space position.
type GradientImage interface {
	Channels() ChannelInfo
	// RadianceGradient returns the 3-channel radiance-block gradient at
	// screen-space position p ([0,1]^2), typically bilinearly filtered.
	RadianceGradient(p types.Vec2) types.Vec3
	// ChannelMultipliers fills dst (length Channels().NumTotalDimensions)
	// with the per-channel gradient at p.
	ChannelMultipliers(p types.Vec2, dst []float32)
}
