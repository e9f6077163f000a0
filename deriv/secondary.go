package deriv

import (
	"github.com/gard-n/redner/sampler"
	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
)

// IntersectJacobian returns the derivative of the ray-plane intersection
// point x = p + t*dir with respect to the sampled edge direction edgeDir,
// for a hit on a plane through x with normal hitNormal:
//
//	t * (edgeDir - dir * (edgeDir.n) / (dir.n))
//
// where t = dist(p, x). Returns the zero vector if the ray grazes the
// plane (dir.n ~ 0).
func IntersectJacobian(shadingPoint, hitPoint, hitNormal, rayDir, edgeDir types.Vec3) types.Vec3 {
	n := hitNormal.Normalize()
	dir := rayDir.Normalize()
	denom := dir.Dot(n)
	if denom < 0 {
		denom = -denom
	}
	if denom < 1e-6 {
		return types.Vec3{}
	}
	t := hitPoint.Sub(shadingPoint).Len()
	proj := dir.Mul(edgeDir.Dot(n) / dir.Dot(n))
	return edgeDir.Sub(proj).Mul(t)
}

// RaySideResult carries what the outer pipeline found for one side (upper
// or lower) of a straddling secondary-edge ray pair.
type RaySideResult struct {
	Intersection scene.Intersection
	Point        scene.SurfacePoint
}

// UpdateSecondaryEdgeWeights applies the geometry term and the line/Dirac
// Jacobian ratio to a surface-hitting secondary ray, or the environment-map
// fallback when it escapes the scene. Contributions whose ray escapes with
// no environment map present are zeroed, matching the zeroed-record
// convention.
func UpdateSecondaryEdgeWeights(
	shapes []scene.Shape,
	shadingPoints []scene.SurfacePoint,
	records []sampler.SecondaryEdgeRecord,
	upperRays, lowerRays []scene.Ray,
	upperHit, lowerHit []RaySideResult,
	envmap scene.Envmap,
	upper, lower []sampler.Contribution,
) {
	for i, rec := range records {
		if !rec.Valid() {
			continue
		}
		p := shadingPoints[i].Position
		shape := shapes[rec.Edge.ShapeID]
		v0 := shape.Vertex(rec.Edge.V0)
		v1 := shape.Vertex(rec.Edge.V1)
		applyGeometryTerm(p, v0, v1, rec.EdgeDir, upperRays[i], upperHit[i], envmap, &upper[i])
		applyGeometryTerm(p, v0, v1, rec.EdgeDir, lowerRays[i], lowerHit[i], envmap, &lower[i])
	}
}

func applyGeometryTerm(p, v0, v1, edgeDir types.Vec3, ray scene.Ray, hit RaySideResult, envmap scene.Envmap, c *sampler.Contribution) {
	if !hit.Intersection.Valid() {
		if !envmap.Present {
			zeroContribution(c)
		}
		return
	}
	jacobian := edgeWeightJacobian(p, v0, v1, edgeDir, hit.Point.Position, hit.Point.GeomNormal, ray.Dir)
	if jacobian <= 0 {
		zeroContribution(c)
		return
	}
	c.Throughput = c.Throughput.Mul(jacobian)
	for i := range c.ChannelMultipliers {
		c.ChannelMultipliers[i] *= jacobian
	}
}

// edgeWeightJacobian combines the solid-angle-to-area geometry term with
// the line/Dirac Jacobian ratio of the edge-sampling change of variables:
//
//	geometry_term = |hitNormal.rayDir| / dist(p,hitPoint)^2
//	line_jacobian = |IntersectJacobian(...)| / |cross(hitNormal, halfPlaneNormal)|
//	dirac_jacobian = |cross(v0-p, v1-p)|
//
// and returns geometry_term * (line_jacobian / dirac_jacobian), or 0 if
// the ray grazes the hit plane or the edge is degenerate as seen from p.
func edgeWeightJacobian(p, v0, v1, edgeDir, hitPoint, hitNormal, rayDir types.Vec3) float32 {
	d := hitPoint.Sub(p)
	distSq := d.LenSq()
	if distSq < 1e-12 {
		return 0
	}
	n := hitNormal.Normalize()
	dir := rayDir.Normalize()
	cosTheta := n.Dot(dir)
	if cosTheta < 0 {
		cosTheta = -cosTheta
	}
	geometryTerm := cosTheta / distSq

	ij := IntersectJacobian(p, hitPoint, hitNormal, rayDir, edgeDir)
	ijLen := ij.Len()
	if ijLen == 0 {
		return 0
	}

	halfPlaneCross := v0.Sub(p).Cross(v1.Sub(p))
	diracJacobian := halfPlaneCross.Len()
	if diracJacobian < 1e-12 {
		return 0
	}
	halfPlaneNormal := halfPlaneCross.Mul(1 / diracJacobian)

	denomCross := n.Cross(halfPlaneNormal).Len()
	if denomCross < 1e-12 {
		return 0
	}
	lineJacobian := ijLen / denomCross

	return geometryTerm * (lineJacobian / diracJacobian)
}

func zeroContribution(c *sampler.Contribution) {
	c.Throughput = types.Vec3{}
	for i := range c.ChannelMultipliers {
		c.ChannelMultipliers[i] = 0
	}
}

// AccumulateSecondaryEdgeDerivatives applies the cross-product gradient of
// Eq. 16 for one ray's surface hit x of a sampled edge (v0, v1) as seen
// from shading point p, scaled by the reported scalar contribution c:
//
//	d0 = v0 - p, d1 = v1 - p
//	dP  = (d1 x d0) + (x-p) x d1 + d0 x (x-p)
//	dV0 = d1 x (x-p)
//	dV1 = (x-p) x d0
func AccumulateSecondaryEdgeDerivatives(shapes []scene.Shape, edge scene.Edge, p, x types.Vec3, c float32) (dP, dV0, dV1 types.Vec3) {
	shape := shapes[edge.ShapeID]
	v0 := shape.Vertex(edge.V0)
	v1 := shape.Vertex(edge.V1)

	d0 := v0.Sub(p)
	d1 := v1.Sub(p)
	xp := x.Sub(p)

	dP = d1.Cross(d0).Add(xp.Cross(d1)).Add(d0.Cross(xp)).Mul(c)
	dV0 = d1.Cross(xp).Mul(c)
	dV1 = xp.Cross(d0).Mul(c)
	return dP, dV0, dV1
}
