package bvh

import (
	"github.com/gard-n/redner/ltc"
	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
)

const minDistSq = 1e-6

// ImportanceNode3 computes the LTC importance of a Node3 subtree as seen
// from shading point p.
func ImportanceNode3(node *Node3, p scene.SurfacePoint, mInv types.Mat3, table ltc.Table) float32 {
	if isBoundBelowSurface(node.Bounds, p.Position, p.ShadingFrame.Z) {
		return 0
	}
	bSphere := node.Bounds.BoundingSphere()
	brdfTerm := float32(piConst)
	if !bSphere.Inside(p.Position) {
		brdfTerm = ltc.SphereIntegral(p, mInv, bSphere.Center, bSphere.Radius, table)
	}
	distSq := bSphere.Center.DistanceSq(p.Position)
	if distSq < minDistSq {
		distSq = minDistSq
	}
	return brdfTerm * node.WeightedTotalLength / distSq
}

// ImportanceNode6 computes the LTC importance of a Node6 subtree as seen
// from shading point p, given the camera origin used by the Olson-Zhang
// silhouette cone test.
func ImportanceNode6(node *Node6, p scene.SurfacePoint, mInv types.Mat3, camOrg types.Vec3, table ltc.Table) float32 {
	if isBoundBelowSurface(node.SpatialBounds, p.Position, p.ShadingFrame.Z) {
		return 0
	}
	cone := Sphere{
		Center: p.Position.Add(camOrg).Mul(0.5),
		Radius: 0.5 * p.Position.Distance(camOrg),
	}
	if !cone.IntersectsAABB(node.DirectionalBounds) {
		return 0
	}
	bSphere := node.SpatialBounds.BoundingSphere()
	brdfTerm := float32(piConst)
	if !bSphere.Inside(p.Position) {
		brdfTerm = ltc.SphereIntegral(p, mInv, bSphere.Center, bSphere.Radius, table)
	}
	distSq := bSphere.Center.DistanceSq(p.Position)
	if distSq < minDistSq {
		distSq = minDistSq
	}
	return brdfTerm * node.WeightedTotalLength / distSq
}

const piConst = 3.14159265358979323846
