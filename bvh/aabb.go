// Package bvh implements the hierarchical secondary-edge sampler:
// traversal and LTC-weighted importance sampling over a pre-built
// spatio-directional bounding hierarchy. Building the hierarchy itself is
// an external collaborator — this package only consumes trees of
// Node3/Node6 handed to it.
package bvh

import "github.com/gard-n/redner/types"

// AABB3 is an axis-aligned bounding box.
type AABB3 struct {
	Min, Max types.Vec3
}

// Corner returns the i-th corner (0-7) of the box.
func (b AABB3) Corner(i int) types.Vec3 {
	var v types.Vec3
	if i&1 != 0 {
		v[0] = b.Max[0]
	} else {
		v[0] = b.Min[0]
	}
	if i&2 != 0 {
		v[1] = b.Max[1]
	} else {
		v[1] = b.Min[1]
	}
	if i&4 != 0 {
		v[2] = b.Max[2]
	} else {
		v[2] = b.Min[2]
	}
	return v
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center types.Vec3
	Radius float32
}

// BoundingSphere returns the sphere circumscribing b (center = box
// midpoint, radius = distance to a corner).
func (b AABB3) BoundingSphere() Sphere {
	center := b.Min.Add(b.Max).Mul(0.5)
	radius := b.Max.Sub(center).Len()
	return Sphere{Center: center, Radius: radius}
}

// Inside reports whether p lies within the sphere.
func (s Sphere) Inside(p types.Vec3) bool {
	return p.DistanceSq(s.Center) <= s.Radius*s.Radius
}

// IntersectsAABB reports whether the sphere intersects box b (used for the
// Olson-Zhang silhouette cone test).
func (s Sphere) IntersectsAABB(b AABB3) bool {
	var distSq float32
	for i := 0; i < 3; i++ {
		v := s.Center[i]
		if v < b.Min[i] {
			d := b.Min[i] - v
			distSq += d * d
		} else if v > b.Max[i] {
			d := v - b.Max[i]
			distSq += d * d
		}
	}
	return distSq <= s.Radius*s.Radius
}

// isBoundBelowSurface reports whether every corner of bounds lies at or
// below the tangent plane through p with normal normal — such a node can
// contribute no silhouette visible from p and is pruned outright.
func isBoundBelowSurface(bounds AABB3, position, normal types.Vec3) bool {
	for i := 0; i < 8; i++ {
		c := bounds.Corner(i)
		if normal.Dot(c.Sub(position)) > 0 {
			return false
		}
	}
	return true
}
