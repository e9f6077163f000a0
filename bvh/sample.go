package bvh

import (
	"github.com/gard-n/redner/ltc"
	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
)

// SampleNode3 recursively descends a Node3 subtree, picking a child at each
// internal node with probability proportional to its LTC importance, until
// it reaches a leaf. It returns the leaf's EdgeID and the probability mass
// of having reached it (the product of the per-level selection
// probabilities), or (-1, 0) as soon as both children of an internal node
// on the path have zero importance.
// u is consumed and rescaled into [0,1) at each branch.
func SampleNode3(node *Node3, p scene.SurfacePoint, mInv types.Mat3, table ltc.Table, u float32) (edgeID int, pmf float32) {
	if node == nil {
		return -1, 0
	}
	if node.Leaf() {
		return node.EdgeID, 1
	}
	imp0 := ImportanceNode3(node.Children[0], p, mInv, table)
	imp1 := ImportanceNode3(node.Children[1], p, mInv, table)
	total := imp0 + imp1
	if total <= 0 {
		return -1, 0
	}
	prob0 := imp0 / total
	if u < prob0 {
		u = u / prob0
		id, childPmf := SampleNode3(node.Children[0], p, mInv, table, u)
		return id, childPmf * prob0
	}
	u = (u - prob0) / (1 - prob0)
	id, childPmf := SampleNode3(node.Children[1], p, mInv, table, u)
	return id, childPmf * (1 - prob0)
}

// SampleNode6 is the Node6 analogue of SampleNode3, additionally threading
// the camera origin through the Olson-Zhang directional test at every node.
func SampleNode6(node *Node6, p scene.SurfacePoint, mInv types.Mat3, camOrg types.Vec3, table ltc.Table, u float32) (edgeID int, pmf float32) {
	if node == nil {
		return -1, 0
	}
	if node.Leaf() {
		return node.EdgeID, 1
	}
	imp0 := ImportanceNode6(node.Children[0], p, mInv, camOrg, table)
	imp1 := ImportanceNode6(node.Children[1], p, mInv, camOrg, table)
	total := imp0 + imp1
	if total <= 0 {
		return -1, 0
	}
	prob0 := imp0 / total
	if u < prob0 {
		u = u / prob0
		id, childPmf := SampleNode6(node.Children[0], p, mInv, camOrg, table, u)
		return id, childPmf * prob0
	}
	u = (u - prob0) / (1 - prob0)
	id, childPmf := SampleNode6(node.Children[1], p, mInv, camOrg, table, u)
	return id, childPmf * (1 - prob0)
}

// SampleTree picks one of the two root subtrees (silhouette-from-one-side
// vs ambiguous) with probability proportional to its root importance, then
// descends it via SampleNode3/SampleNode6. It returns the sampled edge ID
// and its overall selection probability, or (-1, 0) if the tree holds no
// edge with nonzero importance from p.
func SampleTree(roots EdgeTreeRoots, p scene.SurfacePoint, mInv types.Mat3, camOrg types.Vec3, table ltc.Table, u float32) (edgeID int, pmf float32) {
	var impCS, impNCS float32
	if roots.CSRoot != nil {
		impCS = ImportanceNode3(roots.CSRoot, p, mInv, table)
	}
	if roots.NCSRoot != nil {
		impNCS = ImportanceNode6(roots.NCSRoot, p, mInv, camOrg, table)
	}
	total := impCS + impNCS
	if total <= 0 {
		return -1, 0
	}
	probCS := impCS / total
	if roots.CSRoot != nil && u < probCS {
		u = u / probCS
		id, childPmf := SampleNode3(roots.CSRoot, p, mInv, table, u)
		return id, childPmf * probCS
	}
	if roots.NCSRoot == nil {
		return -1, 0
	}
	if probCS > 0 {
		u = (u - probCS) / (1 - probCS)
	}
	id, childPmf := SampleNode6(roots.NCSRoot, p, mInv, camOrg, table, u)
	return id, childPmf * (1 - probCS)
}
