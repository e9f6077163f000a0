package bvh

// Node3 is a BVH node carrying only spatial bounds — used for the
// subtree of edges guaranteed to be a silhouette from only one side.
// A node is a leaf iff EdgeID >= 0 and both children are nil; otherwise
// both children are non-nil and EdgeID is -1.
type Node3 struct {
	Bounds               AABB3
	WeightedTotalLength  float32
	Children             [2]*Node3
	EdgeID               int
}

// Leaf reports whether n is a leaf node.
func (n *Node3) Leaf() bool {
	return n.Children[0] == nil && n.Children[1] == nil
}

// Node6 is a BVH node carrying both spatial and directional bounds — used
// for edges that may be a silhouette from either side. The
// directional bounds cover the set of midpoint-to-camera directions for
// all edges in the subtree.
type Node6 struct {
	SpatialBounds       AABB3
	DirectionalBounds   AABB3
	WeightedTotalLength float32
	Children            [2]*Node6
	EdgeID              int
}

// Leaf reports whether n is a leaf node.
func (n *Node6) Leaf() bool {
	return n.Children[0] == nil && n.Children[1] == nil
}

// EdgeTreeRoots holds the (optional) roots of the two subtrees: the
// silhouette-from-one-side edges (Node3) and the ambiguous edges that may be
// a silhouette from either side (Node6). At least one must be non-nil if
// there are any edges at all.
type EdgeTreeRoots struct {
	CSRoot  *Node3
	NCSRoot *Node6
}
