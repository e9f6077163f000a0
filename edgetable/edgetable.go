// Package edgetable builds the deduplicated edge list an EdgeSampler is
// constructed from: a single exported Build function that logs progress
// with elapsed timings.
package edgetable

import (
	"sort"
	"time"

	"github.com/gard-n/redner/log"
	"github.com/gard-n/redner/scene"
)

var logger = log.New("edgetable")

// Build collects, canonicalizes and deduplicates the edges of every shape
// in shapes. Edges are never merged across shapes. If more than two
// triangles share an edge within a shape (a non-manifold mesh), the third
// and later incident triangles are silently dropped, keeping the
// two-triangle invariant rather than corrupting the first merge.
func Build(shapes []scene.Shape) []scene.Edge {
	start := time.Now()
	logger.Noticef("building edge table for %d shapes", len(shapes))

	var edges []scene.Edge
	for shapeID, shape := range shapes {
		n := shape.NumTriangles()
		shapeEdges := make([]scene.Edge, 0, 3*n)
		for tri := 0; tri < n; tri++ {
			ind := shape.TriangleIndices(tri)
			shapeEdges = append(shapeEdges,
				canonical(shapeID, ind[0], ind[1], int32(tri)),
				canonical(shapeID, ind[1], ind[2], int32(tri)),
				canonical(shapeID, ind[2], ind[0], int32(tri)),
			)
		}

		sort.Slice(shapeEdges, func(i, j int) bool {
			return less(shapeEdges[i], shapeEdges[j])
		})

		edges = append(edges, dedup(shapeEdges)...)
	}

	logger.Noticef("built edge table (%d edges) in %d ms", len(edges), time.Since(start).Nanoseconds()/1e6)
	return edges
}

// canonical builds an edge with v0 <= v1 and f1 = -1 (boundary until a
// second incident triangle is merged in).
func canonical(shapeID int, a, b, tri int32) scene.Edge {
	if a > b {
		a, b = b, a
	}
	return scene.Edge{ShapeID: shapeID, V0: a, V1: b, F0: tri, F1: -1}
}

func less(e0, e1 scene.Edge) bool {
	if e0.V0 != e1.V0 {
		return e0.V0 < e1.V0
	}
	return e0.V1 < e1.V1
}

func equal(e0, e1 scene.Edge) bool {
	return e0.V0 == e1.V0 && e0.V1 == e1.V1
}

// merge combines two candidate edges for the same (v0,v1) pair into one
// edge carrying both incident triangle ids.
func merge(e0, e1 scene.Edge) scene.Edge {
	return scene.Edge{ShapeID: e0.ShapeID, V0: e0.V0, V1: e0.V1, F0: e0.F0, F1: e1.F0}
}

// dedup performs a reduce-by-key pass over a sorted edge slice, merging
// consecutive duplicates. A third (or later) occurrence of the same
// (v0,v1) pair is dropped: the mesh is non-manifold and only the first two
// incident triangles are kept.
func dedup(sorted []scene.Edge) []scene.Edge {
	if len(sorted) == 0 {
		return nil
	}
	out := make([]scene.Edge, 0, len(sorted))
	cur := sorted[0]
	seenSecond := false
	for i := 1; i < len(sorted); i++ {
		if equal(cur, sorted[i]) {
			if !seenSecond {
				cur = merge(cur, sorted[i])
				seenSecond = true
			}
			continue
		}
		out = append(out, cur)
		cur = sorted[i]
		seenSecond = false
	}
	out = append(out, cur)
	return out
}
