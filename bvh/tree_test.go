package bvh

import (
	"testing"

	"github.com/gard-n/redner/ltc"
	"github.com/gard-n/redner/scene"
	"github.com/gard-n/redner/types"
)

func unitFrame() scene.Frame {
	return scene.Frame{X: types.XYZ(1, 0, 0), Y: types.XYZ(0, 1, 0), Z: types.XYZ(0, 0, 1)}
}

// buildBalancedNode3 builds a two-level Node3 tree with four leaves, spread
// out along x so each subtree has a distinct importance from a centered
// viewer.
func buildBalancedNode3() *Node3 {
	leaf := func(id int, x float32) *Node3 {
		return &Node3{
			Bounds:              AABB3{Min: types.XYZ(x-0.1, -0.1, 4.9), Max: types.XYZ(x+0.1, 0.1, 5.1)},
			WeightedTotalLength: 1,
			EdgeID:              id,
		}
	}
	left := &Node3{Children: [2]*Node3{leaf(0, -2), leaf(1, -1)}, EdgeID: -1, WeightedTotalLength: 2}
	left.Bounds = AABB3{Min: types.XYZ(-2.1, -0.1, 4.9), Max: types.XYZ(-0.9, 0.1, 5.1)}
	right := &Node3{Children: [2]*Node3{leaf(2, 1), leaf(3, 2)}, EdgeID: -1, WeightedTotalLength: 2}
	right.Bounds = AABB3{Min: types.XYZ(0.9, -0.1, 4.9), Max: types.XYZ(2.1, 0.1, 5.1)}
	root := &Node3{Children: [2]*Node3{left, right}, EdgeID: -1, WeightedTotalLength: 4}
	root.Bounds = AABB3{Min: types.XYZ(-2.1, -0.1, 4.9), Max: types.XYZ(2.1, 0.1, 5.1)}
	return root
}

func TestSampleNode3PmfSumsToOne(t *testing.T) {
	root := buildBalancedNode3()
	p := scene.SurfacePoint{Position: types.XYZ(0, 0, 0), ShadingFrame: unitFrame()}
	table := ltc.AnalyticTable{}

	const n = 2000
	sums := map[int]float32{}
	counts := map[int]int{}
	for i := 0; i < n; i++ {
		u := (float32(i) + 0.5) / n
		id, pmf := SampleNode3(root, p, types.Ident3(), table, u)
		if id < 0 {
			continue
		}
		sums[id] = pmf
		counts[id]++
	}

	if len(sums) != 4 {
		t.Fatalf("expected to reach all 4 leaves, reached %d: %v", len(sums), sums)
	}
	for id, pmf := range sums {
		want := float32(counts[id]) / n
		if diff := absf32(pmf - want); diff > 0.05 {
			t.Fatalf("leaf %d: reported pmf %f, empirical frequency %f (diff %f)", id, pmf, want, diff)
		}
	}

	var total float32
	for _, pmf := range sums {
		total += pmf
	}
	if diff := absf32(total - 1); diff > 0.05 {
		t.Fatalf("leaf pmfs should sum to ~1, got %f", total)
	}
}

func TestSampleNode3LeafReturnsPmfOne(t *testing.T) {
	leaf := &Node3{EdgeID: 7}
	p := scene.SurfacePoint{Position: types.XYZ(0, 0, 0), ShadingFrame: unitFrame()}
	id, pmf := SampleNode3(leaf, p, types.Ident3(), ltc.AnalyticTable{}, 0.5)
	if id != 7 || pmf != 1 {
		t.Fatalf("SampleNode3 on a bare leaf = (%d, %f), want (7, 1)", id, pmf)
	}
}

func TestSampleTreeNilRoots(t *testing.T) {
	p := scene.SurfacePoint{Position: types.XYZ(0, 0, 0), ShadingFrame: unitFrame()}
	id, pmf := SampleTree(EdgeTreeRoots{}, p, types.Ident3(), types.XYZ(0, 0, 5), ltc.AnalyticTable{}, 0.5)
	if id != -1 || pmf != 0 {
		t.Fatalf("SampleTree with no roots = (%d, %f), want (-1, 0)", id, pmf)
	}
}

func absf32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
