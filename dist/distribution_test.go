package dist

import "testing"

func TestBuildPmfSumsToOne(t *testing.T) {
	weights := []float32{1, 2, 3, 4}
	d := Build(weights)

	var sum float32
	for _, p := range d.Pmf {
		sum += p
	}
	const eps = 1e-5
	if sum < 1-eps || sum > 1+eps {
		t.Fatalf("pmf sums to %f, want 1", sum)
	}
	if d.Cdf[0] != 0 {
		t.Fatalf("cdf[0] = %f, want 0 (exclusive prefix sum)", d.Cdf[0])
	}
}

func TestBuildAllZeroWeights(t *testing.T) {
	d := Build([]float32{0, 0, 0})
	for i, p := range d.Pmf {
		if p != 0 {
			t.Fatalf("pmf[%d] = %f, want 0 for all-zero input", i, p)
		}
	}
	if d.Sample(0.5) != len(d.Pmf)-1 {
		// Sample on an all-zero distribution returns whatever clamp produces:
		// every CDF entry is 0, so the upper bound of 0.5 is past the end and
		// is clamped to N-1. It must not panic or pick an out-of-range index.
		t.Fatalf("sample on zero distribution returned index %d, want clamped %d", d.Sample(0.5), len(d.Pmf)-1)
	}
}

func TestSampleCoversFullRange(t *testing.T) {
	d := Build([]float32{1, 1, 1, 1})
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		u := float32(i) / 1000
		idx := d.Sample(u)
		if idx < 0 || idx >= len(d.Pmf) {
			t.Fatalf("sample(%f) returned out-of-range index %d", u, idx)
		}
		seen[idx] = true
	}
	if len(seen) != 4 {
		t.Fatalf("expected all 4 edges to be reachable, got %d", len(seen))
	}
}

func TestSampleEmptyDistribution(t *testing.T) {
	d := Build(nil)
	if got := d.Sample(0.5); got != -1 {
		t.Fatalf("sample on empty distribution = %d, want -1", got)
	}
}
