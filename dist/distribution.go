package dist

import "sort"

// Distribution is a piecewise-constant probability distribution over N
// edges: Pmf sums to 1 (or is identically zero) and Cdf is its exclusive
// prefix sum.
type Distribution struct {
	Pmf []float32
	Cdf []float32
}

// Build normalizes a slice of non-negative per-edge weights into a PMF and
// its exclusive-prefix-sum CDF. If the weights sum to (approximately)
// zero, the distribution is left identically zero rather than dividing by
// zero, so that Sample always fails cleanly.
//
// The reduction uses Kahan summation for both the total and the prefix
// scan, always in index order, so that results are accurate and
// bit-reproducible across runs.
func Build(weights []float32) Distribution {
	n := len(weights)
	d := Distribution{Pmf: make([]float32, n), Cdf: make([]float32, n)}
	if n == 0 {
		return d
	}

	total := kahanSum(weights)
	if total <= 0 {
		return d
	}

	invTotal := 1.0 / total
	for i, w := range weights {
		d.Pmf[i] = w * invTotal
	}

	var sum, c float32
	for i, p := range d.Pmf {
		d.Cdf[i] = sum
		y := p - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return d
}

// kahanSum computes a compensated sum in index order, used to keep the PMF
// normalization accurate over many edges.
func kahanSum(values []float32) float32 {
	var sum, c float32
	for _, v := range values {
		y := v - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return sum
}

// Sample selects an edge index via CDF inversion: an upper-bound search on
// u, clamped to [0, N-1].
func (d Distribution) Sample(u float32) int {
	n := len(d.Cdf)
	if n == 0 {
		return -1
	}
	idx := sort.Search(n, func(i int) bool {
		return d.Cdf[i] > u
	}) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return idx
}
