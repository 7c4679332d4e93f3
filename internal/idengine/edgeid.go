// Package idengine implements the two IDEngine variants for
// insertion-deletion streams: vertex-sample (an L0-sampler battery per
// sampled vertex) and edge-id (an L0-sampler battery over an encoded edge
// universe).
package idengine

import "github.com/rawblock/graphprobe/pkg/models"

// EncodeEdge maps an unordered pair {u,v}, u<v, in [0,n) to a unique
// integer id in [0, n(n-1)/2) via the triangular formula from SPEC_FULL.md
// §4.6 / spec.md §4.6.
func EncodeEdge(n, u, v int64) int64 {
	if u > v {
		u, v = v, u
	}
	total := n * (n - 1) / 2
	return total - (n-u)*(n-u-1)/2 + (v - u - 1)
}

// DecodeEdge is EncodeEdge's inverse: given n and an id in [0,n(n-1)/2),
// recovers the unordered pair {u,v}, u<v.
func DecodeEdge(n, id int64) (u, v int64) {
	total := n * (n - 1) / 2
	// Find u as the largest value such that EncodeEdge(n,u,u+1) <= id.
	for u = 0; u < n-1; u++ {
		rowStart := total - (n-u)*(n-u-1)/2
		rowEnd := rowStart + (n - u - 1)
		if id >= rowStart && id < rowEnd {
			v = u + 1 + (id - rowStart)
			return u, v
		}
	}
	return -1, -1
}

// edgeUpdateID is a convenience wrapper turning a models.EdgeUpdate into its
// encoded id, signed by the update's Sign.
func edgeUpdateID(n int64, e models.EdgeUpdate) (id int64, delta int64) {
	return EncodeEdge(n, int64(e.U), int64(e.V)), int64(e.Sign)
}
