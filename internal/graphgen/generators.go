// Package graphgen implements the synthetic graph generators (star,
// complete, random G(n,p)) spec.md §1 lists as external collaborators: they
// emit streamio-formatted edges, nothing more. The iterate-and-emit shape is
// adapted from the teacher's internal/scanner/block_scanner.go (which walks
// a block range, analyzing and emitting as it goes) generalized from
// "iterate confirmed blocks" to "iterate the generator's edge sequence."
package graphgen

import (
	"math/rand"

	"github.com/rawblock/graphprobe/pkg/models"
)

// EdgeVisitor is called once per generated edge.
type EdgeVisitor func(models.EdgeUpdate)

// Star emits n-1 edges connecting vertex 0 to every other vertex.
func Star(n int, visit EdgeVisitor) {
	for v := 1; v < n; v++ {
		visit(models.EdgeUpdate{U: 0, V: models.VertexId(v), Sign: 1})
	}
}

// Complete emits every edge of K_n.
func Complete(n int, visit EdgeVisitor) {
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			visit(models.EdgeUpdate{U: models.VertexId(u), V: models.VertexId(v), Sign: 1})
		}
	}
}

// Random emits the edges of a G(n,p) Erdos-Renyi graph, drawn from rng.
func Random(n int, p float64, rng *rand.Rand, visit EdgeVisitor) {
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if rng.Float64() < p {
				visit(models.EdgeUpdate{U: models.VertexId(u), V: models.VertexId(v), Sign: 1})
			}
		}
	}
}
