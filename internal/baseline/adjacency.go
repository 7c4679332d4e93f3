// Package baseline implements the brute-force adjacency-map graph used only
// to validate engine results in tests (spec.md §1 lists it as an external
// collaborator). Adapted from katalvlaran/lvlath's core.Graph adjacency
// list: same AddEdge/RemoveEdge/neighbor-iteration shape, narrowed to this
// engine's undirected, unweighted, VertexId-keyed domain.
package baseline

import "github.com/rawblock/graphprobe/pkg/models"

// Graph is an exact in-memory undirected multigraph over VertexId,
// supporting the insertion-deletion model's signed edge counts: an edge is
// "present" while its net insertion count is positive.
type Graph struct {
	adjacency map[models.VertexId]map[models.VertexId]int // net edge multiplicity per neighbor
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{adjacency: make(map[models.VertexId]map[models.VertexId]int)}
}

func (g *Graph) ensure(v models.VertexId) {
	if g.adjacency[v] == nil {
		g.adjacency[v] = make(map[models.VertexId]int)
	}
}

// Apply mirrors AddEdge/RemoveEdge from lvlath's adjacency list, generalized
// to a signed update: positive Sign increments the net multiplicity between
// U and V, negative Sign decrements it. The net graph (spec.md §1) contains
// only edges whose net multiplicity is positive.
func (g *Graph) Apply(e models.EdgeUpdate) {
	g.ensure(e.U)
	g.ensure(e.V)
	g.adjacency[e.U][e.V] += int(e.Sign)
	g.adjacency[e.V][e.U] += int(e.Sign)
}

// Degree returns v's net degree: the count of distinct neighbors with
// positive net multiplicity.
func (g *Graph) Degree(v models.VertexId) int {
	return len(g.Neighbors(v))
}

// Neighbors returns v's true neighbor set in the net graph: every w with
// net multiplicity > 0.
func (g *Graph) Neighbors(v models.VertexId) []models.VertexId {
	nbrs := g.adjacency[v]
	out := make([]models.VertexId, 0, len(nbrs))
	for w, mult := range nbrs {
		if mult > 0 {
			out = append(out, w)
		}
	}
	return out
}

// HasEdge reports whether the net graph currently contains edge (u,w).
func (g *Graph) HasEdge(u, w models.VertexId) bool {
	return g.adjacency[u][w] > 0
}

// MaxDegreeVertex returns a vertex of maximum net degree, for test
// scenarios that need to know which vertex an engine ought to find.
func (g *Graph) MaxDegreeVertex() (models.VertexId, int) {
	var best models.VertexId
	bestDeg := -1
	for v := range g.adjacency {
		if d := g.Degree(v); d > bestDeg {
			best, bestDeg = v, d
		}
	}
	return best, bestDeg
}
