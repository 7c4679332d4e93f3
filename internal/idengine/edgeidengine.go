package idengine

import (
	"math"

	"github.com/rawblock/graphprobe/internal/l0sample"
	"github.com/rawblock/graphprobe/internal/streamhash"
	"github.com/rawblock/graphprobe/pkg/models"
)

// EdgeIDConfig bundles the parameters SPEC_FULL.md §4.6's edge-id variant
// needs.
type EdgeIDConfig struct {
	N, D, C int
	Delta   float64
	Fam     *streamhash.Family
}

// EdgeIDEngine encodes each unordered edge as a unique integer id in
// [0, n(n-1)/2) and runs an L0-sampler battery over that edge universe;
// finalize decodes sampled ids back into vertex adjacency and reports the
// first vertex whose decoded degree reaches ceil(d/c).
type EdgeIDEngine struct {
	cfg       EdgeIDConfig
	n         int64
	target    int
	samplers  []*l0sample.Sampler
	edgesSeen int64
}

// NewEdgeIDEngine builds the engine and allocates its T L0Samplers over the
// edge universe, per the formula in SPEC_FULL.md §4.6 / spec.md §4.6.
func NewEdgeIDEngine(cfg EdgeIDConfig) *EdgeIDEngine {
	if cfg.Delta <= 0 {
		cfg.Delta = 0.2
	}
	n, d, c := float64(cfg.N), float64(cfg.D), float64(cfg.C)

	denom := math.Max(n/c, math.Sqrt(n))
	t := int(math.Ceil((n * d / c) * (1/denom + 1/c) * 2 * math.Log(n)))
	if t < 1 {
		t = 1
	}

	universe := int64(cfg.N) * int64(cfg.N-1) / 2
	if universe < 1 {
		universe = 1
	}

	// The edge universe is O(n^2): a full Fisher-Yates table over it would
	// break the sublinear-space guarantee, so each sampler gets its own
	// reservoir-backed LazyPermutation (spec.md §4.1's "reservoir of used
	// values during construction" alternative) instead of a shared,
	// fully-materialized Permutation table.
	samplers := make([]*l0sample.Sampler, t)
	for i := range samplers {
		pi := streamhash.NewLazyPermutation(cfg.Fam, universe)
		samplers[i] = l0sample.NewSampler(cfg.Fam, pi, universe, cfg.Delta)
	}

	return &EdgeIDEngine{
		cfg:      cfg,
		n:        int64(cfg.N),
		target:   int(math.Ceil(d / c)),
		samplers: samplers,
	}
}

// Process forwards the signed, encoded edge id to every sampler.
func (e *EdgeIDEngine) Process(edge models.EdgeUpdate) {
	e.edgesSeen++
	id, delta := edgeUpdateID(e.n, edge)
	for _, s := range e.samplers {
		s.Update(id, delta)
	}
}

// Finalize queries every sampler, decodes each successful sample back to an
// unordered pair, accumulates per-vertex adjacency, and emits the first
// vertex to reach the target degree.
func (e *EdgeIDEngine) Finalize() models.Result {
	adjacency := make(map[models.VertexId]map[models.VertexId]struct{})
	order := make([]models.VertexId, 0)

	addNeighbor := func(v, w models.VertexId) {
		if adjacency[v] == nil {
			adjacency[v] = make(map[models.VertexId]struct{})
			order = append(order, v)
		}
		adjacency[v][w] = struct{}{}
	}

	for _, s := range e.samplers {
		id, err := s.Query()
		if err != nil {
			continue
		}
		u, v := DecodeEdge(e.n, id)
		if u < 0 || v < 0 {
			continue
		}
		addNeighbor(models.VertexId(u), models.VertexId(v))
		addNeighbor(models.VertexId(v), models.VertexId(u))
	}

	for _, v := range order {
		if len(adjacency[v]) >= e.target {
			neighbors := make([]models.VertexId, 0, len(adjacency[v]))
			for w := range adjacency[v] {
				neighbors = append(neighbors, w)
			}
			return models.Success(v, neighbors)
		}
	}
	return models.Failure()
}

// EdgesSeen reports how many stream edges have been processed so far.
func (e *EdgeIDEngine) EdgesSeen() int64 { return e.edgesSeen }

// NumSamplers reports the allocated L0-sampler battery size T.
func (e *EdgeIDEngine) NumSamplers() int { return len(e.samplers) }
