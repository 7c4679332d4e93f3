package idengine

import (
	"math"

	"github.com/rawblock/graphprobe/internal/l0sample"
	"github.com/rawblock/graphprobe/internal/streamhash"
	"github.com/rawblock/graphprobe/pkg/models"
)

// VertexSampleConfig bundles the parameters SPEC_FULL.md §4.6's
// vertex-sample variant needs.
type VertexSampleConfig struct {
	N, D, C int
	Delta   float64 // L0 per-sampler failure rate (default 0.2)
	Rho     float64 // target per-sampler success probability (default 0.85)
	Fam     *streamhash.Family
}

// VertexSampleEngine draws V = max(log n, log(n)*d/c^4) vertices without
// replacement, allocates S L0Samplers per sampled vertex over universe
// [0,n), and on finalize queries each sampled vertex's battery until it
// accumulates ceil(d/c) distinct neighbors or exhausts its samplers.
type VertexSampleEngine struct {
	cfg       VertexSampleConfig
	target    int // ceil(d/c)
	sampled   []models.VertexId
	samplerOf map[models.VertexId][]*l0sample.Sampler
	edgesSeen int64
}

// NewVertexSampleEngine builds the engine and draws the vertex sample.
func NewVertexSampleEngine(cfg VertexSampleConfig) *VertexSampleEngine {
	if cfg.Rho <= 0 {
		cfg.Rho = 0.85
	}
	if cfg.Delta <= 0 {
		cfg.Delta = 0.2
	}

	n, d, c := float64(cfg.N), float64(cfg.D), float64(cfg.C)
	v := int(math.Ceil(math.Max(math.Log(n), math.Log(n)*d/math.Pow(c, 4))))
	if v < 1 {
		v = 1
	}
	if v > cfg.N {
		v = cfg.N
	}

	s := int(math.Ceil((1 / cfg.Rho) * math.Log(0.1) / math.Log(1-(c-1)/d)))
	if s < 1 {
		s = 1
	}

	sampled := drawWithoutReplacement(cfg.Fam, cfg.N, v)

	// Each sampler in a vertex's battery needs its own fresh tiebreak hash
	// (Data Model §3: "constructed with fresh independent hashes per
	// sampler") — sharing one pi across the battery would make every
	// sampler query the same level of the same implicit vector and collapse
	// the battery's distinct-successes diversity to at most one neighbor.
	samplerOf := make(map[models.VertexId][]*l0sample.Sampler, len(sampled))
	for _, t := range sampled {
		batteries := make([]*l0sample.Sampler, s)
		for i := range batteries {
			pi := streamhash.NewPermutation(cfg.Fam, int64(cfg.N))
			batteries[i] = l0sample.NewSampler(cfg.Fam, pi, int64(cfg.N), cfg.Delta)
		}
		samplerOf[t] = batteries
	}

	return &VertexSampleEngine{
		cfg:       cfg,
		target:    int(math.Ceil(d / c)),
		sampled:   sampled,
		samplerOf: samplerOf,
	}
}

// drawWithoutReplacement draws k distinct vertex ids uniformly from [0,n)
// using a partial Fisher-Yates shuffle driven by the shared engine PRNG.
func drawWithoutReplacement(fam *streamhash.Family, n, k int) []models.VertexId {
	pool := make([]int64, n)
	for i := range pool {
		pool[i] = int64(i)
	}
	if k > n {
		k = n
	}
	for i := 0; i < k; i++ {
		j := i + int(fam.Int63(int64(n-i)))
		pool[i], pool[j] = pool[j], pool[i]
	}
	out := make([]models.VertexId, k)
	for i := 0; i < k; i++ {
		out[i] = models.VertexId(pool[i])
	}
	return out
}

// Process forwards a signed edge update to every sampled vertex's battery
// whose endpoint matches one side of the edge.
func (e *VertexSampleEngine) Process(edge models.EdgeUpdate) {
	e.edgesSeen++
	if batteries, ok := e.samplerOf[edge.U]; ok {
		for _, s := range batteries {
			s.Update(int64(edge.V), int64(edge.Sign))
		}
	}
	if batteries, ok := e.samplerOf[edge.V]; ok {
		for _, s := range batteries {
			s.Update(int64(edge.U), int64(edge.Sign))
		}
	}
}

// Finalize queries each sampled vertex's battery in turn, collecting
// distinct successes until the target neighborhood size is reached; the
// first sampled vertex to reach it is emitted as the result.
func (e *VertexSampleEngine) Finalize() models.Result {
	for _, t := range e.sampled {
		neighbors := make(map[models.VertexId]struct{})
		for _, s := range e.samplerOf[t] {
			idx, err := s.Query()
			if err != nil {
				continue
			}
			neighbors[models.VertexId(idx)] = struct{}{}
			if len(neighbors) >= e.target {
				break
			}
		}
		if len(neighbors) >= e.target {
			out := make([]models.VertexId, 0, len(neighbors))
			for v := range neighbors {
				out = append(out, v)
			}
			return models.Success(t, out)
		}
	}
	return models.Failure()
}

// EdgesSeen reports how many stream edges have been processed so far.
func (e *VertexSampleEngine) EdgesSeen() int64 { return e.edgesSeen }

// SampledVertices exposes the drawn vertex sample, for telemetry/testing.
func (e *VertexSampleEngine) SampledVertices() []models.VertexId { return e.sampled }
