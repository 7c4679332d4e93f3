// Package l0sample implements the layered L0 sampler: a draw approximately
// uniform over the non-zero entries of a dynamic signed vector, used as the
// building block of the insertion-deletion neighborhood engine.
package l0sample

import (
	"errors"
	"math"
	"math/bits"

	"github.com/rawblock/graphprobe/internal/sparse"
	"github.com/rawblock/graphprobe/internal/streamhash"
)

// ErrFailed is returned by Query when the sampler cannot certify a sample:
// the running sparsity estimate is not positive, the chosen level's
// subvector recovers to an empty support, or that level's recoverer failed
// its sparsity bound.
var ErrFailed = errors.New("l0sample: sampler failed to produce a sample")

// Sampler draws one index, approximately uniformly, from the support of a
// dynamic vector a[0..universe) presented as a stream of signed (index,
// delta) updates. Construction fixes an injective tiebreak hash pi and
// allocates one SSparseRecoverer per level j = 1..floor(log2(universe)).
type Sampler struct {
	universe int64
	pi       streamhash.TiebreakHash
	levels   []*sparse.SSparseRecoverer
	delta    float64 // per-level failure rate and TV-distance bound
	r        int64   // running sparsity estimate (count of signed admissions)
}

// NewSampler builds an L0 sampler over [0,universe) with per-level failure
// rate / total-variation bound delta (spec.md default 0.2 for IDEngine).
// The tiebreak hash pi must be injective on [0,universe) and, per the Data
// Model's "constructed with fresh independent hashes per sampler" rule,
// must not be shared with any other Sampler in the same battery — callers
// building a battery of samplers must pass a freshly constructed pi to
// each NewSampler call.
func NewSampler(fam *streamhash.Family, pi streamhash.TiebreakHash, universe int64, delta float64) *Sampler {
	j := int(math.Floor(math.Log2(float64(universe))))
	if j < 1 {
		j = 1
	}
	s := int(math.Ceil(1 / delta))
	levels := make([]*sparse.SSparseRecoverer, j)
	for level := 0; level < j; level++ {
		levels[level] = sparse.NewSSparseRecoverer(fam, universe, s, delta)
	}
	return &Sampler{universe: universe, pi: pi, levels: levels, delta: delta}
}

// levelThreshold returns T_j = universe / 2^j for 1-indexed level j.
func (s *Sampler) levelThreshold(j int) int64 {
	return s.universe >> uint(j)
}

// Update forwards a signed stream entry (i, delta) to every level whose
// threshold admits pi(i), and advances the running sparsity estimate.
func (s *Sampler) Update(i int64, delta int64) {
	h := s.pi.Apply(i)
	for levelIdx := range s.levels {
		j := levelIdx + 1 // levels are 1-indexed in the threshold formula
		if h <= s.levelThreshold(j) {
			s.levels[levelIdx].Update(i, delta)
		}
	}
	s.r += delta
}

// Query attempts to recover a sample from the level chosen by the current
// sparsity estimate r: j* = floor(log2(r)) - 1. A recovered support of size
// one is returned directly; a larger support (expected, since levels are
// built with s = ceil(1/delta) which is typically > 1) is resolved by
// taking the argmin of the tiebreak hash pi over the recovered set, per
// spec.md §2 step 4 and the Glossary's "Tiebreak hash pi". Only an empty
// support (all-zero implicit subvector) or a sparsity-bound violation is
// ErrFailed.
func (s *Sampler) Query() (int64, error) {
	if s.r <= 0 {
		return 0, ErrFailed
	}
	jStar := bits.Len64(uint64(s.r)) - 1 - 1 // floor(log2(r)) - 1
	if jStar < 0 {
		jStar = 0
	}
	if jStar >= len(s.levels) {
		jStar = len(s.levels) - 1
	}

	support, err := s.levels[jStar].Recover()
	if err != nil {
		return 0, ErrFailed
	}
	if len(support) == 0 {
		return 0, ErrFailed
	}

	var best int64
	var bestHash int64
	first := true
	for idx := range support {
		h := s.pi.Apply(idx)
		if first || h < bestHash {
			best, bestHash, first = idx, h, false
		}
	}
	return best, nil
}
