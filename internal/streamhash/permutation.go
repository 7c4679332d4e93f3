package streamhash

// TiebreakHash is the injective hash pi:[0,universe) -> codomain that
// L0Sampler uses both for level-gating (spec.md §4.3's "index i contributes
// to level j iff pi(i) <= T_j") and as the argmin tiebreak over a level's
// recovered support. Permutation and LazyPermutation are its two
// constructions, chosen by universe size (see lazypermutation.go).
type TiebreakHash interface {
	Apply(x int64) int64
}

// Permutation is an injective hash pi: [0,U) -> [0,U), built by a seeded
// Fisher-Yates shuffle. It backs the L0Sampler tiebreak hash: injectivity is
// a correctness prerequisite there (colliding tiebreak values bias the
// sampled element), so an approximate universal hash is not good enough.
type Permutation struct {
	table []int64
}

// NewPermutation builds an injective permutation of [0,universe) using the
// Family's engine-scoped PRNG. O(universe) space, so it is used for
// vertex-scale universes (n); the edge-id variant's n(n-1)/2 universe uses
// LazyPermutation instead.
func NewPermutation(f *Family, universe int64) *Permutation {
	table := make([]int64, universe)
	for i := range table {
		table[i] = int64(i)
	}
	// Fisher-Yates: for i from universe-1 down to 1, swap table[i] with a
	// uniformly chosen table[j], j in [0,i].
	for i := universe - 1; i > 0; i-- {
		j := f.Int63(i + 1)
		table[i], table[j] = table[j], table[i]
	}
	return &Permutation{table: table}
}

// Apply returns pi(x) for x in [0,universe).
func (p *Permutation) Apply(x int64) int64 {
	return p.table[x]
}

// Len reports the universe size this permutation was built over.
func (p *Permutation) Len() int64 {
	return int64(len(p.table))
}
