package streamhash

// LazyPermutation is an injective hash pi:[0,universe) -> [0,universe),
// built incrementally rather than materialized up front. spec.md §4.1
// sanctions two constructions for the L0Sampler tiebreak hash: a full
// O(universe) Fisher-Yates table (acceptable at vertex-universe scale), or
// "a reservoir of used values during construction" for universes too large
// to materialize — the edge-id variant's O(n(n-1)/2) edge universe is
// exactly that case. This type is the latter: each call to Apply draws the
// next not-yet-used codomain value via a lazy Fisher-Yates shuffle over a
// sparse map of touched positions, so space grows with the number of
// distinct domain points actually queried, not with universe.
type LazyPermutation struct {
	fam       *Family
	universe  int64
	assigned  map[int64]int64 // domain point -> its permuted value, once queried
	overrides map[int64]int64 // sparse Fisher-Yates state for the remaining pool
	drawn     int64
}

// NewLazyPermutation builds an empty reservoir-backed permutation over
// [0,universe).
func NewLazyPermutation(f *Family, universe int64) *LazyPermutation {
	return &LazyPermutation{
		fam:       f,
		universe:  universe,
		assigned:  make(map[int64]int64),
		overrides: make(map[int64]int64),
	}
}

// Apply returns pi(x), drawing and caching a fresh value the first time x
// is seen and returning the cached value on every subsequent call.
func (p *LazyPermutation) Apply(x int64) int64 {
	if v, ok := p.assigned[x]; ok {
		return v
	}
	v := p.draw()
	p.assigned[x] = v
	return v
}

// draw removes and returns one uniformly random not-yet-drawn value from
// the conceptual pool [0,universe), touching only the two pool positions
// involved in this step instead of a full backing array.
func (p *LazyPermutation) draw() int64 {
	remaining := p.universe - p.drawn
	pos := p.fam.Int63(remaining)
	val := p.valueAt(pos)

	last := remaining - 1
	if last != pos {
		p.overrides[pos] = p.valueAt(last)
	}
	delete(p.overrides, last)
	p.drawn++
	return val
}

func (p *LazyPermutation) valueAt(pos int64) int64 {
	if v, ok := p.overrides[pos]; ok {
		return v
	}
	return pos
}

// Len reports the universe size this permutation was built over.
func (p *LazyPermutation) Len() int64 { return p.universe }
