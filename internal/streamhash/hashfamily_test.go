package streamhash

import "testing"

func TestFamily_PairwiseCollisionBound(t *testing.T) {
	fam := NewFamily(1)
	const m = 101
	const trials = 4000

	collisions := 0
	x, y := int64(123456), int64(654321)
	for i := 0; i < trials; i++ {
		h := fam.Draw(m)
		if Apply(h, m, x) == Apply(h, m, y) {
			collisions++
		}
	}

	// Pairwise independence guarantees Pr[h(x)=h(y)] <= 1/m for x != y; allow
	// generous slack since this is a finite empirical sample.
	maxExpected := trials/m + trials/10
	if collisions > maxExpected {
		t.Errorf("collision rate too high: %d/%d collisions, expected roughly <= %d", collisions, trials, maxExpected)
	}
}

func TestPermutation_Injective(t *testing.T) {
	fam := NewFamily(9)
	const universe = 500
	perm := NewPermutation(fam, universe)

	seen := make(map[int64]bool, universe)
	for i := int64(0); i < universe; i++ {
		v := perm.Apply(i)
		if seen[v] {
			t.Fatalf("permutation collided at output value %d", v)
		}
		seen[v] = true
	}
}

func TestVertexIndexer_StableAndDistinct(t *testing.T) {
	idx := NewVertexIndexer()
	a1 := idx.Index("alice")
	b1 := idx.Index("bob")
	a2 := idx.Index("alice")

	if a1 != a2 {
		t.Errorf("indexer must return a stable id for repeated names: got %d then %d", a1, a2)
	}
	if a1 == b1 {
		t.Errorf("distinct names must map to distinct ids")
	}
	if idx.Len() != 2 {
		t.Errorf("expected 2 distinct indexed names, got %d", idx.Len())
	}
}
