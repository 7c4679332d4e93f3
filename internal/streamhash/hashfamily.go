// Package streamhash provides the pairwise-independent hash family used by
// every sparse-recovery and sampling component downstream, plus the
// engine-scoped PRNG and vertex indexer that feed it.
package streamhash

import "math/rand"

// Prime is the fixed prime P > 2^30 used by the universal hash family:
// h(x) = ((a*x+b) mod P) mod m.
const Prime = 1073741789

// HashParams is a drawn instance of the family: a,b in [0,P).
type HashParams struct {
	A, B int64
}

// Family draws HashParams from a single engine-scoped PRNG. One Family must
// be shared by every component that needs fresh, independent hash instances
// within a run; it is never reseeded mid-run (see design note in SPEC_FULL.md
// §4.1 — replaces the teacher's "manually reseeded PRNG per generated hash"
// anti-pattern).
type Family struct {
	rng *rand.Rand
}

// NewFamily builds a Family from a 64-bit seed. Use SeedFromString or
// SeedFromTime to derive that seed.
func NewFamily(seed int64) *Family {
	return &Family{rng: rand.New(rand.NewSource(seed))}
}

// Draw samples a fresh pairwise-independent hash instance mapping into
// [0,m). m must be > 0.
func (f *Family) Draw(m int64) HashParams {
	if m <= 0 {
		panic("streamhash: m must be positive")
	}
	a := int64(1) + f.rng.Int63n(Prime-1) // a in [1,P) : a!=0 required for pairwise independence
	b := f.rng.Int63n(Prime)
	return HashParams{A: a, B: b}
}

// Apply computes h(x) for a drawn instance, given the modulus m it was drawn
// for.
func Apply(h HashParams, m int64, x int64) int64 {
	key := x % Prime
	if key < 0 {
		key += Prime
	}
	v := (h.A*key + h.B) % Prime
	if v < 0 {
		v += Prime
	}
	return v % m
}

// Int63 draws a uniform int64 in [0,n) from the engine-scoped PRNG. Exposed
// so higher layers (reservoir eviction coin flips, IDEngine vertex sampling)
// share the single engine PRNG instead of seeding their own.
func (f *Family) Int63(n int64) int64 {
	return f.rng.Int63n(n)
}

// Float64 draws a uniform float64 in [0,1) from the engine-scoped PRNG.
func (f *Family) Float64() float64 {
	return f.rng.Float64()
}
