// Package sparse implements the OneSparseAccumulator and SSparseRecoverer
// primitives that back L0 sampling: exact recovery of a dynamic vector's
// support when that support is small enough.
package sparse

import "math/big"

// OneSparseAccumulator tracks three running sums under signed updates
// (i, delta): phi += delta, iota += delta*i, tau += delta*i^2. When the
// signed support of all updates so far is exactly one index, the 1-sparse
// test phi*tau == iota^2 (phi != 0) holds and that index is iota/phi.
//
// tau can require more than 64 bits once i approaches the edge-universe
// size (n^2/2), so all three counters are always held as big.Int; there is
// no int64 fast path.
type OneSparseAccumulator struct {
	phi, iota, tau *big.Int
}

// NewOneSparseAccumulator returns a zeroed accumulator.
func NewOneSparseAccumulator() *OneSparseAccumulator {
	return &OneSparseAccumulator{phi: new(big.Int), iota: new(big.Int), tau: new(big.Int)}
}

// Update applies a signed update at index i with coefficient delta.
func (a *OneSparseAccumulator) Update(i int64, delta int64) {
	d := big.NewInt(delta)
	idx := big.NewInt(i)

	a.phi.Add(a.phi, d)

	di := new(big.Int).Mul(d, idx)
	a.iota.Add(a.iota, di)

	di2 := new(big.Int).Mul(di, idx)
	a.tau.Add(a.tau, di2)
}

// Test reports whether the accumulated vector is exactly 1-sparse, and if
// so, the unique non-zero index. The exact-equality test phi*tau == iota^2
// has a non-zero false-positive probability on adversarial input (spec.md
// §9); PrimeTest below offers a bounded-probability modular alternative for
// callers that need a guard against overflow-driven false positives instead
// of exact big.Int arithmetic.
func (a *OneSparseAccumulator) Test() (ok bool, index int64) {
	if a.phi.Sign() == 0 {
		return false, 0
	}
	lhs := new(big.Int).Mul(a.phi, a.tau)
	rhs := new(big.Int).Mul(a.iota, a.iota)
	if lhs.Cmp(rhs) != 0 {
		return false, 0
	}
	idx := new(big.Int).Div(a.iota, a.phi)
	return true, idx.Int64()
}

// IsZero reports whether every counter is zero, i.e. the accumulated vector
// has empty support so far.
func (a *OneSparseAccumulator) IsZero() bool {
	return a.phi.Sign() == 0 && a.iota.Sign() == 0 && a.tau.Sign() == 0
}

// primeModulus is used by the Ganguly-style modular 1-sparse test: a prime
// comfortably larger than any single counter value encountered for the
// universe sizes this engine targets, avoiding the overflow risk flagged in
// spec.md §9 for native fixed-width integer counters.
const primeModulus = (1 << 61) - 1 // Mersenne prime 2^61-1

// PrimeTest is the modular substitute for Test: phi*tau == iota^2 (mod p).
// Recommended when counters are tracked as plain int64 instead of big.Int
// (e.g. in a hot loop where the universe is small enough that int64
// arithmetic cannot overflow tau, but the caller still wants a bounded
// collision probability guard instead of relying on luck).
func PrimeTest(phi, iota, tau int64) (ok bool, index int64) {
	if phi == 0 {
		return false, 0
	}
	p := int64(primeModulus)
	lhs := mulmod(phi, tau, p)
	rhs := mulmod(iota, iota, p)
	if lhs != rhs {
		return false, 0
	}
	// Recover index = iota/phi over the integers (not mod p): valid only
	// when the true support is exactly one index, which the test asserts
	// with probability >= 1-1/p.
	if iota%phi != 0 {
		return false, 0
	}
	return true, iota / phi
}

func mulmod(a, b, m int64) int64 {
	bigA := big.NewInt(a)
	bigB := big.NewInt(b)
	bigM := big.NewInt(m)
	r := new(big.Int).Mul(bigA, bigB)
	r.Mod(r, bigM)
	return r.Int64()
}
