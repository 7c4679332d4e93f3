package sparse

import (
	"fmt"
	"math"

	"github.com/rawblock/graphprobe/internal/streamhash"
)

// SSparseRecoverer recovers up to s non-zero indices of a dynamic vector
// over universe [0,U) with failure probability <= gamma, using a
// cols x rows grid of OneSparseAccumulators (cols = 2s, rows =
// ceil(log(s/gamma))), one independent row hash per row.
type SSparseRecoverer struct {
	universe int64
	s        int
	cols     int
	rows     int
	rowHash  []streamhash.HashParams
	grid     [][]*OneSparseAccumulator // grid[row][col]
}

// NewSSparseRecoverer builds a recoverer for sparsity s and failure
// tolerance gamma over the given universe, drawing rows independent hash
// instances from fam.
func NewSSparseRecoverer(fam *streamhash.Family, universe int64, s int, gamma float64) *SSparseRecoverer {
	if s < 1 {
		s = 1
	}
	cols := 2 * s
	rows := int(math.Ceil(math.Log(float64(s)/gamma)))
	if rows < 1 {
		rows = 1
	}

	rowHash := make([]streamhash.HashParams, rows)
	grid := make([][]*OneSparseAccumulator, rows)
	for r := 0; r < rows; r++ {
		rowHash[r] = fam.Draw(int64(cols))
		grid[r] = make([]*OneSparseAccumulator, cols)
		for c := 0; c < cols; c++ {
			grid[r][c] = NewOneSparseAccumulator()
		}
	}

	return &SSparseRecoverer{
		universe: universe,
		s:        s,
		cols:     cols,
		rows:     rows,
		rowHash:  rowHash,
		grid:     grid,
	}
}

// Update applies a signed update (i, delta) to every row's hashed bucket.
func (r *SSparseRecoverer) Update(i int64, delta int64) {
	for row := 0; row < r.rows; row++ {
		c := streamhash.Apply(r.rowHash[row], int64(r.cols), i)
		r.grid[row][c].Update(i, delta)
	}
}

// ErrNotSSparse is returned by Recover when the true support exceeds s.
var ErrNotSSparse = fmt.Errorf("sparse: vector is not s-sparse")

// Recover emits the set of recovered non-zero indices. If more than s
// distinct indices are found across any 1-sparse cell, it returns
// ErrNotSSparse: the size-bound check is the only failure signal this
// recoverer produces.
func (r *SSparseRecoverer) Recover() (map[int64]struct{}, error) {
	found := make(map[int64]struct{})
	for row := 0; row < r.rows; row++ {
		for c := 0; c < r.cols; c++ {
			ok, idx := r.grid[row][c].Test()
			if !ok {
				continue
			}
			found[idx] = struct{}{}
			if len(found) > r.s {
				return nil, ErrNotSSparse
			}
		}
	}
	return found, nil
}
