package sparse

import (
	"testing"

	"github.com/rawblock/graphprobe/internal/streamhash"
)

func TestSSparseRecoverer_ExactSupport(t *testing.T) {
	fam := streamhash.NewFamily(42)
	r := NewSSparseRecoverer(fam, 1<<20, 4, 0.05)

	want := map[int64]int64{11: 3, 97: -2, 5000: 1}
	for idx, delta := range want {
		r.Update(idx, delta)
	}

	got, err := r.Recover()
	if err != nil {
		t.Fatalf("unexpected recovery failure: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d recovered indices, got %d (%v)", len(want), len(got), got)
	}
	for idx := range want {
		if _, ok := got[idx]; !ok {
			t.Errorf("expected index %d in recovered support, missing", idx)
		}
	}
}

func TestSSparseRecoverer_OverSparseFails(t *testing.T) {
	fam := streamhash.NewFamily(7)
	r := NewSSparseRecoverer(fam, 1<<20, 2, 0.2)

	// A support of 2s indices: enough of them land alone in a cell that more
	// than s are recovered, which is the recoverer's one failure signal.
	for i := int64(0); i < 4; i++ {
		r.Update(i*97+3, 1)
	}

	if _, err := r.Recover(); err != ErrNotSSparse {
		t.Errorf("expected ErrNotSSparse for a support of 2s indices, got %v", err)
	}
}
