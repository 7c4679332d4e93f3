package l0sample

import (
	"testing"

	"github.com/rawblock/graphprobe/internal/streamhash"
)

func TestSampler_RecoversSingleSurvivor(t *testing.T) {
	const universe = 1 << 14
	fam := streamhash.NewFamily(3)
	pi := streamhash.NewPermutation(fam, universe)
	s := NewSampler(fam, pi, universe, 0.2)

	// Insert three indices, then cancel two of them out entirely so the net
	// vector is exactly 1-sparse.
	s.Update(10, 1)
	s.Update(2000, 1)
	s.Update(2000, -1)
	s.Update(7000, 1)
	s.Update(7000, -1)

	got, err := s.Query()
	if err != nil {
		t.Fatalf("expected a successful sample, got error: %v", err)
	}
	if got != 10 {
		t.Errorf("expected surviving index 10, got %d", got)
	}
}

func TestSampler_EmptyVectorFails(t *testing.T) {
	const universe = 1 << 10
	fam := streamhash.NewFamily(5)
	pi := streamhash.NewPermutation(fam, universe)
	s := NewSampler(fam, pi, universe, 0.2)

	s.Update(4, 1)
	s.Update(4, -1)

	if _, err := s.Query(); err != ErrFailed {
		t.Errorf("expected ErrFailed on an all-zero vector, got %v", err)
	}
}

func TestSampler_UniformityAcrossRuns(t *testing.T) {
	const universe = 1 << 12
	support := []int64{100, 200, 300, 400}

	counts := make(map[int64]int)
	const runs = 200
	for run := 0; run < runs; run++ {
		fam := streamhash.NewFamily(int64(1000 + run))
		pi := streamhash.NewPermutation(fam, universe)
		s := NewSampler(fam, pi, universe, 0.2)
		for _, idx := range support {
			s.Update(idx, 1)
		}
		got, err := s.Query()
		if err != nil {
			continue // within the sampler's declared delta failure budget
		}
		counts[got]++
	}

	total := 0
	for _, idx := range support {
		total += counts[idx]
	}
	if total < runs/2 {
		t.Fatalf("too many failed queries: only %d/%d succeeded", total, runs)
	}
	// Every observed sample must come from the true support.
	for idx, c := range counts {
		if c == 0 {
			continue
		}
		found := false
		for _, s := range support {
			if s == idx {
				found = true
			}
		}
		if !found {
			t.Errorf("sampler returned index %d outside the true support %v", idx, support)
		}
	}
}
