package idengine

import (
	"testing"

	"github.com/rawblock/graphprobe/internal/l0sample"
	"github.com/rawblock/graphprobe/internal/streamhash"
	"github.com/rawblock/graphprobe/pkg/models"
)

func TestEdgeID_RoundTrip(t *testing.T) {
	// spec.md scenario 5: n=5, encode (0,1)->0, (0,4)->3, (3,4)->9; decode
	// each back to the same pair.
	const n = 5
	cases := []struct {
		u, v, wantID int64
	}{
		{0, 1, 0},
		{0, 4, 3},
		{3, 4, 9},
	}
	for _, c := range cases {
		id := EncodeEdge(n, c.u, c.v)
		if id != c.wantID {
			t.Errorf("EncodeEdge(%d,%d)=%d, want %d", c.u, c.v, id, c.wantID)
		}
		du, dv := DecodeEdge(n, id)
		if du != c.u || dv != c.v {
			t.Errorf("DecodeEdge(%d)=(%d,%d), want (%d,%d)", id, du, dv, c.u, c.v)
		}
	}
}

// TestVertexSample_CancellationScenario mirrors spec.md scenario 4: after
// I 0 1, I 0 2, I 0 3, D 0 2, I 0 4, I 0 5, vertex 0 has final degree 4 and
// d=4, c=2 should succeed with neighborhood size >= 2 drawn from
// {1,3,4,5}.
func TestVertexSample_CancellationScenario(t *testing.T) {
	const n, d, c = 6, 4, 2
	fam := streamhash.NewFamily(17)
	e := NewVertexSampleEngine(VertexSampleConfig{N: n, D: d, C: c, Fam: fam})

	// Force vertex 0 into the sample regardless of the random draw, so the
	// scenario is deterministic: attach a fresh battery of L0 samplers to it.
	if _, ok := e.samplerOf[0]; !ok {
		e.sampled = append(e.sampled, 0)
		battery := make([]*l0sample.Sampler, 6)
		for i := range battery {
			pi := streamhash.NewPermutation(fam, int64(n))
			battery[i] = l0sample.NewSampler(fam, pi, int64(n), e.cfg.Delta)
		}
		e.samplerOf[0] = battery
	}

	stream := []models.EdgeUpdate{
		{U: 0, V: 1, Sign: 1},
		{U: 0, V: 2, Sign: 1},
		{U: 0, V: 3, Sign: 1},
		{U: 0, V: 2, Sign: -1},
		{U: 0, V: 4, Sign: 1},
		{U: 0, V: 5, Sign: 1},
	}
	for _, edge := range stream {
		e.Process(edge)
	}

	result := e.Finalize()
	if !result.Ok {
		t.Fatalf("expected Success for vertex 0 reaching final degree 4 with d=4,c=2")
	}
	allowed := map[models.VertexId]bool{1: true, 3: true, 4: true, 5: true}
	for _, nb := range result.Neighborhood.Neighbors {
		if !allowed[nb] {
			t.Errorf("unexpected neighbor %d outside {1,3,4,5}", nb)
		}
	}
	if len(result.Neighborhood.Neighbors) < 2 {
		t.Errorf("expected neighborhood size >= 2, got %d", len(result.Neighborhood.Neighbors))
	}
}

func TestEdgeIDEngine_CancellationScenario(t *testing.T) {
	const n, d, c = 6, 4, 2
	fam := streamhash.NewFamily(23)
	e := NewEdgeIDEngine(EdgeIDConfig{N: n, D: d, C: c, Fam: fam})

	stream := []models.EdgeUpdate{
		{U: 0, V: 1, Sign: 1},
		{U: 0, V: 2, Sign: 1},
		{U: 0, V: 3, Sign: 1},
		{U: 0, V: 2, Sign: -1},
		{U: 0, V: 4, Sign: 1},
		{U: 0, V: 5, Sign: 1},
	}
	for _, edge := range stream {
		e.Process(edge)
	}

	result := e.Finalize()
	if !result.Ok {
		t.Fatalf("expected Success: vertex 0 has net degree 4 with d=4,c=2")
	}
}
