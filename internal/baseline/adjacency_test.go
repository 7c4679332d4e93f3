package baseline

import (
	"testing"

	"github.com/rawblock/graphprobe/pkg/models"
)

func TestGraph_CancellationMatchesNetDegree(t *testing.T) {
	g := New()
	stream := []models.EdgeUpdate{
		{U: 0, V: 1, Sign: 1},
		{U: 0, V: 2, Sign: 1},
		{U: 0, V: 3, Sign: 1},
		{U: 0, V: 2, Sign: -1},
		{U: 0, V: 4, Sign: 1},
		{U: 0, V: 5, Sign: 1},
	}
	for _, e := range stream {
		g.Apply(e)
	}

	if d := g.Degree(0); d != 4 {
		t.Fatalf("expected net degree 4 for vertex 0, got %d", d)
	}
	if g.HasEdge(0, 2) {
		t.Errorf("edge (0,2) should have been fully cancelled by the deletion")
	}
	root, deg := g.MaxDegreeVertex()
	if root != 0 || deg != 4 {
		t.Errorf("expected max-degree vertex 0 with degree 4, got %d with degree %d", root, deg)
	}
}
