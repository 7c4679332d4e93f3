package insertion

import (
	"testing"

	"github.com/rawblock/graphprobe/internal/streamhash"
	"github.com/rawblock/graphprobe/pkg/models"
)

func star(n int) []models.EdgeUpdate {
	edges := make([]models.EdgeUpdate, 0, n-1)
	for v := 1; v < n; v++ {
		edges = append(edges, models.EdgeUpdate{U: 0, V: models.VertexId(v), Sign: 1})
	}
	return edges
}

// TestStarGraph_Succeeds mirrors spec.md scenario 1: a star graph with
// n=1000, d=999, c=3 must succeed with root=center and |neighborhood|>=333.
func TestStarGraph_Succeeds(t *testing.T) {
	const n, d, c = 1000, 999, 3
	fam := streamhash.NewFamily(11)
	e := New(Config{N: n, D: d, C: c, Fam: fam})

	var result models.Result
	for _, edge := range star(n) {
		if r, done := e.Process(edge); done {
			result = r
			break
		}
	}
	if !result.Ok {
		result = e.Finalize()
	}

	if !result.Ok {
		t.Fatalf("expected Success on a star graph with a degree-999 center")
	}
	if result.Neighborhood.Root != 0 {
		t.Errorf("expected root=0 (the star center), got %d", result.Neighborhood.Root)
	}
	want := (d + c - 1) / c
	if len(result.Neighborhood.Neighbors) < want {
		t.Errorf("expected neighborhood size >= %d, got %d", want, len(result.Neighborhood.Neighbors))
	}
}

// TestSparseGraph_Fails: the highest degree is vertex 0's 3, below
// d/c=4, so no sampler can succeed and the engine must report a clean
// Failure.
func TestSparseGraph_Fails(t *testing.T) {
	const n, d, c = 10, 8, 2
	fam := streamhash.NewFamily(3)
	e := New(Config{N: n, D: d, C: c, Fam: fam})

	edges := []models.EdgeUpdate{
		{U: 0, V: 1, Sign: 1},
		{U: 0, V: 2, Sign: 1},
		{U: 0, V: 3, Sign: 1},
		{U: 4, V: 5, Sign: 1},
		{U: 6, V: 7, Sign: 1},
	}
	for _, edge := range edges {
		if _, done := e.Process(edge); done {
			t.Fatalf("did not expect early termination on a sparse graph below the degree target")
		}
	}

	result := e.Finalize()
	if result.Ok {
		t.Errorf("expected Failure: no vertex reaches degree >= d/c=%d, got Success(root=%d)", d/c, result.Neighborhood.Root)
	}
}

func TestCompleteGraphK10_Succeeds(t *testing.T) {
	const n, d, c = 10, 9, 3
	fam := streamhash.NewFamily(99)
	e := New(Config{N: n, D: d, C: c, Fam: fam})

	var result models.Result
outer:
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if r, done := e.Process(models.EdgeUpdate{U: models.VertexId(u), V: models.VertexId(v), Sign: 1}); done {
				result = r
				break outer
			}
		}
	}
	if !result.Ok {
		result = e.Finalize()
	}
	if !result.Ok {
		t.Fatalf("expected Success on K10 with d=9, c=3")
	}
	want := (d + c - 1) / c
	if len(result.Neighborhood.Neighbors) < want {
		t.Errorf("expected neighborhood size >= %d, got %d", want, len(result.Neighborhood.Neighbors))
	}
}

func TestWorkerPool_ProducesSameKindOfResult(t *testing.T) {
	const n, d, c = 200, 199, 3
	fam := streamhash.NewFamily(5)
	e := New(Config{N: n, D: d, C: c, Fam: fam, Workers: 3})

	var result models.Result
	for _, edge := range star(n) {
		if r, done := e.Process(edge); done {
			result = r
			break
		}
	}
	if !result.Ok {
		result = e.Finalize()
	}
	if !result.Ok {
		t.Fatalf("expected Success with the concurrent worker-pool dispatch path")
	}
}
