package streamio

import (
	"strings"
	"testing"

	"github.com/rawblock/graphprobe/internal/streamhash"
	"github.com/rawblock/graphprobe/pkg/models"
)

func TestReadEdges_InsertionOnly(t *testing.T) {
	idx := streamhash.NewVertexIndexer()
	// "0  3" has two spaces (malformed); "bad-line" has zero spaces.
	input := "0 1\n0 2\n\n0  3\nbad-line\n0 4\n"

	var got []models.EdgeUpdate
	scanned, skipped, err := ReadEdges(strings.NewReader(input), idx, false, 0, func(e models.EdgeUpdate) bool {
		got = append(got, e)
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scanned != 3 {
		t.Errorf("expected 3 well-formed edges scanned, got %d", scanned)
	}
	if skipped != 2 {
		t.Errorf("expected 2 malformed lines skipped, got %d", skipped)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 edges delivered to the visitor, got %d", len(got))
	}
}

func TestReadEdges_InsertionDeletion(t *testing.T) {
	idx := streamhash.NewVertexIndexer()
	input := "I 0 1\nD 0 1\nI 0 2\nX 0 2\n"

	var got []models.EdgeUpdate
	_, skipped, err := ReadEdges(strings.NewReader(input), idx, true, 0, func(e models.EdgeUpdate) bool {
		got = append(got, e)
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 1 {
		t.Errorf("expected 1 skipped line for the unknown 'X' prefix, got %d", skipped)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 parsed records, got %d", len(got))
	}
	if got[0].Sign != 1 || got[1].Sign != -1 {
		t.Errorf("expected signs [+1,-1], got [%d,%d]", got[0].Sign, got[1].Sign)
	}
}

func TestReadVertexList(t *testing.T) {
	idx := streamhash.NewVertexIndexer()
	input := "0\n1,label-a\n2, label-b\n"

	vs, err := ReadVertexList(strings.NewReader(input), idx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vs) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(vs))
	}
}
