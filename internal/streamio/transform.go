package streamio

import "github.com/rawblock/graphprobe/pkg/models"

// ToInsertionDeletion transforms an insertion-only stream into an
// insertion-deletion stream, the stream-to-stream transformer spec.md §1
// lists as an external collaborator. Each insertion-only edge is emitted
// unchanged (Sign=+1); duplicate edges are emitted as repeated insertions,
// matching the insertion-only model's "duplicates add a new edge" rule.
// This is purely a format adapter: it never invents deletions on its own.
func ToInsertionDeletion(edges []models.EdgeUpdate) []models.EdgeUpdate {
	out := make([]models.EdgeUpdate, len(edges))
	for i, e := range edges {
		out[i] = models.EdgeUpdate{U: e.U, V: e.V, Sign: 1}
	}
	return out
}
