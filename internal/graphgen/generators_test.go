package graphgen

import (
	"math/rand"
	"testing"

	"github.com/rawblock/graphprobe/pkg/models"
)

func TestStar_EmitsNMinusOneEdgesFromRoot(t *testing.T) {
	var got []models.EdgeUpdate
	Star(6, func(e models.EdgeUpdate) { got = append(got, e) })

	if len(got) != 5 {
		t.Fatalf("expected 5 edges for n=6, got %d", len(got))
	}
	for _, e := range got {
		if e.U != 0 {
			t.Errorf("expected every star edge to originate at vertex 0, got u=%d", e.U)
		}
		if e.Sign != 1 {
			t.Errorf("expected insertion sign, got %d", e.Sign)
		}
	}
}

func TestComplete_EmitsAllPairs(t *testing.T) {
	n := 5
	var got []models.EdgeUpdate
	Complete(n, func(e models.EdgeUpdate) { got = append(got, e) })

	want := n * (n - 1) / 2
	if len(got) != want {
		t.Fatalf("expected %d edges for K_%d, got %d", want, n, len(got))
	}
	for _, e := range got {
		if e.U >= e.V {
			t.Errorf("expected every complete-graph edge emitted as u<v, got (%d,%d)", e.U, e.V)
		}
	}
}

func TestRandom_RespectsZeroAndOneProbability(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	var none []models.EdgeUpdate
	Random(10, 0, rng, func(e models.EdgeUpdate) { none = append(none, e) })
	if len(none) != 0 {
		t.Errorf("expected no edges at p=0, got %d", len(none))
	}

	var all []models.EdgeUpdate
	Random(10, 1, rng, func(e models.EdgeUpdate) { all = append(all, e) })
	want := 10 * 9 / 2
	if len(all) != want {
		t.Errorf("expected all %d edges at p=1, got %d", want, len(all))
	}
}
