// Package reservoir implements the degree-restricted, fixed-capacity
// reservoir sampler that backs the insertion-only neighborhood engine.
package reservoir

import (
	"github.com/rawblock/graphprobe/internal/streamhash"
	"github.com/rawblock/graphprobe/pkg/models"
)

// Band is the admission window (d1, d2): a vertex is eligible to enter the
// reservoir the moment its running degree equals d1, and this sampler
// succeeds once that resident's degree reaches d1+d2.
type Band struct {
	D1, D2 int
}

// Upper returns the band's success threshold d1+d2.
func (b Band) Upper() int { return b.D1 + b.D2 }

// State names the per-sampler lifecycle stages EMPTY -> FILLING -> FULL ->
// SUFFICIENT. The State method reports only the first three; success is
// reported by Succeeded.
type State int

const (
	Empty State = iota
	Filling
	Full
	Sufficient
)

// Reservoir is a fixed-capacity Vitter-style reservoir over admission
// events ("vertex first reached degree d1"), plus the edges collected for
// every resident while its degree is within (d1, d1+d2].
type Reservoir struct {
	band     Band
	capacity int
	fam      *streamhash.Family

	residents []models.VertexId
	present   map[models.VertexId]struct{} // companion membership set: O(1) presence check instead of linear scan
	count     int                          // number of admission events observed so far

	edges []models.EdgeUpdate // collected edges incident to a resident within (d1, d1+d2]
}

// New builds an empty reservoir for the given band/capacity, drawing its
// eviction coin flips from the shared engine-scoped PRNG.
func New(fam *streamhash.Family, band Band, capacity int) *Reservoir {
	return &Reservoir{
		band:     band,
		capacity: capacity,
		fam:      fam,
		present:  make(map[models.VertexId]struct{}, capacity),
	}
}

// State reports Empty, Filling or Full from the number of residents. It
// never returns Sufficient: the reservoir holds no degree readings, so
// success is only reported by Succeeded.
func (r *Reservoir) State() State {
	if len(r.residents) == 0 {
		return Empty
	}
	if len(r.residents) < r.capacity {
		return Filling
	}
	return Full
}

// Contains reports whether v is currently resident.
func (r *Reservoir) Contains(v models.VertexId) bool {
	_, ok := r.present[v]
	return ok
}

// Admit processes a first-time-at-d1 admission event for vertex v. It
// implements classical reservoir sampling restricted to these admission
// events: the first capacity admissions are kept outright; thereafter each
// new admission replaces a uniformly chosen resident with probability
// capacity/count.
func (r *Reservoir) Admit(v models.VertexId) {
	r.count++

	if len(r.residents) < r.capacity {
		r.residents = append(r.residents, v)
		r.present[v] = struct{}{}
		return
	}

	if r.fam.Int63(int64(r.count)) >= int64(r.capacity) {
		return // not selected this round
	}

	slot := int(r.fam.Int63(int64(r.capacity)))
	evicted := r.residents[slot]
	r.residents[slot] = v
	delete(r.present, evicted)
	r.present[v] = struct{}{}

	r.pruneEvicted(evicted)
}

// pruneEvicted removes every collected edge whose only resident endpoint
// was the evicted vertex, i.e. edges no longer referencing any resident.
func (r *Reservoir) pruneEvicted(evicted models.VertexId) {
	kept := r.edges[:0]
	for _, e := range r.edges {
		if r.edgeReferencesResident(e) {
			kept = append(kept, e)
		}
	}
	r.edges = kept
	_ = evicted // the filter above is sufficient: any edge kept still touches a live resident
}

func (r *Reservoir) edgeReferencesResident(e models.EdgeUpdate) bool {
	return r.Contains(e.U) || r.Contains(e.V)
}

// OfferEdge applies the edge-collection policy: if either endpoint is
// resident and that endpoint's current degree (post this edge) falls in
// (d1, d1+d2], collect the edge. degreeU and degreeV must be the caller's
// up-to-date DegreeMap reads for U and V.
func (r *Reservoir) OfferEdge(e models.EdgeUpdate, degreeU, degreeV int) {
	if r.Contains(e.U) && r.inSuccessWindow(degreeU) {
		r.edges = append(r.edges, e)
		return
	}
	if r.Contains(e.V) && r.inSuccessWindow(degreeV) {
		r.edges = append(r.edges, e)
	}
}

func (r *Reservoir) inSuccessWindow(degree int) bool {
	return degree > r.band.D1 && degree <= r.band.Upper()
}

// Succeeded reports whether any resident's current degree has reached the
// band's upper threshold, per degreeOf (the engine's DegreeMap read).
func (r *Reservoir) Succeeded(degreeOf func(models.VertexId) int) (models.VertexId, bool) {
	for _, v := range r.residents {
		if degreeOf(v) >= r.band.Upper() {
			return v, true
		}
	}
	return 0, false
}

// Neighbors returns the distinct endpoints of the collected edges incident
// to root, excluding root itself.
func (r *Reservoir) Neighbors(root models.VertexId) []models.VertexId {
	seen := make(map[models.VertexId]struct{})
	var out []models.VertexId
	for _, e := range r.edges {
		var other models.VertexId
		switch root {
		case e.U:
			other = e.V
		case e.V:
			other = e.U
		default:
			continue
		}
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		out = append(out, other)
	}
	return out
}

// Residents returns a snapshot of the currently resident vertices.
func (r *Reservoir) Residents() []models.VertexId {
	out := make([]models.VertexId, len(r.residents))
	copy(out, r.residents)
	return out
}

// Band reports the reservoir's admission band.
func (r *Reservoir) Band() Band { return r.band }
