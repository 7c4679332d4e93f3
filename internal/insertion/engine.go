// Package insertion implements the InsertionEngine: c parallel
// ReservoirSamplers, one per degree band, that together certify a
// c-approximate high-degree neighborhood on an insertion-only edge stream.
package insertion

import (
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/dgryski/go-rendezvous"

	"github.com/rawblock/graphprobe/internal/reservoir"
	"github.com/rawblock/graphprobe/internal/streamhash"
	"github.com/rawblock/graphprobe/pkg/models"
)

// Config bundles the parameters the constructor needs: vertex universe
// size, degree target, approximation factor, and the shared engine PRNG.
type Config struct {
	N, D, C int
	Fam     *streamhash.Family
	// Workers, when > 1, starts that many goroutines and dispatches each
	// sampler's updates to one of them, chosen per sampler by rendezvous
	// hashing (SPEC_FULL.md §4.5), instead of running every sampler inline
	// on the caller's goroutine.
	Workers int
}

// Engine runs c parallel ReservoirSamplers with bands (dj1,dj2) =
// (max(1, j*d/c), ceil(d/c)) for j=0..c-1, sharing one DegreeMap.
type Engine struct {
	cfg        Config
	reservoirs []*reservoir.Reservoir
	degree     map[models.VertexId]int
	ring       *rendezvous.Rendezvous
	pool       []chan dispatchedUpdate
	wg         sync.WaitGroup

	terminated bool
	result     models.Result
	edgesSeen  int64
}

type dispatchedUpdate struct {
	edge         models.EdgeUpdate
	degreeU      int
	degreeV      int
	admitU, admitV bool
	done         *sync.WaitGroup
}

// New builds an InsertionEngine per SPEC_FULL.md §4.5: reservoir capacity
// k = ceil(log10(n) * n^(1/c)).
func New(cfg Config) *Engine {
	c := cfg.C
	if c < 2 {
		c = 2
	}
	k := int(math.Ceil(math.Log10(float64(cfg.N)) * math.Pow(float64(cfg.N), 1/float64(c))))
	if k < 1 {
		k = 1
	}

	reservoirs := make([]*reservoir.Reservoir, c)
	for j := 0; j < c; j++ {
		d1 := int(math.Max(1, float64(j*cfg.D)/float64(c)))
		d2 := (cfg.D + c - 1) / c // ceil(d/c): a success collects at least ceil(d/c) edges
		if d2 < 1 {
			d2 = 1
		}
		reservoirs[j] = reservoir.New(cfg.Fam, reservoir.Band{D1: d1, D2: d2}, k)
	}

	e := &Engine{
		cfg:        cfg,
		reservoirs: reservoirs,
		degree:     make(map[models.VertexId]int, cfg.N),
	}

	if cfg.Workers > 1 {
		e.startWorkerPool()
	}
	return e
}

// startWorkerPool wires one goroutine per worker slot and a rendezvous ring
// assigning each sampler index to a worker, so reconfiguring the sampler
// count between runs doesn't reshuffle every sampler's affinity (adopted
// from etalazz-vsa's ratelimiter shard-assignment use of go-rendezvous).
func (e *Engine) startWorkerPool() {
	nodes := make([]string, e.cfg.Workers)
	for i := range nodes {
		nodes[i] = strconv.Itoa(i)
	}
	e.ring = rendezvous.New(nodes, ringHash)

	e.pool = make([]chan dispatchedUpdate, e.cfg.Workers)
	for w := 0; w < e.cfg.Workers; w++ {
		ch := make(chan dispatchedUpdate, 64)
		e.pool[w] = ch
		go e.worker(w, ch)
	}
}

func (e *Engine) worker(id int, ch chan dispatchedUpdate) {
	for upd := range ch {
		for j, r := range e.reservoirs {
			if e.workerFor(j) != id {
				continue
			}
			e.applyToReservoir(r, upd)
		}
		upd.done.Done()
	}
}

func (e *Engine) workerFor(samplerIdx int) int {
	node := e.ring.Lookup(strconv.Itoa(samplerIdx))
	id, _ := strconv.Atoi(node)
	return id
}

func (e *Engine) applyToReservoir(r *reservoir.Reservoir, upd dispatchedUpdate) {
	if upd.admitU && upd.degreeU == r.Band().D1 {
		r.Admit(upd.edge.U)
	}
	if upd.admitV && upd.degreeV == r.Band().D1 {
		r.Admit(upd.edge.V)
	}
	r.OfferEdge(upd.edge, upd.degreeU, upd.degreeV)
}

// ringHash adapts go-rendezvous's Hasher requirement with a tiny FNV-1a
// hash; rendezvous only needs uniform spread over a handful of worker
// nodes, not collision resistance.
func ringHash(s string) uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

// Process consumes one stream edge: increments both endpoints' degrees,
// offers admission to every sampler whose band opens at this degree, routes
// the edge into each sampler's collection, and checks for early-termination
// success. It returns (result, true) the moment any sampler's resident
// reaches its success threshold; otherwise it returns (_, false) and the
// caller should keep streaming.
func (e *Engine) Process(edge models.EdgeUpdate) (models.Result, bool) {
	if e.terminated {
		return e.result, true
	}
	e.edgesSeen++

	e.degree[edge.U]++
	e.degree[edge.V]++
	du, dv := e.degree[edge.U], e.degree[edge.V]

	if e.pool != nil {
		e.dispatchConcurrent(edge, du, dv)
	} else {
		for _, r := range e.reservoirs {
			e.applyToReservoir(r, dispatchedUpdate{edge: edge, degreeU: du, degreeV: dv, admitU: true, admitV: true})
		}
	}

	for _, r := range e.reservoirs {
		if root, ok := r.Succeeded(func(v models.VertexId) int { return e.degree[v] }); ok {
			e.result = models.Success(root, r.Neighbors(root))
			e.terminated = true
			return e.result, true
		}
	}
	return models.Result{}, false
}

// dispatchConcurrent fans this update out to every worker and blocks until
// all have applied it, enforcing the per-update barrier SPEC_FULL.md §5
// requires between stream positions.
func (e *Engine) dispatchConcurrent(edge models.EdgeUpdate, du, dv int) {
	var done sync.WaitGroup
	done.Add(e.cfg.Workers)
	upd := dispatchedUpdate{edge: edge, degreeU: du, degreeV: dv, admitU: true, admitV: true, done: &done}
	for _, ch := range e.pool {
		ch <- upd
	}
	done.Wait()
}

// Finalize is called at end-of-stream: if Process never early-terminated
// but some sampler has a resident at or above its success threshold,
// fallback emits a uniformly random such (sampler, resident) pair. It also
// stops the worker pool, if any, whether or not Process terminated early.
func (e *Engine) Finalize() models.Result {
	if e.pool != nil {
		for _, ch := range e.pool {
			close(ch)
		}
		e.pool = nil
	}
	if e.terminated {
		return e.result
	}

	type candidate struct {
		r    *reservoir.Reservoir
		root models.VertexId
	}
	var candidates []candidate
	for _, r := range e.reservoirs {
		for _, v := range r.Residents() {
			if e.degree[v] >= r.Band().Upper() {
				candidates = append(candidates, candidate{r, v})
			}
		}
	}
	if len(candidates) == 0 {
		return models.Failure()
	}
	pick := candidates[e.cfg.Fam.Int63(int64(len(candidates)))]
	return models.Success(pick.root, pick.r.Neighbors(pick.root))
}

// EdgesSeen reports how many stream edges have been processed so far.
func (e *Engine) EdgesSeen() int64 { return e.edgesSeen }

// Degree returns the engine's current degree reading for v, exposed for
// telemetry and testing.
func (e *Engine) Degree(v models.VertexId) int { return e.degree[v] }

// String renders the engine's configuration for structured log lines,
// matching the teacher's bracketed-component log idiom.
func (e *Engine) String() string {
	return fmt.Sprintf("InsertionEngine{n=%d d=%d c=%d samplers=%d}", e.cfg.N, e.cfg.D, e.cfg.C, len(e.reservoirs))
}
