package streamhash

import (
	"github.com/cespare/xxhash/v2"

	"github.com/rawblock/graphprobe/pkg/models"
)

// vertexEntry is one chained (name, id) pair inside a bucket.
type vertexEntry struct {
	name string
	id   models.VertexId
}

// VertexIndexer maps opaque string vertex identifiers to dense VertexId
// values in [0,n) stably for the lifetime of a run. It is a hash table with
// external chaining, keyed by xxhash.Sum64String (adopted from
// etalazz-vsa, which uses the same hash to seed its rendezvous ring): the
// hash selects the bucket, and an exact string comparison over that
// bucket's (typically single-element) chain resolves collisions, so
// distinct strings never alias to the same VertexId.
type VertexIndexer struct {
	buckets map[uint64][]vertexEntry
	next    models.VertexId
}

// NewVertexIndexer builds an empty indexer.
func NewVertexIndexer() *VertexIndexer {
	return &VertexIndexer{buckets: make(map[uint64][]vertexEntry)}
}

// Index returns the stable VertexId for name, assigning a fresh one the
// first time name is seen.
func (idx *VertexIndexer) Index(name string) models.VertexId {
	h := xxhash.Sum64String(name)
	chain := idx.buckets[h]
	for _, entry := range chain {
		if entry.name == name {
			return entry.id
		}
	}

	id := idx.next
	idx.next++
	idx.buckets[h] = append(chain, vertexEntry{name: name, id: id})
	return id
}

// Len reports how many distinct vertex names have been indexed so far.
func (idx *VertexIndexer) Len() int {
	n := 0
	for _, chain := range idx.buckets {
		n += len(chain)
	}
	return n
}
