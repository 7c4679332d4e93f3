package streamhash

import (
	"encoding/binary"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// SeedFromString derives a reproducible 64-bit PRNG seed from an operator
// supplied string (--seed flag) using chainhash's SHA-256 digest (HashB), the
// same hashing primitive the teacher uses to derive stable transaction IDs.
// This keeps run seeding opaque and collision-resistant instead of hashing
// the string with a bare FNV/sum loop.
func SeedFromString(s string) int64 {
	digest := chainhash.HashB([]byte(s))
	return int64(binary.LittleEndian.Uint64(digest[:8]) &^ (1 << 63))
}

// SeedFromTime derives a seed from the current time, for unseeded runs.
func SeedFromTime(t time.Time) int64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(t.UnixNano()))
	digest := chainhash.HashB(buf[:])
	return int64(binary.LittleEndian.Uint64(digest[:8]) &^ (1 << 63))
}
