// Package telemetry implements TelemetryScope: the explicit handle each
// engine run carries instead of the teacher-style global BYTES/MAX_BYTES
// counters (SPEC_FULL.md §9's re-architecture note), plus an optional
// Prometheus exporter.
package telemetry

import (
	"runtime"
	"time"
)

// Scope is passed explicitly to a single run; it maintains monotonic
// maximums and is sampled once at the end of the run. Never a package-level
// global: each concurrent run (e.g. a batch sweep's replications) owns its
// own Scope.
type Scope struct {
	started   time.Time
	peakBytes uint64
}

// NewScope starts a fresh telemetry scope.
func NewScope() *Scope {
	return &Scope{started: time.Now()}
}

// Sample reads current heap usage and folds it into the running peak. Call
// it periodically during the run (e.g. every progress tick) as well as once
// at the end.
func (s *Scope) Sample() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	if mem.HeapAlloc > s.peakBytes {
		s.peakBytes = mem.HeapAlloc
	}
}

// Elapsed returns the wall time since the scope started.
func (s *Scope) Elapsed() time.Duration {
	return time.Since(s.started)
}

// PeakBytes returns the largest heap-allocation sample observed so far.
func (s *Scope) PeakBytes() uint64 {
	return s.peakBytes
}
