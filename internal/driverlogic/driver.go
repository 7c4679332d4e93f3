// Package driverlogic implements the Driver (spec.md §4.7): it parses
// parameters, drives one of the two engines over the stream, and reports
// result + telemetry. cmd/probe is a thin flag-parsing shell around this
// package.
package driverlogic

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/rawblock/graphprobe/internal/idengine"
	"github.com/rawblock/graphprobe/internal/insertion"
	"github.com/rawblock/graphprobe/internal/streamhash"
	"github.com/rawblock/graphprobe/internal/streamio"
	"github.com/rawblock/graphprobe/internal/telemetry"
	"github.com/rawblock/graphprobe/pkg/models"
)

// Config bundles one run's parameters, mirroring spec.md §6's CLI surface.
type Config struct {
	Mode    models.Mode
	N, D, C int
	Delta   float64 // IDEngine L0 failure rate, default 0.2
	Gamma   float64 // s-sparse failure rate, default 0.3; not passed to either IDEngine, whose recoverers use Delta
	Workers int      // InsertionEngine concurrent dispatch, 0/1 = inline

	Seed string // optional --seed string; empty means seed from time

	// EdgeIDVariant selects the IDEngine's edge-id variant instead of its
	// default vertex-sample variant.
	EdgeIDVariant bool
}

// RunSingle executes one engine pass over edgeStream (and, for the
// vertex-sample IDEngine, vertexList) and returns the full telemetry row.
func RunSingle(cfg Config, edgeStream io.Reader, vertexList io.Reader) (models.RunTelemetry, error) {
	if err := ValidateParams(cfg.N, cfg.D, cfg.C); err != nil {
		return models.RunTelemetry{}, err
	}
	if cfg.Delta <= 0 {
		cfg.Delta = 0.2
	}
	if cfg.Gamma <= 0 {
		cfg.Gamma = 0.3
	}

	seed := cfg.seedValue()
	fam := streamhash.NewFamily(seed)
	idx := streamhash.NewVertexIndexer()
	scope := telemetry.NewScope()

	runID := uuid.NewString()
	startedAt := time.Now()

	var result models.Result
	var edgesScanned int64
	var tiebreakBuild time.Duration
	var hashTableBytes uint64

	switch cfg.Mode {
	case models.ModeInsertion:
		engine := insertion.New(insertion.Config{N: cfg.N, D: cfg.D, C: cfg.C, Fam: fam, Workers: cfg.Workers})
		_, _, err := streamio.ReadEdges(edgeStream, idx, false, 10000, func(e models.EdgeUpdate) bool {
			_, done := engine.Process(e)
			return !done
		})
		if err != nil {
			return models.RunTelemetry{}, fmt.Errorf("driverlogic: reading insertion-only stream: %w", err)
		}
		edgesScanned = engine.EdgesSeen()
		result = engine.Finalize()

	case models.ModeInsertionDeletion:
		if cfg.EdgeIDVariant {
			buildStart := time.Now()
			engine := idengine.NewEdgeIDEngine(idengine.EdgeIDConfig{N: cfg.N, D: cfg.D, C: cfg.C, Delta: cfg.Delta, Fam: fam})
			tiebreakBuild = time.Since(buildStart)
			hashTableBytes = uint64(engine.NumSamplers()) * 256 // approximate per-sampler grid footprint

			_, _, err := streamio.ReadEdges(edgeStream, idx, true, 10000, func(e models.EdgeUpdate) bool {
				engine.Process(e)
				return true
			})
			if err != nil {
				return models.RunTelemetry{}, fmt.Errorf("driverlogic: reading insertion-deletion stream: %w", err)
			}
			edgesScanned = engine.EdgesSeen()
			result = engine.Finalize()
		} else {
			if vertexList == nil {
				return models.RunTelemetry{}, &BoundsError{Reason: "vertex-sample IDEngine requires a vertex list file"}
			}
			if _, err := streamio.ReadVertexList(vertexList, idx); err != nil {
				return models.RunTelemetry{}, fmt.Errorf("driverlogic: reading vertex list: %w", err)
			}

			buildStart := time.Now()
			engine := idengine.NewVertexSampleEngine(idengine.VertexSampleConfig{N: cfg.N, D: cfg.D, C: cfg.C, Delta: cfg.Delta, Fam: fam})
			tiebreakBuild = time.Since(buildStart)

			_, _, err := streamio.ReadEdges(edgeStream, idx, true, 10000, func(e models.EdgeUpdate) bool {
				engine.Process(e)
				return true
			})
			if err != nil {
				return models.RunTelemetry{}, fmt.Errorf("driverlogic: reading insertion-deletion stream: %w", err)
			}
			edgesScanned = engine.EdgesSeen()
			result = engine.Finalize()
		}

	default:
		return models.RunTelemetry{}, &BoundsError{Reason: fmt.Sprintf("unknown mode %v", cfg.Mode)}
	}

	scope.Sample()
	log.Printf("[Driver] run %s (%s n=%d d=%d c=%d) finished: success=%v edges=%d wall=%s",
		runID, cfg.Mode, cfg.N, cfg.D, cfg.C, result.Ok, edgesScanned, scope.Elapsed())

	return models.RunTelemetry{
		RunID:             runID,
		Mode:              cfg.Mode,
		N:                 cfg.N,
		D:                 cfg.D,
		C:                 cfg.C,
		Result:            result,
		WallTime:          scope.Elapsed(),
		PeakBytes:         scope.PeakBytes(),
		EdgesScanned:      edgesScanned,
		TiebreakBuildTime: tiebreakBuild,
		HashTableBytes:    hashTableBytes,
		StartedAt:         startedAt,
	}, nil
}

func (cfg Config) seedValue() int64 {
	if cfg.Seed != "" {
		return streamhash.SeedFromString(cfg.Seed)
	}
	return streamhash.SeedFromTime(time.Now())
}
