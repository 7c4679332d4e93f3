package driverlogic

import (
	"fmt"
	"io"
	"log"

	"github.com/rawblock/graphprobe/pkg/models"
)

// StreamFactory opens a fresh pair of readers for one replication. Batch
// mode re-reads the same input for every replication (the stream itself is
// fixed; only the sampler's random seed varies run to run), so the Driver
// needs a way to rewind rather than a single io.Reader.
type StreamFactory func() (edgeStream io.Reader, vertexList io.Reader, err error)

// SweepConfig bundles a c-sweep batch run, grounded on the teacher's
// ShadowRunner.GenerateDriftReport (internal/shadow/shadow_runner.go): that
// function aggregates divergence/variance across stored comparisons, the
// same shape this aggregates success rate and variance across replications
// at each c, per spec.md §4.7 and the CSV columns of spec.md §6.
type SweepConfig struct {
	Base          Config
	CValues       []int
	Replications  int
	StreamFactory StreamFactory
}

// RunSweep executes Replications independent runs at each value of c,
// varying only the per-run random seed (RunSingle draws a fresh one per
// call unless Base.Seed is set), and summarizes each c's batch.
func RunSweep(sweep SweepConfig) ([]models.BatchSummary, error) {
	if sweep.Replications < 1 {
		return nil, &BoundsError{Reason: fmt.Sprintf("replications=%d must be >= 1", sweep.Replications)}
	}
	if len(sweep.CValues) == 0 {
		return nil, &BoundsError{Reason: "sweep requires at least one c value"}
	}

	summaries := make([]models.BatchSummary, 0, len(sweep.CValues))
	for _, c := range sweep.CValues {
		cfg := sweep.Base
		cfg.C = c

		times := make([]float64, 0, sweep.Replications)
		peaks := make([]float64, 0, sweep.Replications)
		edges := make([]float64, 0, sweep.Replications)
		successes := 0

		for i := 0; i < sweep.Replications; i++ {
			edgeStream, vertexList, err := sweep.StreamFactory()
			if err != nil {
				return nil, fmt.Errorf("driverlogic: sweep c=%d replication %d: opening stream: %w", c, i+1, err)
			}

			t, err := RunSingle(cfg, edgeStream, vertexList)
			if err != nil {
				return nil, fmt.Errorf("driverlogic: sweep c=%d replication %d: %w", c, i+1, err)
			}

			times = append(times, float64(t.WallTime.Microseconds()))
			peaks = append(peaks, float64(t.PeakBytes))
			edges = append(edges, float64(t.EdgesScanned))
			if t.Result.Ok {
				successes++
			}
		}

		summary := models.BatchSummary{
			C:             c,
			MeanTimeUs:    mean(times),
			MeanPeakBytes: mean(peaks),
			MeanEdges:     mean(edges),
			VarTimeUs:     variance(times),
			VarPeakBytes:  variance(peaks),
			Successes:     successes,
			Replications:  sweep.Replications,
		}
		summaries = append(summaries, summary)
		log.Printf("[Driver] sweep c=%d: %d/%d successes, mean_time_us=%.1f mean_peak_bytes=%.1f",
			c, successes, sweep.Replications, summary.MeanTimeUs, summary.MeanPeakBytes)
	}

	return summaries, nil
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var sumSq float64
	for _, x := range xs {
		d := x - m
		sumSq += d * d
	}
	return sumSq / float64(len(xs))
}
