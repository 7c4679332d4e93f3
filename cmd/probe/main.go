// Command probe is the CLI entry point for graphprobe (spec.md §4.7/§6): a
// thin flag-parsing shell that builds a driverlogic.Config and either runs
// one pass over a stream or sweeps c across several replications, following
// etalazz-vsa's cmd/tfd-sim/main.go flag-and-exit-code shape rather than the
// teacher's long-running env-configured service (this binary does one job
// and exits).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rawblock/graphprobe/internal/driverlogic"
	"github.com/rawblock/graphprobe/internal/runstore"
	"github.com/rawblock/graphprobe/internal/telemetry"
	"github.com/rawblock/graphprobe/pkg/models"
)

func main() {
	var (
		mode          = flag.String("mode", "insertion", `stream model: "insertion" or "insertion-deletion"`)
		edgePath      = flag.String("edges", "", "path to the edge stream file (required)")
		vertexPath    = flag.String("vertices", "", "path to the vertex list file (insertion-deletion vertex-sample variant only)")
		n             = flag.Int("n", 0, "vertex universe size (required)")
		d             = flag.Int("d", 0, "degree target (required)")
		c             = flag.Int("c", 0, "approximation factor, c >= 2 (ignored if --sweep-c is set)")
		sweepC        = flag.String("sweep-c", "", `comma-separated c values for batch mode, e.g. "2,4,8"`)
		repeat        = flag.Int("repeat", 1, "replications per c value in batch mode")
		delta         = flag.Float64("delta", 0.2, "IDEngine L0-sampler failure rate")
		gamma         = flag.Float64("gamma", 0.3, "s-sparse failure rate (accepted but not used: IDEngine recoverers use --delta)")
		workers       = flag.Int("workers", 0, "InsertionEngine concurrent dispatch workers (0 = inline)")
		seed          = flag.String("seed", "", "deterministic seed string (empty = seed from wall clock)")
		edgeIDVariant = flag.Bool("edge-id-variant", false, "use the IDEngine edge-id variant instead of vertex-sample")
		csvPath       = flag.String("csv", "", "batch mode output CSV path (required with --sweep-c)")
		metricsAddr   = flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9400)")
		dbURL         = flag.String("db-url", "", "if set, persist run telemetry to this Postgres connection string")
	)
	flag.Parse()

	if *edgePath == "" || *n == 0 || *d == 0 {
		fmt.Fprintln(os.Stderr, "probe: --edges, --n and --d are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := driverlogic.Config{
		Mode:          parseMode(*mode),
		N:             *n,
		D:             *d,
		C:             *c,
		Delta:         *delta,
		Gamma:         *gamma,
		Workers:       *workers,
		Seed:          *seed,
		EdgeIDVariant: *edgeIDVariant,
	}

	var exporter *telemetry.Exporter
	if *metricsAddr != "" {
		exporter = telemetry.NewExporter()
		exporter.Serve(*metricsAddr)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := exporter.Shutdown(ctx); err != nil {
				log.Printf("[probe] metrics server shutdown: %v", err)
			}
		}()
	}

	var store *runstore.Store
	if *dbURL != "" {
		var err error
		store, err = runstore.Connect(*dbURL)
		if err != nil {
			log.Fatalf("probe: %v", err)
		}
		defer store.Close()
		if err := store.InitSchema(); err != nil {
			log.Fatalf("probe: %v", err)
		}
	}

	if *sweepC != "" {
		os.Exit(runBatch(cfg, *edgePath, *vertexPath, *sweepC, *csvPath, *repeat))
	}
	os.Exit(runOnce(cfg, *edgePath, *vertexPath, store, exporter))
}

// runOnce executes a single pass and prints a human-readable result record,
// per spec.md §6. Exit code 0 covers both Success and a clean declared
// Failure; only input/parse/bounds errors exit non-zero.
func runOnce(cfg driverlogic.Config, edgePath, vertexPath string, store *runstore.Store, exporter *telemetry.Exporter) int {
	edgeStream, vertexList, err := openStreams(edgePath, vertexPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "probe: %v\n", err)
		return 1
	}
	defer closeAll(edgeStream, vertexList)

	t, err := driverlogic.RunSingle(cfg, edgeStream, vertexList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "probe: %v\n", err)
		return 1
	}

	if exporter != nil {
		exporter.Observe(t.WallTime, t.PeakBytes, t.EdgesScanned, t.Result.Ok)
	}
	if store != nil {
		if err := store.SaveRun(context.Background(), t); err != nil {
			log.Printf("[probe] run history not persisted: %v", err)
		}
	}

	printResult(t)
	return 0
}

// runBatch sweeps c and writes the batch CSV (spec.md §6's column list).
func runBatch(base driverlogic.Config, edgePath, vertexPath, sweepCArg, csvPath string, repeat int) int {
	if csvPath == "" {
		fmt.Fprintln(os.Stderr, "probe: --csv is required with --sweep-c")
		return 2
	}
	cValues, err := parseCValues(sweepCArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "probe: %v\n", err)
		return 2
	}

	sweep := driverlogic.SweepConfig{
		Base:         base,
		CValues:      cValues,
		Replications: repeat,
		StreamFactory: func() (io.Reader, io.Reader, error) {
			return openStreams(edgePath, vertexPath)
		},
	}

	summaries, err := driverlogic.RunSweep(sweep)
	if err != nil {
		fmt.Fprintf(os.Stderr, "probe: %v\n", err)
		return 1
	}

	out, err := os.Create(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "probe: creating csv output: %v\n", err)
		return 1
	}
	defer out.Close()
	if err := driverlogic.WriteBatchCSV(out, summaries); err != nil {
		fmt.Fprintf(os.Stderr, "probe: %v\n", err)
		return 1
	}

	log.Printf("[probe] batch sweep complete: %d c-values written to %s", len(summaries), csvPath)
	return 0
}

func openStreams(edgePath, vertexPath string) (io.Reader, io.Reader, error) {
	es, err := os.Open(edgePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening edge stream %q: %w", edgePath, err)
	}
	if vertexPath == "" {
		return es, nil, nil
	}
	vs, err := os.Open(vertexPath)
	if err != nil {
		es.Close()
		return nil, nil, fmt.Errorf("opening vertex list %q: %w", vertexPath, err)
	}
	return es, vs, nil
}

func closeAll(readers ...io.Reader) {
	for _, r := range readers {
		if c, ok := r.(io.Closer); ok && c != nil {
			c.Close()
		}
	}
}

func parseMode(s string) models.Mode {
	switch strings.ToLower(s) {
	case "insertion-deletion", "id", "insertiondeletion":
		return models.ModeInsertionDeletion
	default:
		return models.ModeInsertion
	}
}

func parseCValues(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	values := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid --sweep-c value %q: %w", p, err)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("--sweep-c produced no values")
	}
	return values, nil
}

func printResult(t models.RunTelemetry) {
	if t.Result.Ok {
		fmt.Printf("root=%d neighbors=%d wall=%s peak_bytes=%d edges=%d\n",
			t.Result.Neighborhood.Root, len(t.Result.Neighborhood.Neighbors), t.WallTime, t.PeakBytes, t.EdgesScanned)
		fmt.Println(formatNeighbors(t.Result.Neighborhood.Neighbors))
		return
	}
	fmt.Printf("failed wall=%s peak_bytes=%d edges=%d\n", t.WallTime, t.PeakBytes, t.EdgesScanned)
}

func formatNeighbors(vs []models.VertexId) string {
	b, err := json.Marshal(vs)
	if err != nil {
		return "[]"
	}
	return string(b)
}
