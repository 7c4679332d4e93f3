package telemetry

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter exposes run telemetry as Prometheus gauges/histograms, the same
// shape as etalazz-vsa's internal/ratelimiter/telemetry/churn package: a
// handful of explicitly registered metrics on the Exporter's own registry,
// updated from the Driver after each run, served over a dedicated /metrics
// endpoint that only ever reports on runs already completed in this
// process — it accepts no query
// parameters and never touches the graph, so it is a telemetry sink, not
// the user-facing query API spec.md §1 excludes.
type Exporter struct {
	registry     *prometheus.Registry
	wallTimeUs   prometheus.Histogram
	peakBytes    prometheus.Histogram
	successTotal prometheus.Counter
	failureTotal prometheus.Counter
	edgesScanned prometheus.Counter

	srv *http.Server
}

// NewExporter builds an Exporter with its own private registry (never the
// global DefaultRegisterer, so multiple engine runs in one process — e.g. a
// batch sweep — don't collide on metric registration).
func NewExporter() *Exporter {
	reg := prometheus.NewRegistry()
	e := &Exporter{
		registry: reg,
		wallTimeUs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "graphprobe_run_wall_time_us",
			Help:    "Wall-clock duration of a single engine run, in microseconds.",
			Buckets: prometheus.ExponentialBuckets(10, 4, 10),
		}),
		peakBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "graphprobe_run_peak_bytes",
			Help:    "Peak heap allocation observed during a single engine run.",
			Buckets: prometheus.ExponentialBuckets(1<<10, 4, 12),
		}),
		successTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "graphprobe_run_success_total",
			Help: "Total runs that certified a neighborhood.",
		}),
		failureTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "graphprobe_run_failure_total",
			Help: "Total runs that declared a clean failure.",
		}),
		edgesScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "graphprobe_edges_scanned_total",
			Help: "Total stream edges scanned across all runs.",
		}),
	}
	reg.MustRegister(e.wallTimeUs, e.peakBytes, e.successTotal, e.failureTotal, e.edgesScanned)
	return e
}

// Observe folds one completed run's measurements into the exported metrics.
func (e *Exporter) Observe(wall time.Duration, peakBytes uint64, edgesScanned int64, success bool) {
	e.wallTimeUs.Observe(float64(wall.Microseconds()))
	e.peakBytes.Observe(float64(peakBytes))
	e.edgesScanned.Add(float64(edgesScanned))
	if success {
		e.successTotal.Inc()
	} else {
		e.failureTotal.Inc()
	}
}

// Serve starts a bare net/http server exposing /metrics on addr, matching
// the teacher pack's promhttp.Handler() wiring (etalazz-vsa's tfd-sim and
// churn exporter). It does not block; call Shutdown to stop it.
func (e *Exporter) Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{}))
	e.srv = &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := e.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[telemetry] metrics server stopped: %v", err)
		}
	}()
}

// Shutdown gracefully stops the metrics server, if one was started.
func (e *Exporter) Shutdown(ctx context.Context) error {
	if e.srv == nil {
		return nil
	}
	return e.srv.Shutdown(ctx)
}
