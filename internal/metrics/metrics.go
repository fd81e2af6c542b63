// Package metrics records mirror runs as prometheus metrics and exports them
// in the node_exporter textfile format, which suits short-lived build tools
// better than a scrape endpoint.
package metrics

import (
	"context"
	"fmt"

	"github.com/aretw0/lvtools/pkg/mirror"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "uimirror"

// Recorder owns a private registry with the mirror counters.
type Recorder struct {
	registry *prometheus.Registry

	runs        prometheus.Counter
	failures    prometheus.Counter
	copied      prometheus.Counter
	copiedBytes prometheus.Counter
	removed     prometheus.Counter
	dirs        prometheus.Counter
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// New creates a Recorder with all metrics registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "runs_total",
			Help: "Total number of mirror runs.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "run_failures_total",
			Help: "Total number of mirror runs that ended with an error.",
		}),
		copied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "files_copied_total",
			Help: "Total number of files copied to the destination.",
		}),
		copiedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "bytes_copied_total",
			Help: "Total number of bytes copied to the destination.",
		}),
		removed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "files_removed_total",
			Help: "Total number of destination files removed by the prune pass.",
		}),
		dirs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "dirs_created_total",
			Help: "Total number of destination directories created.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "last_run_duration_seconds",
			Help: "Duration of the most recent mirror run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "last_success_timestamp_seconds",
			Help: "Unix time of the most recent successful mirror run.",
		}),
	}

	r.registry.MustRegister(r.runs, r.failures, r.copied, r.copiedBytes, r.removed, r.dirs, r.duration, r.lastSuccess)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Hooks returns mirror hooks that count each performed change.
func (r *Recorder) Hooks() mirror.Hooks {
	return mirror.Hooks{
		OnRemove: func(ctx context.Context, rel string) {
			r.removed.Inc()
		},
		OnCopy: func(ctx context.Context, rel string, size int64) {
			r.copied.Inc()
			r.copiedBytes.Add(float64(size))
		},
		OnMkdir: func(ctx context.Context, rel string) {
			r.dirs.Inc()
		},
	}
}

// ObserveRun records the outcome of one run. report may be nil.
func (r *Recorder) ObserveRun(report *mirror.Report, err error) {
	r.runs.Inc()
	if report != nil {
		r.duration.Set(report.Duration.Seconds())
	}
	if err != nil {
		r.failures.Inc()
		return
	}
	r.lastSuccess.SetToCurrentTime()
}

// WriteTextfile writes every metric to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
