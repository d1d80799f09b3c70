package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder collects run metrics on a private registry. A nil *Recorder is
// valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	attempts        *prometheus.CounterVec
	attemptDuration prometheus.Histogram
	targets         *prometheus.CounterVec
	inflight        prometheus.Gauge
	panics          prometheus.Counter
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitecheck_probe_attempts_total",
				Help: "Total number of probe attempts by result",
			},
			[]string{"result"},
		),
		attemptDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sitecheck_probe_attempt_duration_seconds",
				Help:    "Duration of single probe attempts in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		targets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitecheck_targets_total",
				Help: "Final verdicts per target",
			},
			[]string{"status"},
		),
		inflight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sitecheck_inflight_probes",
				Help: "Probe attempts currently waiting on the network",
			},
		),
		panics: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sitecheck_unit_panics_total",
				Help: "Probe units that panicked and were converted to failures",
			},
		),
	}
	r.registry.MustRegister(r.attempts, r.attemptDuration, r.targets, r.inflight, r.panics)
	return r
}

// StartAttempt marks one attempt in flight. The returned func must be called
// with the attempt's result once it finishes.
func (r *Recorder) StartAttempt() func(up bool) {
	if r == nil {
		return func(bool) {}
	}
	start := time.Now()
	r.inflight.Inc()
	return func(up bool) {
		r.inflight.Dec()
		r.attemptDuration.Observe(time.Since(start).Seconds())
		r.attempts.WithLabelValues(label(up)).Inc()
	}
}

func (r *Recorder) ObserveResult(up bool) {
	if r == nil {
		return
	}
	r.targets.WithLabelValues(label(up)).Inc()
}

func (r *Recorder) ObservePanic() {
	if r == nil {
		return
	}
	r.panics.Inc()
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteTextfile writes the registry in the text exposition format, for the
// node_exporter textfile collector. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func label(up bool) string {
	if up {
		return "up"
	}
	return "down"
}
