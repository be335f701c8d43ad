// Package lapmetrics exposes stopwatch laps as Prometheus metrics.
package lapmetrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const (
	namespace = "yatl"
	subsystem = "timer"
)

// Recorder observes lap durations for named timers.
// It is safe for concurrent use.
type Recorder struct {
	laps   *prometheus.HistogramVec
	errors *prometheus.CounterVec
}

// NewRecorder returns a Recorder with unregistered collectors.
func NewRecorder() *Recorder {
	return &Recorder{
		laps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "lap_duration_seconds",
			Help:      "Time elapsed from timer start to each recorded lap",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 9),
		}, []string{"timer"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "lap_errors_total",
			Help:      "Number of laps that could not be recorded",
		}, []string{"timer", "code"}),
	}
}

// ObserveLap records a single lap for the named timer.
func (r *Recorder) ObserveLap(timer string, d time.Duration) {
	r.laps.WithLabelValues(timer).Observe(d.Seconds())
}

// ObserveLaps records every lap for the named timer.
func (r *Recorder) ObserveLaps(timer string, laps []time.Duration) {
	h := r.laps.WithLabelValues(timer)
	for _, d := range laps {
		h.Observe(d.Seconds())
	}
}

// ObserveError counts a failed lap by its error code.
func (r *Recorder) ObserveError(timer, code string) {
	r.errors.WithLabelValues(timer, code).Inc()
}

// PrometheusCollectors satisfies the prom.PrometheusCollector interface.
func (r *Recorder) PrometheusCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		r.laps,
		r.errors,
	}
}

// WriteText gathers g and writes every metric family in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
