// Package metrics counts aggregation events with Prometheus collectors.
//
// A [Recorder] implements review.Observer. Its collectors live in their own
// registry so a run can be written to a node-exporter textfile with
// [Recorder.WriteTextfile] without picking up process-wide collectors.
package metrics

import (
	"fmt"

	"github.com/dshills/sift/internal/review"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder counts violations and problems by source.
type Recorder struct {
	registry *prometheus.Registry
	added    *prometheus.CounterVec
	dropped  *prometheus.CounterVec
	problems *prometheus.CounterVec
}

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		added: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sift",
			Name:      "violations_added_total",
			Help:      "Violations attached to a reviewed file, by source and severity.",
		}, []string{"source", "severity"}),
		dropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sift",
			Name:      "violations_dropped_total",
			Help:      "Violations naming a file outside the review, by source.",
		}, []string{"source"}),
		problems: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sift",
			Name:      "problems_total",
			Help:      "Review-wide problems, by source.",
		}, []string{"source"}),
	}
}

func (r *Recorder) ViolationAdded(source string, severity review.Severity) {
	r.added.WithLabelValues(source, string(severity)).Inc()
}

func (r *Recorder) ViolationDropped(source string, _ review.Violation) {
	r.dropped.WithLabelValues(source).Inc()
}

func (r *Recorder) ProblemAdded(source string) {
	r.problems.WithLabelValues(source).Inc()
}

// Registry exposes the recorder's registry as a Gatherer.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the current counters in text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

// Chain fans observer calls out to several observers.
type Chain []review.Observer

func (c Chain) ViolationAdded(source string, severity review.Severity) {
	for _, o := range c {
		o.ViolationAdded(source, severity)
	}
}

func (c Chain) ViolationDropped(source string, v review.Violation) {
	for _, o := range c {
		o.ViolationDropped(source, v)
	}
}

func (c Chain) ProblemAdded(source string) {
	for _, o := range c {
		o.ProblemAdded(source)
	}
}
