// Package metrics counts mapper activity with Prometheus collectors.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"hash-mapper/mapper"
)

// Collector implements mapper.Observer and records per-document results.
type Collector struct {
	rules     *prometheus.CounterVec
	documents *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

var _ mapper.Observer = (*Collector)(nil)

// NewCollector creates unregistered collectors.
func NewCollector() *Collector {
	return &Collector{
		rules: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hashmapper_rules_total",
				Help: "Number of rule applications by outcome",
			},
			[]string{"mapper", "direction", "outcome"},
		),
		documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hashmapper_documents_total",
				Help: "Number of documents processed by result",
			},
			[]string{"mapper", "direction", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hashmapper_document_duration_seconds",
				Help:    "Duration of document transformations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"mapper", "direction"},
		),
	}
}

// Register registers the collectors with registerer.
func (c *Collector) Register(registerer prometheus.Registerer) error {
	return errors.Join(
		registerer.Register(c.rules),
		registerer.Register(c.documents),
		registerer.Register(c.duration),
	)
}

// ObserveRule counts one rule application.
func (c *Collector) ObserveRule(name string, dir mapper.Direction, _ mapper.Rule, outcome mapper.Outcome) {
	c.rules.WithLabelValues(name, dir.String(), outcome.String()).Inc()
}

// ObserveDocument records a finished document transformation.
func (c *Collector) ObserveDocument(name string, dir mapper.Direction, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	c.documents.WithLabelValues(name, dir.String(), result).Inc()
	c.duration.WithLabelValues(name, dir.String()).Observe(elapsed.Seconds())
}

// WriteTextfile gathers g and writes it in the text exposition format, for
// node_exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
