// Copyright © 2018 One Concern

// Package metrics counts storage operations with prometheus collectors.
//
// The CLIs are short lived, so collected metrics are exported to a file in the
// text exposition format (as expected by the node exporter textfile collector)
// rather than served over http.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "domx"

// Metrics holds the collectors of one registry.
type Metrics struct {
	reg      *prometheus.Registry
	ops      *prometheus.CounterVec
	failures *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// New registers the domx collectors into a fresh registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "operations_total",
			Help:      "Number of storage operations.",
		}, []string{"op"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "failures_total",
			Help:      "Number of failed storage operations.",
		}, []string{"op"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "duration_seconds",
			Help:      "Duration of storage operations.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"op"}),
	}
	m.reg.MustRegister(m.ops, m.failures, m.latency)
	return m
}

// Registry exposes the underlying registry, e.g. to register more collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// Observe records one operation which started at start. A nil receiver is a no-op.
func (m *Metrics) Observe(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.ops.WithLabelValues(op).Inc()
	if err != nil {
		m.failures.WithLabelValues(op).Inc()
	}
	m.latency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// WriteTextfile dumps all metrics to path, atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
