package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metricsManager struct {
	// counters
	CounterRequests       *prometheus.CounterVec
	CounterEngineOutcomes *prometheus.CounterVec
	CounterCacheLookups   *prometheus.CounterVec

	// histograms
	HistRequestDuration *prometheus.HistogramVec
}

// setupPrometheus returns a registry with the Go runtime and process
// collectors plus any extra collectors (e.g. the db pool stats).
func setupPrometheus(extra ...prometheus.Collector) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	reg.MustRegister(extra...)
	return reg
}

func newMetricsManager(namespace, subsystem string, reg prometheus.Registerer) *metricsManager {
	factory := promauto.With(reg)

	return &metricsManager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request",
			Help:      "The total number of incoming requests",
		}, []string{"method", "route", "status"}),
		CounterEngineOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "engine_outcome",
			Help:      "Progress engine results by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		CounterCacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cache_lookup",
			Help:      "Result cache lookups by endpoint and result",
		}, []string{"endpoint", "result"}),
		HistRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}
