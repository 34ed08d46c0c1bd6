// This file defines the Prometheus instrumentation for the web adapter.
// Counters live at package level and are registered with the default
// registerer; cmd/web exposes them on /metrics via promhttp.
package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	albumsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "albumgen",
		Name:      "albums_generated_total",
		Help:      "Albums successfully assembled.",
	})
	generationRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "albumgen",
		Name:      "generation_rejected_total",
		Help:      "Generation requests rejected for invalid input.",
	})
	exportsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "albumgen",
		Name:      "exports_served_total",
		Help:      "Album exports served, by format.",
	}, []string{"format"})
	exportFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "albumgen",
		Name:      "export_failures_total",
		Help:      "Album exports that failed to serialize.",
	})
)
