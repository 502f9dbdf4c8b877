package snapshot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the assembly metrics. It is separate from the default
// registry so the agent exposes only what it owns.
var Registry = prometheus.NewRegistry()

var (
	assembleDuration = promauto.With(Registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sysinfo_snapshot_assemble_duration_seconds",
			Help:    "Time taken to assemble a complete snapshot",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
	)

	assembleTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sysinfo_snapshot_assemble_total",
			Help: "Total number of snapshot assembly attempts",
		},
		[]string{"result"}, // success, cancelled, unsupported
	)

	categoryDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sysinfo_category_duration_seconds",
			Help:    "Time taken by individual category collectors",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"category"},
	)

	categoryTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sysinfo_category_collections_total",
			Help: "Category collections by outcome",
		},
		[]string{"category", "status"},
	)

	categoryRecords = promauto.With(Registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sysinfo_category_records",
			Help: "Number of records in the last snapshot per category",
		},
		[]string{"category"},
	)
)
