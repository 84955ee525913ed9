package scan

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "markwatch_scans_total",
		Help: "Bulletin scan runs by outcome.",
	}, []string{"status"})

	entriesParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "markwatch_filing_entries_parsed_total",
		Help: "Filing entries parsed from bulletins.",
	})

	conflictsFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "markwatch_conflicts_found_total",
		Help: "Similarity matches above the inclusion threshold.",
	})

	scanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "markwatch_scan_duration_seconds",
		Help:    "Duration of full scan runs, extraction included.",
		Buckets: prometheus.DefBuckets,
	})
)
