package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ScansTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "alpharadar_scans_total",
		Help: "Number of completed scan runs.",
	})
	FetchFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alpharadar_fetch_failures_total",
		Help: "Failed DEX Screener fetches per query term.",
	}, []string{"query"})
	PairsFetchedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "alpharadar_pairs_fetched_total",
		Help: "Raw pairs received from DEX Screener.",
	})
	CandidatesPassed = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "alpharadar_candidates_passed",
		Help: "Candidates that passed the filters in the last run.",
	})
	ScanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "alpharadar_scan_duration_seconds",
		Help:    "Wall time of a scan run.",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
	})
	DeliveriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alpharadar_deliveries_total",
		Help: "Notification and snapshot deliveries by sink and outcome.",
	}, []string{"sink", "outcome"})
)

var registerOnce sync.Once

// MustRegisterMetrics registers all collectors with the default registry. Safe to call more than once.
func MustRegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ScansTotal,
			FetchFailuresTotal,
			PairsFetchedTotal,
			CandidatesPassed,
			ScanDuration,
			DeliveriesTotal,
		)
	})
}

// Outcome returns the label value for a delivery error.
func Outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
